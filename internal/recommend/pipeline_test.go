package recommend

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_SortsDescendingAndClampsRange(t *testing.T) {
	engine := NewEngine(nil, nil)
	profile := baselineProfile()

	deadline := time.Now().UTC().AddDate(0, 0, 90)
	strong := Candidate{
		ID:           uuid.New(),
		DegreeLevel:  "Master of CS",
		FieldOfStudy: "Computer Science",
		Country:      "Canada",
		FundingType:  "Fully Funded",
		MinCGPA:      float64Ptr(3.0),
		Deadline:     &deadline,
	}
	weak := Candidate{ID: uuid.New(), DegreeLevel: "Diploma", FieldOfStudy: "History", Country: "Japan"}

	results := engine.Recommend(profile, []Candidate{weak, strong})

	require.Len(t, results, 2)
	assert.Equal(t, strong.ID, results[0].CandidateID)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 100.0)
		assert.LessOrEqual(t, len(r.Reasons), 4)
	}
}

func TestRecommend_StableSortKeepsInputOrderOnTies(t *testing.T) {
	engine := NewEngine(nil, nil)
	profile := baselineProfile()

	first := Candidate{ID: uuid.New(), DegreeLevel: "Master of CS", FieldOfStudy: "Computer Science"}
	second := first
	second.ID = uuid.New()

	results := engine.Recommend(profile, []Candidate{first, second})

	require.Len(t, results, 2)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, first.ID, results[0].CandidateID)
	assert.Equal(t, second.ID, results[1].CandidateID)
}

func TestRecommend_TruncatesToTopTen(t *testing.T) {
	engine := NewEngine(nil, nil)
	profile := baselineProfile()

	var candidates []Candidate
	for i := 0; i < 30; i++ {
		candidates = append(candidates, Candidate{
			ID:          uuid.New(),
			Title:       fmt.Sprintf("Scholarship %d", i),
			DegreeLevel: "Master's",
		})
	}

	results := engine.Recommend(profile, candidates)

	assert.Len(t, results, 10)
}

func TestRecommend_EmptyCandidateSet(t *testing.T) {
	engine := NewEngine(nil, nil)

	results := engine.Recommend(baselineProfile(), nil)

	assert.Empty(t, results)
}

func TestRecommend_FailingPredictorMatchesRulesOnly(t *testing.T) {
	profile := baselineProfile()
	candidates := []Candidate{
		{ID: uuid.New(), DegreeLevel: "Master of CS", FieldOfStudy: "Computer Science", Country: "Canada"},
		{ID: uuid.New(), DegreeLevel: "Diploma", FieldOfStudy: "History"},
	}

	withBroken := NewEngine(stubPredictor{err: errors.New("predict failed")}, nil)
	rulesOnly := NewEngine(nil, nil)

	got := withBroken.Recommend(profile, candidates)
	want := rulesOnly.Recommend(profile, candidates)

	assert.Equal(t, want, got)
}

func TestRecommend_PredictorShiftsScores(t *testing.T) {
	profile := baselineProfile()
	c := Candidate{ID: uuid.New(), DegreeLevel: "Master of CS", FieldOfStudy: "Computer Science"}

	engine := NewEngine(stubPredictor{prob: 1.0}, nil)

	results := engine.Recommend(profile, []Candidate{c})

	require.Len(t, results, 1)
	// Rule score 55 (30 pathway + 25 field), blended: 0.6*100 + 0.4*55.
	assert.InDelta(t, 82.0, results[0].Score, 0.0001)
}

func TestAdviseDegree_DirectEntryPhD(t *testing.T) {
	engine := NewEngine(nil, nil)
	profile := baselineProfile()
	profile.CGPA = 3.9

	advice := engine.AdviseDegree(profile, []string{"PhD", "PhD", "PhD", "Master's", "PhD"})

	assert.Equal(t, "PhD", advice.NextDegree)
	assert.Contains(t, advice.Reason, "CGPA")
}

func TestAdviseDegree_BachelorsStandardStep(t *testing.T) {
	engine := NewEngine(nil, nil)
	profile := baselineProfile()
	profile.CGPA = 3.2

	advice := engine.AdviseDegree(profile, []string{"PhD", "PhD", "PhD", "PhD", "PhD"})

	// High PhD density alone is not enough without the CGPA bar.
	assert.Equal(t, "Masters", advice.NextDegree)
}

func TestAdviseDegree_MastersTargetsPhD(t *testing.T) {
	engine := NewEngine(nil, nil)
	profile := baselineProfile()
	profile.HighestDegree = "Master's"

	advice := engine.AdviseDegree(profile, []string{"Master's", "Master's"})

	assert.Equal(t, "PhD", advice.NextDegree)
}

func TestAdviseDegree_UnknownDegreeSuggestsEither(t *testing.T) {
	engine := NewEngine(nil, nil)
	profile := baselineProfile()
	profile.HighestDegree = "Diploma"

	advice := engine.AdviseDegree(profile, nil)

	assert.Equal(t, "Either", advice.NextDegree)
}

func TestAdviseDegree_OnlyTopFiveConsidered(t *testing.T) {
	engine := NewEngine(nil, nil)
	profile := baselineProfile()
	profile.CGPA = 3.9

	// PhD labels past the top five must not count toward the threshold.
	advice := engine.AdviseDegree(profile, []string{"Master's", "Master's", "Master's", "PhD", "PhD", "PhD", "PhD"})

	assert.Equal(t, "Masters", advice.NextDegree)
}
