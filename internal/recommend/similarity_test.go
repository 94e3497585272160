package recommend

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankBySimilarity_EmptyWhenFilterMatchesNothing(t *testing.T) {
	profile := baselineProfile() // Bachelor's, so the filter targets "master"
	candidates := []Candidate{
		{ID: uuid.New(), Title: "Doctoral Fellowship", DegreeLevel: "PhD"},
		{ID: uuid.New(), Title: "Undergrad Grant", DegreeLevel: "Bachelor's"},
	}

	results := RankBySimilarity(profile, candidates)

	assert.Empty(t, results)
}

func TestRankBySimilarity_RanksMatchingContentFirst(t *testing.T) {
	profile := baselineProfile()
	csMatch := Candidate{
		ID:           uuid.New(),
		Title:        "Computer Science Graduate Scholarship",
		Description:  "Funding for computer science research in machine learning and systems.",
		FieldOfStudy: "Computer Science",
		DegreeLevel:  "Master's",
	}
	artsMatch := Candidate{
		ID:           uuid.New(),
		Title:        "Fine Arts Fellowship",
		Description:  "Supporting painters and sculptors in residence.",
		FieldOfStudy: "Fine Arts",
		DegreeLevel:  "Master's",
	}

	results := RankBySimilarity(profile, []Candidate{artsMatch, csMatch})

	require.Len(t, results, 2)
	assert.Equal(t, csMatch.ID, results[0].CandidateID)
	assert.Greater(t, results[0].Score, results[1].Score)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 100.0)
	}
}

func TestRankBySimilarity_MastersProfileTargetsPhD(t *testing.T) {
	profile := baselineProfile()
	profile.HighestDegree = "Master's"
	phd := Candidate{
		ID:           uuid.New(),
		Title:        "PhD Studentship in Computer Science",
		FieldOfStudy: "Computer Science",
		DegreeLevel:  "PhD",
	}
	masters := Candidate{
		ID:          uuid.New(),
		Title:       "Master's Scholarship",
		DegreeLevel: "Master's",
	}

	results := RankBySimilarity(profile, []Candidate{phd, masters})

	require.Len(t, results, 1)
	assert.Equal(t, phd.ID, results[0].CandidateID)
}

func TestRankBySimilarity_TruncatesToTopTen(t *testing.T) {
	profile := baselineProfile()
	var candidates []Candidate
	for i := 0; i < 15; i++ {
		candidates = append(candidates, Candidate{
			ID:          uuid.New(),
			Title:       fmt.Sprintf("Scholarship %d in computer science", i),
			DegreeLevel: "Master's",
		})
	}

	results := RankBySimilarity(profile, candidates)

	assert.Len(t, results, 10)
}

func TestRankBySimilarity_ScoresDependOnBatch(t *testing.T) {
	profile := baselineProfile()
	target := Candidate{
		ID:           uuid.New(),
		Title:        "Computer Science Award",
		FieldOfStudy: "Computer Science",
		DegreeLevel:  "Master's",
	}
	filler := Candidate{
		ID:           uuid.New(),
		Title:        "Computer Science Excellence Grant",
		FieldOfStudy: "Computer Science",
		DegreeLevel:  "Master's",
	}

	alone := RankBySimilarity(profile, []Candidate{target})
	withFiller := RankBySimilarity(profile, []Candidate{target, filler})

	require.NotEmpty(t, alone)
	require.NotEmpty(t, withFiller)

	var inBatch float64
	for _, r := range withFiller {
		if r.CandidateID == target.ID {
			inBatch = r.Score
		}
	}

	// The IDF corpus includes the batch, so the same pair scores
	// differently when the batch changes. Documented contract.
	assert.NotEqual(t, alone[0].Score, inBatch)
}

func TestCleanText_StripsNonAlphanumeric(t *testing.T) {
	assert.Equal(t, "phd cs  ai", cleanText("PhD (C.S.) & AI!"))
}

func TestTokenize_DropsStopWords(t *testing.T) {
	tokens := tokenize("funding for the research in computer science")
	assert.Equal(t, []string{"funding", "research", "computer", "science"}, tokens)
}
