package recommend

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	// maxResults caps the ranked output of both scoring paths.
	maxResults = 10
	// adviceTopK is how many top matches inform the degree suggestion.
	adviceTopK = 5
	// advicePhDThreshold is how many PhD-level matches among the top K
	// trigger the direct-entry PhD suggestion.
	advicePhDThreshold = 3
	// advicePhDMinCGPA gates the direct-entry PhD suggestion.
	advicePhDMinCGPA = 3.7
)

// Engine runs the ranking pipeline: rule-score every candidate, blend in the
// optional match model, sort, truncate. It holds no mutable state and is
// safe for concurrent use; the predictor, if set, is only ever read.
type Engine struct {
	blender *Blender
}

// NewEngine creates an Engine. predictor may be nil to run rules-only.
func NewEngine(predictor MatchPredictor, logger *zap.Logger) *Engine {
	return &Engine{blender: NewBlender(predictor, logger)}
}

// Recommend scores and ranks the candidate set for the profile, returning at
// most 10 results ordered by final score descending. The sort is stable:
// candidates with equal scores keep their input order. An empty candidate
// set yields an empty list, never an error.
func (e *Engine) Recommend(profile UserProfile, candidates []Candidate) []ScoredResult {
	results := make([]ScoredResult, 0, len(candidates))
	for _, c := range candidates {
		res := ScoreCandidate(profile, c)
		res.Score = e.blender.Blend(profile, c, res.Score)
		results = append(results, res)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// AdviseDegree suggests the next academic step. topDegreeLevels are the
// degree labels of the highest-ranked matches; only the first adviceTopK
// entries are considered.
func (e *Engine) AdviseDegree(profile UserProfile, topDegreeLevels []string) DegreeAdvice {
	if len(topDegreeLevels) > adviceTopK {
		topDegreeLevels = topDegreeLevels[:adviceTopK]
	}

	phdCount := 0
	for _, level := range topDegreeLevels {
		if strings.Contains(level, "PhD") {
			phdCount++
		}
	}

	if profile.HighestDegree == "Bachelor's" {
		if phdCount >= advicePhDThreshold && profile.CGPA > advicePhDMinCGPA {
			return DegreeAdvice{
				NextDegree: "PhD",
				Reason:     "Your exceptional CGPA makes you eligible for direct-entry PhD programs found in your matches.",
			}
		}
		return DegreeAdvice{
			NextDegree: "Masters",
			Reason:     "A Master's degree is the standard and most logical next step for your academic progression.",
		}
	}

	if strings.Contains(profile.HighestDegree, "Master") {
		return DegreeAdvice{
			NextDegree: "PhD",
			Reason:     "You have completed a Master's; focusing on PhD research opportunities is recommended.",
		}
	}

	return DegreeAdvice{
		NextDegree: "Either",
		Reason:     "Both Master's and PhD options could fit your profile depending on your research interests.",
	}
}
