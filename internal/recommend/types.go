// Package recommend implements the scholarship matching engine: a rule-based
// scorer, a content-similarity scorer, and a ranking pipeline that blends an
// optional external match model into the final score.
package recommend

import (
	"time"

	"github.com/google/uuid"
)

// Eligibility is the coarse gate layered on top of the numeric fit score.
type Eligibility string

const (
	EligibilityEligible    Eligibility = "eligible"
	EligibilityBorderline  Eligibility = "borderline"
	EligibilityNotEligible Eligibility = "not_eligible"
)

// UserProfile is an immutable snapshot of the user built by the caller.
// Missing fields are substituted before scoring: CGPA 0.0, degree
// "Bachelor's", country the configured default.
type UserProfile struct {
	ID                 uuid.UUID
	FullName           string
	Country            string
	HighestDegree      string // free-text label, e.g. "Bachelor's"
	FieldOfStudy       string
	Specialization     string
	CGPA               float64 // 0-4 scale; 0 when unknown
	PreferredCountries []string
	BudgetPerYearUSD   float64
}

// Candidate is a read-only scholarship snapshot handed in by the caller.
// Optional numeric fields are nil when absent or unparseable.
type Candidate struct {
	ID            uuid.UUID
	Title         string
	Description   string
	DegreeLevel   string
	FieldOfStudy  string
	Country       string
	FundingType   string
	FundingAmount *float64 // annual award, USD
	TuitionAmount *float64 // annual tuition, USD
	MinCGPA       *float64 // usually inherited from the institution
	Deadline      *time.Time
}

// ScoredResult is the per-candidate output of the rule scorer and pipeline.
type ScoredResult struct {
	CandidateID uuid.UUID   `json:"scholarship_id"`
	Score       float64     `json:"fit_score"` // clamped to [0, 100]
	Eligibility Eligibility `json:"eligibility"`
	Reasons     []string    `json:"reasons"` // at most 4 entries
}

// SimilarityResult is the per-candidate output of the content-similarity
// scorer.
type SimilarityResult struct {
	CandidateID uuid.UUID `json:"scholarship_id"`
	Score       float64   `json:"fit_score"` // cosine similarity as 0-100
}

// DegreeAdvice suggests the next academic step derived from the profile and
// the degree levels of the top-ranked matches.
type DegreeAdvice struct {
	NextDegree string `json:"recommended_next_degree"`
	Reason     string `json:"reason_next_degree"`
}
