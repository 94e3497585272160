package types

import (
	"github.com/google/uuid"
)

// TopRecommendedScholarship is one entry of the content-based feed.
// Eligibility and IsStrongMatch are derived from the fit score: above 60 is
// "eligible" (otherwise "borderline"), above 80 is additionally a strong
// match.
type TopRecommendedScholarship struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	UniversityName string    `json:"university_name"`
	Country        string    `json:"country"`
	DegreeLevel    string    `json:"degree_level"`
	FitScore       int       `json:"fit_score"`
	Eligibility    string    `json:"eligibility"`
	ShortReason    string    `json:"short_reason"`
	IsStrongMatch  bool      `json:"is_strong_match"`
}

// AIRecommendationResponse is the content-based recommendation feed.
type AIRecommendationResponse struct {
	UserID                uuid.UUID                   `json:"user_id"`
	RecommendedNextDegree string                      `json:"recommended_next_degree"`
	ReasonNextDegree      string                      `json:"reason_next_degree"`
	TopScholarships       []TopRecommendedScholarship `json:"top_scholarships"`
}

// ScholarshipRecommendation is one entry of the profile-scored feed, carrying
// the blended fit score and human-readable reasons.
type ScholarshipRecommendation struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	UniversityName string    `json:"university_name"`
	Country        string    `json:"country"`
	DegreeLevel    string    `json:"degree_level"`
	FitScore       float64   `json:"fit_score"`
	Eligibility    string    `json:"eligibility"`
	Reasons        []string  `json:"reasons"`
}

// RecommendationResponse is the profile-scored recommendation feed with
// degree advice.
type RecommendationResponse struct {
	UserID                uuid.UUID                   `json:"user_id"`
	RecommendedNextDegree string                      `json:"recommended_next_degree"`
	ReasonNextDegree      string                      `json:"reason_next_degree"`
	Items                 []ScholarshipRecommendation `json:"items"`
}
