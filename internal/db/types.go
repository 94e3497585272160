package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user and their academic profile. Profile
// fields are optional at signup and filled in through settings; the scoring
// layer substitutes documented defaults for anything still missing.
type User struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"` // never serialized
	FullName           string    `json:"full_name,omitempty"`
	Nationality        string    `json:"nationality,omitempty"`
	IsActive           bool      `json:"is_active"`
	CGPA               *float64  `json:"cgpa,omitempty"`
	CurrentDegree      string    `json:"current_degree,omitempty"`
	Major              string    `json:"major,omitempty"`
	Specialization     string    `json:"specialization,omitempty"`
	GraduationYear     *int      `json:"graduation_year,omitempty"`
	TargetCountry      string    `json:"target_country,omitempty"`
	TargetDegree       string    `json:"target_degree,omitempty"`
	EnglishProficiency string    `json:"english_proficiency,omitempty"`
	ResearchExperience bool      `json:"research_experience"`
	EmailNotifications bool      `json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at"`
	LastLogin          time.Time `json:"last_login"`
}

// University represents an institution offering scholarships. MinCGPA is the
// institution-wide admission requirement inherited by its scholarships when
// they carry none of their own.
type University struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	City            string    `json:"city,omitempty"`
	Country         string    `json:"country,omitempty"`
	WebsiteURL      string    `json:"website_url,omitempty"`
	QSRanking       *int      `json:"qs_ranking,omitempty"`
	MinCGPA         *float64  `json:"min_cgpa,omitempty"`
	MinIELTS        *float64  `json:"min_ielts,omitempty"`
	ScholarshipNum  int       `json:"scholarship_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// Scholarship represents a scholarship listing.
type Scholarship struct {
	ID               uuid.UUID  `json:"id"`
	UniversityID     uuid.UUID  `json:"university_id"`
	UniversityName   string     `json:"university_name,omitempty"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Country          string     `json:"country,omitempty"`
	City             string     `json:"city,omitempty"`
	DegreeLevel      string     `json:"degree_level,omitempty"`
	FieldOfStudy     string     `json:"field_of_study,omitempty"`
	FundingType      string     `json:"funding_type,omitempty"`
	FundingAmount    *float64   `json:"funding_amount_numeric,omitempty"`
	TuitionFee       *float64   `json:"tuition_fee_numeric,omitempty"`
	MinCGPA          *float64   `json:"min_cgpa,omitempty"` // inherited from university when null
	Deadline         *time.Time `json:"deadline,omitempty"`
	Eligibility      string     `json:"eligibility,omitempty"`
	ScholarshipURL   string     `json:"scholarship_url,omitempty"`
	IsSuspicious     bool       `json:"is_suspicious"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Application tracks a user's progress on one scholarship.
// Status: Saved, Applied, Interview, Rejected, Accepted.
type Application struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"user_id"`
	ScholarshipID uuid.UUID    `json:"scholarship_id"`
	Status        string       `json:"status"`
	Notes         string       `json:"notes,omitempty"`
	AppliedDate   time.Time    `json:"applied_date"`
	Scholarship   *Scholarship `json:"scholarship,omitempty"`
}

// Interaction records a view/save/apply event for future model training.
type Interaction struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ScholarshipID uuid.UUID `json:"scholarship_id"`
	Type          string    `json:"interaction_type"` // view, save, apply
	CreatedAt     time.Time `json:"created_at"`
}

// ChatMessage is one turn of the advisor conversation.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"` // user or ai
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

// Notification records a reminder that was sent (or failed to send).
type Notification struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ScholarshipID uuid.UUID `json:"scholarship_id"`
	Type          string    `json:"type"` // deadline_reminder, new_match
	Message       string    `json:"message"`
	Status        string    `json:"status"` // sent, failed
	SentAt        time.Time `json:"sent_date"`
}
