package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUniversityRequest represents the request to add a university.
type CreateUniversityRequest struct {
	Name       string   `json:"name" validate:"required,min=1"`
	City       string   `json:"city,omitempty"`
	Country    string   `json:"country,omitempty"`
	WebsiteURL string   `json:"website_url,omitempty" validate:"omitempty,url"`
	QSRanking  *int     `json:"qs_ranking,omitempty" validate:"omitempty,gte=1"`
	MinCGPA    *float64 `json:"min_cgpa,omitempty" validate:"omitempty,gte=0,lte=4"`
	MinIELTS   *float64 `json:"min_ielts,omitempty" validate:"omitempty,gte=0,lte=9"`
}

// CreateScholarshipRequest represents the request to add a scholarship
// listing under an existing university.
type CreateScholarshipRequest struct {
	UniversityID   uuid.UUID  `json:"university_id" validate:"required"`
	Title          string     `json:"title" validate:"required,min=1"`
	Description    string     `json:"description,omitempty"`
	Country        string     `json:"country,omitempty"`
	City           string     `json:"city,omitempty"`
	DegreeLevel    string     `json:"degree_level,omitempty"`
	FieldOfStudy   string     `json:"field_of_study,omitempty"`
	FundingType    string     `json:"funding_type,omitempty"`
	FundingAmount  *float64   `json:"funding_amount_numeric,omitempty" validate:"omitempty,gte=0"`
	TuitionFee     *float64   `json:"tuition_fee_numeric,omitempty" validate:"omitempty,gte=0"`
	MinCGPA        *float64   `json:"min_cgpa,omitempty" validate:"omitempty,gte=0,lte=4"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Eligibility    string     `json:"eligibility,omitempty"`
	ScholarshipURL string     `json:"scholarship_url,omitempty" validate:"omitempty,url"`
}

// CreateApplicationRequest represents saving or applying to a scholarship.
type CreateApplicationRequest struct {
	ScholarshipID uuid.UUID `json:"scholarship_id" validate:"required"`
	Status        string    `json:"status,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// UpdateApplicationRequest represents a status or notes change on an
// existing application. Omitted fields are left unchanged.
type UpdateApplicationRequest struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// SetFraudFlagRequest flags or clears a scholarship's fraud hold.
type SetFraudFlagRequest struct {
	IsSuspicious *bool `json:"is_suspicious" validate:"required"`
}

// ChatRequest represents one user message to the advisor.
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// ChatResponse carries the advisor's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Validate validates the CreateUniversityRequest using the validator.
func (r *CreateUniversityRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateScholarshipRequest using the validator.
func (r *CreateScholarshipRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetFraudFlagRequest using the validator.
func (r *SetFraudFlagRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
