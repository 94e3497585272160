// Package types provides request and response types for the ScholarIQ API.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to register a new account.
type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents a user profile for API responses (avoids import cycle with db package).
type User struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name,omitempty"`
	Nationality        string    `json:"nationality,omitempty"`
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

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdatePasswordRequest represents a password update request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UpdateProfileRequest represents a partial update of the academic profile.
// Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	FullName           *string  `json:"full_name,omitempty"`
	Nationality        *string  `json:"nationality,omitempty"`
	CGPA               *float64 `json:"cgpa,omitempty" validate:"omitempty,gte=0,lte=4"`
	CurrentDegree      *string  `json:"current_degree,omitempty"`
	Major              *string  `json:"major,omitempty"`
	Specialization     *string  `json:"specialization,omitempty"`
	GraduationYear     *int     `json:"graduation_year,omitempty" validate:"omitempty,gte=1950,lte=2100"`
	TargetCountry      *string  `json:"target_country,omitempty"`
	TargetDegree       *string  `json:"target_degree,omitempty"`
	EnglishProficiency *string  `json:"english_proficiency,omitempty"`
	ResearchExperience *bool    `json:"research_experience,omitempty"`
	EmailNotifications *bool    `json:"email_notifications,omitempty"`
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdatePasswordRequest using the validator.
func (r *UpdatePasswordRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateProfileRequest using the validator.
func (r *UpdateProfileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
