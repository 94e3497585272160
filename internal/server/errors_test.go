package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{UserID: id}, http.StatusNotFound},
		{"resource not found", &ErrNotFound{Resource: "scholarship", ID: id}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "cgpa", Message: "out of range"}, http.StatusBadRequest},
		{"suspicious listing", &ErrSuspiciousListing{Reason: "mentions processing fee"}, http.StatusBadRequest},
		{"advisor disabled", &ErrAdvisorDisabled{}, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "email already registered: a@b.com",
		(&ErrEmailAlreadyExists{Email: "a@b.com"}).Error())
	assert.Equal(t, "invalid email or password", (&ErrInvalidCredentials{}).Error())
	assert.Equal(t, "current password is incorrect", (&ErrPasswordMismatch{}).Error())

	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	assert.Equal(t, "scholarship not found: 11111111-1111-1111-1111-111111111111",
		(&ErrNotFound{Resource: "scholarship", ID: id}).Error())
}
