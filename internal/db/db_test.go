package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplicationStatusConstants(t *testing.T) {
	statuses := []string{
		StatusSaved,
		StatusApplied,
		StatusInterview,
		StatusRejected,
		StatusAccepted,
	}

	for _, status := range statuses {
		assert.NotEmpty(t, status, "status constant should not be empty")
		assert.True(t, ValidApplicationStatus(status))
	}
}

func TestValidApplicationStatusRejectsUnknown(t *testing.T) {
	assert.False(t, ValidApplicationStatus("saved"), "statuses are case-sensitive")
	assert.False(t, ValidApplicationStatus("Withdrawn"))
	assert.False(t, ValidApplicationStatus(""))
}

func TestInteractionTypeConstants(t *testing.T) {
	for _, it := range []string{InteractionView, InteractionSave, InteractionApply} {
		assert.NotEmpty(t, it)
	}
}

func TestScholarshipType(t *testing.T) {
	deadline := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	minCGPA := 3.0

	s := Scholarship{
		Title:       "Graduate Excellence Award",
		DegreeLevel: "Masters",
		MinCGPA:     &minCGPA,
		Deadline:    &deadline,
	}

	assert.Equal(t, "Graduate Excellence Award", s.Title)
	assert.False(t, s.IsSuspicious)
	assert.NotNil(t, s.Deadline)
	assert.Nil(t, s.FundingAmount)
}
