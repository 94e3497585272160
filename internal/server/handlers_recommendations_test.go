package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/scholariq/scholariq/internal/config"
	"github.com/scholariq/scholariq/internal/db"
)

func testServerForProfiles() *Server {
	return &Server{cfg: &config.ServerConfig{DefaultCountry: "Pakistan"}}
}

func TestProfileFromUserDefaults(t *testing.T) {
	s := testServerForProfiles()

	profile := s.profileFromUser(&db.User{ID: uuid.New()})

	assert.Equal(t, "Pakistan", profile.Country)
	assert.Equal(t, "Bachelor's", profile.HighestDegree)
	assert.Equal(t, 0.0, profile.CGPA)
	assert.Equal(t, "User", profile.FullName)
	assert.Equal(t, []string{"United Kingdom", "Canada"}, profile.PreferredCountries)
	assert.Equal(t, 20000.0, profile.BudgetPerYearUSD)
}

func TestProfileFromUserUsesProfileFields(t *testing.T) {
	s := testServerForProfiles()
	cgpa := 3.6

	profile := s.profileFromUser(&db.User{
		ID:             uuid.New(),
		FullName:       "Ayesha Khan",
		Nationality:    "India",
		CGPA:           &cgpa,
		CurrentDegree:  "Master's",
		Major:          "Computer Science",
		Specialization: "Machine Learning",
		TargetCountry:  "Germany",
	})

	assert.Equal(t, "India", profile.Country)
	assert.Equal(t, "Master's", profile.HighestDegree)
	assert.Equal(t, 3.6, profile.CGPA)
	assert.Equal(t, "Computer Science", profile.FieldOfStudy)
	assert.Equal(t, []string{"Germany"}, profile.PreferredCountries,
		"a set target country replaces the fallback list")
}

func TestToCandidateMapsFields(t *testing.T) {
	funding := 45000.0
	minCGPA := 3.2

	c := toCandidate(db.Scholarship{
		ID:            uuid.New(),
		Title:         "Graduate Award",
		DegreeLevel:   "Masters",
		FieldOfStudy:  "Computer Science",
		Country:       "Canada",
		FundingType:   "Fully Funded",
		FundingAmount: &funding,
		MinCGPA:       &minCGPA,
	})

	assert.Equal(t, "Graduate Award", c.Title)
	assert.Equal(t, "Masters", c.DegreeLevel)
	assert.Equal(t, &funding, c.FundingAmount)
	assert.Equal(t, &minCGPA, c.MinCGPA)
	assert.Nil(t, c.TuitionAmount)
}
