package server

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/scholariq/scholariq/internal/db"
	"github.com/scholariq/scholariq/internal/recommend"
	"github.com/scholariq/scholariq/internal/server/middleware"
	"github.com/scholariq/scholariq/internal/types"
)

// fallbackPreferredCountries stands in when the user has not set a target
// country yet.
var fallbackPreferredCountries = []string{"United Kingdom", "Canada"}

// fallbackBudgetUSD stands in until budget becomes a profile field.
const fallbackBudgetUSD = 20000

// profileFromUser builds the scoring snapshot, substituting defaults for
// missing profile fields: CGPA 0, degree "Bachelor's", nationality from
// config.
func (s *Server) profileFromUser(u *db.User) recommend.UserProfile {
	country := u.Nationality
	if country == "" {
		country = s.cfg.DefaultCountry
	}
	degree := u.CurrentDegree
	if degree == "" {
		degree = "Bachelor's"
	}
	cgpa := 0.0
	if u.CGPA != nil {
		cgpa = *u.CGPA
	}
	preferred := fallbackPreferredCountries
	if u.TargetCountry != "" {
		preferred = []string{u.TargetCountry}
	}
	fullName := u.FullName
	if fullName == "" {
		fullName = "User"
	}

	return recommend.UserProfile{
		ID:                 u.ID,
		FullName:           fullName,
		Country:            country,
		HighestDegree:      degree,
		FieldOfStudy:       u.Major,
		Specialization:     u.Specialization,
		CGPA:               cgpa,
		PreferredCountries: preferred,
		BudgetPerYearUSD:   fallbackBudgetUSD,
	}
}

func toCandidate(s db.Scholarship) recommend.Candidate {
	return recommend.Candidate{
		ID:            s.ID,
		Title:         s.Title,
		Description:   s.Description,
		DegreeLevel:   s.DegreeLevel,
		FieldOfStudy:  s.FieldOfStudy,
		Country:       s.Country,
		FundingType:   s.FundingType,
		FundingAmount: s.FundingAmount,
		TuitionAmount: s.TuitionFee,
		MinCGPA:       s.MinCGPA,
		Deadline:      s.Deadline,
	}
}

// loadCandidates pre-filters scholarships for scoring: listings in the
// user's field, or at the degree level they would apply for next.
func (s *Server) loadCandidates(r *http.Request, profile recommend.UserProfile) ([]db.Scholarship, map[string]db.Scholarship, error) {
	nextTarget := recommend.TargetDegreeLevel(profile)
	scholarships, err := s.db.CandidateScholarships(r.Context(), profile.FieldOfStudy, nextTarget)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[string]db.Scholarship, len(scholarships))
	for _, sch := range scholarships {
		byID[sch.ID.String()] = sch
	}
	return scholarships, byID, nil
}

// handleRecommendations serves the content-based feed: hard degree filter,
// then tf-idf similarity over the candidate batch, top 10.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := s.userService.GetProfile(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	profile := s.profileFromAPIUser(user)

	scholarships, byID, err := s.loadCandidates(r, profile)
	if err != nil {
		http.Error(w, "Failed to load candidates", http.StatusInternalServerError)
		return
	}

	candidates := make([]recommend.Candidate, 0, len(scholarships))
	for _, sch := range scholarships {
		candidates = append(candidates, toCandidate(sch))
	}

	results := recommend.RankBySimilarity(profile, candidates)

	top := make([]types.TopRecommendedScholarship, 0, len(results))
	for _, res := range results {
		sch := byID[res.CandidateID.String()]

		field := sch.FieldOfStudy
		if field == "" {
			field = "this field"
		}
		eligibility := "borderline"
		if res.Score > 60 {
			eligibility = "eligible"
		}

		top = append(top, types.TopRecommendedScholarship{
			ID:             sch.ID,
			Title:          sch.Title,
			UniversityName: sch.UniversityName,
			Country:        sch.Country,
			DegreeLevel:    sch.DegreeLevel,
			FitScore:       int(res.Score),
			Eligibility:    eligibility,
			ShortReason:    fmt.Sprintf("Matches your background in %s.", field),
			IsStrongMatch:  res.Score > 80,
		})
	}

	nextDegree := "Master's"
	if strings.Contains(profile.HighestDegree, "Master") {
		nextDegree = "PhD"
	} else if strings.Contains(profile.HighestDegree, "PhD") {
		nextDegree = "PostDoc"
	}

	writeJSON(w, http.StatusOK, types.AIRecommendationResponse{
		UserID:                userID,
		RecommendedNextDegree: nextDegree,
		ReasonNextDegree: fmt.Sprintf("Based on your %s degree, a %s is the most logical next step.",
			profile.HighestDegree, nextDegree),
		TopScholarships: top,
	})
}

// handleProfileRecommendations serves the profile-scored feed: rule engine
// plus the optional match model blend, with degree advice derived from the
// top matches.
func (s *Server) handleProfileRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := s.userService.GetProfile(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	profile := s.profileFromAPIUser(user)

	scholarships, byID, err := s.loadCandidates(r, profile)
	if err != nil {
		http.Error(w, "Failed to load candidates", http.StatusInternalServerError)
		return
	}

	candidates := make([]recommend.Candidate, 0, len(scholarships))
	for _, sch := range scholarships {
		candidates = append(candidates, toCandidate(sch))
	}

	results := s.engine.Recommend(profile, candidates)

	items := make([]types.ScholarshipRecommendation, 0, len(results))
	for _, res := range results {
		sch := byID[res.CandidateID.String()]

		universityName := sch.UniversityName
		if universityName == "" {
			universityName = "Unknown"
		}
		country := sch.Country
		if country == "" {
			country = "Global"
		}
		degreeLevel := sch.DegreeLevel
		if degreeLevel == "" {
			degreeLevel = "Unknown"
		}

		items = append(items, types.ScholarshipRecommendation{
			ID:             sch.ID,
			Title:          sch.Title,
			UniversityName: universityName,
			Country:        country,
			DegreeLevel:    degreeLevel,
			FitScore:       math.Round(res.Score*10) / 10,
			Eligibility:    string(res.Eligibility),
			Reasons:        res.Reasons,
		})
	}

	topDegrees := make([]string, 0, 5)
	for i, item := range items {
		if i == 5 {
			break
		}
		topDegrees = append(topDegrees, item.DegreeLevel)
	}
	advice := s.engine.AdviseDegree(profile, topDegrees)

	writeJSON(w, http.StatusOK, types.RecommendationResponse{
		UserID:                userID,
		RecommendedNextDegree: advice.NextDegree,
		ReasonNextDegree:      advice.Reason,
		Items:                 items,
	})
}

// profileFromAPIUser adapts the API user shape back to the scoring snapshot.
func (s *Server) profileFromAPIUser(u *types.User) recommend.UserProfile {
	return s.profileFromUser(&db.User{
		ID:             u.ID,
		FullName:       u.FullName,
		Nationality:    u.Nationality,
		CGPA:           u.CGPA,
		CurrentDegree:  u.CurrentDegree,
		Major:          u.Major,
		Specialization: u.Specialization,
		TargetCountry:  u.TargetCountry,
	})
}
