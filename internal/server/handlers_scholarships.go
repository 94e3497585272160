package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/scholariq/scholariq/internal/db"
	"github.com/scholariq/scholariq/internal/fraud"
	"github.com/scholariq/scholariq/internal/server/middleware"
	"github.com/scholariq/scholariq/internal/types"
)

// handleListScholarships returns non-suspicious scholarships matching the
// query filters, nearest deadline first.
func (s *Server) handleListScholarships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := queryInt(r, "limit", 50)
	if limit > 200 {
		limit = 200
	}

	filter := db.ScholarshipFilter{
		Country:     q.Get("country"),
		DegreeLevel: q.Get("degree_level"),
		Field:       q.Get("field"),
		FundingType: q.Get("funding_type"),
		Search:      q.Get("search"),
		Limit:       limit,
		Offset:      queryInt(r, "offset", 0),
	}
	if raw := q.Get("max_tuition"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxTuition = &v
		}
	}

	scholarships, err := s.db.ListScholarships(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to list scholarships", http.StatusInternalServerError)
		return
	}
	if scholarships == nil {
		scholarships = []db.Scholarship{}
	}

	writeJSON(w, http.StatusOK, scholarships)
}

// handleGetScholarship returns one scholarship and logs a view event when
// the caller is authenticated.
func (s *Server) handleGetScholarship(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		http.Error(w, "Invalid scholarship ID", http.StatusBadRequest)
		return
	}

	scholarship, err := s.db.GetScholarshipByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to get scholarship", http.StatusInternalServerError)
		return
	}
	if scholarship == nil {
		err := &ErrNotFound{Resource: "scholarship", ID: id}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	if userID, err := middleware.GetUserID(r); err == nil {
		s.logInteraction(r, userID, id, db.InteractionView)
	}

	writeJSON(w, http.StatusOK, scholarship)
}

// handleCreateScholarship adds a scholarship listing. Listings that trip the
// fraud screen are rejected outright rather than stored flagged; bulk import
// stores them flagged for review instead.
func (s *Server) handleCreateScholarship(w http.ResponseWriter, r *http.Request) {
	var req types.CreateScholarshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	university, err := s.db.GetUniversityByID(r.Context(), req.UniversityID)
	if err != nil {
		http.Error(w, "Failed to verify university", http.StatusInternalServerError)
		return
	}
	if university == nil {
		err := &ErrNotFound{Resource: "university", ID: req.UniversityID}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	if report := fraud.Analyze(req.Title, req.Description); report.Suspicious {
		err := &ErrSuspiciousListing{Reason: report.Reason}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	scholarship, err := s.db.CreateScholarship(r.Context(), &db.Scholarship{
		UniversityID:   req.UniversityID,
		Title:          req.Title,
		Description:    req.Description,
		Country:        req.Country,
		City:           req.City,
		DegreeLevel:    req.DegreeLevel,
		FieldOfStudy:   req.FieldOfStudy,
		FundingType:    req.FundingType,
		FundingAmount:  req.FundingAmount,
		TuitionFee:     req.TuitionFee,
		MinCGPA:        req.MinCGPA,
		Deadline:       req.Deadline,
		Eligibility:    req.Eligibility,
		ScholarshipURL: req.ScholarshipURL,
	})
	if err != nil {
		http.Error(w, "Failed to create scholarship", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, scholarship)
}
