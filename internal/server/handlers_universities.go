package server

import (
	"encoding/json"
	"net/http"

	"github.com/scholariq/scholariq/internal/db"
	"github.com/scholariq/scholariq/internal/types"
)

// handleListUniversities returns universities, optionally filtered by
// ?country= and paginated with ?limit=/?offset=.
func (s *Server) handleListUniversities(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit > 200 {
		limit = 200
	}
	offset := queryInt(r, "offset", 0)

	universities, err := s.db.ListUniversities(r.Context(), r.URL.Query().Get("country"), limit, offset)
	if err != nil {
		http.Error(w, "Failed to list universities", http.StatusInternalServerError)
		return
	}
	if universities == nil {
		universities = []db.University{}
	}

	writeJSON(w, http.StatusOK, universities)
}

// handleGetUniversity returns one university by ID.
func (s *Server) handleGetUniversity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		http.Error(w, "Invalid university ID", http.StatusBadRequest)
		return
	}

	university, err := s.db.GetUniversityByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to get university", http.StatusInternalServerError)
		return
	}
	if university == nil {
		err := &ErrNotFound{Resource: "university", ID: id}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, university)
}

// handleCreateUniversity adds a university.
func (s *Server) handleCreateUniversity(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUniversityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	university, err := s.db.CreateUniversity(r.Context(), &db.University{
		Name:       req.Name,
		City:       req.City,
		Country:    req.Country,
		WebsiteURL: req.WebsiteURL,
		QSRanking:  req.QSRanking,
		MinCGPA:    req.MinCGPA,
		MinIELTS:   req.MinIELTS,
	})
	if err != nil {
		http.Error(w, "Failed to create university", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, university)
}
