package server

import (
	"encoding/json"
	"net/http"

	"github.com/scholariq/scholariq/internal/db"
	"github.com/scholariq/scholariq/internal/server/middleware"
	"github.com/scholariq/scholariq/internal/types"
)

// handleCreateApplication saves or applies to a scholarship for the
// authenticated user.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req types.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	status := req.Status
	if status == "" {
		status = db.StatusSaved
	}
	if !db.ValidApplicationStatus(status) {
		http.Error(w, "Invalid application status", http.StatusBadRequest)
		return
	}

	scholarship, err := s.db.GetScholarshipByID(r.Context(), req.ScholarshipID)
	if err != nil {
		http.Error(w, "Failed to verify scholarship", http.StatusInternalServerError)
		return
	}
	if scholarship == nil {
		err := &ErrNotFound{Resource: "scholarship", ID: req.ScholarshipID}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	application, err := s.db.CreateApplication(r.Context(), userID, req.ScholarshipID, status, req.Notes)
	if err != nil {
		http.Error(w, "Failed to create application", http.StatusInternalServerError)
		return
	}

	interaction := db.InteractionSave
	if status == db.StatusApplied {
		interaction = db.InteractionApply
	}
	s.logInteraction(r, userID, req.ScholarshipID, interaction)

	writeJSON(w, http.StatusCreated, application)
}

// handleListApplications returns the authenticated user's applications with
// their scholarships, newest first.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	applications, err := s.db.ListApplicationsByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list applications", http.StatusInternalServerError)
		return
	}
	if applications == nil {
		applications = []db.Application{}
	}

	writeJSON(w, http.StatusOK, applications)
}

// handleUpdateApplication changes status or notes on one of the
// authenticated user's applications.
func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		http.Error(w, "Invalid application ID", http.StatusBadRequest)
		return
	}

	var req types.UpdateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status != nil && !db.ValidApplicationStatus(*req.Status) {
		http.Error(w, "Invalid application status", http.StatusBadRequest)
		return
	}

	application, err := s.db.UpdateApplication(r.Context(), id, userID, req.Status, req.Notes)
	if err != nil {
		http.Error(w, "Failed to update application", http.StatusInternalServerError)
		return
	}
	if application == nil {
		err := &ErrNotFound{Resource: "application", ID: id}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	if req.Status != nil && *req.Status == db.StatusApplied {
		s.logInteraction(r, userID, application.ScholarshipID, db.InteractionApply)
	}

	writeJSON(w, http.StatusOK, application)
}

// handleDeleteApplication removes one of the authenticated user's
// applications.
func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		http.Error(w, "Invalid application ID", http.StatusBadRequest)
		return
	}

	deleted, err := s.db.DeleteApplication(r.Context(), id, userID)
	if err != nil {
		http.Error(w, "Failed to delete application", http.StatusInternalServerError)
		return
	}
	if !deleted {
		err := &ErrNotFound{Resource: "application", ID: id}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
