package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/scholariq/scholariq/internal/db"
	"github.com/scholariq/scholariq/internal/server/middleware"
	"github.com/scholariq/scholariq/internal/types"
)

// adminOnly gates a handler to users whose email is on the configured admin
// list. It runs inside the auth middleware, so a user ID is present.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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

		if !s.cfg.IsAdminEmail(user.Email) {
			err := &ErrAdminRequired{}
			http.Error(w, err.Error(), HTTPStatus(err))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleSetFraudFlag flags or clears a scholarship's fraud hold. Flagged
// listings disappear from search and recommendations until cleared.
func (s *Server) handleSetFraudFlag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		http.Error(w, "Invalid scholarship ID", http.StatusBadRequest)
		return
	}

	var req types.SetFraudFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
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

	if err := s.db.MarkSuspicious(r.Context(), id, *req.IsSuspicious); err != nil {
		http.Error(w, "Failed to update fraud flag", http.StatusInternalServerError)
		return
	}

	scholarship.IsSuspicious = *req.IsSuspicious
	writeJSON(w, http.StatusOK, scholarship)
}

// handleListFlaggedScholarships returns the fraud review queue.
func (s *Server) handleListFlaggedScholarships(w http.ResponseWriter, r *http.Request) {
	scholarships, err := s.db.ListFlaggedScholarships(r.Context())
	if err != nil {
		http.Error(w, "Failed to list flagged scholarships", http.StatusInternalServerError)
		return
	}
	if scholarships == nil {
		scholarships = []db.Scholarship{}
	}

	writeJSON(w, http.StatusOK, scholarships)
}

// adminStatsResponse is the dashboard payload: totals plus the listings
// closing within the next week.
type adminStatsResponse struct {
	Totals      *db.DashboardStats `json:"totals"`
	ClosingSoon []db.Scholarship   `json:"closing_soon"`
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDashboardStats(r.Context())
	if err != nil {
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	closing, err := s.db.ScholarshipsClosingBetween(r.Context(), now, now.Add(7*24*time.Hour))
	if err != nil {
		http.Error(w, "Failed to load closing scholarships", http.StatusInternalServerError)
		return
	}
	if closing == nil {
		closing = []db.Scholarship{}
	}

	writeJSON(w, http.StatusOK, adminStatsResponse{
		Totals:      stats,
		ClosingSoon: closing,
	})
}
