package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/scholariq/scholariq/internal/advisor"
	"github.com/scholariq/scholariq/internal/db"
	"github.com/scholariq/scholariq/internal/server/middleware"
	"github.com/scholariq/scholariq/internal/types"
)

// chatHistoryLimit caps how many prior turns are replayed to the model.
const chatHistoryLimit = 20

// offlineReply is returned when the advisor is not configured, mirroring the
// behavior users see on a misconfigured deployment rather than a hard error.
const offlineReply = "Chatbot is currently offline (API key missing). Please contact admin."

// handleChat sends a user message to the advisor and stores both turns.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	if s.advisor == nil {
		writeJSON(w, http.StatusOK, types.ChatResponse{Reply: offlineReply})
		return
	}

	stored, err := s.db.ListChatMessages(r.Context(), userID, chatHistoryLimit)
	if err != nil {
		http.Error(w, "Failed to load conversation", http.StatusInternalServerError)
		return
	}
	history := make([]advisor.Turn, 0, len(stored))
	for _, m := range stored {
		history = append(history, advisor.Turn{Role: m.Role, Content: m.Content})
	}

	reply, err := s.advisor.Ask(r.Context(), history, req.Message)
	if err != nil {
		s.logger.Error("advisor request failed", zap.Error(err))
		http.Error(w, "Advisor is unavailable", http.StatusBadGateway)
		return
	}

	// Persist both turns; a failed write loses history but not the reply.
	if _, err := s.db.SaveChatMessage(r.Context(), userID, "user", req.Message); err != nil {
		s.logger.Warn("failed to save chat message", zap.Error(err))
	}
	if _, err := s.db.SaveChatMessage(r.Context(), userID, "ai", reply); err != nil {
		s.logger.Warn("failed to save chat message", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, types.ChatResponse{Reply: reply})
}

// handleChatHistory returns the authenticated user's conversation oldest
// first.
func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := queryInt(r, "limit", 100)
	messages, err := s.db.ListChatMessages(r.Context(), userID, limit)
	if err != nil {
		http.Error(w, "Failed to load conversation", http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []db.ChatMessage{}
	}

	writeJSON(w, http.StatusOK, messages)
}
