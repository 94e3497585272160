package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholariq/scholariq/internal/config"
	"github.com/scholariq/scholariq/internal/server/middleware"
	"github.com/scholariq/scholariq/internal/types"
)

func testAdminServer(t *testing.T) (*Server, uuid.UUID, uuid.UUID) {
	t.Helper()
	svc := NewUserService(newFakeUserStore(), testPasswordConfig())
	ctx := context.Background()

	admin, err := svc.Register(ctx, &types.CreateUserRequest{
		FullName: "Admin", Email: "admin@example.com", Password: "password123",
	})
	require.NoError(t, err)

	regular, err := svc.Register(ctx, &types.CreateUserRequest{
		FullName: "Student", Email: "student@example.com", Password: "password123",
	})
	require.NoError(t, err)

	s := &Server{
		cfg:         &config.ServerConfig{AdminEmails: []string{"admin@example.com"}},
		userService: svc,
	}
	return s, admin.ID, regular.ID
}

func adminGateRequest(s *Server, userID uuid.UUID) *httptest.ResponseRecorder {
	handler := s.adminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	if userID != uuid.Nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAdminOnlyAllowsListedEmail(t *testing.T) {
	s, adminID, _ := testAdminServer(t)
	rec := adminGateRequest(s, adminID)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminOnlyRejectsRegularUser(t *testing.T) {
	s, _, regularID := testAdminServer(t)
	rec := adminGateRequest(s, regularID)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminOnlyRejectsUnauthenticated(t *testing.T) {
	s, _, _ := testAdminServer(t)
	rec := adminGateRequest(s, uuid.Nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnlyRejectsEveryoneWhenListEmpty(t *testing.T) {
	s, adminID, _ := testAdminServer(t)
	s.cfg.AdminEmails = nil
	rec := adminGateRequest(s, adminID)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSetFraudFlagRequestValidation(t *testing.T) {
	flag := true
	require.NoError(t, (&types.SetFraudFlagRequest{IsSuspicious: &flag}).Validate())
	assert.Error(t, (&types.SetFraudFlagRequest{}).Validate(),
		"the flag must be explicit, not defaulted")
}
