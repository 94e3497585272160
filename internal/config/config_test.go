package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfigParsesAdminEmails(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("ADMIN_EMAILS", "admin@example.com, ops@example.com ,")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.AdminEmails)
}

func TestIsAdminEmail(t *testing.T) {
	cfg := &ServerConfig{AdminEmails: []string{"admin@example.com"}}

	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"exact match", "admin@example.com", true},
		{"case insensitive", "Admin@Example.COM", true},
		{"not listed", "student@example.com", false},
		{"empty email", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.IsAdminEmail(tt.email))
		})
	}
}

func TestIsAdminEmailEmptyList(t *testing.T) {
	cfg := &ServerConfig{}
	assert.False(t, cfg.IsAdminEmail("admin@example.com"))
}
