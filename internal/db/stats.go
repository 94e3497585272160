package db

import (
	"context"
	"fmt"
)

// DashboardStats aggregates the counts shown on the admin dashboard.
type DashboardStats struct {
	Users               int64 `json:"users"`
	Universities        int64 `json:"universities"`
	Scholarships        int64 `json:"scholarships"`
	FlaggedScholarships int64 `json:"flagged_scholarships"`
	Applications        int64 `json:"applications"`
}

// GetDashboardStats returns the current catalog and user counts.
func (db *DB) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM universities),
			(SELECT COUNT(*) FROM scholarships),
			(SELECT COUNT(*) FROM scholarships WHERE is_suspicious),
			(SELECT COUNT(*) FROM applications)`

	var s DashboardStats
	err := db.pool.QueryRow(ctx, query).Scan(&s.Users, &s.Universities,
		&s.Scholarships, &s.FlaggedScholarships, &s.Applications)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return &s, nil
}
