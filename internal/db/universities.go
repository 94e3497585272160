package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateUniversity inserts a university and returns it.
func (db *DB) CreateUniversity(ctx context.Context, u *University) (*University, error) {
	query := `
		INSERT INTO universities (id, name, city, country, website_url, qs_ranking, min_cgpa, min_ielts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	id := uuid.New()
	now := time.Now().UTC()
	err := db.pool.QueryRow(ctx, query, id, u.Name, u.City, u.Country,
		u.WebsiteURL, u.QSRanking, u.MinCGPA, u.MinIELTS, now).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create university: %w", err)
	}
	return u, nil
}

// GetUniversityByID retrieves a university with its scholarship count.
// Returns (nil, nil) when no university exists.
func (db *DB) GetUniversityByID(ctx context.Context, id uuid.UUID) (*University, error) {
	query := `
		SELECT u.id, u.name, u.city, u.country, u.website_url, u.qs_ranking,
			u.min_cgpa, u.min_ielts, u.created_at,
			(SELECT COUNT(*) FROM scholarships s WHERE s.university_id = u.id)
		FROM universities u
		WHERE u.id = $1`

	var u University
	err := db.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.City, &u.Country, &u.WebsiteURL, &u.QSRanking,
		&u.MinCGPA, &u.MinIELTS, &u.CreatedAt, &u.ScholarshipNum)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get university: %w", err)
	}
	return &u, nil
}

// GetUniversityByName looks a university up by exact name, used by the JSON
// importer to attach scholarships to existing institutions.
func (db *DB) GetUniversityByName(ctx context.Context, name string) (*University, error) {
	query := `
		SELECT id, name, city, country, website_url, qs_ranking, min_cgpa, min_ielts, created_at
		FROM universities
		WHERE name = $1`

	var u University
	err := db.pool.QueryRow(ctx, query, name).Scan(
		&u.ID, &u.Name, &u.City, &u.Country, &u.WebsiteURL, &u.QSRanking,
		&u.MinCGPA, &u.MinIELTS, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get university by name: %w", err)
	}
	return &u, nil
}

// ListUniversities returns universities filtered by country (optional,
// case-insensitive substring) ordered by QS ranking then name.
func (db *DB) ListUniversities(ctx context.Context, country string, limit, offset int) ([]University, error) {
	query := `
		SELECT u.id, u.name, u.city, u.country, u.website_url, u.qs_ranking,
			u.min_cgpa, u.min_ielts, u.created_at,
			(SELECT COUNT(*) FROM scholarships s WHERE s.university_id = u.id)
		FROM universities u
		WHERE ($1 = '' OR u.country ILIKE '%' || $1 || '%')
		ORDER BY u.qs_ranking ASC NULLS LAST, u.name ASC
		LIMIT $2 OFFSET $3`

	rows, err := db.pool.Query(ctx, query, country, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list universities: %w", err)
	}
	defer rows.Close()

	var out []University
	for rows.Next() {
		var u University
		if err := rows.Scan(&u.ID, &u.Name, &u.City, &u.Country, &u.WebsiteURL,
			&u.QSRanking, &u.MinCGPA, &u.MinIELTS, &u.CreatedAt, &u.ScholarshipNum); err != nil {
			return nil, fmt.Errorf("failed to scan university: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
