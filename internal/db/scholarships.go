package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// scholarshipColumns selects a scholarship joined to its university. MinCGPA
// falls back to the university-wide requirement when the listing has none.
const scholarshipColumns = `s.id, s.university_id, u.name, s.title, s.description,
	s.country, s.city, s.degree_level, s.field_of_study, s.funding_type,
	s.funding_amount_numeric, s.tuition_fee_numeric,
	COALESCE(s.min_cgpa, u.min_cgpa), s.deadline, s.eligibility,
	s.scholarship_url, s.is_suspicious, s.created_at`

func scanScholarship(row pgx.Row) (*Scholarship, error) {
	var s Scholarship
	err := row.Scan(
		&s.ID, &s.UniversityID, &s.UniversityName, &s.Title, &s.Description,
		&s.Country, &s.City, &s.DegreeLevel, &s.FieldOfStudy, &s.FundingType,
		&s.FundingAmount, &s.TuitionFee, &s.MinCGPA, &s.Deadline,
		&s.Eligibility, &s.ScholarshipURL, &s.IsSuspicious, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateScholarship inserts a scholarship and returns it with generated
// fields populated.
func (db *DB) CreateScholarship(ctx context.Context, s *Scholarship) (*Scholarship, error) {
	query := `
		INSERT INTO scholarships (id, university_id, title, description, country, city,
			degree_level, field_of_study, funding_type, funding_amount_numeric,
			tuition_fee_numeric, min_cgpa, deadline, eligibility, scholarship_url,
			is_suspicious, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at`

	id := uuid.New()
	now := time.Now().UTC()
	err := db.pool.QueryRow(ctx, query, id, s.UniversityID, s.Title,
		s.Description, s.Country, s.City, s.DegreeLevel, s.FieldOfStudy,
		s.FundingType, s.FundingAmount, s.TuitionFee, s.MinCGPA, s.Deadline,
		s.Eligibility, s.ScholarshipURL, s.IsSuspicious, now).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create scholarship: %w", err)
	}
	return s, nil
}

// GetScholarshipByID retrieves one scholarship. Returns (nil, nil) when no
// scholarship exists.
func (db *DB) GetScholarshipByID(ctx context.Context, id uuid.UUID) (*Scholarship, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM scholarships s
		JOIN universities u ON u.id = s.university_id
		WHERE s.id = $1`, scholarshipColumns)

	s, err := scanScholarship(db.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}
	return s, nil
}

// ScholarshipFilter narrows ListScholarships. Empty strings and nil pointers
// match everything.
type ScholarshipFilter struct {
	Country     string
	DegreeLevel string
	Field       string
	FundingType string
	MaxTuition  *float64
	Search      string // matches title or description
	Limit       int
	Offset      int
}

// ListScholarships returns scholarships matching the filter ordered by
// nearest deadline first. Suspicious listings are excluded.
func (db *DB) ListScholarships(ctx context.Context, f ScholarshipFilter) ([]Scholarship, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM scholarships s
		JOIN universities u ON u.id = s.university_id
		WHERE NOT s.is_suspicious
			AND ($1 = '' OR s.country ILIKE '%%' || $1 || '%%')
			AND ($2 = '' OR s.degree_level ILIKE '%%' || $2 || '%%')
			AND ($3 = '' OR s.field_of_study ILIKE '%%' || $3 || '%%')
			AND ($4 = '' OR s.funding_type ILIKE '%%' || $4 || '%%')
			AND ($5::numeric IS NULL OR s.tuition_fee_numeric <= $5)
			AND ($6 = '' OR s.title ILIKE '%%' || $6 || '%%' OR s.description ILIKE '%%' || $6 || '%%')
		ORDER BY s.deadline ASC NULLS LAST, s.created_at DESC
		LIMIT $7 OFFSET $8`, scholarshipColumns)

	rows, err := db.pool.Query(ctx, query, f.Country, f.DegreeLevel, f.Field,
		f.FundingType, f.MaxTuition, f.Search, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list scholarships: %w", err)
	}
	defer rows.Close()
	return collectScholarships(rows)
}

// candidateLimit caps the batch handed to the ranking pipeline. The pipeline
// returns at most 10 results, so a broad pre-filter of 30 keeps scoring cheap
// without starving it.
const candidateLimit = 30

// CandidateScholarships pre-filters scholarships for the ranking pipeline:
// listings whose field of study resembles the user's major, or whose degree
// level matches the next degree the user would pursue.
func (db *DB) CandidateScholarships(ctx context.Context, field, nextDegreeLevel string) ([]Scholarship, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM scholarships s
		JOIN universities u ON u.id = s.university_id
		WHERE NOT s.is_suspicious
			AND (s.field_of_study ILIKE '%%' || $1 || '%%'
				OR s.degree_level ILIKE '%%' || $2 || '%%')
		LIMIT $3`, scholarshipColumns)

	rows, err := db.pool.Query(ctx, query, field, nextDegreeLevel, candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate scholarships: %w", err)
	}
	defer rows.Close()
	return collectScholarships(rows)
}

// ScholarshipsClosingBetween returns non-suspicious scholarships whose
// deadline falls inside [from, to], used by the reminder job.
func (db *DB) ScholarshipsClosingBetween(ctx context.Context, from, to time.Time) ([]Scholarship, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM scholarships s
		JOIN universities u ON u.id = s.university_id
		WHERE NOT s.is_suspicious AND s.deadline BETWEEN $1 AND $2
		ORDER BY s.deadline ASC`, scholarshipColumns)

	rows, err := db.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load closing scholarships: %w", err)
	}
	defer rows.Close()
	return collectScholarships(rows)
}

// ListFlaggedScholarships returns listings held for fraud review, newest
// first.
func (db *DB) ListFlaggedScholarships(ctx context.Context) ([]Scholarship, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM scholarships s
		JOIN universities u ON u.id = s.university_id
		WHERE s.is_suspicious
		ORDER BY s.created_at DESC`, scholarshipColumns)

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list flagged scholarships: %w", err)
	}
	defer rows.Close()
	return collectScholarships(rows)
}

// MarkSuspicious flags or clears the fraud flag on a scholarship.
func (db *DB) MarkSuspicious(ctx context.Context, id uuid.UUID, suspicious bool) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE scholarships SET is_suspicious = $2 WHERE id = $1`, id, suspicious)
	if err != nil {
		return fmt.Errorf("failed to update fraud flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scholarship not found: %s", id)
	}
	return nil
}

func collectScholarships(rows pgx.Rows) ([]Scholarship, error) {
	var out []Scholarship
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scholarship: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}
