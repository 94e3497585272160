package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Application statuses, in the order of a typical pipeline.
const (
	StatusSaved     = "Saved"
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusRejected  = "Rejected"
	StatusAccepted  = "Accepted"
)

// ValidApplicationStatus reports whether s is one of the known statuses.
func ValidApplicationStatus(s string) bool {
	switch s {
	case StatusSaved, StatusApplied, StatusInterview, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// CreateApplication records that a user saved or applied to a scholarship.
// Each user holds at most one application per scholarship; a second insert
// returns the existing row unchanged.
func (db *DB) CreateApplication(ctx context.Context, userID, scholarshipID uuid.UUID, status, notes string) (*Application, error) {
	query := `
		INSERT INTO applications (id, user_id, scholarship_id, status, notes, applied_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, scholarship_id) DO UPDATE SET user_id = applications.user_id
		RETURNING id, user_id, scholarship_id, status, notes, applied_date`

	var a Application
	err := db.pool.QueryRow(ctx, query, uuid.New(), userID, scholarshipID,
		status, notes, time.Now().UTC()).
		Scan(&a.ID, &a.UserID, &a.ScholarshipID, &a.Status, &a.Notes, &a.AppliedDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &a, nil
}

// GetApplicationByID retrieves one application. Returns (nil, nil) when not
// found.
func (db *DB) GetApplicationByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	query := `
		SELECT id, user_id, scholarship_id, status, notes, applied_date
		FROM applications
		WHERE id = $1`

	var a Application
	err := db.pool.QueryRow(ctx, query, id).
		Scan(&a.ID, &a.UserID, &a.ScholarshipID, &a.Status, &a.Notes, &a.AppliedDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// ListApplicationsByUser returns a user's applications newest first, each
// with its scholarship attached.
func (db *DB) ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.scholarship_id, a.status, a.notes, a.applied_date, %s
		FROM applications a
		JOIN scholarships s ON s.id = a.scholarship_id
		JOIN universities u ON u.id = s.university_id
		WHERE a.user_id = $1
		ORDER BY a.applied_date DESC`, scholarshipColumns)

	rows, err := db.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		var a Application
		var s Scholarship
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.ScholarshipID, &a.Status, &a.Notes, &a.AppliedDate,
			&s.ID, &s.UniversityID, &s.UniversityName, &s.Title, &s.Description,
			&s.Country, &s.City, &s.DegreeLevel, &s.FieldOfStudy, &s.FundingType,
			&s.FundingAmount, &s.TuitionFee, &s.MinCGPA, &s.Deadline,
			&s.Eligibility, &s.ScholarshipURL, &s.IsSuspicious, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		a.Scholarship = &s
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateApplication changes the status and/or notes of an application owned
// by userID. Returns (nil, nil) when the application does not exist or
// belongs to someone else.
func (db *DB) UpdateApplication(ctx context.Context, id, userID uuid.UUID, status, notes *string) (*Application, error) {
	query := `
		UPDATE applications SET
			status = COALESCE($3, status),
			notes = COALESCE($4, notes)
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, scholarship_id, status, notes, applied_date`

	var a Application
	err := db.pool.QueryRow(ctx, query, id, userID, status, notes).
		Scan(&a.ID, &a.UserID, &a.ScholarshipID, &a.Status, &a.Notes, &a.AppliedDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return &a, nil
}

// DeleteApplication removes an application owned by userID. Returns false
// when nothing was deleted.
func (db *DB) DeleteApplication(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM applications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete application: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SaverReminder pairs a user with a saved scholarship closing soon.
type SaverReminder struct {
	User        User
	Scholarship Scholarship
}

// SaversForScholarshipsClosing returns, for each scholarship closing inside
// [from, to], the users who saved or applied to it and still want email.
// Users already reminded about a scholarship are skipped.
func (db *DB) SaversForScholarshipsClosing(ctx context.Context, from, to time.Time) ([]SaverReminder, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM applications a
		JOIN users ON users.id = a.user_id
		JOIN scholarships s ON s.id = a.scholarship_id
		JOIN universities u ON u.id = s.university_id
		WHERE users.email_notifications
			AND a.status IN ('Saved', 'Applied')
			AND s.deadline BETWEEN $1 AND $2
			AND NOT EXISTS (
				SELECT 1 FROM notifications n
				WHERE n.user_id = a.user_id
					AND n.scholarship_id = a.scholarship_id
					AND n.type = 'deadline_reminder')
		ORDER BY s.deadline ASC`,
		userReminderColumns, scholarshipColumns)

	rows, err := db.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminder targets: %w", err)
	}
	defer rows.Close()

	var out []SaverReminder
	for rows.Next() {
		var r SaverReminder
		if err := rows.Scan(
			&r.User.ID, &r.User.Email, &r.User.FullName,
			&r.Scholarship.ID, &r.Scholarship.UniversityID, &r.Scholarship.UniversityName,
			&r.Scholarship.Title, &r.Scholarship.Description, &r.Scholarship.Country,
			&r.Scholarship.City, &r.Scholarship.DegreeLevel, &r.Scholarship.FieldOfStudy,
			&r.Scholarship.FundingType, &r.Scholarship.FundingAmount,
			&r.Scholarship.TuitionFee, &r.Scholarship.MinCGPA, &r.Scholarship.Deadline,
			&r.Scholarship.Eligibility, &r.Scholarship.ScholarshipURL,
			&r.Scholarship.IsSuspicious, &r.Scholarship.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder target: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const userReminderColumns = `users.id, users.email, users.full_name`
