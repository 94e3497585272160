package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, password_hash, full_name, nationality, is_active,
	cgpa, current_degree, major, specialization, graduation_year,
	target_country, target_degree, english_proficiency, research_experience,
	email_notifications, created_at, last_login`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Nationality,
		&u.IsActive, &u.CGPA, &u.CurrentDegree, &u.Major, &u.Specialization,
		&u.GraduationYear, &u.TargetCountry, &u.TargetDegree,
		&u.EnglishProficiency, &u.ResearchExperience, &u.EmailNotifications,
		&u.CreatedAt, &u.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user with the given credentials. Profile fields
// start empty and are filled in later via UpdateUserProfile.
func (db *DB) CreateUser(ctx context.Context, email, passwordHash, fullName string) (*User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (id, email, password_hash, full_name, is_active, email_notifications, created_at, last_login)
		VALUES ($1, $2, $3, $4, true, true, $5, $5)
		RETURNING %s`, userColumns)

	now := time.Now().UTC()
	user, err := scanUser(db.pool.QueryRow(ctx, query, uuid.New(), email, passwordHash, fullName, now))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID. Returns (nil, nil) when no user exists.
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(db.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no user
// exists with that email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(db.pool.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// EmailExists reports whether a user with the given email is registered.
func (db *DB) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// UserProfileUpdate carries the editable profile fields. Nil pointers leave
// the stored value unchanged.
type UserProfileUpdate struct {
	FullName           *string
	Nationality        *string
	CGPA               *float64
	CurrentDegree      *string
	Major              *string
	Specialization     *string
	GraduationYear     *int
	TargetCountry      *string
	TargetDegree       *string
	EnglishProficiency *string
	ResearchExperience *bool
	EmailNotifications *bool
}

// UpdateUserProfile applies a partial profile update and returns the updated
// user.
func (db *DB) UpdateUserProfile(ctx context.Context, id uuid.UUID, upd UserProfileUpdate) (*User, error) {
	query := fmt.Sprintf(`
		UPDATE users SET
			full_name = COALESCE($2, full_name),
			nationality = COALESCE($3, nationality),
			cgpa = COALESCE($4, cgpa),
			current_degree = COALESCE($5, current_degree),
			major = COALESCE($6, major),
			specialization = COALESCE($7, specialization),
			graduation_year = COALESCE($8, graduation_year),
			target_country = COALESCE($9, target_country),
			target_degree = COALESCE($10, target_degree),
			english_proficiency = COALESCE($11, english_proficiency),
			research_experience = COALESCE($12, research_experience),
			email_notifications = COALESCE($13, email_notifications)
		WHERE id = $1
		RETURNING %s`, userColumns)

	user, err := scanUser(db.pool.QueryRow(ctx, query, id,
		upd.FullName, upd.Nationality, upd.CGPA, upd.CurrentDegree, upd.Major,
		upd.Specialization, upd.GraduationYear, upd.TargetCountry,
		upd.TargetDegree, upd.EnglishProficiency, upd.ResearchExperience,
		upd.EmailNotifications))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// UpdateUserPassword replaces the stored password hash.
func (db *DB) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}

// TouchLastLogin records a successful login.
func (db *DB) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET last_login = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}
