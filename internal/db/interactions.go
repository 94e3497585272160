package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Interaction types recorded for future model training.
const (
	InteractionView  = "view"
	InteractionSave  = "save"
	InteractionApply = "apply"
)

// LogInteraction appends a view/save/apply event. Failures here are never
// fatal to the request that triggered them; callers log and move on.
func (db *DB) LogInteraction(ctx context.Context, userID, scholarshipID uuid.UUID, interactionType string) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO interactions (id, user_id, scholarship_id, interaction_type, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), userID, scholarshipID, interactionType, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to log interaction: %w", err)
	}
	return nil
}

// SaveChatMessage appends one turn of the advisor conversation.
func (db *DB) SaveChatMessage(ctx context.Context, userID uuid.UUID, role, content string) (*ChatMessage, error) {
	msg := ChatMessage{
		ID:        uuid.New(),
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.pool.Exec(ctx, `
		INSERT INTO chat_messages (id, user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.UserID, msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}
	return &msg, nil
}

// ListChatMessages returns a user's conversation oldest first.
func (db *DB) ListChatMessages(ctx context.Context, userID uuid.UUID, limit int) ([]ChatMessage, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, user_id, role, content, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	var out []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RecordNotification stores the outcome of one reminder attempt.
func (db *DB) RecordNotification(ctx context.Context, userID, scholarshipID uuid.UUID, notificationType, message, status string) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO notifications (id, user_id, scholarship_id, type, message, status, sent_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New(), userID, scholarshipID, notificationType, message, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}
