package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
	"github.com/emazinghr/slack-faq-bot/internal/biz/repo"
)

// feedbackRepo implements the feedback repository
type feedbackRepo struct {
	db *sql.DB
}

// NewFeedbackRepo creates a new feedback repository
func NewFeedbackRepo(db *sql.DB) (repo.FeedbackRepo, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS feedback (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			channel_id TEXT NOT NULL,
			satisfaction INTEGER NOT NULL,
			feedback_text TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback table: %w", err)
	}

	return &feedbackRepo{db: db}, nil
}

// Append stores one satisfaction signal
func (r *feedbackRepo) Append(ctx context.Context, record *domain.FeedbackRecord) error {
	satisfaction := 0
	if record.Satisfaction {
		satisfaction = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback (id, user_id, channel_id, satisfaction, feedback_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		record.ID,
		record.UserID,
		record.ChannelID,
		satisfaction,
		record.FeedbackText,
		record.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to append feedback: %w", err)
	}
	return nil
}
