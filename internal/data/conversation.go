package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
	"github.com/emazinghr/slack-faq-bot/internal/biz/repo"
)

// conversationRepo implements the conversation log repository
type conversationRepo struct {
	db *sql.DB
}

// NewConversationRepo creates a new conversation repository
func NewConversationRepo(db *sql.DB) (repo.ConversationRepo, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			channel_id TEXT NOT NULL,
			user_message TEXT NOT NULL,
			bot_response TEXT NOT NULL,
			matched_faq_id TEXT,
			response_type TEXT NOT NULL,
			response_time_ms INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversations table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_conversations_created_at ON conversations(created_at)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversations index: %w", err)
	}

	return &conversationRepo{db: db}, nil
}

// Append stores one processed exchange
func (r *conversationRepo) Append(ctx context.Context, record *domain.ConversationRecord) error {
	var matchedFaqID sql.NullString
	if record.MatchedFaqID != "" {
		matchedFaqID = sql.NullString{String: record.MatchedFaqID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO conversations (id, user_id, channel_id, user_message, bot_response, matched_faq_id, response_type, response_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID,
		record.UserID,
		record.ChannelID,
		record.UserMessage,
		record.BotResponse,
		matchedFaqID,
		string(record.ResponseType),
		record.ResponseTimeMs,
		record.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to append conversation: %w", err)
	}
	return nil
}

// Recent lists the most recent records, newest first
func (r *conversationRepo) Recent(ctx context.Context, limit int) ([]domain.ConversationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, channel_id, user_message, bot_response, matched_faq_id, response_type, response_time_ms, created_at
		FROM conversations
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	var records []domain.ConversationRecord
	for rows.Next() {
		var record domain.ConversationRecord
		var matchedFaqID sql.NullString
		var responseType string
		var createdAt int64
		if err := rows.Scan(&record.ID, &record.UserID, &record.ChannelID, &record.UserMessage, &record.BotResponse, &matchedFaqID, &responseType, &record.ResponseTimeMs, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		record.MatchedFaqID = matchedFaqID.String
		record.ResponseType = domain.ResponseType(responseType)
		record.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, record)
	}
	return records, rows.Err()
}
