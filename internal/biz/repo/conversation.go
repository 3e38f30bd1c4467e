package repo

import (
	"context"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
)

// ConversationRepo is the conversation log repository interface.
// The log is append-only.
type ConversationRepo interface {
	// Append stores one processed exchange.
	Append(ctx context.Context, record *domain.ConversationRecord) error

	// Recent lists the most recent records, newest first (for the admin CLI).
	Recent(ctx context.Context, limit int) ([]domain.ConversationRecord, error)
}
