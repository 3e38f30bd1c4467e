package repo

import (
	"context"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
)

// FeedbackRepo is the feedback repository interface. Append-only.
type FeedbackRepo interface {
	// Append stores one satisfaction signal.
	Append(ctx context.Context, record *domain.FeedbackRecord) error
}
