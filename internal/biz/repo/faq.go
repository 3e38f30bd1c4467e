package repo

import (
	"context"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
)

// FaqRepo is the FAQ repository interface.
// The active set is fetched fresh for every incoming message; the bot
// keeps no cache, so operator edits take effect on the next question.
type FaqRepo interface {
	// ListActive lists FAQ entries marked active, in insertion order.
	ListActive(ctx context.Context) ([]domain.FaqEntry, error)

	// ListAll lists every FAQ entry (for the admin CLI).
	ListAll(ctx context.Context) ([]domain.FaqEntry, error)

	// Create stores a new FAQ entry.
	Create(ctx context.Context, entry *domain.FaqEntry) error

	// SetActive toggles an entry's active flag.
	SetActive(ctx context.Context, id string, active bool) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
