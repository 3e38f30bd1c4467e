package repo

import (
	"context"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
)

// FollowupRepo stores pending followup state keyed by user ID.
// The default implementation is in-memory and non-durable; the
// interface exists so the state can move to a shared cache when the
// bot runs with more than one instance.
type FollowupRepo interface {
	// Get returns the pending entry for a user, or nil.
	Get(ctx context.Context, userID string) (*domain.PendingFollowup, error)

	// Set stores the pending entry for a user, replacing any existing one.
	Set(ctx context.Context, userID string, pending *domain.PendingFollowup) error

	// Delete removes the pending entry for a user.
	Delete(ctx context.Context, userID string) error
}
