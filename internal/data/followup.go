package data

import (
	"context"
	"sync"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
	"github.com/emazinghr/slack-faq-bot/internal/biz/repo"
)

// followupRepo is the in-memory pending-followup store. State is
// transient and lost on restart; the FollowupRepo interface is the seam
// for moving it to a shared cache in a multi-instance deployment.
type followupRepo struct {
	mu      sync.RWMutex
	entries map[string]*domain.PendingFollowup
}

// NewFollowupRepo creates a new in-memory followup repository
func NewFollowupRepo() repo.FollowupRepo {
	return &followupRepo{
		entries: make(map[string]*domain.PendingFollowup),
	}
}

// Get returns the pending entry for a user, or nil
func (r *followupRepo) Get(ctx context.Context, userID string) (*domain.PendingFollowup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pending, ok := r.entries[userID]
	if !ok {
		return nil, nil
	}
	copied := *pending
	return &copied, nil
}

// Set stores the pending entry for a user, replacing any existing one
func (r *followupRepo) Set(ctx context.Context, userID string, pending *domain.PendingFollowup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *pending
	r.entries[userID] = &copied
	return nil
}

// Delete removes the pending entry for a user
func (r *followupRepo) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, userID)
	return nil
}
