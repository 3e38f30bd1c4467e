package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
	"github.com/emazinghr/slack-faq-bot/internal/biz/repo"
)

// FollowupUsecase tracks which users the bot is waiting on for a
// detailed feedback reply. Each user is either idle or awaiting detail
// in exactly one thread; a new negative reaction overwrites the
// previous pending entry rather than queueing a second one.
type FollowupUsecase struct {
	followupRepo repo.FollowupRepo
	ttl          time.Duration
}

// NewFollowupUsecase creates a new followup usecase. ttl bounds how long
// a pending entry stays armed; zero disables expiry.
func NewFollowupUsecase(followupRepo repo.FollowupRepo, ttl time.Duration) *FollowupUsecase {
	return &FollowupUsecase{
		followupRepo: followupRepo,
		ttl:          ttl,
	}
}

// Arm records that the bot is awaiting a detailed reply from a user in
// the given thread.
func (uc *FollowupUsecase) Arm(ctx context.Context, userID, channelID, threadID string) error {
	pending := &domain.PendingFollowup{
		ChannelID: channelID,
		ThreadID:  threadID,
		CreatedAt: time.Now(),
	}
	if err := uc.followupRepo.Set(ctx, userID, pending); err != nil {
		return fmt.Errorf("set pending followup: %w", err)
	}
	return nil
}

// IsAwaiting reports whether a user has a live pending followup.
func (uc *FollowupUsecase) IsAwaiting(ctx context.Context, userID string) (bool, error) {
	pending, err := uc.pending(ctx, userID)
	if err != nil {
		return false, err
	}
	return pending != nil, nil
}

// Resolve checks whether a message closes the user's pending followup.
// Only a reply in the thread the followup was armed for qualifies; a
// qualifying reply clears the state and returns the entry it closed.
// Any other message leaves the state armed and returns nil.
func (uc *FollowupUsecase) Resolve(ctx context.Context, msg *domain.MessageEvent) (*domain.PendingFollowup, error) {
	pending, err := uc.pending(ctx, msg.UserID)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, nil
	}
	if !pending.AcceptsReply(msg.ChannelID, msg.ThreadID) {
		return nil, nil
	}

	if err := uc.followupRepo.Delete(ctx, msg.UserID); err != nil {
		return nil, fmt.Errorf("clear pending followup: %w", err)
	}
	return pending, nil
}

// pending fetches the user's entry, lazily deleting it when expired.
func (uc *FollowupUsecase) pending(ctx context.Context, userID string) (*domain.PendingFollowup, error) {
	pending, err := uc.followupRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get pending followup: %w", err)
	}
	if pending == nil {
		return nil, nil
	}
	if pending.Expired(uc.ttl, time.Now()) {
		_ = uc.followupRepo.Delete(ctx, userID)
		return nil, nil
	}
	return pending, nil
}
