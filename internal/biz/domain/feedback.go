package domain

import "time"

// Sentiment is the coarse classification derived from a reaction.
type Sentiment int

const (
	// SentimentIgnored covers untracked reactions and the bot's own
	// decorating reactions.
	SentimentIgnored Sentiment = iota
	SentimentPositive
	SentimentNegative
)

func (s Sentiment) String() string {
	switch s {
	case SentimentPositive:
		return "positive"
	case SentimentNegative:
		return "negative"
	default:
		return "ignored"
	}
}

// FeedbackRecord captures a satisfaction signal. A reaction produces a
// coarse record; the follow-up reply after a negative reaction produces
// a second record carrying the user's explanation.
type FeedbackRecord struct {
	ID           string
	UserID       string
	ChannelID    string
	Satisfaction bool
	FeedbackText string
	CreatedAt    time.Time
}

// PendingFollowup marks that a user gave negative feedback and the bot
// is waiting for them to describe what they needed. At most one entry
// exists per user; a new negative reaction overwrites it.
type PendingFollowup struct {
	ChannelID string
	ThreadID  string
	CreatedAt time.Time
}

// Expired reports whether the entry is older than ttl.
// A zero ttl disables expiry.
func (p *PendingFollowup) Expired(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(p.CreatedAt) > ttl
}

// AcceptsReply reports whether a message closes this pending followup.
// The reply must land in the thread the followup was armed for.
func (p *PendingFollowup) AcceptsReply(channelID, threadID string) bool {
	return channelID == p.ChannelID && threadID == p.ThreadID
}
