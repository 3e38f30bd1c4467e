package domain

import "time"

// ResponseType classifies how the bot answered a message.
type ResponseType string

const (
	ResponseTypeFaqMatch ResponseType = "faq_match"
	ResponseTypeNoMatch  ResponseType = "no_match"
)

// ConversationRecord is one processed message/answer exchange.
// Records are append-only; the bot never mutates or deletes them.
type ConversationRecord struct {
	ID             string
	UserID         string
	ChannelID      string
	UserMessage    string
	BotResponse    string
	MatchedFaqID   string // empty when no FAQ matched
	ResponseType   ResponseType
	ResponseTimeMs int64
	CreatedAt      time.Time
}
