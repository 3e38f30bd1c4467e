package slack

import (
	"encoding/json"
	"fmt"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
)

// Event callback types
const (
	payloadTypeURLVerification = "url_verification"
	payloadTypeEventCallback   = "event_callback"
)

// EventPayload is the outer envelope of an Events API delivery
type EventPayload struct {
	Type      string          `json:"type"`
	Challenge string          `json:"challenge"`
	EventID   string          `json:"event_id"`
	Event     json.RawMessage `json:"event"`
}

// innerEvent covers the fields of the event types the bot handles
type innerEvent struct {
	Type     string `json:"type"`
	Subtype  string `json:"subtype"`
	Text     string `json:"text"`
	User     string `json:"user"`
	Channel  string `json:"channel"`
	Ts       string `json:"ts"`
	ThreadTs string `json:"thread_ts"`
	BotID    string `json:"bot_id"`

	// reaction_added fields
	Reaction string `json:"reaction"`
	Item     struct {
		Type    string `json:"type"`
		Channel string `json:"channel"`
		Ts      string `json:"ts"`
	} `json:"item"`
}

// ParsePayload decodes an Events API delivery
func ParsePayload(body []byte) (*EventPayload, error) {
	var payload EventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}
	return &payload, nil
}

// IsChallenge reports whether this delivery is the URL verification handshake
func (p *EventPayload) IsChallenge() bool {
	return p.Type == payloadTypeURLVerification
}

// ToDomainEvent converts an event_callback delivery into a domain event.
// Deliveries the bot does not handle come back as UnknownEvent so the
// orchestrator boundary stays exhaustive.
func (p *EventPayload) ToDomainEvent() (domain.Event, error) {
	if p.Type != payloadTypeEventCallback {
		return &domain.UnknownEvent{EventID: p.EventID, Type: p.Type}, nil
	}
	if len(p.Event) == 0 {
		return &domain.UnknownEvent{EventID: p.EventID, Type: "empty"}, nil
	}

	var ev innerEvent
	if err := json.Unmarshal(p.Event, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse inner event: %w", err)
	}

	switch ev.Type {
	case "message":
		// Edits, joins and other subtyped messages are not questions.
		if ev.Subtype != "" && ev.Subtype != "bot_message" {
			return &domain.UnknownEvent{EventID: p.EventID, Type: "message." + ev.Subtype}, nil
		}
		return &domain.MessageEvent{
			EventID:   p.EventID,
			Text:      ev.Text,
			UserID:    ev.User,
			ChannelID: ev.Channel,
			ThreadID:  ev.ThreadTs,
			IsFromBot: ev.BotID != "" || ev.Subtype == "bot_message",
		}, nil
	case "reaction_added":
		return &domain.ReactionEvent{
			EventID:         p.EventID,
			ReactionName:    ev.Reaction,
			UserID:          ev.User,
			ChannelID:       ev.Item.Channel,
			TargetMessageTs: ev.Item.Ts,
		}, nil
	default:
		return &domain.UnknownEvent{EventID: p.EventID, Type: ev.Type}, nil
	}
}
