package domain

// Event is an inbound chat event. The set of variants is closed:
// MessageEvent, ReactionEvent and UnknownEvent. The unexported marker
// method keeps outside packages from adding variants.
type Event interface {
	isEvent()
}

// MessageEvent is a user message delivered by the chat platform.
type MessageEvent struct {
	EventID   string
	Text      string
	UserID    string
	ChannelID string
	ThreadID  string // parent message timestamp; empty outside threads
	IsFromBot bool
}

func (MessageEvent) isEvent() {}

// InThread reports whether the message is a threaded reply.
func (e *MessageEvent) InThread() bool {
	return e.ThreadID != ""
}

// ReactionEvent is an emoji reaction added to a message.
type ReactionEvent struct {
	EventID         string
	ReactionName    string
	UserID          string
	ChannelID       string
	TargetMessageTs string // timestamp of the message reacted to
}

func (ReactionEvent) isEvent() {}

// UnknownEvent is any delivery the bot does not handle. Carried through
// so the orchestrator boundary stays exhaustive instead of silently
// dropping payloads at the parsing layer.
type UnknownEvent struct {
	EventID string
	Type    string
}

func (UnknownEvent) isEvent() {}
