package repo

import "context"

// MessageRepo is the outbound messaging interface.
// Responsible for delivering bot output through the Slack Web API.
// Callers never retry: delivery failures are logged and processing
// continues.
type MessageRepo interface {
	// PostMessage sends a channel message and returns its timestamp,
	// which identifies the message for threading and reactions.
	PostMessage(ctx context.Context, channelID, text string) (string, error)

	// PostThreadedMessage sends a reply inside a thread.
	PostThreadedMessage(ctx context.Context, channelID, threadID, text string) error

	// AddReaction adds an emoji reaction to a message.
	AddReaction(ctx context.Context, channelID, messageTs, reactionName string) error
}
