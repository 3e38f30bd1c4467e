package data

import (
	"context"

	"github.com/emazinghr/slack-faq-bot/internal/biz/repo"
	"github.com/emazinghr/slack-faq-bot/internal/infra/slack"
)

// slackRepo implements the outbound message repository over the Slack
// Web API client
type slackRepo struct {
	client *slack.Client
}

// NewSlackRepo creates a new Slack message repository
func NewSlackRepo(client *slack.Client) repo.MessageRepo {
	return &slackRepo{client: client}
}

// PostMessage sends a channel message and returns its timestamp
func (r *slackRepo) PostMessage(ctx context.Context, channelID, text string) (string, error) {
	return r.client.PostMessage(ctx, channelID, text)
}

// PostThreadedMessage sends a reply inside a thread
func (r *slackRepo) PostThreadedMessage(ctx context.Context, channelID, threadID, text string) error {
	return r.client.PostThreadedMessage(ctx, channelID, threadID, text)
}

// AddReaction adds an emoji reaction to a message
func (r *slackRepo) AddReaction(ctx context.Context, channelID, messageTs, reactionName string) error {
	return r.client.AddReaction(ctx, channelID, messageTs, reactionName)
}
