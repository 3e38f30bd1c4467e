package usecase

import "github.com/emazinghr/slack-faq-bot/internal/biz/domain"

// sentimentByReaction maps tracked reaction names to sentiments.
// Slack reports both the word form and the +1/-1 aliases.
var sentimentByReaction = map[string]domain.Sentiment{
	"thumbsup":   domain.SentimentPositive,
	"+1":         domain.SentimentPositive,
	"thumbsdown": domain.SentimentNegative,
	"-1":         domain.SentimentNegative,
}

// ReactionUsecase classifies reactions into satisfaction sentiments.
type ReactionUsecase struct {
	botUserID string
}

// NewReactionUsecase creates a new reaction usecase.
func NewReactionUsecase(botUserID string) *ReactionUsecase {
	return &ReactionUsecase{botUserID: botUserID}
}

// Classify maps a reaction to a sentiment. The bot decorates its own
// answers with thumbs-up/down affordances, so its own reactions are
// ignored, as is every untracked reaction name.
func (uc *ReactionUsecase) Classify(reactionName, reactingUserID string) domain.Sentiment {
	if reactingUserID == uc.botUserID {
		return domain.SentimentIgnored
	}
	if sentiment, ok := sentimentByReaction[reactionName]; ok {
		return sentiment
	}
	return domain.SentimentIgnored
}
