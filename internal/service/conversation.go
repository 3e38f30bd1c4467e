package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
	"github.com/emazinghr/slack-faq-bot/internal/biz/repo"
	"github.com/emazinghr/slack-faq-bot/internal/biz/usecase"
	"github.com/emazinghr/slack-faq-bot/internal/conf"
)

// ConversationService routes inbound chat events. A message either
// closes a pending feedback followup or goes through FAQ matching; a
// reaction becomes a coarse satisfaction signal and, when negative,
// arms the followup tracker.
type ConversationService struct {
	faqRepo      repo.FaqRepo
	convRepo     repo.ConversationRepo
	feedbackRepo repo.FeedbackRepo
	messageRepo  repo.MessageRepo

	matcherUC  *usecase.MatcherUsecase
	reactionUC *usecase.ReactionUsecase
	followupUC *usecase.FollowupUsecase

	messages *conf.MessagesConfig

	// Event deduplication cache. Slack redelivers events it considers
	// unacknowledged, so each event id is processed once.
	seenEventsMu sync.RWMutex
	seenEvents   map[string]time.Time
}

// NewConversationService creates a new conversation service
func NewConversationService(
	faqRepo repo.FaqRepo,
	convRepo repo.ConversationRepo,
	feedbackRepo repo.FeedbackRepo,
	messageRepo repo.MessageRepo,
	matcherUC *usecase.MatcherUsecase,
	reactionUC *usecase.ReactionUsecase,
	followupUC *usecase.FollowupUsecase,
	messages *conf.MessagesConfig,
) *ConversationService {
	if messages == nil {
		messages = conf.DefaultMessagesConfig()
	}
	return &ConversationService{
		faqRepo:      faqRepo,
		convRepo:     convRepo,
		feedbackRepo: feedbackRepo,
		messageRepo:  messageRepo,
		matcherUC:    matcherUC,
		reactionUC:   reactionUC,
		followupUC:   followupUC,
		messages:     messages,
		seenEvents:   make(map[string]time.Time),
	}
}

// HandleEvent dispatches an inbound event. The variant set is closed,
// so the switch is exhaustive.
func (s *ConversationService) HandleEvent(ctx context.Context, event domain.Event) {
	switch ev := event.(type) {
	case *domain.MessageEvent:
		if s.isEventSeen(ev.EventID) {
			fmt.Printf("[Service] Duplicate event ignored: %s\n", ev.EventID)
			return
		}
		s.markEventSeen(ev.EventID)
		s.HandleMessage(ctx, ev)
	case *domain.ReactionEvent:
		if s.isEventSeen(ev.EventID) {
			fmt.Printf("[Service] Duplicate event ignored: %s\n", ev.EventID)
			return
		}
		s.markEventSeen(ev.EventID)
		s.HandleReaction(ctx, ev)
	case *domain.UnknownEvent:
		fmt.Printf("[Service] Unhandled event type: %s\n", ev.Type)
	}
}

// HandleMessage processes a message event
func (s *ConversationService) HandleMessage(ctx context.Context, ev *domain.MessageEvent) {
	if ev.IsFromBot || strings.TrimSpace(ev.Text) == "" {
		return
	}

	// A user the bot is waiting on gets their reply captured as
	// feedback detail instead of being matched as a new question.
	resolved, err := s.followupUC.Resolve(ctx, ev)
	if err != nil {
		fmt.Printf("[Service] Followup resolve error: %v\n", err)
	}
	if resolved != nil {
		s.captureFeedbackDetail(ctx, ev, resolved)
		return
	}

	s.answerQuestion(ctx, ev)
}

// captureFeedbackDetail stores the user's explanation and thanks them.
// The message is consumed: no conversation record, no matching.
func (s *ConversationService) captureFeedbackDetail(ctx context.Context, ev *domain.MessageEvent, pending *domain.PendingFollowup) {
	record := &domain.FeedbackRecord{
		ID:           uuid.NewString(),
		UserID:       ev.UserID,
		ChannelID:    ev.ChannelID,
		Satisfaction: false,
		FeedbackText: ev.Text,
		CreatedAt:    time.Now(),
	}
	if err := s.feedbackRepo.Append(ctx, record); err != nil {
		fmt.Printf("[Service] Failed to store feedback detail: %v\n", err)
	}

	if err := s.messageRepo.PostThreadedMessage(ctx, pending.ChannelID, pending.ThreadID, s.messages.FollowupThanks); err != nil {
		fmt.Printf("[Service] Failed to send feedback ack: %v\n", err)
	}

	fmt.Printf("[Service] Captured feedback detail from %s\n", ev.UserID)
}

// answerQuestion matches the message against the active FAQ set and
// responds with the answer or the escalation line.
func (s *ConversationService) answerQuestion(ctx context.Context, ev *domain.MessageEvent) {
	start := time.Now()

	faqs, err := s.faqRepo.ListActive(ctx)
	if err != nil {
		// Store read failure: apologize, log no conversation record.
		fmt.Printf("[Service] Failed to fetch FAQs: %v\n", err)
		if _, err := s.messageRepo.PostMessage(ctx, ev.ChannelID, s.messages.StoreApology); err != nil {
			fmt.Printf("[Service] Failed to send apology: %v\n", err)
		}
		return
	}

	result := s.matcherUC.Match(ev.Text, faqs)

	responseText := s.messages.Escalation
	responseType := domain.ResponseTypeNoMatch
	matchedFaqID := ""
	if result.Matched() {
		responseText = result.Faq.Answer
		responseType = domain.ResponseTypeFaqMatch
		matchedFaqID = result.Faq.ID
		fmt.Printf("[Service] Matched %q (score=%.1f)\n", result.Faq.Question, result.Score)
	} else {
		fmt.Printf("[Service] No match (best score=%.1f), escalating\n", result.Score)
	}

	msgTs, err := s.messageRepo.PostMessage(ctx, ev.ChannelID, responseText)
	if err != nil {
		// Dispatch failure must not block conversation logging.
		fmt.Printf("[Service] Failed to send response: %v\n", err)
	} else {
		s.decorateAnswer(ctx, ev.ChannelID, msgTs)
	}

	record := &domain.ConversationRecord{
		ID:             uuid.NewString(),
		UserID:         ev.UserID,
		ChannelID:      ev.ChannelID,
		UserMessage:    ev.Text,
		BotResponse:    responseText,
		MatchedFaqID:   matchedFaqID,
		ResponseType:   responseType,
		ResponseTimeMs: time.Since(start).Milliseconds(),
		CreatedAt:      time.Now(),
	}
	if err := s.convRepo.Append(ctx, record); err != nil {
		fmt.Printf("[Service] Failed to store conversation: %v\n", err)
	}
}

// decorateAnswer adds thumbs-up/down affordances to the bot's answer so
// users can react with one tap.
func (s *ConversationService) decorateAnswer(ctx context.Context, channelID, msgTs string) {
	for _, reaction := range []string{"thumbsup", "thumbsdown"} {
		if err := s.messageRepo.AddReaction(ctx, channelID, msgTs, reaction); err != nil {
			fmt.Printf("[Service] Failed to add %s reaction: %v\n", reaction, err)
		}
	}
}

// HandleReaction processes a reaction event
func (s *ConversationService) HandleReaction(ctx context.Context, ev *domain.ReactionEvent) {
	sentiment := s.reactionUC.Classify(ev.ReactionName, ev.UserID)
	if sentiment == domain.SentimentIgnored {
		return
	}

	record := &domain.FeedbackRecord{
		ID:           uuid.NewString(),
		UserID:       ev.UserID,
		ChannelID:    ev.ChannelID,
		Satisfaction: sentiment == domain.SentimentPositive,
		CreatedAt:    time.Now(),
	}
	if err := s.feedbackRepo.Append(ctx, record); err != nil {
		fmt.Printf("[Service] Failed to store feedback: %v\n", err)
	}

	fmt.Printf("[Service] Recorded %s feedback from %s\n", sentiment, ev.UserID)

	if sentiment != domain.SentimentNegative {
		return
	}

	// Negative feedback: ask for detail in the answer's thread and wait
	// for the user's next reply there.
	if err := s.followupUC.Arm(ctx, ev.UserID, ev.ChannelID, ev.TargetMessageTs); err != nil {
		fmt.Printf("[Service] Failed to arm followup: %v\n", err)
		return
	}
	if err := s.messageRepo.PostThreadedMessage(ctx, ev.ChannelID, ev.TargetMessageTs, s.messages.FollowupPrompt); err != nil {
		fmt.Printf("[Service] Failed to send followup prompt: %v\n", err)
	}
}

// isEventSeen checks if an event has been processed
func (s *ConversationService) isEventSeen(eventID string) bool {
	if eventID == "" {
		return false
	}
	s.seenEventsMu.RLock()
	defer s.seenEventsMu.RUnlock()
	_, exists := s.seenEvents[eventID]
	return exists
}

// markEventSeen marks an event as processed
func (s *ConversationService) markEventSeen(eventID string) {
	if eventID == "" {
		return
	}
	s.seenEventsMu.Lock()
	defer s.seenEventsMu.Unlock()
	s.seenEvents[eventID] = time.Now()

	// Clean up expired entries to prevent the cache growing unbounded.
	cutoff := time.Now().Add(-5 * time.Minute)
	for id, ts := range s.seenEvents {
		if ts.Before(cutoff) {
			delete(s.seenEvents, id)
		}
	}
}
