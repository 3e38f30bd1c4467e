package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emazinghr/slack-faq-bot/internal/biz/repo"
	"github.com/emazinghr/slack-faq-bot/internal/infra/slack"

	_ "modernc.org/sqlite"
)

// Repositories contains all repositories
type Repositories struct {
	Faq          repo.FaqRepo
	Conversation repo.ConversationRepo
	Feedback     repo.FeedbackRepo
	Followup     repo.FollowupRepo
	Message      repo.MessageRepo

	db *sql.DB
}

// NewRepositories creates all repositories over a shared SQLite database
func NewRepositories(slackClient *slack.Client, dbPath string) (*Repositories, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	faqRepo, err := NewFaqRepo(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	convRepo, err := NewConversationRepo(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	feedbackRepo, err := NewFeedbackRepo(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Repositories{
		Faq:          faqRepo,
		Conversation: convRepo,
		Feedback:     feedbackRepo,
		Followup:     NewFollowupRepo(),
		Message:      NewSlackRepo(slackClient),
		db:           db,
	}, nil
}

// Close closes the underlying database
func (r *Repositories) Close() error {
	return r.db.Close()
}
