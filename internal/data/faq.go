package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
	"github.com/emazinghr/slack-faq-bot/internal/biz/repo"
)

// faqRepo implements the FAQ repository
type faqRepo struct {
	db *sql.DB
}

// NewFaqRepo creates a new FAQ repository
func NewFaqRepo(db *sql.DB) (repo.FaqRepo, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS faqs (
			id TEXT PRIMARY KEY,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create faqs table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_faqs_is_active ON faqs(is_active)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create faqs index: %w", err)
	}

	return &faqRepo{db: db}, nil
}

// ListActive lists active FAQ entries in insertion order
func (r *faqRepo) ListActive(ctx context.Context) ([]domain.FaqEntry, error) {
	return r.list(ctx, `
		SELECT id, question, answer, category, is_active, created_at, updated_at
		FROM faqs
		WHERE is_active = 1
		ORDER BY created_at, id
	`)
}

// ListAll lists every FAQ entry
func (r *faqRepo) ListAll(ctx context.Context) ([]domain.FaqEntry, error) {
	return r.list(ctx, `
		SELECT id, question, answer, category, is_active, created_at, updated_at
		FROM faqs
		ORDER BY created_at, id
	`)
}

func (r *faqRepo) list(ctx context.Context, query string) ([]domain.FaqEntry, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query faqs: %w", err)
	}
	defer rows.Close()

	var entries []domain.FaqEntry
	for rows.Next() {
		var entry domain.FaqEntry
		var active int
		var createdAt, updatedAt int64
		if err := rows.Scan(&entry.ID, &entry.Question, &entry.Answer, &entry.Category, &active, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan faq: %w", err)
		}
		entry.IsActive = active != 0
		entry.CreatedAt = time.Unix(createdAt, 0)
		entry.UpdatedAt = time.Unix(updatedAt, 0)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Create stores a new FAQ entry
func (r *faqRepo) Create(ctx context.Context, entry *domain.FaqEntry) error {
	active := 0
	if entry.IsActive {
		active = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO faqs (id, question, answer, category, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.Question,
		entry.Answer,
		entry.Category,
		active,
		entry.CreatedAt.Unix(),
		entry.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create faq: %w", err)
	}
	return nil
}

// SetActive toggles an entry's active flag
func (r *faqRepo) SetActive(ctx context.Context, id string, active bool) error {
	val := 0
	if active {
		val = 1
	}
	result, err := r.db.ExecContext(ctx, `
		UPDATE faqs SET is_active = ?, updated_at = ? WHERE id = ?
	`, val, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update faq: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("faq not found: %s", id)
	}
	return nil
}

// Ping verifies the store is reachable
func (r *faqRepo) Ping(ctx context.Context) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM faqs`).Scan(&count); err != nil {
		return fmt.Errorf("failed to ping faq store: %w", err)
	}
	return nil
}
