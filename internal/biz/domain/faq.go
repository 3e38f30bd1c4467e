package domain

import "time"

// FaqEntry represents a curated question/answer pair.
// Entries are created and edited by operators; the bot only reads
// active entries, fetched fresh for every incoming message.
type FaqEntry struct {
	ID        string
	Question  string
	Answer    string
	Category  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Match scores

const (
	// ScoreExact is assigned when the normalized question equals the message.
	ScoreExact = 100.0
	// ScoreSubstring is assigned when one normalized string contains the other.
	ScoreSubstring = 50.0
	// ScoreOverlapMax is the ceiling for proportional word-overlap scores.
	ScoreOverlapMax = 30.0
	// ScoreFloor is the acceptance floor. A candidate is a match only
	// when its score is strictly greater than this.
	ScoreFloor = 10.0
)

// MatchResult is the outcome of scoring a message against the active FAQ set.
// Faq is nil when no candidate cleared the acceptance floor; Score still
// reports the best score seen.
type MatchResult struct {
	Faq   *FaqEntry
	Score float64
}

// Matched reports whether a FAQ cleared the acceptance floor.
func (r *MatchResult) Matched() bool {
	return r.Faq != nil
}
