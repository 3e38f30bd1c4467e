package usecase

import (
	"strings"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
)

// MatcherUsecase scores incoming messages against the active FAQ set.
// Pure scoring over the inputs it is given: no I/O, no errors.
type MatcherUsecase struct{}

// NewMatcherUsecase creates a new matcher usecase.
func NewMatcherUsecase() *MatcherUsecase {
	return &MatcherUsecase{}
}

// Match scans candidates in order and returns the best-scoring entry.
//
// Scoring is tiered: an exact normalized match scores 100 and stops the
// scan immediately, containment in either direction scores 50, and
// otherwise the share of qualifying message tokens found in the question
// scores up to 30. A later candidate replaces the current best only when
// it scores strictly higher, so ties go to the earlier entry. The best
// candidate is accepted only when its score is strictly greater than the
// floor.
func (uc *MatcherUsecase) Match(messageText string, candidates []domain.FaqEntry) domain.MatchResult {
	searchText := domain.Normalize(messageText)

	var best *domain.FaqEntry
	bestScore := 0.0

	for i := range candidates {
		faq := &candidates[i]
		faqQuestion := domain.Normalize(faq.Question)

		if faqQuestion == searchText {
			return domain.MatchResult{Faq: faq, Score: domain.ScoreExact}
		}

		score := 0.0
		if strings.Contains(faqQuestion, searchText) || strings.Contains(searchText, faqQuestion) {
			score = domain.ScoreSubstring
		} else {
			score = overlapScore(searchText, faqQuestion)
		}

		if score > bestScore {
			bestScore = score
			best = faq
		}
	}

	if best == nil || bestScore <= domain.ScoreFloor {
		return domain.MatchResult{Score: bestScore}
	}
	return domain.MatchResult{Faq: best, Score: bestScore}
}

// overlapScore scores the share of qualifying message tokens that occur
// as substrings of the FAQ question.
func overlapScore(searchText, faqQuestion string) float64 {
	tokens := domain.QualifyingTokens(searchText)
	if len(tokens) == 0 {
		return 0
	}

	matches := 0
	for _, tok := range tokens {
		if strings.Contains(faqQuestion, tok) {
			matches++
		}
	}
	return float64(matches) / float64(len(tokens)) * domain.ScoreOverlapMax
}
