package data

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(nil, filepath.Join(t.TempDir(), "faqbot.db"))
	if err != nil {
		t.Fatalf("NewRepositories failed: %v", err)
	}
	t.Cleanup(func() { repos.Close() })
	return repos
}

func TestFaqRepoCreateAndList(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	now := time.Now()
	entries := []domain.FaqEntry{
		{ID: "f1", Question: "How do I get a badge?", Answer: "Visit the front desk.", IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: "f2", Question: "How do I request VPN access?", Answer: "Open a ticket.", Category: "it", IsActive: true, CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second)},
		{ID: "f3", Question: "Retired question", Answer: "Old answer.", IsActive: false, CreatedAt: now.Add(2 * time.Second), UpdatedAt: now.Add(2 * time.Second)},
	}
	for i := range entries {
		if err := repos.Faq.Create(ctx, &entries[i]); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	active, err := repos.Faq.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("Expected 2 active entries, got %d", len(active))
	}
	// Insertion order is preserved: candidate order matters to matching.
	if active[0].ID != "f1" || active[1].ID != "f2" {
		t.Errorf("Expected insertion order f1,f2, got %s,%s", active[0].ID, active[1].ID)
	}
	if active[1].Category != "it" {
		t.Errorf("Expected category round-trip, got %q", active[1].Category)
	}

	all, err := repos.Faq.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 entries in total, got %d", len(all))
	}
}

func TestFaqRepoSetActive(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	now := time.Now()
	entry := domain.FaqEntry{ID: "f1", Question: "q", Answer: "a", IsActive: true, CreatedAt: now, UpdatedAt: now}
	if err := repos.Faq.Create(ctx, &entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repos.Faq.SetActive(ctx, "f1", false); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	active, _ := repos.Faq.ListActive(ctx)
	if len(active) != 0 {
		t.Errorf("Expected no active entries after disable, got %d", len(active))
	}

	if err := repos.Faq.SetActive(ctx, "missing", false); err == nil {
		t.Error("Expected error for unknown id")
	}
}

func TestConversationRepoAppendAndRecent(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	base := time.Now()
	records := []domain.ConversationRecord{
		{ID: "c1", UserID: "U1", ChannelID: "C1", UserMessage: "monitor", BotResponse: "answer", MatchedFaqID: "f1", ResponseType: domain.ResponseTypeFaqMatch, ResponseTimeMs: 12, CreatedAt: base},
		{ID: "c2", UserID: "U2", ChannelID: "C1", UserMessage: "what time", BotResponse: "escalation", ResponseType: domain.ResponseTypeNoMatch, ResponseTimeMs: 7, CreatedAt: base.Add(time.Second)},
	}
	for i := range records {
		if err := repos.Conversation.Append(ctx, &records[i]); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	recent, err := repos.Conversation.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(recent))
	}
	if recent[0].ID != "c2" {
		t.Errorf("Expected newest first, got %s", recent[0].ID)
	}
	if recent[1].MatchedFaqID != "f1" {
		t.Errorf("Expected matched faq id round-trip, got %q", recent[1].MatchedFaqID)
	}
	if recent[0].MatchedFaqID != "" {
		t.Errorf("Expected empty matched faq id for no_match, got %q", recent[0].MatchedFaqID)
	}
}

func TestFeedbackRepoAppend(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	record := domain.FeedbackRecord{
		ID:           "fb1",
		UserID:       "U1",
		ChannelID:    "C1",
		Satisfaction: false,
		FeedbackText: "the answer was about laptops, not monitors",
		CreatedAt:    time.Now(),
	}
	if err := repos.Feedback.Append(ctx, &record); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Appends are unconditional: a coarse and a detailed record for the
	// same user coexist.
	record.ID = "fb2"
	record.FeedbackText = ""
	if err := repos.Feedback.Append(ctx, &record); err != nil {
		t.Fatalf("Second append failed: %v", err)
	}
}

func TestFollowupRepoOverwriteAndDelete(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	first := &domain.PendingFollowup{ChannelID: "C1", ThreadID: "ts1", CreatedAt: time.Now()}
	second := &domain.PendingFollowup{ChannelID: "C1", ThreadID: "ts2", CreatedAt: time.Now()}

	if err := repos.Followup.Set(ctx, "U1", first); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repos.Followup.Set(ctx, "U1", second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	pending, err := repos.Followup.Get(ctx, "U1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if pending == nil || pending.ThreadID != "ts2" {
		t.Fatalf("Expected overwrite with ts2, got %+v", pending)
	}

	if err := repos.Followup.Delete(ctx, "U1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	pending, _ = repos.Followup.Get(ctx, "U1")
	if pending != nil {
		t.Error("Expected nil after delete")
	}
}
