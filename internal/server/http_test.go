package server

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
	"github.com/emazinghr/slack-faq-bot/internal/biz/usecase"
	"github.com/emazinghr/slack-faq-bot/internal/conf"
	"github.com/emazinghr/slack-faq-bot/internal/service"
)

// Stub repositories

type stubFaqRepo struct {
	faqs    []domain.FaqEntry
	pingErr error
}

func (s *stubFaqRepo) ListActive(ctx context.Context) ([]domain.FaqEntry, error) { return s.faqs, nil }
func (s *stubFaqRepo) ListAll(ctx context.Context) ([]domain.FaqEntry, error)    { return s.faqs, nil }
func (s *stubFaqRepo) Create(ctx context.Context, entry *domain.FaqEntry) error  { return nil }
func (s *stubFaqRepo) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}
func (s *stubFaqRepo) Ping(ctx context.Context) error { return s.pingErr }

type stubConvRepo struct {
	mu      sync.Mutex
	records []domain.ConversationRecord
}

func (s *stubConvRepo) Append(ctx context.Context, record *domain.ConversationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *record)
	return nil
}

func (s *stubConvRepo) Recent(ctx context.Context, limit int) ([]domain.ConversationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records, nil
}

func (s *stubConvRepo) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type stubFeedbackRepo struct{}

func (s *stubFeedbackRepo) Append(ctx context.Context, record *domain.FeedbackRecord) error {
	return nil
}

type stubFollowupRepo struct{}

func (s *stubFollowupRepo) Get(ctx context.Context, userID string) (*domain.PendingFollowup, error) {
	return nil, nil
}
func (s *stubFollowupRepo) Set(ctx context.Context, userID string, pending *domain.PendingFollowup) error {
	return nil
}
func (s *stubFollowupRepo) Delete(ctx context.Context, userID string) error { return nil }

type stubMessageRepo struct{}

func (s *stubMessageRepo) PostMessage(ctx context.Context, channelID, text string) (string, error) {
	return "1700000000.000100", nil
}
func (s *stubMessageRepo) PostThreadedMessage(ctx context.Context, channelID, threadID, text string) error {
	return nil
}
func (s *stubMessageRepo) AddReaction(ctx context.Context, channelID, messageTs, reactionName string) error {
	return nil
}

func newTestServer(signingSecret string) (*HTTPServer, *stubConvRepo) {
	faqRepo := &stubFaqRepo{}
	convRepo := &stubConvRepo{}
	svc := service.NewConversationService(
		faqRepo,
		convRepo,
		&stubFeedbackRepo{},
		&stubMessageRepo{},
		usecase.NewMatcherUsecase(),
		usecase.NewReactionUsecase("BOT1"),
		usecase.NewFollowupUsecase(&stubFollowupRepo{}, time.Hour),
		conf.DefaultMessagesConfig(),
	)
	return NewHTTPServer(svc, faqRepo, signingSecret, 0), convRepo
}

func TestHandleEventsChallenge(t *testing.T) {
	srv, _ := newTestServer("")

	body := []byte(`{"type":"url_verification","challenge":"test-challenge"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/slack/events", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var result map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if result["challenge"] != "test-challenge" {
		t.Errorf("Expected challenge echoed, got %q", result["challenge"])
	}
}

func TestHandleEventsDispatchesMessage(t *testing.T) {
	srv, convRepo := newTestServer("")

	body := []byte(`{
		"type": "event_callback",
		"event_id": "Ev100",
		"event": {"type": "message", "text": "anything at all", "user": "U1", "channel": "C1"}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/slack/events", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	// Processing is asynchronous after the ack.
	deadline := time.Now().Add(2 * time.Second)
	for convRepo.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Expected conversation record after dispatch")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHandleEventsSignature(t *testing.T) {
	srv, _ := newTestServer("shhh")

	body := []byte(`{"type":"event_callback","event_id":"Ev1","event":{"type":"message","text":"hi","user":"U1","channel":"C1"}}`)

	// Unsigned request is rejected.
	req := httptest.NewRequest(http.MethodPost, "/api/slack/events", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for unsigned request, got %d", w.Code)
	}

	// Correctly signed request is accepted.
	ts := fmt.Sprintf("%d", time.Now().Unix())
	mac := hmac.New(sha256.New, []byte("shhh"))
	fmt.Fprintf(mac, "v0:%s:", ts)
	mac.Write(body)
	signature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	req = httptest.NewRequest(http.MethodPost, "/api/slack/events", bytes.NewReader(body))
	req.Header.Set("X-Slack-Request-Timestamp", ts)
	req.Header.Set("X-Slack-Signature", signature)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for signed request, got %d", w.Code)
	}

	// Stale timestamp is rejected even with a valid signature shape.
	stale := fmt.Sprintf("%d", time.Now().Add(-time.Hour).Unix())
	req = httptest.NewRequest(http.MethodPost, "/api/slack/events", bytes.NewReader(body))
	req.Header.Set("X-Slack-Request-Timestamp", stale)
	req.Header.Set("X-Slack-Signature", signature)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for stale timestamp, got %d", w.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer("")

	for _, path := range []string{"/", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 from %s, got %d", path, w.Code)
		}
		var result map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to parse %s response: %v", path, err)
		}
		if result["status"] != "OK" {
			t.Errorf("Expected status OK from %s, got %q", path, result["status"])
		}
	}
}

func TestTestConnection(t *testing.T) {
	srv, _ := newTestServer("")

	req := httptest.NewRequest(http.MethodGet, "/api/slack/test-connection", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var result map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if result["connected"] != true {
		t.Errorf("Expected connected true, got %v", result["connected"])
	}
}

func TestTestConnectionFailure(t *testing.T) {
	srv, _ := newTestServer("")
	srv.faqRepo.(*stubFaqRepo).pingErr = fmt.Errorf("store down")

	req := httptest.NewRequest(http.MethodGet, "/api/slack/test-connection", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 when store is down, got %d", w.Code)
	}
}
