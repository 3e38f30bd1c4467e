package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/emazinghr/slack-faq-bot/internal/biz/repo"
	"github.com/emazinghr/slack-faq-bot/internal/infra/slack"
	"github.com/emazinghr/slack-faq-bot/internal/service"
)

// signatureWindow is how far a request timestamp may drift before the
// request is rejected as a possible replay.
const signatureWindow = 5 * time.Minute

// HTTPServer serves the Slack webhook transport and status endpoints
type HTTPServer struct {
	convSvc       *service.ConversationService
	faqRepo       repo.FaqRepo
	signingSecret string
	port          int
	server        *http.Server
}

// NewHTTPServer creates a new HTTP server
func NewHTTPServer(convSvc *service.ConversationService, faqRepo repo.FaqRepo, signingSecret string, port int) *HTTPServer {
	return &HTTPServer{
		convSvc:       convSvc,
		faqRepo:       faqRepo,
		signingSecret: signingSecret,
		port:          port,
	}
}

// Router builds the HTTP routes
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/api/slack/test", s.handleTest)
	r.Get("/api/slack/test-connection", s.handleTestConnection)
	r.Post("/api/slack/events", s.handleEvents)

	return r
}

// Start starts the HTTP server
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Router(),
	}

	fmt.Printf("[Server] Listening on port %d\n", s.port)
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server
func (s *HTTPServer) Stop() error {
	if s.server != nil {
		return s.server.Shutdown(context.Background())
	}
	return nil
}

func (s *HTTPServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"message":   "EmazingHR Slack FAQ Bot",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleTest echoes deliveries so operators can point Slack at the
// endpoint and watch what arrives before going live
func (s *HTTPServer) handleTest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unreadable body"})
		return
	}

	payload, err := slack.ParsePayload(body)
	if err == nil && payload.IsChallenge() {
		writeJSON(w, http.StatusOK, map[string]string{"challenge": payload.Challenge})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"received": true})
}

// handleTestConnection probes the FAQ store
func (s *HTTPServer) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	if err := s.faqRepo.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"connected": false,
			"error":     err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"connected": true,
		"message":   "Successfully connected to the FAQ store",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleEvents is the Slack Events API webhook. Slack expects a fast
// acknowledgment, so events are dispatched asynchronously and the
// response is always 200 once the payload parses.
func (s *HTTPServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unreadable body"})
		return
	}

	if !s.verifySignature(r, body) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid signature"})
		return
	}

	payload, err := slack.ParsePayload(body)
	if err != nil {
		fmt.Printf("[Server] Bad event payload: %v\n", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad payload"})
		return
	}

	if payload.IsChallenge() {
		writeJSON(w, http.StatusOK, map[string]string{"challenge": payload.Challenge})
		return
	}

	event, err := payload.ToDomainEvent()
	if err != nil {
		fmt.Printf("[Server] Bad inner event: %v\n", err)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	go s.convSvc.HandleEvent(context.Background(), event)

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// verifySignature checks the Slack request signature
// (v0=HMAC-SHA256("v0:<timestamp>:<body>")). Verification is skipped
// when no signing secret is configured.
func (s *HTTPServer) verifySignature(r *http.Request, body []byte) bool {
	if s.signingSecret == "" {
		return true
	}

	tsHeader := r.Header.Get("X-Slack-Request-Timestamp")
	signature := r.Header.Get("X-Slack-Signature")
	if tsHeader == "" || signature == "" {
		return false
	}

	ts, err := strconv.ParseInt(tsHeader, 10, 64)
	if err != nil {
		return false
	}
	drift := time.Since(time.Unix(ts, 0))
	if drift > signatureWindow || drift < -signatureWindow {
		return false
	}

	mac := hmac.New(sha256.New, []byte(s.signingSecret))
	fmt.Fprintf(mac, "v0:%s:", tsHeader)
	mac.Write(body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
