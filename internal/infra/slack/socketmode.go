package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/emazinghr/slack-faq-bot/internal/biz/domain"
)

// EventHandler is the callback for inbound domain events
type EventHandler func(event domain.Event)

// SocketModeClient receives Events API deliveries over a Slack Socket
// Mode WebSocket instead of a public webhook endpoint. Each envelope is
// acknowledged immediately and processed asynchronously so Slack does
// not redeliver on slow handling.
type SocketModeClient struct {
	client  *Client
	onEvent EventHandler
	ctx     context.Context
	cancel  context.CancelFunc
}

// envelope is the Socket Mode frame wrapping an Events API payload
type envelope struct {
	EnvelopeID string          `json:"envelope_id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Reason     string          `json:"reason"`
}

// ack is the acknowledgment frame sent back for each envelope
type ack struct {
	EnvelopeID string `json:"envelope_id"`
}

// NewSocketModeClient creates a new Socket Mode client
func NewSocketModeClient(client *Client) *SocketModeClient {
	return &SocketModeClient{client: client}
}

// OnEvent sets the event handler
func (c *SocketModeClient) OnEvent(handler EventHandler) {
	c.onEvent = handler
}

// Start connects to Slack and listens for events. Blocks until Stop is
// called; reconnects with backoff when the connection drops or Slack
// requests a refresh.
func (c *SocketModeClient) Start() error {
	c.ctx, c.cancel = context.WithCancel(context.Background())

	fmt.Println("[Slack] Starting Socket Mode connection...")

	for {
		if err := c.runConnection(c.ctx); err != nil {
			if c.ctx.Err() != nil {
				return nil
			}
			fmt.Printf("[Slack] Connection lost: %v, reconnecting...\n", err)
		}

		select {
		case <-c.ctx.Done():
			return nil
		case <-time.After(3 * time.Second):
		}
	}
}

// Stop disconnects from Slack
func (c *SocketModeClient) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

// runConnection opens one WebSocket connection and reads envelopes
// until it fails or Slack asks for a reconnect.
func (c *SocketModeClient) runConnection(ctx context.Context) error {
	wsURL, err := c.client.OpenSocketModeURL(ctx)
	if err != nil {
		return fmt.Errorf("open socket mode url: %w", err)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial socket mode: %w", err)
	}
	defer conn.Close()

	// Close the connection when Stop is called so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read envelope: %w", err)
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			fmt.Printf("[Slack] Failed to parse envelope: %v\n", err)
			continue
		}

		switch env.Type {
		case "hello":
			fmt.Println("[Slack] Socket Mode connected")
		case "disconnect":
			fmt.Printf("[Slack] Disconnect requested: %s\n", env.Reason)
			return nil
		case "events_api":
			// Ack first so Slack does not redeliver while we process.
			if err := conn.WriteJSON(ack{EnvelopeID: env.EnvelopeID}); err != nil {
				return fmt.Errorf("write ack: %w", err)
			}
			c.dispatch(env.Payload)
		default:
			if env.EnvelopeID != "" {
				_ = conn.WriteJSON(ack{EnvelopeID: env.EnvelopeID})
			}
		}
	}
}

// dispatch converts an Events API payload and hands it to the handler
func (c *SocketModeClient) dispatch(raw json.RawMessage) {
	payload, err := ParsePayload(raw)
	if err != nil {
		fmt.Printf("[Slack] Failed to parse payload: %v\n", err)
		return
	}

	event, err := payload.ToDomainEvent()
	if err != nil {
		fmt.Printf("[Slack] Failed to convert event: %v\n", err)
		return
	}

	if c.onEvent != nil {
		go c.onEvent(event)
	}
}
