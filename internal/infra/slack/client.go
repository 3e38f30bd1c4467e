package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultAPIBaseURL = "https://slack.com/api"

// Client is a thin Slack Web API client covering the calls the bot
// makes: posting messages, adding reactions and resolving its own
// identity.
type Client struct {
	botToken string
	appToken string
	baseURL  string
	httpCli  *http.Client
}

// NewClient creates a new Slack client
func NewClient(botToken, appToken string) *Client {
	return &Client{
		botToken: botToken,
		appToken: appToken,
		baseURL:  defaultAPIBaseURL,
		httpCli:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SetBaseURL overrides the API base URL (used in tests)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// apiResponse carries the fields shared by all Web API responses
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// call posts a JSON body to a Web API method and decodes the response
func (c *Client) call(ctx context.Context, token, method string, body, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

// PostMessage sends a channel message and returns its timestamp
func (c *Client) PostMessage(ctx context.Context, channelID, text string) (string, error) {
	var result struct {
		apiResponse
		Ts string `json:"ts"`
	}
	body := map[string]string{"channel": channelID, "text": text}
	if err := c.call(ctx, c.botToken, "chat.postMessage", body, &result); err != nil {
		return "", err
	}
	if !result.OK {
		return "", fmt.Errorf("chat.postMessage error: %s", result.Error)
	}
	return result.Ts, nil
}

// PostThreadedMessage sends a reply inside a thread
func (c *Client) PostThreadedMessage(ctx context.Context, channelID, threadTs, text string) error {
	var result struct {
		apiResponse
		Ts string `json:"ts"`
	}
	body := map[string]string{"channel": channelID, "text": text, "thread_ts": threadTs}
	if err := c.call(ctx, c.botToken, "chat.postMessage", body, &result); err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("chat.postMessage error: %s", result.Error)
	}
	return nil
}

// AddReaction adds an emoji reaction to a message
func (c *Client) AddReaction(ctx context.Context, channelID, messageTs, reactionName string) error {
	var result apiResponse
	body := map[string]string{"channel": channelID, "timestamp": messageTs, "name": reactionName}
	if err := c.call(ctx, c.botToken, "reactions.add", body, &result); err != nil {
		return err
	}
	if !result.OK {
		// Slack reports a duplicate decoration as an error; the message
		// is already decorated, so treat it as done.
		if result.Error == "already_reacted" {
			return nil
		}
		return fmt.Errorf("reactions.add error: %s", result.Error)
	}
	return nil
}

// AuthTest resolves the bot's own user id
func (c *Client) AuthTest(ctx context.Context) (string, error) {
	var result struct {
		apiResponse
		UserID string `json:"user_id"`
	}
	if err := c.call(ctx, c.botToken, "auth.test", map[string]string{}, &result); err != nil {
		return "", err
	}
	if !result.OK {
		return "", fmt.Errorf("auth.test error: %s", result.Error)
	}
	return result.UserID, nil
}

// OpenSocketModeURL requests a Socket Mode WebSocket URL.
// Requires the app-level token, not the bot token.
func (c *Client) OpenSocketModeURL(ctx context.Context) (string, error) {
	if c.appToken == "" {
		return "", fmt.Errorf("apps.connections.open requires an app token")
	}
	var result struct {
		apiResponse
		URL string `json:"url"`
	}
	if err := c.call(ctx, c.appToken, "apps.connections.open", map[string]string{}, &result); err != nil {
		return "", err
	}
	if !result.OK {
		return "", fmt.Errorf("apps.connections.open error: %s", result.Error)
	}
	return result.URL, nil
}
