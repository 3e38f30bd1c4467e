package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config represents application configuration
type Config struct {
	// Slack configuration
	Slack SlackConfig

	// HTTP server configuration
	Server ServerConfig

	// Store configuration
	Store StoreConfig

	// Followup configuration
	Followup FollowupConfig

	// Messages configuration (loaded from YAML)
	Messages *MessagesConfig

	// Debug mode
	Debug bool
}

// SlackConfig contains Slack credentials
type SlackConfig struct {
	BotToken      string
	AppToken      string // app-level token; enables Socket Mode when set
	SigningSecret string // verifies webhook requests; empty skips verification
	BotUserID     string // optional override; resolved via auth.test when empty
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int
}

// StoreConfig contains persistence configuration
type StoreConfig struct {
	DBPath string
}

// FollowupConfig contains pending-followup configuration
type FollowupConfig struct {
	TTLMinutes int // 0 disables expiry
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Store DB path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		homeDir, _ := os.UserHomeDir()
		dbPath = filepath.Join(homeDir, ".faqbot", "faqbot.db")
	}

	// Webhook port
	port := 3001
	if val := os.Getenv("PORT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			port = parsed
		}
	}

	// Pending followup window
	followupTTL := 60
	if val := os.Getenv("FOLLOWUP_TTL_MINUTES"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			followupTTL = parsed
		}
	}

	// Load response texts from YAML
	messagesPath := os.Getenv("MESSAGES_CONFIG_PATH")
	messages, _ := LoadMessagesConfig(messagesPath)

	return &Config{
		Slack: SlackConfig{
			BotToken:      os.Getenv("SLACK_BOT_TOKEN"),
			AppToken:      os.Getenv("SLACK_APP_TOKEN"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
			BotUserID:     os.Getenv("SLACK_BOT_USER_ID"),
		},
		Server: ServerConfig{
			Port: port,
		},
		Store: StoreConfig{
			DBPath: dbPath,
		},
		Followup: FollowupConfig{
			TTLMinutes: followupTTL,
		},
		Messages: messages,
		Debug:    os.Getenv("DEBUG") == "true",
	}
}

// FollowupTTL returns the pending-followup window as a duration
func (c *FollowupConfig) FollowupTTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Slack.BotToken == "" {
		return &ConfigError{Field: "SLACK_BOT_TOKEN", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
