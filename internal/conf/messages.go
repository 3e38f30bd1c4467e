package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MessagesConfig contains all user-facing response texts loaded from YAML
type MessagesConfig struct {
	Escalation      string `yaml:"escalation"`
	StoreApology    string `yaml:"store_apology"`
	ProcessingError string `yaml:"processing_error"`
	FollowupPrompt  string `yaml:"followup_prompt"`
	FollowupThanks  string `yaml:"followup_thanks"`
}

// DefaultMessagesConfig returns the built-in response texts
func DefaultMessagesConfig() *MessagesConfig {
	return &MessagesConfig{
		Escalation:      "I'll connect you with our HR team for help with that question.",
		StoreApology:    "I'm having trouble accessing the FAQ database. Please contact IT support.",
		ProcessingError: "I encountered an error. Please try again or contact IT support.",
		FollowupPrompt:  "Sorry that didn't help! Could you describe what you were looking for so we can improve?",
		FollowupThanks:  "Thanks for the details — we've passed them along to the HR team.",
	}
}

// LoadMessagesConfig loads response texts from a YAML file
func LoadMessagesConfig(configPath string) (*MessagesConfig, error) {
	// Try multiple paths
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/messages.yaml",
			"./configs/messages.yaml",
			"/etc/faqbot/messages.yaml",
		}
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "messages.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	var err error

	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err = os.ReadFile(p)
		if err == nil {
			loadedPath = p
			break
		}
	}

	if data == nil {
		// Return default config if no file found
		return DefaultMessagesConfig(), nil
	}

	fmt.Printf("[Config] Loading messages from: %s\n", loadedPath)

	var config MessagesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse messages.yaml: %w", err)
	}

	config.fillDefaults()
	return &config, nil
}

// fillDefaults fills in default values for empty fields
func (c *MessagesConfig) fillDefaults() {
	defaults := DefaultMessagesConfig()

	if c.Escalation == "" {
		c.Escalation = defaults.Escalation
	}
	if c.StoreApology == "" {
		c.StoreApology = defaults.StoreApology
	}
	if c.ProcessingError == "" {
		c.ProcessingError = defaults.ProcessingError
	}
	if c.FollowupPrompt == "" {
		c.FollowupPrompt = defaults.FollowupPrompt
	}
	if c.FollowupThanks == "" {
		c.FollowupThanks = defaults.FollowupThanks
	}
}
