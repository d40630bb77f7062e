package config

import (
	"os"
	"time"
)

// ChatSettings are the resolved chat backend settings.
type ChatSettings struct {
	Provider     string
	Model        string
	BaseURL      string
	APIKey       string
	SystemPrompt string
}

// Chat returns the chat settings. An empty api key falls back to
// OPENAI_API_KEY so existing environments work without extra setup.
func Chat() ChatSettings {
	key := GetString(KeyChatAPIKey)
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	return ChatSettings{
		Provider:     GetString(KeyChatProvider),
		Model:        GetString(KeyChatModel),
		BaseURL:      GetString(KeyChatBaseURL),
		APIKey:       key,
		SystemPrompt: GetString(KeyChatSystemPrompt),
	}
}

// SaveDelay returns how long the simulated save waits.
func SaveDelay() time.Duration {
	d := GetDuration(KeySaveDelay)
	if d < 0 {
		return 0
	}
	return d
}

// Debug reports whether debug logging is requested.
func Debug() bool {
	return GetBool(KeyDebug)
}

// OutputFormat returns the glamour style used for Markdown output
// ("dark", "light", "notty", or "plain" to disable rendering).
func OutputFormat() string {
	return GetString(KeyOutputFormat)
}
