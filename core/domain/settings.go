// ABOUTME: Settings domain model for the API key, endpoint and custom prompts
// ABOUTME: Provides the client-side API key format check

package domain

import "strings"

const (
	// APIKeyPrefix is the literal every Gemini API key starts with
	APIKeyPrefix = "AIza"

	// APIKeyMinLength is the shortest accepted API key
	APIKeyMinLength = 35
)

// CustomPrompt is a user-authored instruction used instead of the default
// conversion prompt. Names are not unique.
type CustomPrompt struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

// Validate checks that both fields are present
func (p CustomPrompt) Validate() error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Content) == "" {
		return ErrPromptIncomplete
	}
	return nil
}

// Settings is the synchronized user configuration
type Settings struct {
	APIKey        string         `json:"apiKey"`
	APIEndpoint   string         `json:"apiEndpoint"`
	CustomPrompts []CustomPrompt `json:"customPrompts"`
}

// HasAPIKey reports whether an API key has been saved
func (s Settings) HasAPIKey() bool {
	return s.APIKey != ""
}

// ValidateAPIKeyFormat is a sanity check on the key shape, not a credential check
func ValidateAPIKeyFormat(apiKey string) bool {
	return strings.HasPrefix(apiKey, APIKeyPrefix) && len(apiKey) >= APIKeyMinLength
}
