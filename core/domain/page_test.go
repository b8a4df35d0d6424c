package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAPIKeyFormat(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected bool
	}{
		{"exactly minimum length", "AIza" + strings.Repeat("x", 31), true},
		{"longer than minimum", "AIza" + strings.Repeat("x", 40), true},
		{"one short", "AIza" + strings.Repeat("x", 30), false},
		{"wrong prefix", "ABCD" + strings.Repeat("x", 31), false},
		{"short", "short", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateAPIKeyFormat(tt.key))
		})
	}
}

func TestNewRawText(t *testing.T) {
	raw := NewRawText("https://example.com", "Hello")

	assert.Equal(t, "Source URL: https://example.com\n\nHello", raw)
}

func TestCustomPrompt_Validate(t *testing.T) {
	assert.NoError(t, CustomPrompt{Name: "Summary", Content: "Summarise"}.Validate())
	assert.ErrorIs(t, CustomPrompt{Name: " ", Content: "x"}.Validate(), ErrPromptIncomplete)
	assert.ErrorIs(t, CustomPrompt{Name: "x"}.Validate(), ErrPromptIncomplete)
}

func TestDeriveSubject(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		markdownView bool
		tabURL       string
		expected     string
	}{
		{
			name:         "markdown heading with hostname",
			text:         "[Source URL](https://news.example.com/a)\n\n# Big News\n\nBody",
			markdownView: true,
			tabURL:       "https://news.example.com/a",
			expected:     "[news.example.com] Big News",
		},
		{
			name:     "raw source line",
			text:     "Source URL: https://example.com/page\n\ntext",
			tabURL:   "https://example.com/page",
			expected: "[example.com] https://example.com/page",
		},
		{
			name:         "markdown without heading",
			text:         "no heading here",
			markdownView: true,
			expected:     UntitledSubject,
		},
		{
			name:     "unparseable url keeps bare title",
			text:     "Source URL: x\n\ntext",
			tabURL:   "::not a url",
			expected: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveSubject(tt.text, tt.markdownView, tt.tabURL))
		})
	}
}

func TestValidateEmailAddress(t *testing.T) {
	assert.NoError(t, ValidateEmailAddress("user@example.com"))
	assert.ErrorIs(t, ValidateEmailAddress("user@example"), ErrInvalidEmail)
	assert.ErrorIs(t, ValidateEmailAddress(""), ErrInvalidEmail)
	assert.ErrorIs(t, ValidateEmailAddress("a b@example.com"), ErrInvalidEmail)
}
