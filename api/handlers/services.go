package handlers

import (
	"context"
	"strings"

	"tabscribe-api/core/domain"
	"tabscribe-api/core/panel"
)

// PanelService is the part of the panel controller the handlers drive
type PanelService interface {
	Snapshot() panel.Snapshot
	RefreshTabs(ctx context.Context) ([]domain.Tab, error)
	SelectTab(ctx context.Context, tabID string) (panel.Snapshot, error)
	Convert(ctx context.Context, promptIndex int) (panel.ConversionResult, error)
	ToggleView() (panel.Snapshot, error)
	HTML() (string, error)
	Copy() (string, error)
	Email(ctx context.Context, bearerToken string) (domain.Email, error)
	SignOut(ctx context.Context, bearerToken string) error
	ClearStorage(ctx context.Context) (panel.Snapshot, error)
}

// SettingsService manages the synchronized settings
type SettingsService interface {
	Load(ctx context.Context) (domain.Settings, error)
	SaveAPIKey(ctx context.Context, apiKey string) error
	RemoveAPIKey(ctx context.Context) error
	SaveEndpoint(ctx context.Context, endpoint string) error
	CustomPrompts(ctx context.Context) ([]domain.CustomPrompt, error)
	AddPrompt(ctx context.Context, prompt domain.CustomPrompt) ([]domain.CustomPrompt, error)
	UpdatePrompt(ctx context.Context, index int, prompt domain.CustomPrompt) ([]domain.CustomPrompt, error)
	DeletePrompt(ctx context.Context, index int) ([]domain.CustomPrompt, error)
}

// KeyTester checks an API key against the generation endpoint
type KeyTester interface {
	TestKey(ctx context.Context, apiKey, endpoint string) bool
}

// bearerToken extracts the token from an Authorization header value
func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
