// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for the page content store and the settings store

package interfaces

import (
	"context"

	"tabscribe-api/core/domain"
)

// PageStore persists one PageRecord per page key
type PageStore interface {
	// Put replaces the whole record at key
	Put(ctx context.Context, key string, record domain.PageRecord) error

	// Get returns the last written record; found is false for unknown keys
	Get(ctx context.Context, key string) (record domain.PageRecord, found bool, err error)

	// ClearAll removes every page record, never settings
	ClearAll(ctx context.Context) error

	// ClearStale removes records whose key starts with prefix
	ClearStale(ctx context.Context, prefix string) (int, error)
}

// SettingsStore persists the synchronized user settings
type SettingsStore interface {
	Load(ctx context.Context) (domain.Settings, error)
	SaveAPIKey(ctx context.Context, apiKey string) error
	RemoveAPIKey(ctx context.Context) error
	SaveEndpoint(ctx context.Context, endpoint string) error
	SaveCustomPrompts(ctx context.Context, prompts []domain.CustomPrompt) error
}
