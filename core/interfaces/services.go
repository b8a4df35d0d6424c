// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for the browser, converter, mail and clipboard collaborators

package interfaces

import (
	"context"

	"tabscribe-api/core/domain"
)

// TabSource enumerates browser tabs and extracts their visible text
type TabSource interface {
	// ListTabs returns the tabs of the controlled browser window
	ListTabs(ctx context.Context) ([]domain.Tab, error)

	// Activate brings the tab to the foreground
	Activate(ctx context.Context, tabID string) error

	// ExtractText returns the visible text of the tab's document body
	ExtractText(ctx context.Context, tabID string) (string, error)
}

// MarkdownConverter turns page text into markdown through a generation API
type MarkdownConverter interface {
	Convert(ctx context.Context, req domain.ConversionRequest) (string, error)
	TestKey(ctx context.Context, apiKey, endpoint string) bool
}

// MailRelay sends mail on behalf of the signed-in user
type MailRelay interface {
	Send(ctx context.Context, email domain.Email, bearerToken string) error
}

// IdentityService resolves and revokes the user's bearer token
type IdentityService interface {
	UserEmail(ctx context.Context, bearerToken string) (string, error)
	Revoke(ctx context.Context, bearerToken string) error
}

// Clipboard writes text to the host clipboard
type Clipboard interface {
	WriteText(text string) error
}
