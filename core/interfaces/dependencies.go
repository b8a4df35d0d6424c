// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Pages persists extracted and converted page text (local, purgeable)
	Pages KeyValueStore

	// Settings persists the API key, endpoint and custom prompts (synchronized)
	Settings KeyValueStore

	// HTTPClient provides HTTP request functionality
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
