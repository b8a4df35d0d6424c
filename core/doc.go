// Package core contains the business logic for Tabscribe.
// It does not depend on the HTTP layer and can be driven by any front end.
//
// The core package is organized into several sub-packages:
//
// - domain: pure domain models (PageRecord, Settings, Tab, Email, view phases)
// - errors: the error taxonomy shared by every layer
// - interfaces: contracts for external dependencies (stores, HTTP, logger, browser)
// - markdown: the regex and CommonMark renderers and the inline style applicator
// - store: page content and settings stores over a key-value backend
// - convert: the Gemini markdown conversion client
// - mail: Gmail sending and Google identity helpers
// - panel: the controller holding the selection and view state
//
// # Design Principles
//
// - External dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Pages:      pagesKV,    // implements interfaces.KeyValueStore
//	    Settings:   settingsKV, // implements interfaces.KeyValueStore
//	    HTTPClient: httpClient, // implements interfaces.HTTPClient
//	    Logger:     logger,     // implements interfaces.Logger
//	}
//
//	controller := panel.NewController(panel.Collaborators{
//	    Tabs:      tabSource,
//	    Pages:     store.NewPageStore(deps.Pages, deps.Logger),
//	    Settings:  store.NewSettingsStore(deps.Settings, deps.Logger),
//	    Converter: convert.NewGeminiClient(deps.HTTPClient, deps.Logger),
//	    Logger:    deps.Logger,
//	})
//
//	snap, err := controller.SelectTab(ctx, tabID)
package core
