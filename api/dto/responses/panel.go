// ABOUTME: Response DTOs for panel, tab and settings endpoints
// ABOUTME: Provides structured responses with JSON serialization

package responses

import "tabscribe-api/core/domain"

// TabResponse is a browser tab in API responses
type TabResponse struct {
	ID     string `json:"id" doc:"Tab identifier"`
	Title  string `json:"title" doc:"Tab title, or a placeholder for untitled tabs"`
	URL    string `json:"url" doc:"Tab URL"`
	Active bool   `json:"active" doc:"Whether the tab is the visible one"`
}

// TabsResponse lists the open tabs
type TabsResponse struct {
	Tabs []TabResponse `json:"tabs" doc:"Open browser tabs"`
}

// StatusResponse is the last user-visible outcome
type StatusResponse struct {
	Level   string `json:"level" enum:"success,error" doc:"Outcome level"`
	Message string `json:"message" doc:"Message shown to the user"`
}

// ActionsResponse reports which panel actions are currently available
type ActionsResponse struct {
	Convert    bool `json:"convert"`
	ToggleView bool `json:"toggleView"`
	Copy       bool `json:"copy"`
	Email      bool `json:"email"`
}

// PanelResponse is the panel state
type PanelResponse struct {
	TabID        string          `json:"tabId,omitempty" doc:"Selected tab"`
	TabURL       string          `json:"tabUrl,omitempty" doc:"URL of the selected tab"`
	Phase        string          `json:"phase" doc:"Lifecycle phase of the selection"`
	View         string          `json:"view" enum:"raw,markdown" doc:"Active view"`
	RawText      string          `json:"rawText" doc:"Extracted text"`
	MarkdownText string          `json:"markdownText" doc:"Converted markdown"`
	Converting   bool            `json:"converting" doc:"A conversion is running for the selected tab"`
	Status       *StatusResponse `json:"status,omitempty" doc:"Last outcome message"`
	Actions      ActionsResponse `json:"actions" doc:"Available actions"`
}

// ConvertResponse is the outcome of a conversion
type ConvertResponse struct {
	Markdown string        `json:"markdown" doc:"Converted markdown"`
	Applied  bool          `json:"applied" doc:"False when the selection changed while converting"`
	Panel    PanelResponse `json:"panel" doc:"Panel state after the conversion"`
}

// CopyResponse is the copied text
type CopyResponse struct {
	Text  string        `json:"text" doc:"Text written to the clipboard"`
	Panel PanelResponse `json:"panel"`
}

// EmailResponse describes a sent email
type EmailResponse struct {
	To      string        `json:"to" doc:"Recipient"`
	Subject string        `json:"subject" doc:"Derived subject"`
	Panel   PanelResponse `json:"panel"`
}

// SettingsResponse is the stored configuration; the key itself is never returned
type SettingsResponse struct {
	HasAPIKey     bool                  `json:"hasApiKey" doc:"Whether an API key is saved"`
	APIKeyHint    string                `json:"apiKeyHint,omitempty" doc:"Last characters of the saved key"`
	Endpoint      string                `json:"endpoint" doc:"Saved endpoint, empty for the default"`
	CustomPrompts []domain.CustomPrompt `json:"customPrompts" doc:"Saved custom prompts in insertion order"`
}

// PromptsResponse lists the custom prompts
type PromptsResponse struct {
	Prompts []domain.CustomPrompt `json:"prompts" doc:"Saved custom prompts in insertion order"`
}

// KeyTestResponse reports whether the key was accepted
type KeyTestResponse struct {
	Valid bool `json:"valid" doc:"True when the generation API accepted the key"`
}

// RenderResponse is rendered HTML
type RenderResponse struct {
	HTML string `json:"html" doc:"Rendered HTML fragment"`
}

// MessageResponse is a plain confirmation
type MessageResponse struct {
	Message string `json:"message"`
}
