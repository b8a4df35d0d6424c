// ABOUTME: Request DTOs for panel and settings endpoints
// ABOUTME: Provides validation tags and default values for incoming requests

package requests

// DefaultPromptIndex selects the built-in conversion instructions
const DefaultPromptIndex = -1

// ConvertRequest selects the prompt used for a conversion
type ConvertRequest struct {
	// PromptIndex is the position of a saved custom prompt; omitted means the default prompt
	PromptIndex *int `json:"promptIndex,omitempty" minimum:"-1" doc:"Index of a saved custom prompt, -1 or omitted for the default prompt"`
}

// Index returns the requested prompt index or the default
func (r ConvertRequest) Index() int {
	if r.PromptIndex == nil {
		return DefaultPromptIndex
	}
	return *r.PromptIndex
}

// APIKeyRequest carries an API key to save or test
type APIKeyRequest struct {
	APIKey string `json:"apiKey" required:"true" minLength:"1" doc:"Gemini API key"`
}

// TestKeyRequest carries an optional key to test; the saved key is used when empty
type TestKeyRequest struct {
	APIKey string `json:"apiKey,omitempty" doc:"API key to test, defaults to the saved key"`
}

// EndpointRequest carries the generation endpoint; empty restores the default
type EndpointRequest struct {
	Endpoint string `json:"endpoint" doc:"Full generateContent URL, empty to use the default"`
}

// PromptRequest is a custom prompt to add or replace
type PromptRequest struct {
	Name    string `json:"name" required:"true" minLength:"1" doc:"Display name"`
	Content string `json:"content" required:"true" minLength:"1" doc:"Instructions sent instead of the default prompt"`
}

// RenderRequest asks for markdown to be rendered to HTML
type RenderRequest struct {
	Markdown string `json:"markdown" doc:"Markdown source"`
	Styled   bool   `json:"styled,omitempty" doc:"Apply inline styles to the rendered HTML"`
}
