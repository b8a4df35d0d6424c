package domain

// ConversionRequest is the input of one markdown conversion. It is never persisted.
type ConversionRequest struct {
	SourceText     string
	APIKey         string
	Endpoint       string
	PromptOverride string
}
