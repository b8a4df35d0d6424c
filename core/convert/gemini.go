// ABOUTME: Markdown conversion client for the Gemini generateContent API
// ABOUTME: One request per conversion; upstream, shape and network failures map to typed errors

package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	coreerrors "tabscribe-api/core/errors"
	"tabscribe-api/core/domain"
	"tabscribe-api/core/interfaces"
)

// DefaultEndpoint is used when no endpoint override is configured
const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

const (
	apiName        = "Gemini"
	testKeyMessage = `Test message. Please respond with "OK".`

	// responses are small JSON documents; cap what we read from a misbehaving endpoint
	maxResponseBytes = 16 << 20
)

// Generation parameters for conversions
const (
	TopK            = 1
	TopP            = 0.8
	MaxOutputTokens = 81920
	testKeyTokens   = 10
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	TopK            int     `json:"topK,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GeminiClient implements interfaces.MarkdownConverter
type GeminiClient struct {
	http   interfaces.HTTPClient
	logger interfaces.Logger
}

// NewGeminiClient creates a conversion client
func NewGeminiClient(httpClient interfaces.HTTPClient, logger interfaces.Logger) *GeminiClient {
	return &GeminiClient{http: httpClient, logger: logger}
}

// Convert sends the page text to the generation API and returns the trimmed markdown
func (c *GeminiClient) Convert(ctx context.Context, req domain.ConversionRequest) (string, error) {
	if req.SourceText == "" {
		return "", &coreerrors.ValidationError{Field: "sourceText", Message: "text content is required"}
	}
	if req.APIKey == "" {
		return "", &coreerrors.ValidationError{Field: "apiKey", Message: "API key is required"}
	}

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: BuildPrompt(req.SourceText, req.PromptOverride)}}}},
		GenerationConfig: generationConfig{
			TopK:            TopK,
			TopP:            TopP,
			MaxOutputTokens: MaxOutputTokens,
		},
	}

	resp, err := c.post(ctx, req.Endpoint, req.APIKey, body)
	if err != nil {
		return "", err
	}
	defer resp.Body().Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body(), maxResponseBytes))
	if err != nil {
		return "", &coreerrors.TransportError{API: apiName, Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		apiErr := &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    upstreamMessage(resp.StatusCode(), data),
			API:        apiName,
		}
		c.logger.Warn("Conversion request failed", map[string]interface{}{
			"status":  apiErr.StatusCode,
			"message": apiErr.Message,
		})
		return "", apiErr
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &coreerrors.MalformedResponseError{API: apiName, Reason: "response is not valid JSON"}
	}
	if len(parsed.Candidates) == 0 || parsed.Candidates[0].Content == nil || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &coreerrors.MalformedResponseError{API: apiName, Reason: "response has no candidate content"}
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == nil {
		return "", &coreerrors.MalformedResponseError{API: apiName, Reason: "candidate part has no text"}
	}

	return strings.TrimSpace(*text), nil
}

// TestKey reports whether a minimal request with apiKey succeeds
func (c *GeminiClient) TestKey(ctx context.Context, apiKey, endpoint string) bool {
	body := generateRequest{
		Contents:         []content{{Parts: []part{{Text: testKeyMessage}}}},
		GenerationConfig: generationConfig{MaxOutputTokens: testKeyTokens},
	}

	resp, err := c.post(ctx, endpoint, apiKey, body)
	if err != nil {
		c.logger.Warn("API key test failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	defer resp.Body().Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body(), maxResponseBytes))

	return resp.StatusCode() >= 200 && resp.StatusCode() <= 299
}

func (c *GeminiClient) post(ctx context.Context, endpoint, apiKey string, body generateRequest) (interfaces.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.http.Post(ctx, RequestURL(endpoint, apiKey), bytes.NewReader(payload), nil)
	if err != nil {
		return nil, &coreerrors.TransportError{API: apiName, Err: err}
	}
	return resp, nil
}

// RequestURL appends the key parameter to endpoint, or to DefaultEndpoint when empty
func RequestURL(endpoint, apiKey string) string {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + "key=" + url.QueryEscape(apiKey)
}

func upstreamMessage(status int, data []byte) string {
	var body apiErrorBody
	if json.Unmarshal(data, &body) == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return http.StatusText(status)
}
