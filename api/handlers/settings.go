// ABOUTME: Settings handlers for the Huma API
// ABOUTME: Manages the API key, generation endpoint and custom prompts

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"tabscribe-api/api/dto/mappers"
	"tabscribe-api/api/dto/requests"
	"tabscribe-api/api/dto/responses"
	"tabscribe-api/core/domain"
)

// SettingsHandler handles settings management
type SettingsHandler struct {
	settings SettingsService
	tester   KeyTester
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings SettingsService, tester KeyTester) *SettingsHandler {
	return &SettingsHandler{settings: settings, tester: tester}
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getSettings",
		Method:      http.MethodGet,
		Path:        "/settings",
		Summary:     "Get settings",
		Description: "Returns the stored settings; the API key is reported only as a hint",
		Tags:        []string{"Settings"},
	}, h.GetSettings)

	huma.Register(api, huma.Operation{
		OperationID: "saveAPIKey",
		Method:      http.MethodPut,
		Path:        "/settings/api-key",
		Summary:     "Save the API key",
		Tags:        []string{"Settings"},
	}, h.SaveAPIKey)

	huma.Register(api, huma.Operation{
		OperationID: "removeAPIKey",
		Method:      http.MethodDelete,
		Path:        "/settings/api-key",
		Summary:     "Remove the API key",
		Tags:        []string{"Settings"},
	}, h.RemoveAPIKey)

	huma.Register(api, huma.Operation{
		OperationID: "testAPIKey",
		Method:      http.MethodPost,
		Path:        "/settings/api-key/test",
		Summary:     "Test an API key",
		Description: "Sends a minimal generation request with the given or saved key",
		Tags:        []string{"Settings"},
	}, h.TestAPIKey)

	huma.Register(api, huma.Operation{
		OperationID: "saveEndpoint",
		Method:      http.MethodPut,
		Path:        "/settings/endpoint",
		Summary:     "Save the generation endpoint",
		Tags:        []string{"Settings"},
	}, h.SaveEndpoint)

	huma.Register(api, huma.Operation{
		OperationID: "listPrompts",
		Method:      http.MethodGet,
		Path:        "/settings/prompts",
		Summary:     "List custom prompts",
		Tags:        []string{"Prompts"},
	}, h.ListPrompts)

	huma.Register(api, huma.Operation{
		OperationID:   "addPrompt",
		Method:        http.MethodPost,
		Path:          "/settings/prompts",
		Summary:       "Add a custom prompt",
		Tags:          []string{"Prompts"},
		DefaultStatus: http.StatusCreated,
	}, h.AddPrompt)

	huma.Register(api, huma.Operation{
		OperationID: "updatePrompt",
		Method:      http.MethodPut,
		Path:        "/settings/prompts/{index}",
		Summary:     "Replace a custom prompt",
		Tags:        []string{"Prompts"},
	}, h.UpdatePrompt)

	huma.Register(api, huma.Operation{
		OperationID: "deletePrompt",
		Method:      http.MethodDelete,
		Path:        "/settings/prompts/{index}",
		Summary:     "Delete a custom prompt",
		Tags:        []string{"Prompts"},
	}, h.DeletePrompt)
}

// SettingsOutput returns the stored settings
type SettingsOutput struct {
	Body responses.SettingsResponse
}

// GetSettings handles the GET /settings endpoint
func (h *SettingsHandler) GetSettings(ctx context.Context, _ *struct{}) (*SettingsOutput, error) {
	return h.current(ctx)
}

// APIKeyInput defines the input for saving a key
type APIKeyInput struct {
	Body requests.APIKeyRequest
}

// SaveAPIKey handles the PUT /settings/api-key endpoint
func (h *SettingsHandler) SaveAPIKey(ctx context.Context, input *APIKeyInput) (*SettingsOutput, error) {
	if err := h.settings.SaveAPIKey(ctx, input.Body.APIKey); err != nil {
		return nil, toHumaError(err)
	}
	return h.current(ctx)
}

// RemoveAPIKey handles the DELETE /settings/api-key endpoint
func (h *SettingsHandler) RemoveAPIKey(ctx context.Context, _ *struct{}) (*SettingsOutput, error) {
	if err := h.settings.RemoveAPIKey(ctx); err != nil {
		return nil, toHumaError(err)
	}
	return h.current(ctx)
}

// TestKeyInput defines the input for testing a key
type TestKeyInput struct {
	Body requests.TestKeyRequest `required:"false"`
}

// TestKeyOutput defines the output for testing a key
type TestKeyOutput struct {
	Body responses.KeyTestResponse
}

// TestAPIKey handles the POST /settings/api-key/test endpoint
func (h *SettingsHandler) TestAPIKey(ctx context.Context, input *TestKeyInput) (*TestKeyOutput, error) {
	settings, err := h.settings.Load(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}

	key := input.Body.APIKey
	if key == "" {
		key = settings.APIKey
	}
	if key == "" {
		return nil, huma.Error400BadRequest("No API key to test")
	}

	return &TestKeyOutput{Body: responses.KeyTestResponse{
		Valid: h.tester.TestKey(ctx, key, settings.APIEndpoint),
	}}, nil
}

// EndpointInput defines the input for saving the endpoint
type EndpointInput struct {
	Body requests.EndpointRequest
}

// SaveEndpoint handles the PUT /settings/endpoint endpoint
func (h *SettingsHandler) SaveEndpoint(ctx context.Context, input *EndpointInput) (*SettingsOutput, error) {
	if err := h.settings.SaveEndpoint(ctx, input.Body.Endpoint); err != nil {
		return nil, toHumaError(err)
	}
	return h.current(ctx)
}

// PromptsOutput lists the custom prompts
type PromptsOutput struct {
	Body responses.PromptsResponse
}

// ListPrompts handles the GET /settings/prompts endpoint
func (h *SettingsHandler) ListPrompts(ctx context.Context, _ *struct{}) (*PromptsOutput, error) {
	prompts, err := h.settings.CustomPrompts(ctx)
	return promptsResult(prompts, err)
}

// AddPromptInput defines the input for adding a prompt
type AddPromptInput struct {
	Body requests.PromptRequest
}

// AddPrompt handles the POST /settings/prompts endpoint
func (h *SettingsHandler) AddPrompt(ctx context.Context, input *AddPromptInput) (*PromptsOutput, error) {
	prompts, err := h.settings.AddPrompt(ctx, toPrompt(input.Body))
	return promptsResult(prompts, err)
}

// UpdatePromptInput defines the input for replacing a prompt
type UpdatePromptInput struct {
	Index int `path:"index" minimum:"0" doc:"Position of the prompt"`
	Body  requests.PromptRequest
}

// UpdatePrompt handles the PUT /settings/prompts/{index} endpoint
func (h *SettingsHandler) UpdatePrompt(ctx context.Context, input *UpdatePromptInput) (*PromptsOutput, error) {
	prompts, err := h.settings.UpdatePrompt(ctx, input.Index, toPrompt(input.Body))
	return promptsResult(prompts, err)
}

// PromptIndexInput addresses a prompt by position
type PromptIndexInput struct {
	Index int `path:"index" minimum:"0" doc:"Position of the prompt"`
}

// DeletePrompt handles the DELETE /settings/prompts/{index} endpoint
func (h *SettingsHandler) DeletePrompt(ctx context.Context, input *PromptIndexInput) (*PromptsOutput, error) {
	prompts, err := h.settings.DeletePrompt(ctx, input.Index)
	return promptsResult(prompts, err)
}

func (h *SettingsHandler) current(ctx context.Context) (*SettingsOutput, error) {
	settings, err := h.settings.Load(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SettingsOutput{Body: mappers.ToSettingsResponse(settings)}, nil
}

func toPrompt(req requests.PromptRequest) domain.CustomPrompt {
	return domain.CustomPrompt{Name: req.Name, Content: req.Content}
}

func promptsResult(prompts []domain.CustomPrompt, err error) (*PromptsOutput, error) {
	if err != nil {
		return nil, toHumaError(err)
	}
	if prompts == nil {
		prompts = []domain.CustomPrompt{}
	}
	return &PromptsOutput{Body: responses.PromptsResponse{Prompts: prompts}}, nil
}
