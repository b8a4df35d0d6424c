// ABOUTME: Panel handlers for the Huma API
// ABOUTME: Exposes the current view, conversion, view toggling, copy and email

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"tabscribe-api/api/dto/mappers"
	"tabscribe-api/api/dto/requests"
	"tabscribe-api/api/dto/responses"
)

// PanelHandler handles the panel endpoints
type PanelHandler struct {
	panel PanelService
}

// NewPanelHandler creates a new panel handler
func NewPanelHandler(panel PanelService) *PanelHandler {
	return &PanelHandler{panel: panel}
}

// RegisterRoutes registers panel routes
func (h *PanelHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getPanel",
		Method:      http.MethodGet,
		Path:        "/panel",
		Summary:     "Get panel state",
		Tags:        []string{"Panel"},
	}, h.GetPanel)

	huma.Register(api, huma.Operation{
		OperationID: "getPanelHTML",
		Method:      http.MethodGet,
		Path:        "/panel/html",
		Summary:     "Render the active view",
		Description: "Returns the active view as an HTML fragment: styled markdown, escaped raw text, or a placeholder",
		Tags:        []string{"Panel"},
	}, h.GetPanelHTML)

	huma.Register(api, huma.Operation{
		OperationID: "convertPanel",
		Method:      http.MethodPost,
		Path:        "/panel/convert",
		Summary:     "Convert to markdown",
		Description: "Converts the selected tab's text to markdown with the default or a saved custom prompt",
		Tags:        []string{"Panel"},
	}, h.Convert)

	huma.Register(api, huma.Operation{
		OperationID: "toggleView",
		Method:      http.MethodPost,
		Path:        "/panel/view/toggle",
		Summary:     "Toggle raw and markdown views",
		Tags:        []string{"Panel"},
	}, h.ToggleView)

	huma.Register(api, huma.Operation{
		OperationID: "copyPanel",
		Method:      http.MethodPost,
		Path:        "/panel/copy",
		Summary:     "Copy the active view",
		Tags:        []string{"Panel"},
	}, h.Copy)

	huma.Register(api, huma.Operation{
		OperationID: "emailPanel",
		Method:      http.MethodPost,
		Path:        "/panel/email",
		Summary:     "Email the active view",
		Description: "Sends the active view to the signed-in user's own address through Gmail",
		Tags:        []string{"Panel"},
	}, h.Email)
}

// GetPanel handles the GET /panel endpoint
func (h *PanelHandler) GetPanel(ctx context.Context, _ *struct{}) (*PanelOutput, error) {
	return &PanelOutput{Body: mappers.ToPanelResponse(h.panel.Snapshot())}, nil
}

// HTMLOutput is an HTML fragment response
type HTMLOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// GetPanelHTML handles the GET /panel/html endpoint
func (h *PanelHandler) GetPanelHTML(ctx context.Context, _ *struct{}) (*HTMLOutput, error) {
	fragment, err := h.panel.HTML()
	if err != nil {
		return nil, toHumaError(err)
	}
	return &HTMLOutput{ContentType: "text/html; charset=utf-8", Body: []byte(fragment)}, nil
}

// ConvertInput defines the input for a conversion
type ConvertInput struct {
	Body requests.ConvertRequest `required:"false"`
}

// ConvertOutput defines the output for a conversion
type ConvertOutput struct {
	Body responses.ConvertResponse
}

// Convert handles the POST /panel/convert endpoint. When the result was
// produced but could not be saved, it is still returned; the panel status
// carries the save failure.
func (h *PanelHandler) Convert(ctx context.Context, input *ConvertInput) (*ConvertOutput, error) {
	result, err := h.panel.Convert(ctx, input.Body.Index())
	if err != nil && result.Markdown == "" {
		return nil, toHumaError(err)
	}
	return &ConvertOutput{Body: responses.ConvertResponse{
		Markdown: result.Markdown,
		Applied:  result.Applied,
		Panel:    mappers.ToPanelResponse(h.panel.Snapshot()),
	}}, nil
}

// ToggleView handles the POST /panel/view/toggle endpoint
func (h *PanelHandler) ToggleView(ctx context.Context, _ *struct{}) (*PanelOutput, error) {
	snap, err := h.panel.ToggleView()
	if err != nil {
		return nil, toHumaError(err)
	}
	return &PanelOutput{Body: mappers.ToPanelResponse(snap)}, nil
}

// CopyOutput defines the output for copying
type CopyOutput struct {
	Body responses.CopyResponse
}

// Copy handles the POST /panel/copy endpoint
func (h *PanelHandler) Copy(ctx context.Context, _ *struct{}) (*CopyOutput, error) {
	text, err := h.panel.Copy()
	if err != nil {
		return nil, toHumaError(err)
	}
	return &CopyOutput{Body: responses.CopyResponse{
		Text:  text,
		Panel: mappers.ToPanelResponse(h.panel.Snapshot()),
	}}, nil
}

// AuthorizedInput carries the OAuth bearer token
type AuthorizedInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token with the gmail.send and userinfo.email scopes"`
}

// EmailOutput defines the output for sending email
type EmailOutput struct {
	Body responses.EmailResponse
}

// Email handles the POST /panel/email endpoint
func (h *PanelHandler) Email(ctx context.Context, input *AuthorizedInput) (*EmailOutput, error) {
	email, err := h.panel.Email(ctx, bearerToken(input.Authorization))
	if err != nil {
		return nil, toHumaError(err)
	}
	return &EmailOutput{Body: responses.EmailResponse{
		To:      email.To,
		Subject: email.Subject,
		Panel:   mappers.ToPanelResponse(h.panel.Snapshot()),
	}}, nil
}
