// ABOUTME: Markdown rendering handler for the Huma API
// ABOUTME: Renders arbitrary markdown with the configured renderer, optionally styled

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"tabscribe-api/api/dto/requests"
	"tabscribe-api/api/dto/responses"
	"tabscribe-api/core/markdown"
)

// RenderHandler renders markdown outside of the panel
type RenderHandler struct {
	render markdown.RenderFunc
}

// NewRenderHandler creates a render handler; nil uses the default renderer
func NewRenderHandler(render markdown.RenderFunc) *RenderHandler {
	if render == nil {
		render = markdown.Render
	}
	return &RenderHandler{render: render}
}

// RegisterRoutes registers the render route
func (h *RenderHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "renderMarkdown",
		Method:      http.MethodPost,
		Path:        "/render",
		Summary:     "Render markdown to HTML",
		Tags:        []string{"Render"},
	}, h.Render)
}

// RenderInput defines the input for rendering
type RenderInput struct {
	Body requests.RenderRequest
}

// RenderOutput defines the output for rendering
type RenderOutput struct {
	Body responses.RenderResponse
}

// Render handles the POST /render endpoint
func (h *RenderHandler) Render(ctx context.Context, input *RenderInput) (*RenderOutput, error) {
	if !input.Body.Styled {
		return &RenderOutput{Body: responses.RenderResponse{HTML: h.render(input.Body.Markdown)}}, nil
	}

	styled, err := markdown.StyledHTML(input.Body.Markdown, h.render)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &RenderOutput{Body: responses.RenderResponse{HTML: styled}}, nil
}
