// ABOUTME: Storage and sign-out handlers for the Huma API
// ABOUTME: Clears cached page content and revokes OAuth tokens

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"tabscribe-api/api/dto/mappers"
	"tabscribe-api/api/dto/responses"
)

// SessionHandler handles storage clearing and sign-out
type SessionHandler struct {
	panel PanelService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(panel PanelService) *SessionHandler {
	return &SessionHandler{panel: panel}
}

// RegisterRoutes registers storage and auth routes
func (h *SessionHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "clearStorage",
		Method:      http.MethodDelete,
		Path:        "/storage",
		Summary:     "Clear cached pages",
		Description: "Removes every cached page record and empties the view; settings are kept",
		Tags:        []string{"Storage"},
	}, h.ClearStorage)

	huma.Register(api, huma.Operation{
		OperationID: "signOut",
		Method:      http.MethodPost,
		Path:        "/auth/signout",
		Summary:     "Sign out",
		Description: "Revokes the bearer token",
		Tags:        []string{"Auth"},
	}, h.SignOut)
}

// ClearStorage handles the DELETE /storage endpoint
func (h *SessionHandler) ClearStorage(ctx context.Context, _ *struct{}) (*PanelOutput, error) {
	snap, err := h.panel.ClearStorage(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &PanelOutput{Body: mappers.ToPanelResponse(snap)}, nil
}

// MessageOutput is a plain confirmation
type MessageOutput struct {
	Body responses.MessageResponse
}

// SignOut handles the POST /auth/signout endpoint
func (h *SessionHandler) SignOut(ctx context.Context, input *AuthorizedInput) (*MessageOutput, error) {
	if err := h.panel.SignOut(ctx, bearerToken(input.Authorization)); err != nil {
		return nil, toHumaError(err)
	}
	return &MessageOutput{Body: responses.MessageResponse{Message: "Signed out"}}, nil
}
