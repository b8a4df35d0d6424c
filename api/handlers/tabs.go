// ABOUTME: Tab handlers for the Huma API
// ABOUTME: Lists browser tabs and selects one for extraction

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"tabscribe-api/api/dto/mappers"
	"tabscribe-api/api/dto/responses"
	"tabscribe-api/core/domain"
)

// TabsHandler handles tab listing and selection
type TabsHandler struct {
	panel PanelService
}

// NewTabsHandler creates a new tabs handler
func NewTabsHandler(panel PanelService) *TabsHandler {
	return &TabsHandler{panel: panel}
}

// RegisterRoutes registers tab routes
func (h *TabsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listTabs",
		Method:      http.MethodGet,
		Path:        "/tabs",
		Summary:     "List browser tabs",
		Description: "Lists the open tabs of the controlled browser",
		Tags:        []string{"Tabs"},
	}, h.ListTabs)

	huma.Register(api, huma.Operation{
		OperationID: "selectTab",
		Method:      http.MethodPost,
		Path:        "/tabs/{id}/select",
		Summary:     "Select a tab",
		Description: "Activates the tab and shows its cached content, extracting its text when nothing is cached",
		Tags:        []string{"Tabs"},
	}, h.SelectTab)
}

// ListTabsOutput defines the output for listing tabs
type ListTabsOutput struct {
	Body responses.TabsResponse
}

// ListTabs handles the GET /tabs endpoint
func (h *TabsHandler) ListTabs(ctx context.Context, _ *struct{}) (*ListTabsOutput, error) {
	tabs, err := h.panel.RefreshTabs(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ListTabsOutput{Body: mappers.ToTabsResponse(tabs)}, nil
}

// SelectTabInput defines the input for selecting a tab
type SelectTabInput struct {
	ID string `path:"id" minLength:"1" doc:"Tab identifier from GET /tabs"`
}

// PanelOutput returns the panel state
type PanelOutput struct {
	Body responses.PanelResponse
}

// SelectTab handles the POST /tabs/{id}/select endpoint. A failed extraction is
// part of the panel state, not an HTTP error.
func (h *TabsHandler) SelectTab(ctx context.Context, input *SelectTabInput) (*PanelOutput, error) {
	snap, err := h.panel.SelectTab(ctx, input.ID)
	if err != nil && !(snap.TabID == input.ID && snap.Phase == domain.PhaseExtractionFailed) {
		return nil, toHumaError(err)
	}
	return &PanelOutput{Body: mappers.ToPanelResponse(snap)}, nil
}
