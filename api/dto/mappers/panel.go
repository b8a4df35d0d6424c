// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Keeps panel state and settings shapes out of the core packages

package mappers

import (
	"tabscribe-api/api/dto/responses"
	"tabscribe-api/core/domain"
	"tabscribe-api/core/panel"
)

// keyHintLength is how many trailing characters of a saved key are shown
const keyHintLength = 4

// ToTabsResponse converts domain tabs to the tab list DTO
func ToTabsResponse(tabs []domain.Tab) responses.TabsResponse {
	out := responses.TabsResponse{Tabs: make([]responses.TabResponse, 0, len(tabs))}
	for _, t := range tabs {
		out.Tabs = append(out.Tabs, responses.TabResponse{
			ID:     t.ID,
			Title:  t.DisplayTitle(),
			URL:    t.URL,
			Active: t.Active,
		})
	}
	return out
}

// ToPanelResponse converts a controller snapshot to the panel DTO
func ToPanelResponse(snap panel.Snapshot) responses.PanelResponse {
	resp := responses.PanelResponse{
		TabID:        snap.TabID,
		TabURL:       snap.TabURL,
		Phase:        string(snap.Phase),
		View:         string(snap.View),
		RawText:      snap.RawText,
		MarkdownText: snap.MarkdownText,
		Converting:   snap.Converting,
		Actions: responses.ActionsResponse{
			Convert:    snap.HasContent() && !snap.Converting,
			ToggleView: snap.HasMarkdown(),
			Copy:       snap.CurrentText() != "",
			Email:      snap.CurrentText() != "",
		},
	}
	if snap.Status != nil {
		resp.Status = &responses.StatusResponse{
			Level:   string(snap.Status.Level),
			Message: snap.Status.Message,
		}
	}
	return resp
}

// ToSettingsResponse converts settings to the DTO without exposing the key
func ToSettingsResponse(s domain.Settings) responses.SettingsResponse {
	resp := responses.SettingsResponse{
		HasAPIKey:     s.HasAPIKey(),
		Endpoint:      s.APIEndpoint,
		CustomPrompts: s.CustomPrompts,
	}
	if resp.CustomPrompts == nil {
		resp.CustomPrompts = []domain.CustomPrompt{}
	}
	if len(s.APIKey) > keyHintLength {
		resp.APIKeyHint = "..." + s.APIKey[len(s.APIKey)-keyHintLength:]
	}
	return resp
}
