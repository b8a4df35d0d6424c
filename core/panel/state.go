package panel

import "tabscribe-api/core/domain"

// Snapshot is a read-only copy of the controller state
type Snapshot struct {
	TabID        string          `json:"tabId"`
	TabURL       string          `json:"tabUrl"`
	Phase        domain.Phase    `json:"phase"`
	View         domain.ViewMode `json:"view"`
	RawText      string          `json:"rawText"`
	MarkdownText string          `json:"markdownText"`
	Converting   bool            `json:"converting"`
	Status       *domain.Status  `json:"status,omitempty"`
}

// HasContent reports whether there is raw text to show, copy or email
func (s Snapshot) HasContent() bool {
	return s.RawText != ""
}

// HasMarkdown reports whether the markdown view can be shown
func (s Snapshot) HasMarkdown() bool {
	return s.MarkdownText != ""
}

// CurrentText is the text of the active view
func (s Snapshot) CurrentText() string {
	if s.View == domain.ViewMarkdown {
		return s.MarkdownText
	}
	return s.RawText
}

// state is the mutable selection state. Guarded by Controller.mu.
type state struct {
	tabID    string
	tabURL   string
	phase    domain.Phase
	view     domain.ViewMode
	raw      string
	markdown string
	status   *domain.Status

	// incremented on every selection so late extraction results can be recognised
	selection uint64
}

func newState() state {
	return state{phase: domain.PhaseIdle, view: domain.ViewRaw}
}

// selected reports whether tabID/tabURL is still the current selection
func (s *state) selected(tabID, tabURL string) bool {
	return s.tabID == tabID && s.tabURL == tabURL
}

// load replaces the displayed texts; markdown, when present, is shown first
func (s *state) load(record domain.PageRecord) {
	s.raw = record.RawText
	s.markdown = record.MarkdownText
	if record.HasMarkdown() {
		s.view = domain.ViewMarkdown
		s.phase = domain.PhaseConverted
	} else {
		s.view = domain.ViewRaw
		s.phase = domain.PhaseLoaded
	}
}

func (s *state) succeed(msg string) {
	s.status = &domain.Status{Level: domain.StatusSuccess, Message: msg}
}

func (s *state) fail(msg string) {
	s.status = &domain.Status{Level: domain.StatusError, Message: msg}
}
