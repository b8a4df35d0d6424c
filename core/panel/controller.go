// ABOUTME: Panel controller driving tab selection, extraction, conversion and sharing
// ABOUTME: Holds the selection state and discards results that arrive after the selection changed

package panel

import (
	"context"
	"html"
	"sync"

	"github.com/google/uuid"

	coreerrors "tabscribe-api/core/errors"
	"tabscribe-api/core/domain"
	"tabscribe-api/core/interfaces"
	"tabscribe-api/core/markdown"
)

// DefaultPrompt selects the built-in conversion instructions
const DefaultPrompt = -1

// User-visible status messages
const (
	MsgRestrictedPage   = "Could not retrieve content. It might be a restricted page."
	MsgNoPageContent    = "Could not retrieve content from this tab."
	MsgNoContent        = "No content to convert"
	MsgNoAPIKey         = "Please save a valid API key first"
	MsgInvalidPrompt    = "Please select a valid prompt"
	MsgConverted        = "Content converted to markdown successfully"
	MsgConvertFailed    = "Error converting to markdown: "
	MsgNoMarkdown       = "No markdown content to display"
	MsgNothingToCopy    = "No content to copy"
	MsgCopied           = "Copied!"
	MsgCopyFailed       = "Error copying text"
	MsgNothingToEmail   = "No content to email"
	MsgEmailSent        = "Email sent successfully!"
	MsgEmailFailed      = "Error sending email: "
	MsgSignInRequired   = "Please sign in to send email"
	MsgStorageCleared   = "Storage cleared successfully!"
	MsgStorageFailed    = "Error: "
	MsgSaveFailed       = "Error saving page content: "
	MsgSelectTab        = "Select a tab from the list above to view its content."
	MsgConversionActive = "A conversion is already running for this tab"
)

// Collaborators wires the controller to its services
type Collaborators struct {
	Tabs      interfaces.TabSource
	Pages     interfaces.PageStore
	Settings  interfaces.SettingsStore
	Converter interfaces.MarkdownConverter
	Mail      interfaces.MailRelay
	Identity  interfaces.IdentityService
	Clipboard interfaces.Clipboard
	Render    markdown.RenderFunc
	Logger    interfaces.Logger
}

// ConversionResult reports the outcome of a finished conversion
type ConversionResult struct {
	Markdown string `json:"markdown"`

	// Applied is false when the selection changed while the conversion ran;
	// the result is still persisted under the page it was started for.
	Applied bool `json:"applied"`
}

// Controller is safe for concurrent use. The mutex is never held across
// browser, network or storage calls.
type Controller struct {
	deps Collaborators

	mu       sync.Mutex
	st       state
	tabs     []domain.Tab
	inflight map[string]bool
}

// NewController creates a controller in the Idle phase
func NewController(deps Collaborators) *Controller {
	if deps.Render == nil {
		deps.Render = markdown.Render
	}
	return &Controller{
		deps:     deps,
		st:       newState(),
		inflight: make(map[string]bool),
	}
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	var status *domain.Status
	if c.st.status != nil {
		s := *c.st.status
		status = &s
	}
	return Snapshot{
		TabID:        c.st.tabID,
		TabURL:       c.st.tabURL,
		Phase:        c.st.phase,
		View:         c.st.view,
		RawText:      c.st.raw,
		MarkdownText: c.st.markdown,
		Converting:   c.inflight[c.st.tabID],
		Status:       status,
	}
}

// RefreshTabs lists the browser tabs and remembers them for selection
func (c *Controller) RefreshTabs(ctx context.Context) ([]domain.Tab, error) {
	tabs, err := c.deps.Tabs.ListTabs(ctx)
	if err != nil {
		c.deps.Logger.Error("Failed to list tabs", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	c.mu.Lock()
	c.tabs = tabs
	c.mu.Unlock()
	return tabs, nil
}

// SelectTab makes tabID current, shows its cached record or extracts its text
func (c *Controller) SelectTab(ctx context.Context, tabID string) (Snapshot, error) {
	tab, err := c.findTab(ctx, tabID)
	if err != nil {
		return c.Snapshot(), err
	}

	c.mu.Lock()
	c.st.selection++
	selection := c.st.selection
	c.st.tabID = tab.ID
	c.st.tabURL = tab.URL
	c.st.phase = domain.PhaseLoading
	c.st.raw, c.st.markdown = "", ""
	c.st.view = domain.ViewRaw
	c.st.status = nil
	c.mu.Unlock()

	if err := c.deps.Tabs.Activate(ctx, tab.ID); err != nil {
		c.deps.Logger.Warn("Failed to activate tab", map[string]interface{}{"tab": tab.ID, "error": err.Error()})
	}

	record, found, err := c.deps.Pages.Get(ctx, tab.URL)
	if err != nil {
		c.deps.Logger.Warn("Failed to read cached page", map[string]interface{}{"key": tab.URL, "error": err.Error()})
	}
	if found {
		return c.finishSelection(selection, func(s *state) { s.load(record) }), nil
	}

	text, err := c.deps.Tabs.ExtractText(ctx, tab.ID)
	if err != nil || text == "" {
		msg := MsgNoPageContent
		if err != nil {
			msg = MsgRestrictedPage
			c.deps.Logger.Error("Failed to extract page text", map[string]interface{}{"tab": tab.ID, "error": err.Error()})
		} else {
			err = &coreerrors.NotFoundError{Resource: "page content", ID: tab.ID}
		}
		return c.finishSelection(selection, func(s *state) {
			s.phase = domain.PhaseExtractionFailed
			s.fail(msg)
		}), err
	}

	record = domain.PageRecord{RawText: domain.NewRawText(tab.URL, text)}
	saveErr := c.deps.Pages.Put(ctx, tab.URL, record)
	if saveErr != nil {
		c.deps.Logger.Error("Failed to save page content", map[string]interface{}{"key": tab.URL, "error": saveErr.Error()})
	}

	return c.finishSelection(selection, func(s *state) {
		s.load(record)
		if saveErr != nil {
			s.fail(MsgSaveFailed + saveErr.Error())
		}
	}), nil
}

// finishSelection applies fn only if no newer selection started meanwhile
func (c *Controller) finishSelection(selection uint64, fn func(*state)) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.selection == selection {
		fn(&c.st)
	}
	return c.snapshotLocked()
}

func (c *Controller) findTab(ctx context.Context, tabID string) (domain.Tab, error) {
	if tabID == "" {
		return domain.Tab{}, &coreerrors.ValidationError{Field: "tabId", Message: "tab id is required"}
	}

	c.mu.Lock()
	for _, t := range c.tabs {
		if t.ID == tabID {
			c.mu.Unlock()
			return t, nil
		}
	}
	c.mu.Unlock()

	tabs, err := c.RefreshTabs(ctx)
	if err != nil {
		return domain.Tab{}, err
	}
	for _, t := range tabs {
		if t.ID == tabID {
			return t, nil
		}
	}
	return domain.Tab{}, &coreerrors.NotFoundError{Resource: "tab", ID: tabID}
}

// Convert turns the current raw text into markdown. promptIndex selects a
// custom prompt, or DefaultPrompt for the built-in instructions.
func (c *Controller) Convert(ctx context.Context, promptIndex int) (ConversionResult, error) {
	c.mu.Lock()
	tabID, tabURL, raw := c.st.tabID, c.st.tabURL, c.st.raw
	c.mu.Unlock()

	if raw == "" {
		return ConversionResult{}, c.reject("sourceText", MsgNoContent)
	}

	settings, err := c.deps.Settings.Load(ctx)
	if err != nil {
		c.setStatus(tabID, tabURL, false, MsgConvertFailed+err.Error())
		return ConversionResult{}, err
	}
	if !settings.HasAPIKey() {
		return ConversionResult{}, c.reject("apiKey", MsgNoAPIKey)
	}

	var override string
	if promptIndex != DefaultPrompt {
		if promptIndex < 0 || promptIndex >= len(settings.CustomPrompts) {
			return ConversionResult{}, c.reject("promptIndex", MsgInvalidPrompt)
		}
		override = settings.CustomPrompts[promptIndex].Content
	}

	c.mu.Lock()
	if c.inflight[tabID] {
		c.mu.Unlock()
		return ConversionResult{}, &coreerrors.ConflictError{Message: MsgConversionActive}
	}
	c.inflight[tabID] = true
	if c.st.selected(tabID, tabURL) {
		c.st.phase = domain.PhaseConverting
		c.st.status = nil
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, tabID)
		c.mu.Unlock()
	}()

	conversionID := uuid.NewString()
	c.deps.Logger.Info("Conversion started", map[string]interface{}{
		"conversion_id": conversionID,
		"tab":           tabID,
		"url":           tabURL,
		"custom_prompt": override != "",
	})

	md, err := c.deps.Converter.Convert(ctx, domain.ConversionRequest{
		SourceText:     raw,
		APIKey:         settings.APIKey,
		Endpoint:       settings.APIEndpoint,
		PromptOverride: override,
	})
	if err != nil {
		c.deps.Logger.Error("Conversion failed", map[string]interface{}{
			"conversion_id": conversionID,
			"tab":           tabID,
			"error":         err.Error(),
		})
		c.mu.Lock()
		if c.st.selected(tabID, tabURL) {
			c.st.phase = domain.PhaseConversionFailed
			c.st.fail(MsgConvertFailed + err.Error())
		}
		c.mu.Unlock()
		return ConversionResult{}, err
	}

	// Persisted under the page the conversion started for, whatever is selected now.
	saveErr := c.deps.Pages.Put(ctx, tabURL, domain.PageRecord{RawText: raw, MarkdownText: md})
	if saveErr != nil {
		c.deps.Logger.Error("Failed to save converted page", map[string]interface{}{"key": tabURL, "error": saveErr.Error()})
	}

	c.mu.Lock()
	applied := c.st.selected(tabID, tabURL)
	if applied {
		c.st.markdown = md
		c.st.view = domain.ViewMarkdown
		c.st.phase = domain.PhaseConverted
		if saveErr != nil {
			c.st.fail(MsgSaveFailed + saveErr.Error())
		} else {
			c.st.succeed(MsgConverted)
		}
	}
	c.mu.Unlock()

	if !applied {
		c.deps.Logger.Info("Discarded conversion for a tab that is no longer selected", map[string]interface{}{
			"conversion_id": conversionID,
			"tab":           tabID,
		})
	}

	return ConversionResult{Markdown: md, Applied: applied}, saveErr
}

// ToggleView switches between the raw and markdown views
func (c *Controller) ToggleView() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.st.markdown == "" {
		return c.snapshotLocked(), &coreerrors.ValidationError{Field: "view", Message: MsgNoMarkdown}
	}
	if c.st.view == domain.ViewMarkdown {
		c.st.view = domain.ViewRaw
	} else {
		c.st.view = domain.ViewMarkdown
	}
	return c.snapshotLocked(), nil
}

// HTML renders the active view: styled markdown, escaped raw text, or a placeholder
func (c *Controller) HTML() (string, error) {
	snap := c.Snapshot()

	switch {
	case snap.View == domain.ViewMarkdown && snap.HasMarkdown():
		return markdown.StyledHTML(snap.MarkdownText, c.deps.Render)
	case snap.HasContent():
		return `<div style="white-space: pre-wrap">` + html.EscapeString(snap.RawText) + `</div>`, nil
	default:
		return "<p>" + MsgSelectTab + "</p>", nil
	}
}

// Copy writes the active view's text to the clipboard
func (c *Controller) Copy() (string, error) {
	snap := c.Snapshot()
	text := snap.CurrentText()
	if text == "" {
		return "", c.reject("text", MsgNothingToCopy)
	}

	if err := c.deps.Clipboard.WriteText(text); err != nil {
		c.deps.Logger.Error("Failed to copy text", map[string]interface{}{"tab": snap.TabID, "error": err.Error()})
		c.setStatus(snap.TabID, snap.TabURL, false, MsgCopyFailed)
		return "", err
	}

	c.setStatus(snap.TabID, snap.TabURL, true, MsgCopied)
	return text, nil
}

// Email sends the active view's text to the signed-in user
func (c *Controller) Email(ctx context.Context, bearerToken string) (domain.Email, error) {
	snap := c.Snapshot()
	text := snap.CurrentText()
	if text == "" {
		return domain.Email{}, c.reject("text", MsgNothingToEmail)
	}
	if bearerToken == "" {
		c.setStatus(snap.TabID, snap.TabURL, false, MsgSignInRequired)
		return domain.Email{}, &coreerrors.AuthError{Message: "sign in to send email"}
	}

	to, err := c.deps.Identity.UserEmail(ctx, bearerToken)
	if err != nil {
		return domain.Email{}, c.emailFailed(snap, err)
	}

	email := domain.Email{
		To:      to,
		Subject: domain.DeriveSubject(text, snap.View == domain.ViewMarkdown, snap.TabURL),
		Body:    text,
	}
	if err := c.deps.Mail.Send(ctx, email, bearerToken); err != nil {
		return domain.Email{}, c.emailFailed(snap, err)
	}

	c.setStatus(snap.TabID, snap.TabURL, true, MsgEmailSent)
	return email, nil
}

func (c *Controller) emailFailed(snap Snapshot, err error) error {
	c.deps.Logger.Error("Failed to send email", map[string]interface{}{"tab": snap.TabID, "error": err.Error()})
	msg := MsgEmailFailed + err.Error()
	if coreerrors.IsAuth(err) {
		msg = MsgSignInRequired
	}
	c.setStatus(snap.TabID, snap.TabURL, false, msg)
	return err
}

// SignOut revokes the bearer token
func (c *Controller) SignOut(ctx context.Context, bearerToken string) error {
	if bearerToken == "" {
		return &coreerrors.AuthError{Message: "not signed in"}
	}
	if err := c.deps.Identity.Revoke(ctx, bearerToken); err != nil {
		c.deps.Logger.Error("Failed to revoke token", map[string]interface{}{"error": err.Error()})
		return err
	}
	return nil
}

// ClearStorage removes every page record, empties the view and clears the
// selection. Settings are kept.
func (c *Controller) ClearStorage(ctx context.Context) (Snapshot, error) {
	if err := c.deps.Pages.ClearAll(ctx); err != nil {
		c.deps.Logger.Error("Failed to clear page storage", map[string]interface{}{"error": err.Error()})
		c.mu.Lock()
		c.st.fail(MsgStorageFailed + err.Error())
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// drop the selection so running extractions and conversions no longer match it
	c.st.selection++
	c.st.tabID, c.st.tabURL = "", ""
	c.st.raw, c.st.markdown = "", ""
	c.st.view = domain.ViewRaw
	c.st.phase = domain.PhaseIdle
	c.st.succeed(MsgStorageCleared)
	return c.snapshotLocked(), nil
}

// reject records a validation failure for the current selection
func (c *Controller) reject(field, msg string) error {
	c.mu.Lock()
	c.st.fail(msg)
	c.mu.Unlock()
	return &coreerrors.ValidationError{Field: field, Message: msg}
}

// setStatus records msg if tabID/tabURL is still selected
func (c *Controller) setStatus(tabID, tabURL string, ok bool, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.st.selected(tabID, tabURL) {
		return
	}
	if ok {
		c.st.succeed(msg)
	} else {
		c.st.fail(msg)
	}
}

