// ABOUTME: TabSource over the Chrome DevTools protocol using go-rod
// ABOUTME: Lists page targets, activates them and extracts visible text or readable article text

package cdp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	readability "github.com/go-shiori/go-readability"

	coreerrors "tabscribe-api/core/errors"
	"tabscribe-api/core/domain"
	"tabscribe-api/core/interfaces"
)

// Extraction modes
const (
	ModeInnerText   = "innertext"
	ModeReadability = "readability"
)

const (
	innerTextJS  = `() => document.body ? document.body.innerText : null`
	visibleJS    = `() => document.visibilityState === "visible"`
	browserLabel = "browser"
)

// ErrNoBody is returned when the tab has no document body to read
var ErrNoBody = errors.New("document has no body")

// Options configures how the browser is reached
type Options struct {
	ControlURL string // attach to a running Chrome; empty launches one
	Bin        string // browser binary used when launching
	Mode       string // innertext or readability
	Logger     interfaces.Logger
}

// TabSource implements interfaces.TabSource
type TabSource struct {
	browser *rod.Browser
	mode    string
	logger  interfaces.Logger
}

// Connect attaches to (or launches) a browser
func Connect(opts Options) (*TabSource, error) {
	controlURL := opts.ControlURL
	if controlURL == "" {
		l := launcher.New()
		if opts.Bin != "" {
			l = l.Bin(opts.Bin).NoSandbox(true)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	mode := opts.Mode
	if mode != ModeReadability {
		mode = ModeInnerText
	}

	return &TabSource{browser: browser, mode: mode, logger: opts.Logger}, nil
}

// Close disconnects from the browser
func (s *TabSource) Close() error {
	return s.browser.Close()
}

// ListTabs returns page targets in browser order
func (s *TabSource) ListTabs(ctx context.Context) ([]domain.Tab, error) {
	pages, err := s.browser.Context(ctx).Pages()
	if err != nil {
		return nil, &coreerrors.TransportError{API: browserLabel, Err: err}
	}

	tabs := make([]domain.Tab, 0, len(pages))
	for _, page := range pages {
		info, err := page.Info()
		if err != nil {
			s.logWarn("Skipping tab without target info", map[string]interface{}{
				"tab":   string(page.TargetID),
				"error": err.Error(),
			})
			continue
		}
		if info.Type != proto.TargetTargetInfoTypePage {
			continue
		}

		tabs = append(tabs, domain.Tab{
			ID:     string(info.TargetID),
			Title:  info.Title,
			URL:    info.URL,
			Active: s.isVisible(ctx, page),
		})
	}

	return tabs, nil
}

// Activate brings the tab to the foreground
func (s *TabSource) Activate(ctx context.Context, tabID string) error {
	page, err := s.page(ctx, tabID)
	if err != nil {
		return err
	}
	if _, err := page.Activate(); err != nil {
		return &coreerrors.TransportError{API: browserLabel, Err: err}
	}
	return nil
}

// ExtractText reads the tab's visible text, or the readable article text in readability mode
func (s *TabSource) ExtractText(ctx context.Context, tabID string) (string, error) {
	page, err := s.page(ctx, tabID)
	if err != nil {
		return "", err
	}

	if s.mode == ModeReadability {
		text, err := s.readable(page)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		s.logWarn("Readability extraction failed, falling back to innerText", map[string]interface{}{
			"tab":   tabID,
			"error": fmt.Sprint(err),
		})
	}

	obj, err := page.Eval(innerTextJS)
	if err != nil {
		return "", &coreerrors.TransportError{API: browserLabel, Err: err}
	}
	if obj.Value.Nil() {
		return "", ErrNoBody
	}
	return obj.Value.Str(), nil
}

func (s *TabSource) readable(page *rod.Page) (string, error) {
	info, err := page.Info()
	if err != nil {
		return "", err
	}
	html, err := page.HTML()
	if err != nil {
		return "", err
	}
	return ReadableText(html, info.URL)
}

// ReadableText runs readability over a document and returns the article text
func ReadableText(html, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	article, err := readability.FromReader(strings.NewReader(html), u)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(article.TextContent)
	if article.Title != "" && !strings.HasPrefix(text, article.Title) {
		text = article.Title + "\n\n" + text
	}
	return text, nil
}

func (s *TabSource) page(ctx context.Context, tabID string) (*rod.Page, error) {
	page, err := s.browser.Context(ctx).PageFromTarget(proto.TargetTargetID(tabID))
	if err != nil {
		return nil, &coreerrors.NotFoundError{Resource: "tab", ID: tabID}
	}
	return page.Context(ctx), nil
}

func (s *TabSource) isVisible(ctx context.Context, page *rod.Page) bool {
	obj, err := page.Context(ctx).Eval(visibleJS)
	if err != nil {
		return false
	}
	return obj.Value.Bool()
}

func (s *TabSource) logWarn(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, fields)
	}
}
