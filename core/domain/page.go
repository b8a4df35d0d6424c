// ABOUTME: Page record domain model holding extracted and converted page text
// ABOUTME: Defines the key conventions used by the page content store

package domain

import "fmt"

// TransientKeyPrefix marks records keyed by tab identifier rather than URL.
// Pages are stored by URL; the startup janitor still purges any tab-keyed
// records left in a shared store, since tab ids do not survive a browser restart.
const TransientKeyPrefix = "tab:"

// SourceURLLabel prefixes the first line of every extracted raw text
const SourceURLLabel = "Source URL: "

// PageRecord is the persisted text of one page
type PageRecord struct {
	// RawText is the extracted visible text, prefixed with the source URL line
	RawText string `json:"rawText"`

	// MarkdownText is the converted markdown, empty until a conversion succeeds
	MarkdownText string `json:"markdownText"`
}

// HasMarkdown reports whether a conversion result is present
func (r PageRecord) HasMarkdown() bool {
	return r.MarkdownText != ""
}

// NewRawText builds the raw text for a freshly extracted page
func NewRawText(pageURL, pageText string) string {
	return fmt.Sprintf("%s%s\n\n%s", SourceURLLabel, pageURL, pageText)
}
