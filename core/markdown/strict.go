// ABOUTME: CommonMark renderer backed by goldmark, selectable by feature flag
// ABOUTME: Distinguishes ordered from unordered lists and nests emphasis correctly

package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var strictMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderStrict converts markdown with a tokenizing CommonMark parser. Raw HTML
// in the input is omitted. On a parser failure it falls back to Render.
func RenderStrict(markdown string) string {
	if markdown == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := strictMarkdown.Convert([]byte(strings.ReplaceAll(markdown, "\r\n", "\n")), &buf); err != nil {
		return Render(markdown)
	}
	return strings.TrimSpace(buf.String())
}
