// ABOUTME: Applies fixed inline presentation styles to a rendered HTML tree
// ABOUTME: Provides StyledHTML to render, style and serialize markdown in one step

package markdown

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type property struct {
	name  string
	value string
}

const monospace = "Monaco, Consolas, monospace"

var (
	containerStyle = []property{
		{"font-family", "system-ui, -apple-system, sans-serif"},
		{"line-height", "1.6"},
		{"color", "#333"},
	}
	headerStyle = []property{
		{"margin-top", "1.5em"},
		{"margin-bottom", "0.5em"},
		{"font-weight", "bold"},
		{"color", "#2c3e50"},
	}
	h1Style = []property{
		{"font-size", "1.8em"},
		{"border-bottom", "2px solid #eee"},
		{"padding-bottom", "0.3em"},
	}
	h2Style = []property{
		{"font-size", "1.5em"},
		{"border-bottom", "1px solid #eee"},
		{"padding-bottom", "0.2em"},
	}
	h3Style = []property{
		{"font-size", "1.3em"},
	}
	paragraphStyle = []property{
		{"margin-bottom", "1em"},
	}
	linkStyle = []property{
		{"color", "#3498db"},
		{"text-decoration", "none"},
	}
	preStyle = []property{
		{"background-color", "#f8f9fa"},
		{"border", "1px solid #e9ecef"},
		{"border-radius", "4px"},
		{"padding", "1em"},
		{"overflow", "auto"},
	}
	blockCodeStyle = []property{
		{"font-family", monospace},
		{"font-size", "0.9em"},
	}
	inlineCodeStyle = []property{
		{"background-color", "#f8f9fa"},
		{"padding", "0.2em 0.4em"},
		{"border-radius", "3px"},
		{"font-family", monospace},
		{"font-size", "0.9em"},
	}
	blockquoteStyle = []property{
		{"border-left", "4px solid #ddd"},
		{"padding-left", "1em"},
		{"margin", "1em 0"},
		{"font-style", "italic"},
		{"color", "#666"},
	}
	listStyle = []property{
		{"padding-left", "2em"},
		{"margin-bottom", "1em"},
	}
	listItemStyle = []property{
		{"margin-bottom", "0.5em"},
	}
)

// ApplyStyling writes the fixed presentation properties of every known tag
// below root as inline style attributes. A nil root is a no-op.
func ApplyStyling(root *html.Node) {
	if root == nil {
		return
	}

	doc := goquery.NewDocumentFromNode(root)
	if root.Type == html.ElementNode {
		setStyle(doc.Selection, containerStyle)
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		setStyle(s, headerStyle)
	})
	doc.Find("h1").Each(func(_ int, s *goquery.Selection) { setStyle(s, h1Style) })
	doc.Find("h2").Each(func(_ int, s *goquery.Selection) { setStyle(s, h2Style) })
	doc.Find("h3").Each(func(_ int, s *goquery.Selection) { setStyle(s, h3Style) })
	doc.Find("p").Each(func(_ int, s *goquery.Selection) { setStyle(s, paragraphStyle) })
	doc.Find("a").Each(func(_ int, s *goquery.Selection) { setStyle(s, linkStyle) })

	doc.Find("pre code").Each(func(_ int, s *goquery.Selection) {
		setStyle(s.Parent(), preStyle)
		setStyle(s, blockCodeStyle)
	})
	doc.Find("code").Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered("pre").Length() > 0 {
			return
		}
		setStyle(s, inlineCodeStyle)
	})

	doc.Find("blockquote").Each(func(_ int, s *goquery.Selection) { setStyle(s, blockquoteStyle) })
	doc.Find("ul, ol").Each(func(_ int, s *goquery.Selection) { setStyle(s, listStyle) })
	doc.Find("li").Each(func(_ int, s *goquery.Selection) { setStyle(s, listItemStyle) })
}

// setStyle merges props into the style attribute, later values winning
func setStyle(s *goquery.Selection, props []property) {
	s.Each(func(_ int, el *goquery.Selection) {
		existing, _ := el.Attr("style")
		decls := parseStyle(existing)
		for _, p := range props {
			decls = upsert(decls, p)
		}
		el.SetAttr("style", formatStyle(decls))
	})
}

func parseStyle(style string) []property {
	var decls []property
	for _, part := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		decls = append(decls, property{name: name, value: strings.TrimSpace(value)})
	}
	return decls
}

func upsert(decls []property, p property) []property {
	for i := range decls {
		if decls[i].name == p.name {
			decls[i].value = p.value
			return decls
		}
	}
	return append(decls, p)
}

func formatStyle(decls []property) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.name + ": " + d.value
	}
	return strings.Join(parts, "; ")
}

// StyledHTML renders markdown with render, styles the result inside a
// container div and returns the serialized container.
func StyledHTML(markdown string, render RenderFunc) (string, error) {
	if render == nil {
		render = Render
	}

	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(render(markdown)), container)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	ApplyStyling(container)

	var buf bytes.Buffer
	if err := html.Render(&buf, container); err != nil {
		return "", err
	}
	return buf.String(), nil
}
