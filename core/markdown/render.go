// ABOUTME: Regex-driven markdown to HTML renderer for displaying converted content
// ABOUTME: Applies an ordered pipeline of whole-string substitutions, not a parser

package markdown

import "regexp"

// rule is one stateless step of the rendering pipeline
type rule struct {
	name  string
	apply func(string) string
}

// replace builds a rule substituting every match of pattern
func replace(name, pattern, replacement string) rule {
	re := regexp.MustCompile(pattern)
	return rule{
		name: name,
		apply: func(s string) string {
			return re.ReplaceAllString(s, replacement)
		},
	}
}

// pipeline is applied in order to the entire document. Order matters: the
// most specific header and emphasis markers must run before the general ones,
// and paragraph cleanup must run after every block construct is produced.
//
// Consecutive list items are wrapped in a single <ul> spanning from the first
// <li> to the last one in the document, and ordered items are not told apart
// from unordered ones. This is known, relied-upon behaviour; RenderStrict is
// the CommonMark-compliant alternative.
//
// Line rules stop at \r as well as \n so CRLF input keeps the carriage
// return outside the generated element.
var pipeline = []rule{
	replace("h3", `(?m)^### ([^\r\n]*)`, "<h3>${1}</h3>"),
	replace("h2", `(?m)^## ([^\r\n]*)`, "<h2>${1}</h2>"),
	replace("h1", `(?m)^# ([^\r\n]*)`, "<h1>${1}</h1>"),

	replace("bold-italic", `\*\*\*([^\r\n]*?)\*\*\*`, "<strong><em>${1}</em></strong>"),
	replace("bold", `\*\*([^\r\n]*?)\*\*`, "<strong>${1}</strong>"),
	replace("italic", `\*([^\r\n]*?)\*`, "<em>${1}</em>"),

	replace("link", `\[([^\]]+)\]\(([^)]+)\)`, `<a href="${2}" target="_blank">${1}</a>`),

	replace("code-block", "```([\\s\\S]*?)```", "<pre><code>${1}</code></pre>"),
	replace("inline-code", "`([^`]+)`", "<code>${1}</code>"),

	replace("blockquote", `(?m)^> ([^\r\n]*)`, "<blockquote>${1}</blockquote>"),

	replace("list-star", `(?m)^\* ([^\r\n]*)`, "<li>${1}</li>"),
	replace("list-dash", `(?m)^- ([^\r\n]*)`, "<li>${1}</li>"),
	replace("list-ordered", `(?m)^\d+\. ([^\r\n]*)`, "<li>${1}</li>"),
	replace("list-wrap", `(?s)(<li>.*</li>)`, "<ul>${1}</ul>"),

	replace("paragraph-break", `\n\n`, "</p><p>"),
	{name: "paragraph-wrap", apply: func(s string) string { return "<p>" + s + "</p>" }},
	replace("paragraph-empty", `<p></p>`, ""),
	replace("paragraph-blank", `<p>\s*</p>`, ""),

	replace("unwrap-heading-open", `<p>(<h[1-6]>)`, "${1}"),
	replace("unwrap-heading-close", `(</h[1-6]>)</p>`, "${1}"),
	replace("unwrap-list-open", `<p>(<ul>)`, "${1}"),
	replace("unwrap-list-close", `(</ul>)</p>`, "${1}"),
	replace("unwrap-quote-open", `<p>(<blockquote>)`, "${1}"),
	replace("unwrap-quote-close", `(</blockquote>)</p>`, "${1}"),
	replace("unwrap-pre-open", `<p>(<pre>)`, "${1}"),
	replace("unwrap-pre-close", `(</pre>)</p>`, "${1}"),
}

// Render converts markdown to HTML. It never fails: unterminated constructs
// are left as literal text. Rendering already-rendered HTML is unsupported.
func Render(markdown string) string {
	if markdown == "" {
		return ""
	}

	html := markdown
	for _, r := range pipeline {
		html = r.apply(html)
	}
	return html
}

// RenderFunc renders markdown to HTML
type RenderFunc func(markdown string) string

// Renderer returns the strict renderer when strict is set, the regex one otherwise
func Renderer(strict bool) RenderFunc {
	if strict {
		return RenderStrict
	}
	return Render
}
