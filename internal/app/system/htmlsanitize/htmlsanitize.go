// Package htmlsanitize cleans user-supplied rich text before it reaches a
// template. Club descriptions may carry simple formatting; everything
// script-shaped is stripped.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy = buildPolicy()
	strict = bluemonday.StrictPolicy()
)

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "sub", "sup", "mark")
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("style").OnElements("table", "tr", "th", "td")
	return p
}

// Sanitize strips unsafe markup, keeping basic formatting, links, lists,
// tables, and images.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// Strip removes all markup. Used for single-line fields like names where
// no formatting is meaningful.
func Strip(s string) string {
	return strict.Sanitize(s)
}

// SanitizeToHTML sanitizes and returns template.HTML ready for rendering.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s carries no markup. A lone < or > does not
// count as markup.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML escapes plain text and wraps it in a paragraph, turning
// newlines into <br>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay renders stored text for a template: plain text is
// paragraph-wrapped, markup is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
