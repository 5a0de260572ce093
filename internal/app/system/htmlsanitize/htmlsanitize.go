// Package htmlsanitize cleans member-authored rich text before storage.
//
// Submission descriptions, report bodies, bios, and admin comments may
// contain HTML; everything is filtered through a single bluemonday
// policy so no script, event handler, or unsafe protocol survives.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Tables, with the structural attributes templates rely on.
	p.AllowTables()
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "td", "th")
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")

	// Extra inline formatting beyond the UGC defaults.
	p.AllowElements("u", "s", "sub", "sup", "mark")

	return p
}

// Sanitize returns s with all disallowed HTML removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeToHTML sanitizes s and returns it as template.HTML, marking
// it safe for direct template interpolation.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s contains no HTML tags at all. A string
// with only '<' or only '>' (e.g. "5 < 10") still counts as plain text.
func IsPlainText(s string) bool {
	lt := strings.Index(s, "<")
	if lt == -1 {
		return true
	}
	return !strings.Contains(s[lt:], ">")
}

// PlainTextToHTML escapes s and wraps it in a paragraph, converting
// newlines to <br>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay renders stored text for display: plain text is
// escaped and paragraph-wrapped, HTML is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
