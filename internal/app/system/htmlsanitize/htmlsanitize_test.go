package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/system/htmlsanitize"
)

// Submission descriptions, report bodies, and member bios all pass
// through Sanitize before they are stored.

func TestSanitize_PlainDescriptionUnchanged(t *testing.T) {
	in := "Organized the fall recruitment drive, 40 attendees."
	if got := htmlsanitize.Sanitize(in); got != in {
		t.Errorf("plain description changed: %q", got)
	}
}

func TestSanitize_StripsScriptFromDescription(t *testing.T) {
	in := "<p>Won the regional hackathon</p><script>document.cookie</script>"
	got := htmlsanitize.Sanitize(in)
	if got != "<p>Won the regional hackathon</p>" {
		t.Errorf("expected script stripped, got %q", got)
	}
}

func TestSanitize_KeepsSafeFormattingInBio(t *testing.T) {
	in := "<p><strong>Branch lead</strong> since 2024. <em>Ask me about events.</em></p>"
	if got := htmlsanitize.Sanitize(in); got != in {
		t.Errorf("safe formatting lost: %q", got)
	}
}

func TestSanitize_StripsEventHandlers(t *testing.T) {
	in := `<img src="x" onerror="fetch('/members')">`
	if got := htmlsanitize.Sanitize(in); strings.Contains(got, "onerror") {
		t.Errorf("onerror survived: %q", got)
	}
}

func TestSanitize_StripsJavascriptHref(t *testing.T) {
	in := `<a href="javascript:void(0)">certificate</a>`
	if got := htmlsanitize.Sanitize(in); strings.Contains(got, "javascript:") {
		t.Errorf("javascript href survived: %q", got)
	}
}

func TestSanitize_KeepsHTTPSLinks(t *testing.T) {
	in := `<a href="https://drive.example.com/doc/123">meeting minutes</a>`
	got := htmlsanitize.Sanitize(in)
	if !strings.Contains(got, "https://drive.example.com/doc/123") {
		t.Errorf("safe link lost: %q", got)
	}
}

func TestSanitize_KeepsListsAndHeadings(t *testing.T) {
	in := "<h2>Agenda</h2><ul><li>Budget review</li><li>Event planning</li></ul>"
	if got := htmlsanitize.Sanitize(in); got != in {
		t.Errorf("list markup lost: %q", got)
	}
}

func TestSanitize_StripsIframeAndForms(t *testing.T) {
	in := `<p>Report attached</p><iframe src="https://evil.test"></iframe><form><input name="x"></form>`
	got := htmlsanitize.Sanitize(in)
	if strings.Contains(got, "iframe") || strings.Contains(got, "<form") || strings.Contains(got, "<input") {
		t.Errorf("embedded content survived: %q", got)
	}
	if !strings.Contains(got, "Report attached") {
		t.Errorf("safe text lost: %q", got)
	}
}

func TestIsPlainText(t *testing.T) {
	if !htmlsanitize.IsPlainText("Attended 3 events, earned 30 points") {
		t.Error("plain text misclassified")
	}
	if !htmlsanitize.IsPlainText("points > 20 and rank < 5") {
		t.Error("comparison operators alone are not markup")
	}
	if htmlsanitize.IsPlainText("<p>bio</p>") {
		t.Error("markup misclassified as plain text")
	}
}

func TestPlainTextToHTML_EscapesAndBreaks(t *testing.T) {
	got := htmlsanitize.PlainTextToHTML("Line 1\nLine 2 & more")
	want := "<p>Line 1<br>Line 2 &amp; more</p>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrepareForDisplay(t *testing.T) {
	if got := htmlsanitize.PrepareForDisplay("Volunteered at orientation"); got != template.HTML("<p>Volunteered at orientation</p>") {
		t.Errorf("plain text: got %v", got)
	}
	if got := htmlsanitize.PrepareForDisplay("<p>bio</p><script>x()</script>"); got != template.HTML("<p>bio</p>") {
		t.Errorf("markup: got %v", got)
	}
	if got := htmlsanitize.PrepareForDisplay(""); got != "" {
		t.Errorf("empty: got %v", got)
	}
}

func TestSanitizeToHTML(t *testing.T) {
	got := htmlsanitize.SanitizeToHTML("<p>Treasurer report</p><style>p{display:none}</style>")
	if got != template.HTML("<p>Treasurer report</p>") {
		t.Errorf("got %v", got)
	}
}
