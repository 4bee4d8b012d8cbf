package sanitize

import (
	"strings"
	"testing"
)

func TestContentStripsScripts(t *testing.T) {
	got := Content(`Hello <script>alert("x")</script>world`)
	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Errorf("script survived sanitization: %q", got)
	}
}

func TestContentKeepsBasicFormatting(t *testing.T) {
	got := Content("<b>important</b> update")
	if got != "<b>important</b> update" {
		t.Errorf("formatting lost: %q", got)
	}
}

func TestContentTrimsWhitespace(t *testing.T) {
	if got := Content("  hello  "); got != "hello" {
		t.Errorf("got %q, want trimmed", got)
	}
	if got := Content("  <script>x()</script>  "); got != "" {
		t.Errorf("got %q, want empty after stripping", got)
	}
}
