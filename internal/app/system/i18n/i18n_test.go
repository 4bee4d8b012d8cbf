package i18n

import (
	"testing"

	"go.uber.org/zap"
)

func TestTranslatorRendersBothLocales(t *testing.T) {
	tr := NewTranslator("vi", zap.NewNop())

	got := tr.T("vi", "timeframe_days", map[string]any{"Days": 7})
	if got != "7 ngày" {
		t.Errorf("vi timeframe = %q", got)
	}
	got = tr.T("en", "timeframe_days", map[string]any{"Days": 7})
	if got != "7 days" {
		t.Errorf("en timeframe = %q", got)
	}
}

func TestTranslatorFallsBackToDefaultLocale(t *testing.T) {
	tr := NewTranslator("vi", zap.NewNop())

	// Unsupported locale falls back to the default language.
	got := tr.T("fr", "timeframe_24h", nil)
	if got != "24h" {
		t.Errorf("fallback render = %q", got)
	}
}

func TestTranslatorReturnsKeyWhenMissing(t *testing.T) {
	tr := NewTranslator("vi", zap.NewNop())
	if got := tr.T("vi", "no_such_key", nil); got != "no_such_key" {
		t.Errorf("missing key render = %q, want the key itself", got)
	}
	if got := tr.T("vi", "", nil); got != "" {
		t.Errorf("empty key render = %q, want empty", got)
	}
}

func TestMatchLocale(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", "vi"},
		{"vi", "vi"},
		{"vi-VN,vi;q=0.9", "vi"},
		{"en-US,en;q=0.9", "en"},
		{"fr-FR,fr;q=0.9", "vi"},
		{"garbage;;;", "vi"},
	}
	for _, tc := range cases {
		if got := MatchLocale(tc.header); got != tc.want {
			t.Errorf("MatchLocale(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
