package common

import (
	"testing"
	"unicode/utf8"
)

func TestCleanHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"tags stripped", "<b>Quick</b> and <i>easy</i>", "Quick and easy"},
		{"nested markup", "<p>A <a href=\"x\">link</a>.</p>", "A link."},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanHTML(tt.input); got != tt.want {
				t.Errorf("CleanHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	t.Parallel()

	long := "The quick brown fox jumps over the lazy dog"
	got := TruncateText(long, 20)
	if len(got) > 23 { // 20 + "..."
		t.Errorf("TruncateText produced %d chars: %q", len(got), got)
	}

	short := "hi there"
	if got := TruncateText(short, 20); got != short {
		t.Errorf("short text should pass through, got %q", got)
	}
}

func TestTruncateTextMultibyte(t *testing.T) {
	t.Parallel()

	text := "番茄炒蛋是一道快速又簡單的家常菜"
	got := TruncateText(text, 8)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if want := "番茄炒蛋是一道快..."; got != want {
		t.Errorf("TruncateText(%q, 8) = %q, want %q", text, got, want)
	}

	if got := TruncateText("番茄炒蛋", 8); got != "番茄炒蛋" {
		t.Errorf("text within rune limit should pass through, got %q", got)
	}
}

func TestGenerateUUIDUnique(t *testing.T) {
	t.Parallel()

	a := GenerateUUID()
	b := GenerateUUID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty UUIDs, got %q and %q", a, b)
	}
}
