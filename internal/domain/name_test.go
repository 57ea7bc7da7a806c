package domain

import (
	"strings"
	"testing"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple name", "Ursula Le Guin", true},
		{"lowercase name", "arun manivannan", true},
		{"name with apostrophe", "Miriam O'Connor", true},
		{"unicode name", "José Núñez", true},
		{"single rune", "A", true},
		{"max length name", strings.Repeat("a", 256), true},
		{"empty name", "", false},
		{"whitespace only", "   ", false},
		{"tab only", "\t", false},
		{"too long", strings.Repeat("a", 257), false},
		{"forward slash", "a/b", false},
		{"parentheses", "name (nickname)", false},
		{"double quote", `say "hi"`, false},
		{"angle brackets", "<script>", false},
		{"backslash", `a\b`, false},
		{"curly braces", "{name}", false},
		{"control character", "line\x00break", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseName(tt.input)
			if tt.want && err != nil {
				t.Fatalf("ParseName(%q) unexpected error: %v", tt.input, err)
			}
			if !tt.want && err == nil {
				t.Fatalf("ParseName(%q) expected error, got %q", tt.input, got)
			}
		})
	}
}

func TestParseNameTrimsWhitespace(t *testing.T) {
	got, err := ParseName("  arun manivannan  ")
	if err != nil {
		t.Fatalf("ParseName: %v", err)
	}
	if got.String() != "arun manivannan" {
		t.Errorf("String() = %q, want %q", got.String(), "arun manivannan")
	}
}
