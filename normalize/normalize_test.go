package normalize

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "warfarin", "warfarin"},
		{"mixed case", "Warfarin", "warfarin"},
		{"surrounding whitespace", "  aspirin \t", "aspirin"},
		{"inner whitespace stripped", "co amoxiclav", "coamoxiclav"},
		{"punctuation stripped", "asp-irin (81mg)", "aspirin81mg"},
		{"accents folded", "Dafalgan forté", "dafalganforte"},
		{"digits kept", "vitamin b12", "vitaminb12"},
		{"empty", "", ""},
		{"only punctuation", "--- !!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNameIdempotent(t *testing.T) {
	inputs := []string{
		"Warfarin", "  Coumadin 5mg  ", "Dafalgan forté", "", "½µß", "ASA (aspirin)",
	}

	for _, in := range inputs {
		once := Name(in)
		twice := Name(once)
		if once != twice {
			t.Errorf("Name not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
