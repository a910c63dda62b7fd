package tags

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		text string
		max  int
		want string
	}{
		{"ABCDEFGHIJ", 5, "AB..."},
		{"AB", 5, "AB"},
		{"ABCDE", 5, "ABCDE"},
		{"ABCDEF", 5, "AB..."},
		{"ABCDEF", 2, "..."},
		{"", 5, ""},
		{"ÀÉÎÕÜßø", 6, "ÀÉÎ..."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.text, tt.max); got != tt.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
		}
	}
}

func TestIsInvalid(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"<b>x</b>", true},
		{"<script>", true},
		{"USD<>C", true},
		{"WETH", false},
		{"a < b", false},
		{"x > y", false},
		{"crv3pool", false},
	}
	for _, tt := range tests {
		if got := IsInvalid(tt.text); got != tt.want {
			t.Fatalf("IsInvalid(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
