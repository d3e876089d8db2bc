package app

import "testing"

func TestOtherVariant(t *testing.T) {
	tests := []struct {
		variant, want string
	}{
		{"light", "dark"},
		{"dark", "light"},
		{"", "dark"},
	}
	for _, tt := range tests {
		if got := OtherVariant(tt.variant); got != tt.want {
			t.Errorf("OtherVariant(%q) = %q, want %q", tt.variant, got, tt.want)
		}
	}
}
