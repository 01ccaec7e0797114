package http

import "testing"

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Rent  ", "Rent"},
		{"plain", "plain"},
		{"tab\tand\nnewline", "tab\tand\nnewline"},
		{"nul\x00byte", "nulbyte"},
		{"esc\x1bseq", "escseq"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
