package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"  short ", 10, "short"},
		{"abcdefghij", 7, "abcd..."},
		{"abcdef", 2, "ab"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle tiny limit = %q, want ab", got)
	}
	got := truncateMiddle("/home/bot/exe/screenshots/record", 15)
	if len([]rune(got)) != 15 {
		t.Fatalf("truncateMiddle length = %d, want 15 (%q)", len([]rune(got)), got)
	}
	if got[len(got)-6:] != "record" {
		t.Fatalf("truncateMiddle should keep the file name, got %q", got)
	}
}
