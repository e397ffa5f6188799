package textutil

import "testing"

func TestNormalizeSpace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"  a  b ", "a b"},
		{"line one\n\n\tline two", "line one line two"},
	}
	for _, tt := range tests {
		if got := NormalizeSpace(tt.in); got != tt.want {
			t.Errorf("NormalizeSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLines(t *testing.T) {
	in := "  first   para \n\n \n second\tpara  \n"
	want := "first para\nsecond para"
	if got := NormalizeLines(in); got != want {
		t.Errorf("NormalizeLines = %q, want %q", got, want)
	}
}

func TestNormalizeQuotes(t *testing.T) {
	in := "women’s “voices”"
	want := `women's "voices"`
	if got := NormalizeQuotes(in); got != want {
		t.Errorf("NormalizeQuotes = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10, "…"); got != "short" {
		t.Errorf("short string changed: %q", got)
	}
	if got := Truncate("abcdef", 3, "…"); got != "abc…" {
		t.Errorf("Truncate = %q, want %q", got, "abc…")
	}
	// counts characters, not bytes
	if got := Truncate("ææææ", 2, "..."); got != "ææ..." {
		t.Errorf("Truncate multibyte = %q", got)
	}
	if got := Truncate("abc", 0, "…"); got != "abc" {
		t.Errorf("zero limit should disable truncation, got %q", got)
	}
}
