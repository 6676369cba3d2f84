package utils

import (
	"reflect"
	"testing"
	"unicode/utf8"
)

func TestNormalizeDomain(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"example.com", "example.com"},
		{"https://www.example.com/path?q=1#frag", "example.com"},
		{"HTTP://Example.COM:8080", "example.com"},
		{"www.example.com", "example.com"},
		{"docs.example.com", "docs.example.com"},
		{"  https://example.com  ", "example.com"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeDomain(tc.in); got != tc.want {
			t.Errorf("NormalizeDomain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSameDomain(t *testing.T) {
	cases := []struct {
		candidate string
		target    string
		want      bool
	}{
		{"example.com", "example.com", true},
		{"https://www.example.com/page", "example.com", true},
		{"docs.example.com", "example.com", true},
		{"notexample.com", "example.com", false},
		{"example.com.evil.net", "example.com", false},
		{"", "example.com", false},
	}
	for _, tc := range cases {
		if got := SameDomain(tc.candidate, tc.target); got != tc.want {
			t.Errorf("SameDomain(%q, %q) = %v, want %v", tc.candidate, tc.target, got, tc.want)
		}
	}
}

func TestBrandToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"www.example.com", "example"},
		{"https://shop.acme.co.uk", "shop"},
		{"example.com", "example"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := BrandToken(tc.in); got != tc.want {
			t.Errorf("BrandToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First one. Second one! Third?  ")
	want := []string{"First one", "Second one", "Third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences = %v, want %v", got, want)
	}

	if got := SplitSentences(""); len(got) != 0 {
		t.Errorf("empty text produced sentences: %v", got)
	}
}

func TestWordsLongerThan(t *testing.T) {
	got := WordsLongerThan("The quick analysis of modern tooling, explained.", 3, 3)
	want := []string{"quick", "analysis", "modern"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WordsLongerThan = %v, want %v", got, want)
	}
}

func TestCleanText(t *testing.T) {
	if got := CleanText("  too   many \t spaces\n"); got != "too many spaces" {
		t.Errorf("CleanText = %q", got)
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("short", 50); got != "short" {
		t.Errorf("TruncateText left short text alone: %q", got)
	}
	got := TruncateText("cut at a word boundary somewhere here", 20)
	if len(got) > 20 {
		t.Errorf("TruncateText too long: %q", got)
	}
	if got != "cut at a word" {
		t.Errorf("TruncateText = %q, want %q", got, "cut at a word")
	}
}

func TestTruncateTextMultibyte(t *testing.T) {
	// No spaces, multibyte runes spanning the cut point.
	text := "Präzisionsmessgeräteüberwachung"
	got := TruncateText(text, 10)
	if !utf8.ValidString(got) {
		t.Errorf("TruncateText produced invalid UTF-8: %q", got)
	}
	if got != string([]rune(text)[:10]) {
		t.Errorf("TruncateText = %q, want the first 10 runes", got)
	}

	if got := TruncateText("héllo wörld", 50); got != "héllo wörld" {
		t.Errorf("TruncateText altered text under the limit: %q", got)
	}
}
