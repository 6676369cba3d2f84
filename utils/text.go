package utils

import (
	"regexp"
	"strings"
)

// Common stop words for text processing
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "will": true, "with": true,
	"this": true, "but": true, "they": true, "have": true, "had": true,
	"were": true, "been": true, "their": true, "she": true, "which": true, "do": true,
	"or": true, "if": true, "not": true, "what": true, "there": true, "can": true,
	"your": true, "you": true, "our": true, "how": true, "why": true, "when": true,
}

var (
	spaceRe    = regexp.MustCompile(`\s+`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
)

// CleanText removes extra whitespace and normalizes text
func CleanText(text string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// SplitSentences splits text on terminal punctuation, dropping empty parts.
func SplitSentences(text string) []string {
	parts := sentenceRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// WordsLongerThan returns up to limit words from text whose length exceeds
// minLen, stripped of edge punctuation and stop words.
func WordsLongerThan(text string, minLen, limit int) []string {
	words := strings.Fields(text)
	out := make([]string, 0, limit)
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"()[]")
		if len(w) > minLen && !stopWords[strings.ToLower(w)] {
			out = append(out, w)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// TruncateText truncates text to a maximum rune count, preserving word
// boundaries. Cutting on runes keeps multibyte text valid UTF-8.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	truncated := string(runes[:maxLength])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
		truncated = truncated[:lastSpace]
	}
	return truncated
}

// NormalizeDomain strips scheme, www. prefix, path, port and case from a
// URL or host string so two references to the same domain compare equal.
func NormalizeDomain(raw string) string {
	d := strings.TrimSpace(strings.ToLower(raw))
	if idx := strings.Index(d, "://"); idx >= 0 {
		d = d[idx+3:]
	}
	if idx := strings.IndexAny(d, "/?#"); idx >= 0 {
		d = d[:idx]
	}
	if idx := strings.Index(d, ":"); idx >= 0 {
		d = d[:idx]
	}
	return strings.TrimPrefix(d, "www.")
}

// BrandToken derives the brand-name token from a domain: the second-level
// label, e.g. "example" from "www.example.com".
func BrandToken(domain string) string {
	d := NormalizeDomain(domain)
	if d == "" {
		return ""
	}
	return strings.Split(d, ".")[0]
}

// SameDomain reports whether candidate matches target exactly or as a
// subdomain, after normalization.
func SameDomain(candidate, target string) bool {
	c, t := NormalizeDomain(candidate), NormalizeDomain(target)
	if c == "" || t == "" {
		return false
	}
	return c == t || strings.HasSuffix(c, "."+t)
}
