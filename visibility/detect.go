package visibility

import (
	"regexp"
	"strings"

	"github.com/ai-visibility/backend/utils"
)

// Proper-noun-like brand tokens: one or two capitalized words.
var competitorRe = regexp.MustCompile(`\b[A-Z][A-Za-z0-9]{2,}(?: [A-Z][A-Za-z0-9]+)?\b`)

// Capitalized words that are almost always sentence furniture, not brands.
var competitorNoise = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"However": true, "Here": true, "There": true, "When": true, "While": true,
	"Some": true, "Many": true, "Most": true, "Overall": true, "Finally": true,
	"First": true, "Second": true, "Third": true, "Additionally": true,
	"For": true, "Its": true, "Their": true, "Based": true, "Both": true,
	"You": true, "Your": true, "They": true, "And": true, "But": true,
	"What": true, "Why": true, "How": true, "Each": true, "Other": true,
	"Another": true, "Popular": true, "Best": true, "Top": true,
}

const maxCompetitors = 10

// Classify runs the citation/mention detectors against a single answer,
// in priority order: structured citation, literal domain, brand token.
// A cited answer is considered domain-visible too (citation is strictly
// stronger evidence), but a bare brand echo never satisfies the stronger
// detectors.
func Classify(answer *Answer, domain string) Result {
	result := Result{
		Platform: answer.Platform,
		Query:    answer.Query,
		Checked:  true,
	}

	target := utils.NormalizeDomain(domain)
	if target == "" {
		return result
	}

	for _, c := range answer.Citations {
		ref := c.Domain
		if ref == "" {
			ref = c.URL
		}
		if utils.SameDomain(ref, target) {
			result.CitationPresence = true
			break
		}
	}

	lowerText := strings.ToLower(answer.Text)
	if strings.Contains(lowerText, target) {
		result.DomainVisibility = true
		pos := strings.Index(lowerText, target)
		result.MentionPosition = &pos
		result.MentionCount = strings.Count(lowerText, target)
	}

	brand := utils.BrandToken(target)
	if brand != "" {
		brandRe, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(brand) + `\b`)
		if err == nil {
			if matches := brandRe.FindAllStringIndex(answer.Text, -1); len(matches) > 0 {
				result.BrandRecognition = true
				if result.MentionPosition == nil {
					pos := matches[0][0]
					result.MentionPosition = &pos
					result.MentionCount = len(matches)
				}
			}
		}
	}

	// Being cited counts as domain visibility for scoring purposes.
	if result.CitationPresence {
		result.DomainVisibility = true
	}

	result.Competitors = extractCompetitors(answer.Text, brand)
	return result
}

// extractCompetitors collects other proper-noun-like brand tokens named in
// the answer, excluding the target's own brand token.
func extractCompetitors(text, targetBrand string) []string {
	matches := competitorRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	lowerBrand := strings.ToLower(targetBrand)
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		first := strings.Fields(m)[0]
		if competitorNoise[first] {
			continue
		}
		lower := strings.ToLower(m)
		if lowerBrand != "" && strings.Contains(lower, lowerBrand) {
			continue
		}
		if seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, m)
		if len(out) == maxCompetitors {
			break
		}
	}
	return out
}
