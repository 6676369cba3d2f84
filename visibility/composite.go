package visibility

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNoCheckedQueries signals that every (platform, query) pair failed, so
// the caller must fall back to an estimate instead of reporting a zero.
var ErrNoCheckedQueries = errors.New("no platform queries could be checked")

// factors are the per-query sub-scores before cross-query averaging.
type factors struct {
	citation   float64
	domain     float64
	brand      float64
	prominence float64
	depth      float64
}

// queryFactors applies the fixed-weight policy to one checked result.
// Citation dominates: a cited query takes the full 40 and contributes
// nothing through the weaker domain factor; a bare brand echo only counts
// when it is the sole signal.
func queryFactors(r Result) factors {
	var f factors
	if r.CitationPresence {
		f.citation = maxCitationPoints
	} else if r.DomainVisibility {
		f.domain = maxDomainPoints
	} else if r.BrandRecognition {
		f.brand = maxBrandPoints
	}

	if r.MentionPosition != nil {
		switch pos := *r.MentionPosition; {
		case pos < 50:
			f.prominence = maxProminencePoints
		case pos < 150:
			f.prominence = 9
		case pos < 300:
			f.prominence = 6
		default:
			f.prominence = 3
		}
	}

	switch {
	case r.MentionCount >= 3:
		f.depth = maxDepthPoints
	case r.MentionCount == 2:
		f.depth = 6
	case r.MentionCount == 1:
		f.depth = 3
	}
	return f
}

// Score averages each factor over the checked results, sums the averages
// and clamps to 100. Unchecked results are excluded entirely; if nothing
// was checked it returns ErrNoCheckedQueries rather than a silent zero.
func Score(results []Result) (Breakdown, int, error) {
	var sum factors
	checked := 0
	for _, r := range results {
		if !r.Checked {
			continue
		}
		f := queryFactors(r)
		sum.citation += f.citation
		sum.domain += f.domain
		sum.brand += f.brand
		sum.prominence += f.prominence
		sum.depth += f.depth
		checked++
	}
	if checked == 0 {
		return Breakdown{}, 0, ErrNoCheckedQueries
	}

	n := float64(checked)
	breakdown := Breakdown{
		CitationPresence:  round1(sum.citation / n),
		DomainVisibility:  round1(sum.domain / n),
		BrandRecognition:  round1(sum.brand / n),
		MentionProminence: round1(sum.prominence / n),
		MentionDepth:      round1(sum.depth / n),
	}
	total := breakdown.CitationPresence + breakdown.DomainVisibility +
		breakdown.BrandRecognition + breakdown.MentionProminence + breakdown.MentionDepth
	if total > 100 {
		total = 100
	}
	return breakdown, int(math.Round(total)), nil
}

// PlatformScores computes the composite per platform. Platforms with zero
// checked queries are omitted.
func PlatformScores(results []Result) map[string]int {
	byPlatform := make(map[string][]Result)
	for _, r := range results {
		byPlatform[r.Platform] = append(byPlatform[r.Platform], r)
	}
	scores := make(map[string]int, len(byPlatform))
	for id, rs := range byPlatform {
		if _, score, err := Score(rs); err == nil {
			scores[id] = score
		}
	}
	return scores
}

// OverallScore is the mean across platforms that had at least one checked
// query.
func OverallScore(platformScores map[string]int) int {
	if len(platformScores) == 0 {
		return 0
	}
	total := 0
	for _, s := range platformScores {
		total += s
	}
	return int(math.Round(float64(total) / float64(len(platformScores))))
}

// CompetitorSet is the deduplicated union of competitors named across all
// checked results, sorted for stable output.
func CompetitorSet(results []Result) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range results {
		for _, c := range r.Competitors {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Explain produces the short natural-language summary for a measured
// report.
func Explain(domain string, results []Result) string {
	checked, cited, visible, brandOnly := 0, 0, 0, 0
	for _, r := range results {
		if !r.Checked {
			continue
		}
		checked++
		switch {
		case r.CitationPresence:
			cited++
		case r.DomainVisibility:
			visible++
		case r.BrandRecognition:
			brandOnly++
		}
	}
	switch {
	case checked == 0:
		return fmt.Sprintf("No answer platform could be checked for %s.", domain)
	case cited > 0:
		return fmt.Sprintf("%s was cited as a source in %d of %d checked answers and mentioned in %d more.", domain, cited, checked, visible+brandOnly)
	case visible > 0:
		return fmt.Sprintf("%s appeared in %d of %d checked answers, but was never cited as a source.", domain, visible, checked)
	case brandOnly > 0:
		return fmt.Sprintf("Only the %s brand name surfaced in %d of %d checked answers; the domain itself was never referenced.", domain, brandOnly, checked)
	}
	return fmt.Sprintf("%s did not appear in any of the %d checked answers.", domain, checked)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
