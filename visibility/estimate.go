package visibility

import (
	"fmt"
	"math"

	"github.com/ai-visibility/backend/scoring"
	"github.com/ai-visibility/backend/utils"
)

// estimateProfile simulates one style of answer engine as a fixed linear
// combination of the answer-engine category scores. The weights are
// policy, not derived at runtime, and each row sums to 1.
type estimateProfile struct {
	id      string
	weights map[string]float64
}

var estimateProfiles = []estimateProfile{
	// Citation-style engines reward liftable, attributed content.
	{"citation-style", map[string]float64{
		"quotability":    0.35,
		"authority":      0.30,
		"contentQuality": 0.20,
		"structure":      0.10,
		"schema":         0.05,
	}},
	// Conversational assistants lean on depth and phrasing.
	{"conversational", map[string]float64{
		"contentQuality": 0.30,
		"quotability":    0.25,
		"authority":      0.20,
		"structure":      0.15,
		"schema":         0.10,
	}},
	// Structured-answer engines parse markup first.
	{"structured-answer", map[string]float64{
		"structure":      0.30,
		"schema":         0.30,
		"contentQuality": 0.20,
		"quotability":    0.10,
		"authority":      0.10,
	}},
}

// Estimate derives approximate platform visibility from the answer-engine
// category scores alone, for when no platform could be checked. The result
// is tagged IsEstimate so callers can never present it as a measurement.
func Estimate(domain string, categories []scoring.Category) *Report {
	domain = utils.NormalizeDomain(domain)

	pct := make(map[string]float64, len(categories))
	for _, c := range categories {
		if max := c.Max(); max > 0 {
			pct[c.Name] = 100 * float64(c.Score()) / float64(max)
		}
	}

	scores := make(map[string]int, len(estimateProfiles))
	for _, p := range estimateProfiles {
		total := 0.0
		for category, weight := range p.weights {
			total += weight * pct[category]
		}
		scores[p.id] = int(math.Round(total))
	}

	return &Report{
		Domain:         domain,
		PlatformScores: scores,
		Overall:        OverallScore(scores),
		IsEstimate:     true,
		Explanation: fmt.Sprintf(
			"No answer platform could be queried for %s; these scores are estimated from the page's answer-engine readiness, not from measured citations.",
			domain),
	}
}
