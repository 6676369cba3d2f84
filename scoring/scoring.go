package scoring

import (
	"math"
	"sort"
)

// Overall collapses a scorer's categories into the 0-100 score:
// round(100 * points awarded / points available). With the fixed 5x20
// budget the denominator is always 100.
func Overall(categories []Category) int {
	awarded, max := 0, 0
	for _, c := range categories {
		awarded += c.Score()
		max += c.Max()
	}
	if max == 0 {
		return 0
	}
	return int(math.Round(100 * float64(awarded) / float64(max)))
}

// Breakdown maps each category name to its rounded score (0-20).
func Breakdown(categories []Category) map[string]int {
	out := make(map[string]int, len(categories))
	for _, c := range categories {
		out[c.Name] = c.Score()
	}
	return out
}

// TopRecommendations flattens all score items across the given categories
// (typically both scorers' output concatenated), keeps non-passing items
// with a remediation, and returns the `limit` remediation strings that
// recover the most points, biggest loss first. Ties keep declaration order.
func TopRecommendations(categories []Category, limit int) []string {
	type loss struct {
		points      int
		remediation string
	}
	losses := make([]loss, 0, 16)
	for _, c := range categories {
		for _, item := range c.Items {
			if item.Status == StatusPass || item.Remediation == "" {
				continue
			}
			losses = append(losses, loss{item.MaxPoints - item.Points, item.Remediation})
		}
	}
	sort.SliceStable(losses, func(i, j int) bool {
		return losses[i].points > losses[j].points
	})
	if limit > len(losses) {
		limit = len(losses)
	}
	out := make([]string, 0, limit)
	for _, l := range losses[:limit] {
		out = append(out, l.remediation)
	}
	return out
}
