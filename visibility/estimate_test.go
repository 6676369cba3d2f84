package visibility

import (
	"math"
	"testing"

	"github.com/ai-visibility/backend/scoring"
)

func answerEngineCategories(points int) []scoring.Category {
	names := []string{"structure", "authority", "schema", "contentQuality", "quotability"}
	categories := make([]scoring.Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, scoring.Category{
			Name: name,
			Items: []scoring.ScoreItem{
				{Name: "combined", Points: points, MaxPoints: 20},
			},
		})
	}
	return categories
}

func TestEstimateProfileWeightsSumToOne(t *testing.T) {
	for _, p := range estimateProfiles {
		total := 0.0
		for _, w := range p.weights {
			total += w
		}
		if math.Abs(total-1.0) > 1e-9 {
			t.Errorf("profile %q weights sum to %v, want 1", p.id, total)
		}
	}
}

func TestEstimateBounds(t *testing.T) {
	t.Run("PerfectCategories", func(t *testing.T) {
		report := Estimate("example.com", answerEngineCategories(20))
		if report.Overall != 100 {
			t.Errorf("overall = %d, want 100 for full categories", report.Overall)
		}
		for id, score := range report.PlatformScores {
			if score != 100 {
				t.Errorf("profile %q = %d, want 100", id, score)
			}
		}
	})

	t.Run("ZeroCategories", func(t *testing.T) {
		report := Estimate("example.com", answerEngineCategories(0))
		if report.Overall != 0 {
			t.Errorf("overall = %d, want 0 for empty categories", report.Overall)
		}
	})
}

func TestEstimateIsTagged(t *testing.T) {
	report := Estimate("example.com", answerEngineCategories(10))

	if !report.IsEstimate {
		t.Error("estimated report must be tagged IsEstimate")
	}
	if report.Explanation == "" {
		t.Error("estimated report must explain itself")
	}
	if len(report.PlatformScores) != len(estimateProfiles) {
		t.Errorf("got %d profile scores, want %d", len(report.PlatformScores), len(estimateProfiles))
	}
}

func TestEstimateNormalizesDomain(t *testing.T) {
	// Estimated and measured reports must carry the same domain shape.
	report := Estimate("https://www.Example.com/pricing", answerEngineCategories(10))
	if report.Domain != "example.com" {
		t.Errorf("Domain = %q, want %q", report.Domain, "example.com")
	}
}

func TestEstimateTracksCategoryQuality(t *testing.T) {
	weak := Estimate("example.com", answerEngineCategories(5))
	strong := Estimate("example.com", answerEngineCategories(15))
	if weak.Overall >= strong.Overall {
		t.Errorf("weak page estimated %d, strong page %d; estimate should track category quality",
			weak.Overall, strong.Overall)
	}
}
