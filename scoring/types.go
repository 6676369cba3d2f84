package scoring

import "github.com/ai-visibility/backend/signals"

// Status classifies a rule check outcome.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
)

// ScoreItem is one rule check result. Points never exceed MaxPoints and a
// non-passing item always carries a remediation hint.
type ScoreItem struct {
	Name        string `json:"name"`
	Points      int    `json:"pointsAwarded"`
	MaxPoints   int    `json:"pointsMax"`
	Status      Status `json:"status"`
	Reason      string `json:"reason"`
	Remediation string `json:"remediation,omitempty"`
}

// Category is an ordered list of score items whose maxima sum to the fixed
// 20-point category budget.
type Category struct {
	Name  string      `json:"name"`
	Items []ScoreItem `json:"items"`
}

// Score returns the points awarded in this category (0-20).
func (c Category) Score() int {
	total := 0
	for _, item := range c.Items {
		total += item.Points
	}
	return total
}

// Max returns the category's points budget.
func (c Category) Max() int {
	total := 0
	for _, item := range c.Items {
		total += item.MaxPoints
	}
	return total
}

// rule is a single independent check against the signal set. eval returns
// awarded points, a reason, and a remediation hint (empty when fully
// passing). Rules never read each other's output.
type rule struct {
	name string
	max  int
	eval func(signals.SignalSet) (int, string, string)
}

// scoreCategory runs a rule table and assembles the category snapshot.
func scoreCategory(name string, rules []rule, sig signals.SignalSet) Category {
	items := make([]ScoreItem, 0, len(rules))
	for _, r := range rules {
		points, reason, remediation := r.eval(sig)
		if points < 0 {
			points = 0
		}
		if points > r.max {
			points = r.max
		}
		status := StatusFail
		switch {
		case points == r.max:
			status = StatusPass
			remediation = ""
		case points > 0:
			status = StatusWarning
		}
		items = append(items, ScoreItem{
			Name:        r.name,
			Points:      points,
			MaxPoints:   r.max,
			Status:      status,
			Reason:      reason,
			Remediation: remediation,
		})
	}
	return Category{Name: name, Items: items}
}
