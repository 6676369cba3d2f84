package analyzer

import "github.com/ai-visibility/backend/scoring"

// PageReport is the merged scoring output for one page: two parallel
// 0-100 scores with their category breakdowns and the prioritized fixes.
type PageReport struct {
	URL                    string             `json:"url"`
	ConventionalScore      int                `json:"overallConventionalScore"`
	AnswerEngineScore      int                `json:"overallAnswerEngineScore"`
	ConventionalBreakdown  map[string]int     `json:"conventionalBreakdown"`
	AnswerEngineBreakdown  map[string]int     `json:"answerEngineBreakdown"`
	ConventionalCategories []scoring.Category `json:"conventionalCategories"`
	AnswerEngineCategories []scoring.Category `json:"answerEngineCategories"`
	Recommendations        []string           `json:"recommendations"`
}
