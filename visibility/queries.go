package visibility

import (
	"strings"

	"github.com/ai-visibility/backend/models"
	"github.com/ai-visibility/backend/utils"
)

const maxQueries = 5

// SynthesizeQueries derives the short natural-language phrases a buyer
// might ask an assistant, from the page's title, first H1 and meta
// description tokens. Deterministic, deduplicated, never empty: a page
// with no usable tokens falls back to its bare title.
func SynthesizeQueries(page *models.PageRecord) []string {
	if page == nil {
		return nil
	}

	var candidates []string

	titleWords := utils.WordsLongerThan(page.Title, 3, 3)
	if len(titleWords) > 0 {
		topic := strings.Join(titleWords, " ")
		candidates = append(candidates,
			"best "+topic,
			"what is "+topic,
		)
	}

	if len(page.H1) > 0 {
		h1 := utils.CleanText(utils.TruncateText(page.H1[0], 50))
		if h1 != "" {
			candidates = append(candidates, h1)
		}
	}

	metaWords := utils.WordsLongerThan(page.MetaDescription, 4, 2)
	if len(metaWords) > 0 {
		candidates = append(candidates, "top "+strings.Join(metaWords, " "))
	}

	if len(titleWords) > 0 {
		candidates = append(candidates, strings.Join(titleWords, " ")+" alternatives")
	}

	queries := make([]string, 0, maxQueries)
	seen := make(map[string]bool, maxQueries)
	for _, q := range candidates {
		q = utils.CleanText(q)
		if q == "" || len(strings.Fields(q)) > 8 {
			continue
		}
		key := strings.ToLower(q)
		if seen[key] {
			continue
		}
		seen[key] = true
		queries = append(queries, q)
		if len(queries) == maxQueries {
			break
		}
	}

	if len(queries) == 0 && strings.TrimSpace(page.Title) != "" {
		queries = append(queries, utils.CleanText(page.Title))
	}
	return queries
}
