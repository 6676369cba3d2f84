package scoring

import (
	"fmt"

	"github.com/ai-visibility/backend/signals"
)

// ScoreAnswerEngine grades the page for AI answer engines: how likely its
// content is to be lifted, cited, or summarized. Five categories of 20
// points each, parallel to the conventional scorer.
func ScoreAnswerEngine(sig signals.SignalSet) []Category {
	return []Category{
		scoreCategory("structure", structureRules, sig),
		scoreCategory("authority", authorityRules, sig),
		scoreCategory("schema", schemaRules, sig),
		scoreCategory("contentQuality", contentQualityRules, sig),
		scoreCategory("quotability", quotabilityRules, sig),
	}
}

var structureRules = []rule{
	{"Section headings", 6, func(s signals.SignalSet) (int, string, string) {
		reason := fmt.Sprintf("Page has %d H2 sections", s.H2Count)
		switch {
		case s.H2Count >= 3:
			return 6, reason, ""
		case s.H2Count >= 1:
			return 4, reason, "Split the content into at least three H2 sections"
		}
		return 0, "No H2 sections found", "Break the content into H2 sections answer engines can navigate"
	}},
	{"Lists", 4, func(s signals.SignalSet) (int, string, string) {
		reason := fmt.Sprintf("Page has %d list items", s.ListItemCount)
		switch {
		case s.ListItemCount >= 5:
			return 4, reason, ""
		case s.ListItemCount >= 1:
			return 2, reason, "Use bullet or numbered lists for scannable key points"
		}
		return 0, "No lists found", "Present key points as bullet or numbered lists"
	}},
	{"FAQ section", 6, func(s signals.SignalSet) (int, string, string) {
		if s.HasFAQSection {
			return 6, "FAQ section detected", ""
		}
		return 0, "No FAQ section detected", "Add an FAQ section answering common buyer questions"
	}},
	{"Question headings", 4, func(s signals.SignalSet) (int, string, string) {
		reason := fmt.Sprintf("%d headings are phrased as questions", s.QuestionHeadings)
		switch {
		case s.QuestionHeadings >= 2:
			return 4, reason, ""
		case s.QuestionHeadings >= 1:
			return 2, reason, "Phrase more section headings as the questions users actually ask"
		}
		return 0, "No question-style headings", "Phrase section headings as the questions users ask assistants"
	}},
}

var authorityRules = []rule{
	{"Author byline", 8, func(s signals.SignalSet) (int, string, string) {
		if s.HasAuthorByline {
			return 8, "Author byline detected", ""
		}
		return 0, "No author byline found", "Attribute the content to a named author with credentials"
	}},
	{"Freshness signals", 4, func(s signals.SignalSet) (int, string, string) {
		if s.HasDateMarkers {
			return 4, "Published/updated date markers present", ""
		}
		return 0, "No published or updated dates found", "Show visible published and last-updated dates"
	}},
	{"External references", 8, func(s signals.SignalSet) (int, string, string) {
		reason := fmt.Sprintf("Page links out to %d external sources", s.ExternalLinks)
		switch {
		case s.ExternalLinks >= 3:
			return 8, reason, ""
		case s.ExternalLinks >= 1:
			return 5, reason, "Cite at least three authoritative external sources"
		}
		return 0, "No external references", "Cite authoritative external sources to back up claims"
	}},
}

var schemaRules = []rule{
	{"Structured data present", 8, func(s signals.SignalSet) (int, string, string) {
		if s.HasSchema {
			return 8, "Structured data markup detected", ""
		}
		return 0, "No structured data markup found", "Add JSON-LD structured data so answer engines can parse the page"
	}},
	{"FAQ or HowTo schema", 6, func(s signals.SignalSet) (int, string, string) {
		if s.HasFAQSchema || s.HasHowToSchema {
			return 6, "FAQPage/HowTo schema detected", ""
		}
		return 0, "No FAQPage or HowTo schema", "Mark up question/answer or step content with FAQPage or HowTo schema"
	}},
	{"Article schema", 6, func(s signals.SignalSet) (int, string, string) {
		if s.HasArticleSchema {
			return 6, "Article schema detected", ""
		}
		return 0, "No Article schema", "Mark up the page with Article schema including author and dates"
	}},
}

var contentQualityRules = []rule{
	{"Content depth", 8, func(s signals.SignalSet) (int, string, string) {
		reason := fmt.Sprintf("Page has %d words", s.WordCount)
		switch {
		case s.WordCount >= 1000:
			return 8, reason, ""
		case s.WordCount >= 500:
			return 6, reason, "Deepen the coverage toward 1,000+ words"
		case s.WordCount >= 300:
			return 4, reason, "Expand the content; answer engines prefer thorough coverage"
		case s.WordCount > 0:
			return 2, reason, "Content is too thin for an answer engine to draw from"
		}
		return 0, "No textual content detected", "Add substantive textual content to the page"
	}},
	{"Sentence brevity", 12, func(s signals.SignalSet) (int, string, string) {
		if s.SentenceCount == 0 {
			return 0, "No sentences detected", "Add prose content written in complete sentences"
		}
		reason := fmt.Sprintf("Average sentence length is %.1f words", s.AvgSentenceLength)
		switch {
		case s.AvgSentenceLength <= 20:
			return 12, reason, ""
		case s.AvgSentenceLength <= 25:
			return 9, reason, "Shorten sentences toward a 20-word average"
		case s.AvgSentenceLength <= 30:
			return 5, reason, "Sentences run long; break them up for extractability"
		}
		return 0, reason, "Rewrite with much shorter sentences (under 20 words on average) so answers can quote them"
	}},
}

var quotabilityRules = []rule{
	{"Quotable sentences", 12, func(s signals.SignalSet) (int, string, string) {
		reason := fmt.Sprintf("%d sentences are in the quotable 15-60 word band", s.QuotableSentences)
		switch {
		case s.QuotableSentences >= 10:
			return 12, reason, ""
		case s.QuotableSentences >= 5:
			return 9, reason, "Write more self-contained 15-60 word statements"
		case s.QuotableSentences >= 2:
			return 6, reason, "Add standalone sentences that answer a question in one breath"
		case s.QuotableSentences >= 1:
			return 3, reason, "Most sentences are not liftable; write complete, self-contained statements"
		}
		return 0, "No quotable sentences found", "Write self-contained 15-60 word statements an engine can quote verbatim"
	}},
	{"Concise summary", 4, func(s signals.SignalSet) (int, string, string) {
		switch {
		case s.MetaDescriptionLength >= 50 && s.MetaDescriptionLength <= 170:
			return 4, "Page carries a concise summary description", ""
		case s.MetaDescriptionLength > 0:
			return 2, "Summary description is present but poorly sized", "Provide a 50-170 character summary an engine can reuse"
		}
		return 0, "No summary description", "Add a concise summary description of the page"
	}},
	{"Citable statistics", 4, func(s signals.SignalSet) (int, string, string) {
		if s.HasStatistics {
			return 4, "Content includes citable figures", ""
		}
		return 0, "No concrete figures in the content", "Include concrete numbers and statistics engines like to cite"
	}},
}
