package scoring

import (
	"fmt"

	"github.com/ai-visibility/backend/signals"
)

// ScoreConventional grades the page for traditional search engines:
// five categories of 20 points each.
func ScoreConventional(sig signals.SignalSet) []Category {
	return []Category{
		scoreCategory("technical", technicalRules, sig),
		scoreCategory("content", contentRules, sig),
		scoreCategory("meta", metaRules, sig),
		scoreCategory("performance", performanceRules, sig),
		scoreCategory("accessibility", accessibilityRules, sig),
	}
}

var technicalRules = []rule{
	{"HTTPS", 8, func(s signals.SignalSet) (int, string, string) {
		if s.HTTPS {
			return 8, "Page is served over HTTPS", ""
		}
		return 0, "Page is not served over HTTPS", "Serve the page over HTTPS"
	}},
	{"Structured data", 6, func(s signals.SignalSet) (int, string, string) {
		if s.HasSchema {
			return 6, "Structured data markup detected", ""
		}
		return 0, "No structured data markup found", "Add structured data markup (JSON-LD) describing the page"
	}},
	{"Canonical URL", 3, func(s signals.SignalSet) (int, string, string) {
		if s.HasCanonical {
			return 3, "Canonical link element present", ""
		}
		return 0, "No canonical link element", "Declare a canonical link element to avoid duplicate-content issues"
	}},
	{"Clean URL", 3, func(s signals.SignalSet) (int, string, string) {
		if s.CleanURL {
			return 3, "URL is free of query strings and fragments", ""
		}
		return 1, "URL contains query strings or fragments", "Use clean, descriptive URLs without query parameters for indexable pages"
	}},
}

var contentRules = []rule{
	{"Content length", 10, func(s signals.SignalSet) (int, string, string) {
		reason := fmt.Sprintf("Page has %d words", s.WordCount)
		switch {
		case s.WordCount >= 1500:
			return 10, reason, ""
		case s.WordCount >= 600:
			return 7, reason, "Expand the content toward 1,500+ words of substantive coverage"
		case s.WordCount >= 300:
			return 4, reason, "Add more content (aim for at least 600 words)"
		case s.WordCount > 0:
			return 2, reason, "Page content is thin; aim for at least 300 words"
		}
		return 0, "No textual content detected", "Add substantive textual content to the page"
	}},
	{"Images present", 4, func(s signals.SignalSet) (int, string, string) {
		if s.ImageCount > 0 {
			return 4, fmt.Sprintf("Page includes %d image(s)", s.ImageCount), ""
		}
		return 0, "No images on the page", "Add relevant images to support the content"
	}},
	{"Image alt coverage", 6, func(s signals.SignalSet) (int, string, string) {
		if s.ImageCount == 0 {
			return 6, "No images require alt text", ""
		}
		reason := fmt.Sprintf("%d of %d images have alt text", s.ImagesWithAlt, s.ImageCount)
		switch {
		case s.ImagesWithAlt == s.ImageCount:
			return 6, reason, ""
		case s.ImagesWithAlt*2 >= s.ImageCount:
			return 4, reason, "Add alt text to the remaining images"
		case s.ImagesWithAlt > 0:
			return 2, reason, "Add alt text to all images"
		}
		return 0, reason, "Add alt text to all images"
	}},
}

var metaRules = []rule{
	{"Title tag", 8, func(s signals.SignalSet) (int, string, string) {
		reason := fmt.Sprintf("Title is %d characters", s.TitleLength)
		switch {
		case s.TitleLength >= 50 && s.TitleLength <= 60:
			return 8, reason, ""
		case s.TitleLength >= 30 && s.TitleLength <= 70:
			return 6, reason, "Tune the title tag toward 50-60 characters"
		case s.TitleLength > 0:
			return 3, reason, "Rewrite the title tag to 50-60 descriptive characters"
		}
		return 0, "Title tag is missing", "Add a title tag of 50-60 descriptive characters"
	}},
	{"Meta description", 8, func(s signals.SignalSet) (int, string, string) {
		reason := fmt.Sprintf("Meta description is %d characters", s.MetaDescriptionLength)
		switch {
		case s.MetaDescriptionLength >= 120 && s.MetaDescriptionLength <= 160:
			return 8, reason, ""
		case s.MetaDescriptionLength >= 80 && s.MetaDescriptionLength <= 180:
			return 6, reason, "Tune the meta description toward 120-160 characters"
		case s.MetaDescriptionLength > 0:
			return 3, reason, "Rewrite the meta description to 120-160 compelling characters"
		}
		return 0, "Meta description is missing", "Add a meta description of 120-160 characters"
	}},
	{"H1 heading", 4, func(s signals.SignalSet) (int, string, string) {
		switch {
		case s.H1Count == 1:
			return 4, "Page has exactly one H1 heading", ""
		case s.H1Count > 1:
			return 2, fmt.Sprintf("Page has %d H1 headings", s.H1Count), "Use a single H1 heading per page"
		}
		return 0, "No H1 heading found", "Add one H1 heading describing the page"
	}},
}

var performanceRules = []rule{
	{"Load time", 10, func(s signals.SignalSet) (int, string, string) {
		reason := fmt.Sprintf("Page loaded in %dms", s.LoadTimeMS)
		switch {
		case s.LoadTimeMS <= 800:
			return 10, reason, ""
		case s.LoadTimeMS <= 1500:
			return 8, reason, "Fine-tune server response time and resource delivery"
		case s.LoadTimeMS <= 2500:
			return 5, reason, "Reduce load time below 1.5s (optimize server response and resources)"
		case s.LoadTimeMS <= 4000:
			return 2, reason, "Load time is slow; use a CDN and trim render-blocking resources"
		}
		return 0, reason, "Load time is critically slow (>4s); overhaul page delivery"
	}},
	{"Page size", 10, func(s signals.SignalSet) (int, string, string) {
		sizeKB := s.ByteSize / 1024
		reason := fmt.Sprintf("Page weighs %dKB", sizeKB)
		switch {
		case sizeKB <= 512:
			return 10, reason, ""
		case sizeKB <= 1024:
			return 8, reason, "Compress images and minify assets to get under 512KB"
		case sizeKB <= 2048:
			return 5, reason, "Page is heavy (>1MB); optimize images and lazy-load non-critical resources"
		case sizeKB <= 5120:
			return 2, reason, "Page is very heavy (>2MB); remove or defer large resources"
		}
		return 0, reason, "Page is extremely heavy (>5MB); overhaul its resource budget"
	}},
}

var accessibilityRules = []rule{
	{"Image alt text", 8, func(s signals.SignalSet) (int, string, string) {
		if s.ImageCount == 0 {
			return 8, "No images require alt text", ""
		}
		reason := fmt.Sprintf("%d of %d images have alt text", s.ImagesWithAlt, s.ImageCount)
		switch {
		case s.ImagesWithAlt == s.ImageCount:
			return 8, reason, ""
		case s.ImagesWithAlt*2 >= s.ImageCount:
			return 5, reason, "Add alt text to the remaining images"
		case s.ImagesWithAlt > 0:
			return 3, reason, "Most images lack alt text; describe every image"
		}
		return 0, reason, "Add alt text to all images"
	}},
	{"Mobile viewport", 6, func(s signals.SignalSet) (int, string, string) {
		if s.HasViewport {
			return 6, "Responsive viewport meta tag present", ""
		}
		return 0, "No responsive viewport meta tag", "Add <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">"
	}},
	{"Heading structure", 6, func(s signals.SignalSet) (int, string, string) {
		switch {
		case s.H1Count > 0 && s.H2Count > 0:
			return 6, "Headings form a proper hierarchy", ""
		case s.H1Count > 0:
			return 4, "Page has an H1 but no H2 sections", "Break the content into H2 sections"
		case s.H2Count > 0:
			return 2, "Page has H2 sections but no H1", "Add an H1 heading above the section headings"
		}
		return 0, "Page has no headings", "Structure the content with H1 and H2 headings"
	}},
}
