package signals

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ai-visibility/backend/models"
	"github.com/ai-visibility/backend/utils"
)

// SignalSet is the flat indicator set the category scorers consume. Every
// field has a well-defined negative value, so extraction is total: a page
// with missing data scores the corresponding rules at zero instead of
// failing.
type SignalSet struct {
	HTTPS                 bool
	Title                 string
	TitleLength           int
	MetaDescriptionLength int
	H1Count               int
	H2Count               int
	WordCount             int
	ImageCount            int
	ImagesWithAlt         int
	InternalLinks         int
	ExternalLinks         int
	LoadTimeMS            int
	ByteSize              int
	CleanURL              bool

	HasSchema        bool
	HasFAQSchema     bool
	HasArticleSchema bool
	HasHowToSchema   bool

	HasFAQSection   bool
	HasAuthorByline bool
	HasDateMarkers  bool
	HasViewport     bool
	HasCanonical    bool

	SentenceCount     int
	AvgSentenceLength float64
	QuotableSentences int
	ListItemCount     int
	QuestionHeadings  int
	HasStatistics     bool
}

var (
	faqSectionRe = regexp.MustCompile(`(?i)\bfaq\b|frequently asked|common questions`)
	bylineRe     = regexp.MustCompile(`(?i)written by |reviewed by |\bauthor\b|\bbyline\b`)
	dateRe       = regexp.MustCompile(`(?i)published|updated|last modified|datePublished|dateModified`)
	statisticRe  = regexp.MustCompile(`\d+(\.\d+)?%|\b\d{2,}\b`)
	questionRe   = regexp.MustCompile(`(?i)^(how|what|why|when|where|who|which|can|does|do|is|are|should)\b`)
	ldJSONRe     = regexp.MustCompile(`(?i)application/ld\+json|itemscope|itemtype`)
)

// Quotable sentences fall in this word-count band: long enough to stand
// alone, short enough for an answer engine to lift verbatim.
const (
	quotableMinWords = 15
	quotableMaxWords = 60
)

// Extract converts a page record into the signal set. Pure and total:
// the same record always yields the same signals, and absent data yields
// the negative signal rather than an error.
func Extract(page *models.PageRecord) SignalSet {
	var s SignalSet
	if page == nil {
		return s
	}

	s.HTTPS = strings.HasPrefix(strings.ToLower(page.URL), "https://")
	s.Title = page.Title
	s.TitleLength = len(page.Title)
	s.MetaDescriptionLength = len(page.MetaDescription)
	s.H1Count = len(page.H1)
	s.H2Count = len(page.H2)
	s.WordCount = page.WordCount
	s.LoadTimeMS = page.LoadTimeMS
	s.ByteSize = page.ByteSize
	s.CleanURL = !strings.ContainsAny(page.URL, "?#")

	s.ImageCount = len(page.Images)
	for _, img := range page.Images {
		if strings.TrimSpace(img.Alt) != "" {
			s.ImagesWithAlt++
		}
	}

	for _, l := range page.Links {
		if l.Internal {
			s.InternalLinks++
		} else {
			s.ExternalLinks++
		}
	}

	s.HasSchema = len(page.SchemaTypes) > 0 || ldJSONRe.MatchString(page.RawHTML)
	for _, st := range page.SchemaTypes {
		switch strings.ToLower(st) {
		case "faqpage", "qapage":
			s.HasFAQSchema = true
		case "article", "newsarticle", "blogposting":
			s.HasArticleSchema = true
		case "howto":
			s.HasHowToSchema = true
		}
	}

	text := page.TextContent
	if text == "" {
		text = page.Title
	}
	s.HasFAQSection = faqSectionRe.MatchString(text) || faqSectionRe.MatchString(page.RawHTML)
	s.HasDateMarkers = dateRe.MatchString(page.RawHTML) || dateRe.MatchString(text)
	s.HasStatistics = statisticRe.MatchString(text)
	s.HasAuthorByline = bylineRe.MatchString(text)

	for _, h := range page.H2 {
		h = strings.TrimSpace(h)
		if strings.HasSuffix(h, "?") || questionRe.MatchString(h) {
			s.QuestionHeadings++
		}
	}

	sentences := utils.SplitSentences(text)
	s.SentenceCount = len(sentences)
	totalWords := 0
	for _, sent := range sentences {
		n := len(strings.Fields(sent))
		totalWords += n
		if n >= quotableMinWords && n <= quotableMaxWords {
			s.QuotableSentences++
		}
	}
	if s.SentenceCount > 0 {
		s.AvgSentenceLength = float64(totalWords) / float64(s.SentenceCount)
	}

	extractMarkup(&s, page.RawHTML)
	return s
}

// extractMarkup probes the raw markup for signals the crawler does not
// carry as structured fields. Parse failures leave the negative defaults.
func extractMarkup(s *SignalSet, rawHTML string) {
	if rawHTML == "" {
		return
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return
	}

	doc.Find("meta[name='viewport']").Each(func(_ int, sel *goquery.Selection) {
		content, exists := sel.Attr("content")
		if exists && strings.Contains(strings.ToLower(content), "width=device-width") {
			s.HasViewport = true
		}
	})

	if doc.Find("link[rel='canonical']").Length() > 0 {
		s.HasCanonical = true
	}

	s.ListItemCount = doc.Find("li").Length()

	if !s.HasAuthorByline {
		if doc.Find("[rel='author'], .author, .byline, [itemprop='author']").Length() > 0 {
			s.HasAuthorByline = true
		}
	}
}
