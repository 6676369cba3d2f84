package visibility

// Citation is a structured source reference returned alongside an answer.
type Citation struct {
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

// Answer is one platform's raw response to a single query.
type Answer struct {
	Platform  string     `json:"platform"`
	Query     string     `json:"query"`
	Text      string     `json:"text"`
	Citations []Citation `json:"citations,omitempty"`
}

// Result classifies one (platform, query) answer against the target domain.
// Checked=false means the platform could not be reached for this query and
// is a distinct state from "reached but not found".
type Result struct {
	Platform         string   `json:"platform"`
	Query            string   `json:"query"`
	Checked          bool     `json:"checked"`
	CitationPresence bool     `json:"citationPresence"`
	DomainVisibility bool     `json:"domainVisibility"`
	BrandRecognition bool     `json:"brandRecognition"`
	MentionPosition  *int     `json:"mentionPosition"`
	MentionCount     int      `json:"mentionCount"`
	Competitors      []string `json:"competitorsNamed,omitempty"`
}

// Breakdown holds the weighted factor sub-scores whose sum, clamped at
// 100, is the composite visibility score. The maxima are fixed policy.
type Breakdown struct {
	CitationPresence  float64 `json:"citationPresence"`
	DomainVisibility  float64 `json:"domainVisibility"`
	BrandRecognition  float64 `json:"brandRecognition"`
	MentionProminence float64 `json:"mentionProminence"`
	MentionDepth      float64 `json:"mentionDepth"`
}

// Fixed factor weights (maxima sum to 100).
const (
	maxCitationPoints   = 40
	maxDomainPoints     = 25
	maxBrandPoints      = 15
	maxProminencePoints = 12
	maxDepthPoints      = 8
)

// Report is the top-level visibility aggregate returned to callers.
type Report struct {
	Domain         string         `json:"domain"`
	Results        []Result       `json:"results"`
	PlatformScores map[string]int `json:"platformScores"`
	Overall        int            `json:"overallScore"`
	Breakdown      Breakdown      `json:"breakdown"`
	Competitors    []string       `json:"competitors"`
	IsEstimate     bool           `json:"isEstimate"`
	Explanation    string         `json:"explanation"`
}
