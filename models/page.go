package models

// PageRecord is the normalized page snapshot produced by the crawler.
// The engine consumes it read-only; absent fields simply yield negative
// signals during extraction.
type PageRecord struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	MetaDescription string   `json:"metaDescription"`
	H1              []string `json:"h1"`
	H2              []string `json:"h2"`
	WordCount       int      `json:"wordCount"`
	Images          []Image  `json:"images"`
	Links           []Link   `json:"links"`
	RawHTML         string   `json:"rawHtml"`
	TextContent     string   `json:"textContent"`
	LoadTimeMS      int      `json:"loadTime"`
	ByteSize        int      `json:"byteSize"`
	SchemaTypes     []string `json:"schemaTypes"`
}

// Image is a single image reference on the page.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Link is a single hyperlink on the page, flagged internal or external.
type Link struct {
	URL      string `json:"url"`
	Internal bool   `json:"internal"`
}

// IsEmpty reports whether the record carries nothing the engine can score.
func (p *PageRecord) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.URL == "" && p.Title == "" && p.RawHTML == "" && p.TextContent == ""
}
