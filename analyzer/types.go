package analyzer

// ElementCheck describes a single text-bearing element (title or meta
// description): whether it exists, how long its text is, and whether the
// primary keyword appears in it.
type ElementCheck struct {
	Present         bool `json:"present"`
	Length          int  `json:"length"`
	IncludesKeyword bool `json:"includes_kw"`
}

// HeadingCheck covers the page's h1 elements. IncludesKeyword refers to the
// first h1 only.
type HeadingCheck struct {
	Count           int      `json:"count"`
	Texts           []string `json:"texts"`
	IncludesKeyword bool     `json:"includes_kw"`
}

type ImageCheck struct {
	Total      int `json:"total"`
	MissingAlt int `json:"missing_alt"`
}

// PageFeatures is the on-page feature set extracted from one HTML document.
// Built fresh per request, immutable once returned.
type PageFeatures struct {
	Title              ElementCheck `json:"title"`
	Meta               ElementCheck `json:"meta"`
	H1                 HeadingCheck `json:"h1"`
	WordCount          int          `json:"word_count"`
	KeywordInFirst150  bool         `json:"kw_in_first_150"`
	InternalLinks      int          `json:"internal_links"`
	ExternalLinks      int          `json:"external_links"`
	Images             ImageCheck   `json:"images"`
	URLContainsKeyword bool         `json:"url_contains_kw"`
}

// HealthReport is a PageFeatures value plus its derived health score.
type HealthReport struct {
	PageFeatures
	HealthScore int `json:"health_score"`
}
