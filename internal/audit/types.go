// Package audit defines the audit domain: the check model, collector
// result types, the evaluator, the scoring engine, and the orchestrator
// that ties them together for a single page audit.
package audit

import "net/http"

// Sentinel values used when a signal source could not supply data.
const (
	NotAvailable = "N/A"
	NotChecked   = "Not checked"
	NotFound     = "Not found"
)

// Degradation reasons attached to collector results.
const (
	ReasonTimeout   = "timeout"
	ReasonNoData    = "no-data"
	ReasonNoSerpKey = "no-serp-key"
)

// Check is the atomic unit of evaluation: a pass/fail verdict with a
// human-readable detail. Immutable once created.
type Check struct {
	Passed  bool   `json:"passed"`
	Details string `json:"details"`
}

// ScoredCheck places a Check into the flat list consumed by the scoring
// engine. Informational category fields never produce a ScoredCheck, so
// they can never leak into the score.
type ScoredCheck struct {
	Category string
	Name     string
	Check    Check
}

// FetchResult is the outcome of the initial page fetch. A failed fetch
// leaves OK false and Body empty; the audit continues regardless.
type FetchResult struct {
	StatusCode int
	Headers    http.Header
	Body       string
	FinalURL   string
	OK         bool
}

// RankResult carries domain rank and authority from the rank API, or
// "N/A" sentinels with a reason when the lookup degraded.
type RankResult struct {
	Rank      string `json:"rank"`
	Authority string `json:"authorityScore"`
	Reason    string `json:"reason,omitempty"`
}

// PerfResult carries the headless performance/SEO probe output. Score is
// the integer average of Performance and SEO; all three are nil when the
// probe degraded.
type PerfResult struct {
	Score       *int   `json:"score"`
	Performance *int   `json:"performance"`
	SEO         *int   `json:"seo"`
	Reason      string `json:"reason,omitempty"`
}

// SERPResult carries the top organic search result for the audit keyword,
// or the HTML-derived keyword fallback when no search credential is
// configured. Source records where the keyword came from.
type SERPResult struct {
	Keyword      string `json:"keyword"`
	Source       string `json:"source,omitempty"`
	TopTitle     string `json:"topResult"`
	Position     int    `json:"position"`
	TotalResults int64  `json:"totalResults"`
	Reason       string `json:"reason,omitempty"`
}

// RobotsResult reports robots.txt presence and whether the audited path
// is allowed for all agents. Allowed is "Unknown" when the file is
// missing or unparseable.
type RobotsResult struct {
	Status  string `json:"status"`
	Allowed string `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// LinkReport summarizes the outbound link liveness check. Checked may be
// lower than Total when the checker caps the probe count.
type LinkReport struct {
	Total   int      `json:"total"`
	Checked int      `json:"checked"`
	Broken  []string `json:"broken"`
}

// Image is one <img> element extracted from the page.
type Image struct {
	Src string
	Alt string
}

// PageFacts is everything the inspector derives from the fetched HTML.
// An empty or unfetchable page yields the zero value.
type PageFacts struct {
	Title           string
	MetaDescription string
	MetaKeywords    string
	Text            string
	WordCount       int
	H1Count         int
	HeadingCount    int
	Images          []Image
	MissingAlt      int
	LargeImages     []string
	InternalLinks   []string
	ExternalLinks   []string
	JSONLDBlocks    int
	HasOpenGraph    bool
	HasTwitterCard  bool
	Canonical       string
	MetaRobots      string
	SitemapHref     string
}

// Categories is the ordered categorized result structure of a report.
// Fields typed Check are scored; everything else is informational.
type Categories struct {
	Metrics        MetricsCategory        `json:"metrics"`
	Content        ContentCategory        `json:"content"`
	Indexability   IndexabilityCategory   `json:"indexability"`
	StructuredData StructuredDataCategory `json:"structuredData"`
	SocialTags     SocialTagsCategory     `json:"socialTags"`
	Images         ImagesCategory         `json:"images"`
	HTTPHeaders    HTTPHeadersCategory    `json:"httpHeaders"`
	OutgoingLinks  OutgoingLinksCategory  `json:"outgoingLinks"`
}

// MetricsCategory holds the composite health score and the third-party
// signals. HealthScore starts as a placeholder and is overwritten by the
// scoring engine.
type MetricsCategory struct {
	HealthScore    int        `json:"healthScore"`
	DomainRank     string     `json:"domainRank"`
	AuthorityScore string     `json:"authorityScore"`
	RankReason     string     `json:"rankReason,omitempty"`
	Performance    PerfResult `json:"performanceAudit"`
	Search         SERPResult `json:"searchPresence"`
}

// ContentCategory carries the scored on-page content checks plus the
// informational keyword density figure.
type ContentCategory struct {
	TitleTag        Check  `json:"titleTag"`
	MetaDescription Check  `json:"metaDescription"`
	WordCount       Check  `json:"wordCount"`
	Headings        Check  `json:"headings"`
	KeywordDensity  string `json:"keywordDensity"`
}

// IndexabilityCategory is informational: crawlability signals.
type IndexabilityCategory struct {
	RobotsTxt     string `json:"robotsTxt"`
	RobotsAllowed string `json:"robotsAllowed"`
	MetaRobots    string `json:"metaRobots"`
	Canonical     string `json:"canonical"`
	Sitemap       string `json:"sitemap"`
}

// StructuredDataCategory is informational.
type StructuredDataCategory struct {
	HasJSONLD bool `json:"hasJsonLd"`
	Blocks    int  `json:"blocks"`
}

// SocialTagsCategory is informational.
type SocialTagsCategory struct {
	OpenGraph   bool `json:"openGraph"`
	TwitterCard bool `json:"twitterCard"`
}

// ImagesCategory is informational.
type ImagesCategory struct {
	Total       int      `json:"total"`
	MissingAlt  int      `json:"missingAlt"`
	LargeImages []string `json:"largeImages"`
}

// HTTPHeadersCategory is informational: response metadata from the page
// fetch, "N/A" sentinels when the fetch failed.
type HTTPHeadersCategory struct {
	StatusCode   string `json:"statusCode"`
	ContentType  string `json:"contentType"`
	CacheControl string `json:"cacheControl"`
	Server       string `json:"server"`
}

// OutgoingLinksCategory is informational.
type OutgoingLinksCategory struct {
	Internal int        `json:"internal"`
	External int        `json:"external"`
	Liveness LinkReport `json:"liveness"`
}

// Analysis holds the summary fields of a report.
type Analysis struct {
	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`
	WordCount       int    `json:"wordCount"`
	Keyword         string `json:"keyword"`
	KeywordSource   string `json:"keywordSource,omitempty"`
}

// Report is the final audit artifact, created once per request and never
// persisted.
type Report struct {
	URL         string     `json:"url"`
	SEOScore    int        `json:"seoScore"`
	Grade       string     `json:"grade"`
	Categories  Categories `json:"categories"`
	Analysis    Analysis   `json:"analysis"`
	Suggestions string     `json:"suggestions"`
}

// Request is one audit invocation. URL is required; Keyword is optional.
type Request struct {
	URL     string `json:"url"`
	Keyword string `json:"keyword,omitempty"`
}
