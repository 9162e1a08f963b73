package audit

import (
	"context"
	"net/url"
)

// PageFetcher retrieves the target page. It is the only collaborator
// whose error is surfaced to the orchestrator; the orchestrator converts
// it into an empty-page degradation rather than a request failure.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (FetchResult, error)
}

// PageInspector parses fetched HTML into structural facts. It must
// tolerate empty or malformed markup and return zero-valued facts.
type PageInspector interface {
	Inspect(ctx context.Context, htmlBody string, page *url.URL) PageFacts
}

// RankClient looks up domain rank and authority. Degradations are
// returned as sentinel results, never as errors.
type RankClient interface {
	Lookup(ctx context.Context, domain string) RankResult
}

// PerfAuditor runs the headless performance/SEO probe against a URL.
type PerfAuditor interface {
	Audit(ctx context.Context, pageURL string) PerfResult
}

// SearchClient queries a search-results API for the top organic result.
// Enabled reports whether a credential is configured; when false the
// orchestrator uses the HTML keyword fallback instead.
type SearchClient interface {
	Enabled() bool
	TopResult(ctx context.Context, query string) SERPResult
}

// RobotsProber checks robots.txt presence and path admissibility.
type RobotsProber interface {
	Probe(ctx context.Context, host string, path string) RobotsResult
}

// SitemapProber resolves the sitemap location, preferring a
// document-declared href over the /sitemap.xml convention.
type SitemapProber interface {
	Discover(ctx context.Context, host string, declaredHref string) string
}

// LinkChecker probes outbound links for liveness.
type LinkChecker interface {
	Check(ctx context.Context, links []string) LinkReport
}

// Suggester produces remediation advice for a finished audit. It always
// returns text; failures degrade to a fixed fallback internally.
type Suggester interface {
	Suggest(ctx context.Context, score int, grade string, categories Categories) string
}

// Observer receives collector degradation events for instrumentation.
type Observer interface {
	CollectorDegraded(collector string, reason string)
}
