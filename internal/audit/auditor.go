package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config controls orchestrator behavior.
type Config struct {
	FetchTimeout time.Duration
}

// Auditor sequences one audit: fetch, a parallel inspector/collector
// fan-out, evaluation, scoring, suggestions. It holds no per-request
// state and is safe for concurrent use.
type Auditor struct {
	fetcher   PageFetcher
	inspector PageInspector
	rank      RankClient
	perf      PerfAuditor
	search    SearchClient
	robots    RobotsProber
	sitemap   SitemapProber
	links     LinkChecker
	suggester Suggester
	observer  Observer
	logger    *zap.Logger
	cfg       Config
}

// New constructs an Auditor. The observer may be nil.
func New(
	fetcher PageFetcher,
	inspector PageInspector,
	rank RankClient,
	perf PerfAuditor,
	search SearchClient,
	robots RobotsProber,
	sitemap SitemapProber,
	links LinkChecker,
	suggester Suggester,
	observer Observer,
	logger *zap.Logger,
	cfg Config,
) *Auditor {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	return &Auditor{
		fetcher:   fetcher,
		inspector: inspector,
		rank:      rank,
		perf:      perf,
		search:    search,
		robots:    robots,
		sitemap:   sitemap,
		links:     links,
		suggester: suggester,
		observer:  observer,
		logger:    logger,
		cfg:       cfg,
	}
}

// Run executes a full audit for one request. The only errors returned
// are input validation failures; every collector degradation is absorbed
// into the report as sentinel values.
func (a *Auditor) Run(ctx context.Context, req Request) (Report, error) {
	target, err := ParseTarget(req.URL)
	if err != nil {
		return Report{}, err
	}
	host := target.Hostname()

	fetchCtx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
	fetched, err := a.fetcher.Fetch(fetchCtx, target.String())
	cancel()
	if err != nil {
		a.logger.Warn("page fetch failed, continuing with empty document",
			zap.String("url", target.String()), zap.Error(err))
		a.degraded("fetch", err.Error())
		fetched = FetchResult{}
	}

	var (
		facts   PageFacts
		rankRes RankResult
		perfRes PerfResult
		serpRes SERPResult
	)
	searchEnabled := a.search.Enabled()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		facts = a.inspector.Inspect(gctx, fetched.Body, target)
		return nil
	})
	g.Go(func() error {
		rankRes = a.rank.Lookup(gctx, host)
		return nil
	})
	g.Go(func() error {
		perfRes = a.perf.Audit(gctx, target.String())
		return nil
	})
	if searchEnabled {
		g.Go(func() error {
			serpRes = a.lookupSearch(gctx, req.Keyword, host)
			return nil
		})
	}
	_ = g.Wait()
	if !searchEnabled {
		// The fallback keyword is derived from the inspected facts, so it
		// resolves after the fan-out. It makes no network call.
		serpRes = fallbackSearch(req.Keyword, facts, host)
	}
	a.noteDegradations(rankRes, perfRes, serpRes)

	var (
		robotsRes  RobotsResult
		sitemapRes string
		linkRes    LinkReport
	)
	path := target.EscapedPath()
	if path == "" {
		path = "/"
	}
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		robotsRes = a.robots.Probe(gctx, host, path)
		return nil
	})
	g.Go(func() error {
		sitemapRes = a.sitemap.Discover(gctx, host, facts.SitemapHref)
		return nil
	})
	g.Go(func() error {
		linkRes = a.links.Check(gctx, facts.ExternalLinks)
		return nil
	})
	_ = g.Wait()

	categories, checks := Evaluate(Signals{
		Facts:   facts,
		Fetch:   fetched,
		Rank:    rankRes,
		Perf:    perfRes,
		SERP:    serpRes,
		Robots:  robotsRes,
		Sitemap: sitemapRes,
		Links:   linkRes,
		Keyword: req.Keyword,
	})
	score := Score(checks)
	categories.Metrics.HealthScore = score
	grade := GradeFor(score)

	report := Report{
		URL:        target.String(),
		SEOScore:   score,
		Grade:      grade,
		Categories: categories,
		Analysis: Analysis{
			Title:           orSentinel(facts.Title, "Missing"),
			MetaDescription: orSentinel(facts.MetaDescription, "Missing"),
			WordCount:       facts.WordCount,
			Keyword:         serpRes.Keyword,
			KeywordSource:   serpRes.Source,
		},
		Suggestions: a.suggester.Suggest(ctx, score, grade, categories),
	}
	return report, nil
}

// lookupSearch queries the search client, recording the query and where
// it came from.
func (a *Auditor) lookupSearch(ctx context.Context, userKeyword, host string) SERPResult {
	query, source := userKeyword, SourceUserSupplied
	if query == "" {
		query, source = host, SourceDomain
	}
	res := a.search.TopResult(ctx, query)
	res.Keyword = query
	res.Source = source
	return res
}

// fallbackSearch stands in for the SERP lookup when no search credential
// is configured.
func fallbackSearch(userKeyword string, facts PageFacts, host string) SERPResult {
	choice := FallbackKeyword(userKeyword, facts.MetaKeywords, facts.Title, host)
	return SERPResult{
		Keyword:  choice.Keyword,
		Source:   choice.Source,
		TopTitle: NotAvailable,
		Reason:   ReasonNoSerpKey,
	}
}

func (a *Auditor) noteDegradations(rank RankResult, perf PerfResult, serp SERPResult) {
	if rank.Reason != "" {
		a.degraded("rank", rank.Reason)
	}
	if perf.Reason != "" {
		a.degraded("performance", perf.Reason)
	}
	if serp.Reason != "" {
		a.degraded("search", serp.Reason)
	}
}

func (a *Auditor) degraded(collector, reason string) {
	if a.observer != nil {
		a.observer.CollectorDegraded(collector, reason)
	}
	a.logger.Debug("collector degraded",
		zap.String("collector", collector), zap.String("reason", reason))
}
