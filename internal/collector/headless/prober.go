// Package headless runs the performance/SEO probe in a sandboxed browser
// via chromedp.
package headless

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/auditkit/seo-audit/internal/audit"
)

// Config controls the behavior of the headless prober.
type Config struct {
	MaxParallel       int
	UserAgent         string
	NavigationTimeout time.Duration
}

// Prober implements audit.PerfAuditor with a headless Chrome instance.
// Every probe runs in its own tab context which is torn down regardless
// of outcome.
type Prober struct {
	cfg         Config
	limiter     chan struct{}
	allocator   context.Context
	allocCancel context.CancelFunc
	logger      *zap.Logger
}

// New creates a headless prober backed by chromedp.
func New(cfg Config, logger *zap.Logger) (*Prober, error) {
	if cfg.MaxParallel < 0 {
		return nil, fmt.Errorf("max parallel must be >= 0")
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = 30 * time.Second
	}
	var limiter chan struct{}
	if cfg.MaxParallel > 0 {
		limiter = make(chan struct{}, cfg.MaxParallel)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("enable-automation", false),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Prober{
		cfg:         cfg,
		limiter:     limiter,
		allocator:   allocCtx,
		allocCancel: allocCancel,
		logger:      logger,
	}, nil
}

// Close cancels the allocator context, terminating the browser process.
func (p *Prober) Close() {
	p.allocCancel()
}

type navTiming struct {
	Load float64 `json:"load"`
	DCL  float64 `json:"dcl"`
}

type seoRubric struct {
	Passed int `json:"passed"`
	Total  int `json:"total"`
}

// Audit navigates the page and derives performance and SEO scores 0-100
// plus their integer average. Any failure degrades to a nil-score result
// with a reason; the tab and its timeout context are always cancelled.
func (p *Prober) Audit(ctx context.Context, pageURL string) audit.PerfResult {
	if err := p.acquire(ctx); err != nil {
		return unavailable(reasonForErr(err))
	}
	defer p.release()

	taskCtx, taskCancel := chromedp.NewContext(p.allocator)
	defer taskCancel()

	taskCtx, cancel := context.WithTimeout(taskCtx, p.cfg.NavigationTimeout)
	defer cancel()

	timing, rubric, err := p.runProbe(taskCtx, pageURL)
	if err != nil {
		p.logger.Debug("headless probe failed", zap.String("url", pageURL), zap.Error(err))
		return unavailable(reasonForErr(err))
	}

	performance := scorePerformance(timing)
	seo := scoreRubric(rubric)
	avg := (performance + seo) / 2
	return audit.PerfResult{Score: &avg, Performance: &performance, SEO: &seo}
}

func (p *Prober) runProbe(ctx context.Context, pageURL string) (navTiming, seoRubric, error) {
	var (
		timing navTiming
		rubric seoRubric
	)
	actions := []chromedp.Action{
		p.networkSetupAction(),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(500 * time.Millisecond),
		chromedp.Evaluate(timingExpr, &timing),
		chromedp.Evaluate(rubricExpr, &rubric),
	}
	if err := chromedp.Run(ctx, actions...); err != nil {
		return navTiming{}, seoRubric{}, fmt.Errorf("chromedp run: %w", err)
	}
	return timing, rubric, nil
}

func (p *Prober) networkSetupAction() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if err := network.Enable().Do(ctx); err != nil {
			return fmt.Errorf("enable network domain: %w", err)
		}
		return nil
	})
}

func (p *Prober) acquire(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	select {
	case p.limiter <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("headless slot wait canceled: %w", ctx.Err())
	}
}

func (p *Prober) release() {
	if p.limiter == nil {
		return
	}
	select {
	case <-p.limiter:
	default:
	}
}

const timingExpr = `(() => {
	const e = performance.getEntriesByType("navigation")[0];
	if (!e) { return {load: 0, dcl: 0}; }
	return {load: e.loadEventEnd || e.domComplete || 0, dcl: e.domContentLoadedEventEnd || 0};
})()`

const rubricExpr = `(() => {
	const checks = [
		() => !!document.title && document.title.length > 0,
		() => !!document.querySelector('meta[name="description"]'),
		() => document.querySelectorAll('h1').length === 1,
		() => !!document.querySelector('meta[name="viewport"]'),
		() => !!document.documentElement.lang,
		() => !!document.querySelector('link[rel="canonical"]'),
		() => { const imgs = [...document.images]; return imgs.length === 0 || imgs.every(i => i.alt && i.alt.length > 0); },
	];
	let passed = 0;
	for (const c of checks) { try { if (c()) passed++; } catch (_) {} }
	return {passed: passed, total: checks.length};
})()`

// scorePerformance maps the load event time onto a 0-100 score using the
// dominant navigation timing figure.
func scorePerformance(t navTiming) int {
	loadMs := t.Load
	if loadMs <= 0 {
		loadMs = t.DCL
	}
	switch {
	case loadMs <= 0:
		return 50
	case loadMs <= 1000:
		return 100
	case loadMs <= 2500:
		return 90
	case loadMs <= 4000:
		return 75
	case loadMs <= 6000:
		return 60
	case loadMs <= 10000:
		return 40
	default:
		return 20
	}
}

func scoreRubric(r seoRubric) int {
	if r.Total == 0 {
		return 0
	}
	return int(math.Round(float64(r.Passed) / float64(r.Total) * 100))
}

func unavailable(reason string) audit.PerfResult {
	return audit.PerfResult{Reason: reason}
}

func reasonForErr(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return audit.ReasonTimeout
	}
	return err.Error()
}
