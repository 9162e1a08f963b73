package collector

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/auditkit/seo-audit/internal/audit"
)

// maxLinkChecks caps how many outbound links are probed per audit. This
// is a latency trade-off: links past the cap are never checked and are
// reported as healthy.
const maxLinkChecks = 20

const linkProbeTimeout = 5 * time.Second

// LinkChecker probes outbound links for liveness with parallel HEAD
// requests. A link is broken when the request errors, times out, or
// returns a 4xx/5xx status.
type LinkChecker struct {
	client *http.Client
	logger *zap.Logger
}

// NewLinkChecker builds a LinkChecker.
func NewLinkChecker(client *http.Client, logger *zap.Logger) *LinkChecker {
	if client == nil {
		client = &http.Client{Timeout: linkProbeTimeout}
	}
	return &LinkChecker{client: client, logger: logger}
}

// Check probes up to the first maxLinkChecks links.
func (c *LinkChecker) Check(ctx context.Context, links []string) audit.LinkReport {
	report := audit.LinkReport{Total: len(links), Broken: []string{}}
	checked := links
	if len(checked) > maxLinkChecks {
		checked = checked[:maxLinkChecks]
	}
	report.Checked = len(checked)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, link := range checked {
		link := link
		g.Go(func() error {
			if !c.alive(gctx, link) {
				mu.Lock()
				report.Broken = append(report.Broken, link)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return report
}

func (c *LinkChecker) alive(ctx context.Context, link string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, linkProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, link, nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("link probe failed", zap.String("link", link), zap.Error(err))
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode < 400
}
