package collector

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/auditkit/seo-audit/internal/audit"
)

// SitemapProber resolves the sitemap location: a document-declared
// <link rel="sitemap"> href wins, else the /sitemap.xml convention is
// probed, else "Not found".
type SitemapProber struct {
	client *http.Client
	logger *zap.Logger
	scheme string
}

// NewSitemapProber builds a SitemapProber.
func NewSitemapProber(client *http.Client, logger *zap.Logger) *SitemapProber {
	if client == nil {
		client = &http.Client{Timeout: probeTimeout}
	}
	return &SitemapProber{client: client, logger: logger, scheme: "https"}
}

// Discover returns the sitemap URL or "Not found".
func (p *SitemapProber) Discover(ctx context.Context, host string, declaredHref string) string {
	if declaredHref != "" {
		return declaredHref
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	target := fmt.Sprintf("%s://%s/sitemap.xml", p.scheme, host)
	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, target, nil)
	if err != nil {
		return audit.NotFound
	}
	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("sitemap probe failed", zap.String("host", host), zap.Error(err))
		return audit.NotFound
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return target
	}
	return audit.NotFound
}
