package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"

	"github.com/auditkit/seo-audit/internal/audit"
)

const probeTimeout = 5 * time.Second

// RobotsProber checks robots.txt presence and, when present, whether the
// audited path is allowed for all agents. Fails closed to "Missing".
type RobotsProber struct {
	client *http.Client
	logger *zap.Logger
	scheme string
}

// NewRobotsProber builds a RobotsProber.
func NewRobotsProber(client *http.Client, logger *zap.Logger) *RobotsProber {
	if client == nil {
		client = &http.Client{Timeout: probeTimeout}
	}
	return &RobotsProber{client: client, logger: logger, scheme: "https"}
}

// Probe fetches https://<host>/robots.txt. Any error, timeout, or non-2xx
// response reports the file as missing.
func (p *RobotsProber) Probe(ctx context.Context, host string, path string) audit.RobotsResult {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	target := fmt.Sprintf("%s://%s/robots.txt", p.scheme, host)
	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, target, nil)
	if err != nil {
		return robotsMissing(err.Error())
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return robotsMissing(reasonForErr(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return robotsMissing(fmt.Sprintf("status %d", resp.StatusCode))
	}

	result := audit.RobotsResult{Status: "Present", Allowed: "Unknown"}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return result
	}
	robots, err := robotstxt.FromBytes(body)
	if err != nil {
		p.logger.Debug("robots.txt unparseable", zap.String("host", host), zap.Error(err))
		return result
	}
	if robots.TestAgent(path, "*") {
		result.Allowed = "Allowed"
	} else {
		result.Allowed = "Disallowed"
	}
	return result
}

func robotsMissing(reason string) audit.RobotsResult {
	return audit.RobotsResult{Status: "Missing", Allowed: "Unknown", Reason: reason}
}
