// Package collector implements the signal collectors: independent probes
// against external capabilities, each bounded by its own timeout and
// normalized to never fail past its boundary.
package collector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/auditkit/seo-audit/internal/audit"
)

const rankTimeout = 10 * time.Second

// RankClient queries the domain-rank API. An empty API key is sent as-is;
// the upstream's rejection becomes an "N/A" sentinel like any other
// failure.
type RankClient struct {
	client *resty.Client
	apiKey string
	logger *zap.Logger
}

type rankResponse struct {
	Response []struct {
		StatusCode      int     `json:"status_code"`
		Rank            string  `json:"rank"`
		PageRankDecimal float64 `json:"page_rank_decimal"`
	} `json:"response"`
}

// NewRankClient builds a RankClient against the given base URL.
func NewRankClient(baseURL, apiKey string, logger *zap.Logger) *RankClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(rankTimeout)
	return &RankClient{client: client, apiKey: apiKey, logger: logger}
}

// Lookup returns the domain's rank and authority score, or sentinels with
// a reason on any failure.
func (c *RankClient) Lookup(ctx context.Context, domain string) audit.RankResult {
	lookupCtx, cancel := context.WithTimeout(ctx, rankTimeout)
	defer cancel()

	var body rankResponse
	resp, err := c.client.R().
		SetContext(lookupCtx).
		SetHeader("API-OPR", c.apiKey).
		SetQueryParam("domains[]", domain).
		SetResult(&body).
		Get("/v1.0/getPageRank")
	if err != nil {
		return rankUnavailable(reasonForErr(err))
	}
	if !resp.IsSuccess() {
		return rankUnavailable(fmt.Sprintf("status %d", resp.StatusCode()))
	}
	if len(body.Response) == 0 || body.Response[0].StatusCode != 200 {
		return rankUnavailable(audit.ReasonNoData)
	}

	entry := body.Response[0]
	rank := entry.Rank
	if rank == "" {
		rank = audit.NotAvailable
	}
	return audit.RankResult{
		Rank:      rank,
		Authority: strconv.FormatFloat(entry.PageRankDecimal, 'f', 2, 64),
	}
}

func rankUnavailable(reason string) audit.RankResult {
	return audit.RankResult{
		Rank:      audit.NotAvailable,
		Authority: audit.NotAvailable,
		Reason:    reason,
	}
}

func reasonForErr(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return audit.ReasonTimeout
	}
	return err.Error()
}
