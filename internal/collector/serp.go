package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/auditkit/seo-audit/internal/audit"
)

const serpTimeout = 10 * time.Second

// SERPClient queries the search-results API for the top organic result.
// Without an API key no network call is made and the no-serp-key sentinel
// is returned, which switches the orchestrator to the HTML keyword
// fallback.
type SERPClient struct {
	client *resty.Client
	apiKey string
	logger *zap.Logger
}

type serpResponse struct {
	OrganicResults []struct {
		Title    string `json:"title"`
		Position int    `json:"position"`
	} `json:"organic_results"`
	SearchInformation struct {
		TotalResults int64 `json:"total_results"`
	} `json:"search_information"`
}

// NewSERPClient builds a SERPClient against the given base URL.
func NewSERPClient(baseURL, apiKey string, logger *zap.Logger) *SERPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(serpTimeout)
	return &SERPClient{client: client, apiKey: apiKey, logger: logger}
}

// Enabled reports whether a search credential is configured.
func (c *SERPClient) Enabled() bool {
	return c.apiKey != ""
}

// TopResult returns the first organic result for the query. The call is
// resolved exactly once: either the response arrives within the deadline
// or the timeout sentinel is returned and any late completion is
// discarded with the context.
func (c *SERPClient) TopResult(ctx context.Context, query string) audit.SERPResult {
	if !c.Enabled() {
		return serpUnavailable(audit.ReasonNoSerpKey)
	}

	searchCtx, cancel := context.WithTimeout(ctx, serpTimeout)
	defer cancel()

	var body serpResponse
	resp, err := c.client.R().
		SetContext(searchCtx).
		SetQueryParams(map[string]string{
			"engine":  "google",
			"q":       query,
			"api_key": c.apiKey,
		}).
		SetResult(&body).
		Get("/search")
	if err != nil {
		return serpUnavailable(reasonForErr(err))
	}
	if !resp.IsSuccess() {
		return serpUnavailable(fmt.Sprintf("status %d", resp.StatusCode()))
	}
	if len(body.OrganicResults) == 0 {
		return serpUnavailable(audit.ReasonNoData)
	}

	top := body.OrganicResults[0]
	return audit.SERPResult{
		TopTitle:     top.Title,
		Position:     top.Position,
		TotalResults: body.SearchInformation.TotalResults,
	}
}

func serpUnavailable(reason string) audit.SERPResult {
	return audit.SERPResult{
		TopTitle: audit.NotAvailable,
		Reason:   reason,
	}
}
