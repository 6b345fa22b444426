// Package ebird fetches region listing pages from the source site. It is
// the production implementation of the domain.PageFetcher interface the
// core pipeline depends on.
package ebird

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rookmere/bird-trend-etl/internal/domain"
)

const defaultRanking = "mrec" // most recent checklist first

// Client fetches region pages over HTTP.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a region-page client for the given site base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "bird-trend-etl/1.0")

	return &Client{http: client, logger: logger}
}

// FetchPage retrieves the listing page for a region query. The region code
// and query parameters pass through to the site untouched. Failures of any
// kind are reported as ErrFetch; the caller decides about retries.
func (c *Client) FetchPage(ctx context.Context, q domain.RegionQuery) (string, error) {
	if q.Region == "" {
		return "", fmt.Errorf("%w: empty region code", domain.ErrFetch)
	}

	ranking := q.Ranking
	if ranking == "" {
		ranking = defaultRanking
	}
	yr := "cur"
	if q.AllYears {
		yr = "all"
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("yr", yr).
		SetQueryParam("rank", ranking).
		Get("/region/" + url.PathEscape(q.Region))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrFetch, q.Region, err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: %s: status %d", domain.ErrFetch, q.Region, res.StatusCode())
	}

	c.logger.Debug("fetched region page",
		"region", q.Region,
		"bytes", len(res.Body()),
		"duration", res.Time(),
	)
	return res.String(), nil
}
