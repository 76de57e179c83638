package match

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dghubble/sling"

	"github.com/lilcord/lilbot/pkg/metrics"
)

// Fetcher lists matches of a mode.
type Fetcher interface {
	Fetch(ctx context.Context, mode Mode) ([]Match, error)
}

type Options struct {
	// Origin is the API origin.
	Origin string
	// Site is the vlr.gg origin used to resolve relative URLs.
	Site    string
	Timeout time.Duration
	// Limit caps the number of returned matches; 0 means no cap.
	Limit int
}

type Client struct {
	base  *sling.Sling
	site  string
	limit int
}

var _ Fetcher = (*Client)(nil)

func NewClient(opts Options) *Client {
	return &Client{
		base: sling.New().
			Client(&http.Client{Timeout: opts.Timeout}).
			Base(opts.Origin).
			Set("Accept", "application/json").
			Set("User-Agent", "lilbot"),
		site:  opts.Site,
		limit: opts.Limit,
	}
}

type matchQuery struct {
	Q string `url:"q"`
}

// listResponse covers both upstream shapes: data.segments and data.matches.
type listResponse struct {
	Data struct {
		Segments []map[string]any `json:"segments"`
		Matches  []map[string]any `json:"matches"`
	} `json:"data"`
}

func (c *Client) Fetch(ctx context.Context, mode Mode) ([]Match, error) {
	req, err := c.base.New().
		Get("match").
		QueryStruct(&matchQuery{Q: mode.query()}).
		Request()
	if err != nil {
		return nil, fmt.Errorf("creating match request: %w", err)
	}

	var body listResponse
	resp, err := c.base.New().Do(req.WithContext(ctx), &body, nil)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("vlr", "error").Inc()
		return nil, fmt.Errorf("fetching matches: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues("vlr", "error").Inc()
		return nil, fmt.Errorf("invalid status code: %s (expected: 200)", resp.Status)
	}
	metrics.UpstreamRequests.WithLabelValues("vlr", "ok").Inc()

	records := body.Data.Segments
	if len(records) == 0 {
		records = body.Data.Matches
	}
	if c.limit > 0 && len(records) > c.limit {
		records = records[:c.limit]
	}

	matches := make([]Match, 0, len(records))
	for _, raw := range records {
		matches = append(matches, Normalize(raw, mode, c.site))
	}
	return matches, nil
}
