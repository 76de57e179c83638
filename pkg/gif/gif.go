// Package gif looks up reaction GIFs from the GIPHY search API.
package gif

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/dghubble/sling"

	"github.com/lilcord/lilbot/pkg/metrics"
)

// Searcher finds one GIF URL for a phrase. An empty URL with a nil error means no result.
type Searcher interface {
	Search(ctx context.Context, phrase string) (string, error)
}

type Options struct {
	Origin  string
	APIKey  string
	Limit   int
	Rating  string
	Lang    string
	Timeout time.Duration
}

type Client struct {
	base *sling.Sling
	opts Options
	// pick returns a random index in [0, n).
	pick func(n int) int
}

var _ Searcher = (*Client)(nil)

func NewClient(opts Options) *Client {
	httpClient := &http.Client{Timeout: opts.Timeout}
	return &Client{
		base: sling.New().Client(httpClient).Base(opts.Origin).Set("Accept", "application/json"),
		opts: opts,
		pick: rand.IntN,
	}
}

type searchParams struct {
	APIKey string `url:"api_key"`
	Query  string `url:"q"`
	Limit  int    `url:"limit"`
	Offset int    `url:"offset"`
	Rating string `url:"rating"`
	Lang   string `url:"lang"`
}

type searchResponse struct {
	Data []struct {
		URL    string `json:"url"`
		Images struct {
			Original struct {
				URL string `json:"url"`
			} `json:"original"`
		} `json:"images"`
	} `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *Client) Search(ctx context.Context, phrase string) (string, error) {
	req, err := c.base.New().
		Get("v1/gifs/search").
		QueryStruct(&searchParams{
			APIKey: c.opts.APIKey,
			Query:  phrase,
			Limit:  c.opts.Limit,
			Offset: 0,
			Rating: c.opts.Rating,
			Lang:   c.opts.Lang,
		}).
		Request()
	if err != nil {
		return "", fmt.Errorf("creating search request: %w", err)
	}

	var result searchResponse
	var apiErr errorResponse
	resp, err := c.base.New().Do(req.WithContext(ctx), &result, &apiErr)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("giphy", "error").Inc()
		return "", fmt.Errorf("searching gifs: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequests.WithLabelValues("giphy", "error").Inc()
		return "", fmt.Errorf("invalid status code: %s (%s)", resp.Status, apiErr.Message)
	}
	metrics.UpstreamRequests.WithLabelValues("giphy", "ok").Inc()

	urls := make([]string, 0, len(result.Data))
	for _, d := range result.Data {
		switch {
		case d.Images.Original.URL != "":
			urls = append(urls, d.Images.Original.URL)
		case d.URL != "":
			urls = append(urls, d.URL)
		}
	}
	if len(urls) == 0 {
		return "", nil
	}
	return urls[c.pick(len(urls))], nil
}
