package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
	"github.com/ulucaydin/virginia-bill-tracker/internal/errors"
)

// fetchTimeout bounds one feed download. LIS is slow but not this slow.
const fetchTimeout = 30 * time.Second

// userAgent mirrors a desktop browser; the LIS endpoints reject the Go
// default agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Client downloads LIS feed exports over HTTP.
type Client struct {
	http *http.Client
}

// NewClient creates a feed client with the default timeout.
func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: fetchTimeout}}
}

// FetchBills downloads and parses the bill-metadata feed.
func (c *Client) FetchBills(ctx context.Context, url string) ([]bill.RawBillRow, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseBills(body)
}

// FetchSummaries downloads and parses the summaries feed.
func (c *Client) FetchSummaries(ctx context.Context, url string) ([]bill.RawSummaryRow, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseSummaries(body)
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewFeedUnavailable(url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewFeedUnavailable(url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.NewFeedUnavailable(url, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return resp.Body, nil
}
