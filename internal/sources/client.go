package sources

import (
	"context"
	"fmt"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"time"
)

const (
	defaultUserAgent = "Mozilla/5.0"
	maxBodySize      = 10 << 20
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Client is shared by all sources. Every request is bounded by timeout.
type Client struct {
	httpClient  HTTPClient
	userAgent   string
	timeout     time.Duration
	rateLimiter *rate.Limiter
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  defaultUserAgent,
		timeout:    timeout,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

// SetRateLimit caps outbound requests across all sources. Zero or less removes the cap.
func (c *Client) SetRateLimit(maxRequestsPerSecond float64) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error creating request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "error sending request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "error reading response body")
	}
	return body, nil
}
