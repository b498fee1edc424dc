package chartsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher retrieves chart text by URL. *Client implements it; the UI takes
// a Fetcher so tests can substitute canned responses.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

var _ Fetcher = (*Client)(nil)

// Client fetches ChordPro documents over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	DefaultUserAgent = "lectern/0.1"
	DefaultTimeout   = 10 * time.Second

	maxChartBytes = 4 << 20
)

// NewClient builds a Client. baseURL may be empty, in which case only
// absolute chart URLs can be fetched.
func NewClient(baseURL, userAgent string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}, nil
}

// Fetch retrieves the chart at rawURL. Failures are *FetchError values
// carrying the kind the UI reacts to.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	reqURL, err := c.Resolve(rawURL)
	if err != nil {
		return "", &FetchError{Kind: Unknown, URL: rawURL, Err: err}
	}
	target := reqURL.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &FetchError{Kind: Unknown, URL: target, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &FetchError{Kind: NetworkError, URL: target, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", &FetchError{Kind: NotFound, URL: target, Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", &FetchError{Kind: Unknown, URL: target, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxChartBytes+1))
	if err != nil {
		return "", &FetchError{Kind: NetworkError, URL: target, Err: fmt.Errorf("read response: %w", err)}
	}
	if len(body) > maxChartBytes {
		return "", &FetchError{Kind: Unknown, URL: target, Err: fmt.Errorf("chart exceeds %d bytes", maxChartBytes)}
	}
	return string(body), nil
}

// Resolve turns a chart URL into an absolute one using the base URL.
func (c *Client) Resolve(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("chart url is empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse chart url %q: %w", rawURL, err)
	}
	if u.IsAbs() {
		return u, nil
	}
	if c.baseURL == nil {
		return nil, fmt.Errorf("relative chart url %q with no base_url", rawURL)
	}
	return c.baseURL.ResolveReference(u), nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}
