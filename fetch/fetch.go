// Package fetch is the outbound HTTP boundary for retrieving audit targets:
// page HTML and robots.txt documents. One attempt per call, fixed timeout,
// no retries.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultUserAgent identifies the auditor to target sites.
const DefaultUserAgent = "SEO-Auditor-Bot"

// DefaultTimeout bounds every page and robots.txt fetch.
const DefaultTimeout = 10 * time.Second

// Client wraps an http.Client tuned for repeated single-page fetches:
// pooled keep-alive connections and a hard per-request timeout.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a fetch client. An empty userAgent falls back to
// DefaultUserAgent; a non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: userAgent,
	}
}

// Get retrieves the body of rawURL as text. Network errors, timeouts, and
// non-2xx statuses are all surfaced as errors; the caller decides how to
// report them.
func (c *Client) Get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid request for %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %q: unexpected status %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %q: %w", rawURL, err)
	}
	return string(body), nil
}

// RobotsTxt fetches the robots.txt document for pageURL's origin and returns
// its text together with the path component to check against the rules.
// There is no "missing robots.txt" fallback: a 404 surfaces like any other
// fetch failure.
func (c *Client) RobotsTxt(ctx context.Context, pageURL string) (text, targetPath string, err error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid url %q: %w", pageURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("invalid url %q: missing scheme or host", pageURL)
	}

	targetPath = u.EscapedPath()
	if targetPath == "" {
		targetPath = "/"
	}

	robotsURL := (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/robots.txt"}).String()
	text, err = c.Get(ctx, robotsURL)
	if err != nil {
		return "", "", fmt.Errorf("robots.txt fetch failed: %w", err)
	}
	return text, targetPath, nil
}
