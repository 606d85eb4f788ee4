// Package vitals retrieves Core Web Vitals for a URL from the Google
// PageSpeed Insights API.
package vitals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultEndpoint is the PageSpeed Insights v5 API.
const DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// strategies in preference order: mobile first, desktop as fallback.
var strategies = [2]string{"mobile", "desktop"}

// Metrics holds the vitals for whichever strategy succeeded.
type Metrics struct {
	Strategy  string   `json:"strategy"`
	LCPMillis float64  `json:"lcp_ms"`
	CLS       string   `json:"cls"`
	INPMillis *float64 `json:"inp_ms"`
	Score     float64  `json:"score"`
}

// Client calls the PageSpeed Insights API. Endpoint is overridable for tests.
type Client struct {
	HTTPClient *http.Client
	APIKey     string
	Endpoint   string
}

// New creates a vitals client with the API's documented 30-second budget.
func New(apiKey string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		APIKey:     apiKey,
		Endpoint:   DefaultEndpoint,
	}
}

type psiResponse struct {
	LighthouseResult struct {
		Audits     map[string]psiAudit `json:"audits"`
		Categories struct {
			Performance struct {
				Score float64 `json:"score"`
			} `json:"performance"`
		} `json:"categories"`
	} `json:"lighthouseResult"`
}

type psiAudit struct {
	DisplayValue string `json:"displayValue"`
	Details      struct {
		Items []psiMetricsItem `json:"items"`
	} `json:"details"`
}

type psiMetricsItem struct {
	LargestContentfulPaint         float64  `json:"largestContentfulPaint"`
	InteractionToNextPaintEstimate *float64 `json:"experimental_interaction_to_next_paint"`
}

// Measure tries the mobile strategy first and falls back to desktop. The
// first strategy that returns a well-formed 200 response wins. When both
// fail, the attempts are reported in one aggregated error. Strategies are
// never retried.
func (c *Client) Measure(ctx context.Context, targetURL string) (*Metrics, error) {
	for _, strategy := range strategies {
		metrics, err := c.measureStrategy(ctx, targetURL, strategy)
		if err != nil {
			continue
		}
		return metrics, nil
	}
	return nil, fmt.Errorf("pagespeed lookup failed on mobile and desktop for %q", targetURL)
}

func (c *Client) measureStrategy(ctx context.Context, targetURL, strategy string) (*Metrics, error) {
	params := url.Values{}
	params.Set("url", targetURL)
	params.Set("key", c.APIKey)
	params.Set("strategy", strategy)
	params.Set("category", "performance")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pagespeed %s strategy: status %s", strategy, resp.Status)
	}

	var payload psiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("pagespeed %s strategy: decode response: %w", strategy, err)
	}

	metricsAudit, ok := payload.LighthouseResult.Audits["metrics"]
	if !ok || len(metricsAudit.Details.Items) == 0 {
		return nil, fmt.Errorf("pagespeed %s strategy: response missing metrics audit", strategy)
	}
	item := metricsAudit.Details.Items[0]

	return &Metrics{
		Strategy:  strategy,
		LCPMillis: item.LargestContentfulPaint,
		CLS:       payload.LighthouseResult.Audits["cumulative-layout-shift"].DisplayValue,
		INPMillis: item.InteractionToNextPaintEstimate,
		Score:     payload.LighthouseResult.Categories.Performance.Score,
	}, nil
}
