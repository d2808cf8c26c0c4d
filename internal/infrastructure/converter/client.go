// Package converter talks to the currency-conversion service that turns
// extracted prices into a settlement currency. The engine never calls it;
// only the delivery layer does, after ingestion.
package converter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pricesheet/backend/internal/domain"
)

// supportedCurrencies are the codes the engine can emit.
var supportedCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"TRY": true,
}

// Client handles communication with the conversion API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a conversion API client. The provider allows 600
// requests per hour, so the limiter runs at 600/3600 ≈ 0.167 req/sec with a
// small burst.
func NewClient(apiKey, baseURL string) *Client {
	limiter := rate.NewLimiter(rate.Limit(0.167), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

var _ domain.CurrencyConverter = (*Client)(nil)

// SetDebug toggles request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// conversionResponse is the provider's wire format.
type conversionResponse struct {
	Result float64 `json:"result"`
	Rate   float64 `json:"rate"`
}

// Convert converts amount from one currency to another. Transient failures
// are retried up to 3 times with a short backoff.
func (c *Client) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if !supportedCurrencies[from] || !supportedCurrencies[to] {
		return 0, fmt.Errorf("%w: %s->%s", domain.ErrUnsupportedCurrency, from, to)
	}
	if from == to {
		return amount, nil
	}

	endpoint := fmt.Sprintf("%s/v1/convert", c.baseURL)
	params := url.Values{}
	params.Add("from", from)
	params.Add("to", to)
	params.Add("amount", fmt.Sprintf("%.4f", amount))
	params.Add("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("rate limiter error: %w", err)
		}

		result, err := c.doConvert(ctx, reqURL)
		if err == nil {
			if c.debug {
				log.Printf("[CONVERT] %.2f %s -> %.2f %s", amount, from, result, to)
			}
			return result, nil
		}

		log.Printf("[CONVERT] attempt %d failed: %v", attempt, err)
		lastErr = err
		time.Sleep(time.Duration(attempt*500) * time.Millisecond)
	}

	return 0, lastErr
}

func (c *Client) doConvert(ctx context.Context, reqURL string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PriceSheet/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrConverterFailure, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d, body: %s", domain.ErrConverterFailure, resp.StatusCode, string(body))
	}

	var conversion conversionResponse
	if err := json.Unmarshal(body, &conversion); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return conversion.Result, nil
}
