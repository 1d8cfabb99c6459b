package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// FallbackPrice is the EUR-per-gram price used when the spot API is
// unreachable or unconfigured. Callers that fall back must say so.
var FallbackPrice = decimal.NewFromFloat(106.41)

const (
	defaultAPIURL = "https://www.goldapi.io/api/XAU/EUR"
	// TokenEnvVar names the environment variable holding the goldapi.io key.
	TokenEnvVar = "GOLD_API_TOKEN"
)

// SpotClient fetches the current gold price from goldapi.io.
type SpotClient struct {
	httpClient *http.Client
	apiURL     string
	token      string
}

// NewSpotClient builds a client reading the API token from the environment.
func NewSpotClient() *SpotClient {
	return &SpotClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     defaultAPIURL,
		token:      os.Getenv(TokenEnvVar),
	}
}

// NewSpotClientWithURL is used by tests to point the client at a stub server.
func NewSpotClientWithURL(url, token string) *SpotClient {
	return &SpotClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     url,
		token:      token,
	}
}

type spotResponse struct {
	PriceGram24K float64 `json:"price_gram_24k"`
	Price        float64 `json:"price"`
}

// CurrentPrice returns the spot EUR-per-gram price. The caller decides
// whether to substitute FallbackPrice on error.
func (c *SpotClient) CurrentPrice(ctx context.Context) (decimal.Decimal, error) {
	if c.token == "" {
		return decimal.Zero, fmt.Errorf("no API token configured (set %s)", TokenEnvVar)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build spot request: %w", err)
	}
	req.Header.Set("x-access-token", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("spot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("spot request returned status %d", resp.StatusCode)
	}

	var body spotResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode spot response: %w", err)
	}

	price := body.PriceGram24K
	if price == 0 {
		// Older API payloads carry only the per-ounce price.
		price = body.Price / gramsPerTroyOunce
	}
	if price <= 0 {
		return decimal.Zero, fmt.Errorf("spot response carried no usable price")
	}
	return decimal.NewFromFloat(price).Round(2), nil
}

const gramsPerTroyOunce = 31.1034768
