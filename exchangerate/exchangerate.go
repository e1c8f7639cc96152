// Package exchangerate fetches fiat rates from the ExchangeRate-API v6
// endpoint. The endpoint quotes USD to CODE; rates are inverted into the
// stored CODE_USD form.
package exchangerate

import (
	"fmt"
	"net/http"
	"time"

	"github.com/etnz/valutatrade"
)

// fiat lists the currency codes extracted from the response.
var fiat = []string{"CNY", "EUR", "GBP", "RUB"}

// Client queries the ExchangeRate-API with an account key.
type Client struct {
	// BaseURL of the API, overridable in tests.
	BaseURL string

	apiKey string
	client *http.Client
}

// New returns a client authenticating with apiKey and applying timeout to
// every call.
func New(apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: "https://v6.exchangerate-api.com/v6",
		apiKey:  apiKey,
		client:  valutatrade.NewClient(timeout),
	}
}

// Name identifies this source in provenance records and filters.
func (c *Client) Name() string { return "ExchangeRate-API" }

// FetchRates returns <CODE>_USD rates for the configured fiat currencies.
// A missing API key is a per-source failure, tolerated by the aggregator.
func (c *Client) FetchRates() (map[string]float64, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("exchangerate: API key is missing")
	}
	addr := fmt.Sprintf("%s/%s/latest/%s", c.BaseURL, c.apiKey, valutatrade.USD)

	var payload struct {
		Result          string             `json:"result"`
		ErrorType       string             `json:"error-type"`
		ConversionRates map[string]float64 `json:"conversion_rates"`
	}
	if err := valutatrade.JSONGet(c.client, addr, &payload); err != nil {
		return nil, fmt.Errorf("exchangerate: %w", err)
	}
	if payload.Result != "" && payload.Result != "success" {
		return nil, fmt.Errorf("exchangerate: API answered %q (%s)", payload.Result, payload.ErrorType)
	}

	result := make(map[string]float64, len(fiat))
	for _, code := range fiat {
		val, ok := payload.ConversionRates[code]
		if !ok || val <= 0 {
			continue
		}
		result[valutatrade.Pair(code, valutatrade.USD)] = 1.0 / val
	}
	return result, nil
}
