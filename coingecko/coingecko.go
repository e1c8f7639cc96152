// Package coingecko fetches crypto prices from the CoinGecko simple price
// API. No API key is required for the public endpoint.
package coingecko

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/valutatrade"
)

// ids maps tradable currency codes to CoinGecko coin ids.
var ids = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"USDT": "tether",
}

// Client queries the CoinGecko public API.
type Client struct {
	// BaseURL of the API, overridable in tests.
	BaseURL string

	client *http.Client
}

// New returns a client applying timeout to every call.
func New(timeout time.Duration) *Client {
	return &Client{
		BaseURL: "https://api.coingecko.com/api/v3",
		client:  valutatrade.NewClient(timeout),
	}
}

// Name identifies this source in provenance records and filters.
func (c *Client) Name() string { return "CoinGecko" }

// FetchRates returns <CODE>_USD prices for every mapped coin. A coin
// missing from the response is skipped, not an error.
func (c *Client) FetchRates() (map[string]float64, error) {
	coins := make([]string, 0, len(ids))
	for _, id := range ids {
		coins = append(coins, id)
	}
	sort.Strings(coins)
	addr := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		c.BaseURL, url.QueryEscape(strings.Join(coins, ",")))

	// The payload shape is {"bitcoin": {"usd": 59337.21}, ...}; decode it
	// generically and pick values by path.
	var jobj interface{}
	if err := valutatrade.JSONGet(c.client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("coingecko: %w", err)
	}

	result := make(map[string]float64, len(ids))
	for code, id := range ids {
		jval, err := jsonpath.Get(fmt.Sprintf("$.%s.usd", id), jobj)
		if err != nil {
			continue
		}
		// jsonpath sometimes wraps a single answer in a list.
		if jlist, ok := jval.([]interface{}); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		val, ok := jval.(float64)
		if !ok || val <= 0 {
			continue
		}
		result[valutatrade.Pair(code, valutatrade.USD)] = val
	}
	return result, nil
}
