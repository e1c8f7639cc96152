package valutatrade

import (
	"fmt"
	"sort"
	"strings"
)

// CurrencyKind discriminates the closed set of currency variants.
type CurrencyKind int

const (
	Fiat CurrencyKind = iota
	Crypto
)

func (k CurrencyKind) String() string {
	switch k {
	case Fiat:
		return "fiat"
	case Crypto:
		return "crypto"
	default:
		return "unknown"
	}
}

// Currency is immutable reference data about a tradable currency. It is not
// user data: the registry below is the single source of known codes, and
// every operation that accepts a code resolves it there first.
type Currency struct {
	Code string
	Name string
	Kind CurrencyKind

	// Fiat only.
	IssuingCountry string

	// Crypto only.
	Algorithm string
	MarketCap float64
}

// DisplayInfo returns a one-line description of the currency.
func (c Currency) DisplayInfo() string {
	switch c.Kind {
	case Crypto:
		return fmt.Sprintf("[CRYPTO] %s - %s (Algo: %s, MCAP: %.2e)", c.Code, c.Name, c.Algorithm, c.MarketCap)
	default:
		return fmt.Sprintf("[FIAT] %s - %s (Issuing: %s)", c.Code, c.Name, c.IssuingCountry)
	}
}

func (c Currency) String() string { return fmt.Sprintf("%s (%s)", c.Code, c.Name) }

var registry = map[string]Currency{
	"USD":  {Code: "USD", Name: "US Dollar", Kind: Fiat, IssuingCountry: "United States"},
	"EUR":  {Code: "EUR", Name: "Euro", Kind: Fiat, IssuingCountry: "Eurozone"},
	"GBP":  {Code: "GBP", Name: "Pound Sterling", Kind: Fiat, IssuingCountry: "United Kingdom"},
	"RUB":  {Code: "RUB", Name: "Russian Ruble", Kind: Fiat, IssuingCountry: "Russia"},
	"CNY":  {Code: "CNY", Name: "Renminbi", Kind: Fiat, IssuingCountry: "China"},
	"BTC":  {Code: "BTC", Name: "Bitcoin", Kind: Crypto, Algorithm: "SHA-256", MarketCap: 1.12e12},
	"ETH":  {Code: "ETH", Name: "Ethereum", Kind: Crypto, Algorithm: "Ethash", MarketCap: 4.5e11},
	"SOL":  {Code: "SOL", Name: "Solana", Kind: Crypto, Algorithm: "Proof of History", MarketCap: 8.0e10},
	"USDT": {Code: "USDT", Name: "Tether", Kind: Crypto, Algorithm: "ERC-20", MarketCap: 8.3e10},
}

// checkCode rejects malformed currency codes before any registry lookup.
func checkCode(code string) error {
	if len(code) < 2 || len(code) > 5 {
		return Validationf("invalid currency code length: %q", code)
	}
	if strings.ContainsRune(code, ' ') {
		return Validationf("currency code must not contain spaces: %q", code)
	}
	if code != strings.ToUpper(code) {
		return Validationf("currency code must be upper case: %q", code)
	}
	return nil
}

// Resolve returns the registry entry for code. A malformed code is a
// validation error; a well-formed but unknown code is a CurrencyNotFoundError.
func Resolve(code string) (Currency, error) {
	if err := checkCode(code); err != nil {
		return Currency{}, err
	}
	c, ok := registry[code]
	if !ok {
		return Currency{}, &CurrencyNotFoundError{Code: code}
	}
	return c, nil
}

// Codes returns all registered currency codes in lexical order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
