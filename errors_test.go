package valutatrade

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "insufficient funds", err: &InsufficientFundsError{Code: USD}, want: "InsufficientFunds"},
		{name: "currency not found", err: &CurrencyNotFoundError{Code: "XYZ"}, want: "CurrencyNotFound"},
		{name: "rate unavailable", err: &RateUnavailableError{Base: "ETH", Quote: USD}, want: "RateUnavailable"},
		{name: "fetch failure", err: &FetchError{Source: "CoinGecko", Err: fmt.Errorf("timeout")}, want: "ExternalFetch"},
		{name: "wrapped fetch failure", err: fmt.Errorf("refresh: %w", &FetchError{Source: "x"}), want: "ExternalFetch"},
		{name: "not logged in", err: fmt.Errorf("buy: %w", ErrNotLoggedIn), want: "NotLoggedIn"},
		{name: "bad input", err: Validationf("'amount' must be a positive number"), want: "Validation"},
		{name: "wrapped bad input", err: fmt.Errorf("buy: %w", Validationf("cannot buy USD with USD")), want: "Validation"},
		{name: "unexpected fault", err: fmt.Errorf("cannot read users.json: permission denied"), want: "Internal"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ErrorKind(tc.err); got != tc.want {
				t.Errorf("ErrorKind(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &FetchError{Source: "CoinGecko", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() does not reach the wrapped cause")
	}
}

func TestInsufficientFundsErrorMessage(t *testing.T) {
	err := &InsufficientFundsError{
		Available: mustDecimal(t, "406.6279"),
		Required:  mustDecimal(t, "593.3721"),
		Code:      USD,
	}
	want := "insufficient funds: available 406.6279 USD, required 593.3721 USD"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
