package valutatrade

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotLoggedIn is returned by operations that require an authenticated user.
var ErrNotLoggedIn = errors.New("no active session, run login first")

// ValidationError reports user input rejected before any state change.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf builds a ValidationError the way fmt.Errorf would.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// CurrencyNotFoundError reports a currency code absent from the registry.
type CurrencyNotFoundError struct {
	Code string
}

func (e *CurrencyNotFoundError) Error() string {
	return fmt.Sprintf("unknown currency %q", e.Code)
}

// InsufficientFundsError reports a debit that would make a balance negative.
// The wallet is left unchanged.
type InsufficientFundsError struct {
	Available decimal.Decimal
	Required  decimal.Decimal
	Code      string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %s %s, required %s %s",
		e.Available.StringFixed(4), e.Code, e.Required.StringFixed(4), e.Code)
}

// RateUnavailableError reports that no rate is derivable for a pair, even
// through the USD anchor.
type RateUnavailableError struct {
	Base  string
	Quote string
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("no rate available for %s/%s", e.Base, e.Quote)
}

// FetchError wraps the failure of a single rate source. It never aborts an
// aggregation run on its own; the Updater collects them instead.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrorKind classifies err into a short stable label, suitable for
// structured event reporting.
func ErrorKind(err error) string {
	var (
		notFound     *CurrencyNotFoundError
		insufficient *InsufficientFundsError
		unavailable  *RateUnavailableError
		fetch        *FetchError
		validation   *ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &insufficient):
		return "InsufficientFunds"
	case errors.As(err, &notFound):
		return "CurrencyNotFound"
	case errors.As(err, &unavailable):
		return "RateUnavailable"
	case errors.As(err, &fetch):
		return "ExternalFetch"
	case errors.As(err, &validation):
		return "Validation"
	case errors.Is(err, ErrNotLoggedIn):
		return "NotLoggedIn"
	default:
		// store I/O and other unexpected faults, distinct from bad input
		return "Internal"
	}
}
