// Package renderer renders reports as markdown. Rendering applies display
// rounding only; it never feeds back into stored values.
package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/valutatrade"
)

// Portfolio renders a portfolio report as a markdown table: one row per
// wallet, home currency first, with a computed total.
func Portfolio(r *valutatrade.PortfolioReport) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "# Portfolio of %s (base: %s)\n\n", r.Username, r.Base)
	if len(r.Lines) == 0 {
		fmt.Fprintln(b, "No wallets yet.")
		return b.String()
	}
	fmt.Fprintf(b, "| Currency | Name | Balance | Value (%s) |\n", r.Base)
	fmt.Fprintln(b, "|---|---|---:|---:|")
	for _, line := range r.Lines {
		value := "n/a"
		if line.Priced {
			value = valutatrade.M(line.Value, r.Base).String()
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			line.Code, line.Name, line.Balance.StringFixed(4), value)
	}
	fmt.Fprintf(b, "| **Total** | | | **%s** |\n", valutatrade.M(r.Total, r.Base))
	return b.String()
}

// Rates renders the cached rate listing, sorted by descending rate.
func Rates(l *valutatrade.RatesListing, now time.Time) string {
	b := &strings.Builder{}
	refreshed := "never"
	if !l.LastRefresh.IsZero() {
		refreshed = l.LastRefresh.Format(time.RFC3339)
	}
	fmt.Fprintf(b, "# Cached rates (refreshed: %s)\n\n", refreshed)
	if len(l.Lines) == 0 {
		fmt.Fprintln(b, "The rate cache is empty. Run update-rates first.")
		return b.String()
	}
	fmt.Fprintln(b, "| Pair | Rate | Source | Age |")
	fmt.Fprintln(b, "|---|---:|---|---:|")
	for _, line := range l.Lines {
		fmt.Fprintf(b, "| %s | %.4f | %s | %s |\n",
			line.Pair, line.Quote.Rate, line.Quote.Source, age(now, line.Quote.UpdatedAt))
	}
	return b.String()
}

// Rate renders a single cross-rate query result.
func Rate(info *valutatrade.RateInfo, ttl time.Duration) string {
	b := &strings.Builder{}
	updated := "unknown"
	if !info.UpdatedAt.IsZero() {
		updated = info.UpdatedAt.Format(time.RFC3339)
	}
	fmt.Fprintf(b, "Rate %s/%s: %.8f (updated: %s)\n", info.From, info.To, info.Rate, updated)
	if info.Stale {
		fmt.Fprintf(b, "warning: rate table is %s old, TTL is %s\n",
			info.Age.Round(time.Second), ttl)
	}
	return b.String()
}

func age(now, when time.Time) string {
	if when.IsZero() {
		return "unknown"
	}
	return now.Sub(when).Round(time.Second).String()
}
