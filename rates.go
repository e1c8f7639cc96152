package valutatrade

import (
	"iter"
	"maps"
	"time"
)

// USD is the anchor currency: every stored pair has USD on one side, which
// makes any cross rate derivable in O(1).
const USD = "USD"

// Pair formats the storage key for a base/quote currency pair.
func Pair(base, quote string) string { return base + "_" + quote }

// Quote is one stored rate observation together with its provenance.
type Quote struct {
	Rate      float64
	UpdatedAt time.Time
	Source    string
}

// RateTable is a normalized in-memory view over the persisted pair mapping.
// Same-currency identity rates are computed, never stored.
type RateTable struct {
	pairs       map[string]Quote
	lastRefresh time.Time
}

// NewRateTable builds a table over pairs. lastRefresh is the time of the
// aggregation run that produced the document, zero when unknown.
func NewRateTable(pairs map[string]Quote, lastRefresh time.Time) *RateTable {
	if pairs == nil {
		pairs = make(map[string]Quote)
	}
	return &RateTable{pairs: pairs, lastRefresh: lastRefresh}
}

// Len returns the number of stored pairs.
func (t *RateTable) Len() int { return len(t.pairs) }

// LastRefresh returns the time of the aggregation run that produced the
// table, zero when unknown.
func (t *RateTable) LastRefresh() time.Time { return t.lastRefresh }

// All iterates over every stored pair and its quote.
func (t *RateTable) All() iter.Seq2[string, Quote] { return maps.All(t.pairs) }

// usdRate returns the USD value of one unit of code, or 0 when underivable.
func (t *RateTable) usdRate(code string) float64 {
	if code == USD {
		return 1.0
	}
	if q, ok := t.pairs[Pair(code, USD)]; ok {
		return q.Rate
	}
	if q, ok := t.pairs[Pair(USD, code)]; ok && q.Rate != 0 {
		return 1.0 / q.Rate
	}
	return 0.0
}

// Rate returns the base to quote cross rate derived through the USD anchor,
// and 1.0 when base == quote. When either side has no USD-anchored rate it
// returns 0.0: a sentinel for "no rate available" that callers must map to
// a domain error rather than trade at a zero price.
func (t *RateTable) Rate(base, quote string) float64 {
	if base == quote {
		return 1.0
	}
	b := t.usdRate(base)
	q := t.usdRate(quote)
	if b == 0 || q == 0 {
		return 0.0
	}
	return b / q
}

// UpdatedAt returns the provenance timestamp backing a base to quote
// lookup: the direct pair when stored, else the base-side USD pair in
// either direction. ok is false when no backing pair exists.
func (t *RateTable) UpdatedAt(base, quote string) (when time.Time, ok bool) {
	if q, found := t.pairs[Pair(base, quote)]; found {
		return q.UpdatedAt, true
	}
	if q, found := t.pairs[Pair(base, USD)]; found {
		return q.UpdatedAt, true
	}
	if q, found := t.pairs[Pair(USD, base)]; found {
		return q.UpdatedAt, true
	}
	return time.Time{}, false
}

// Staleness reports the table's age against now and whether it exceeds ttl.
// Staleness is advisory: it is surfaced as a warning but never blocks a
// trade. When the document carries no refresh time, the newest pair
// observation is used instead.
func (t *RateTable) Staleness(now time.Time, ttl time.Duration) (age time.Duration, stale bool) {
	ref := t.lastRefresh
	if ref.IsZero() {
		for _, q := range t.pairs {
			if q.UpdatedAt.After(ref) {
				ref = q.UpdatedAt
			}
		}
	}
	if ref.IsZero() {
		return 0, false
	}
	age = now.Sub(ref)
	return age, age > ttl
}
