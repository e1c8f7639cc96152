package valutatrade

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source is an independent external provider of currency prices. FetchRates
// returns pair keys in <CODE>_USD form mapped to the unit price in USD. A
// failure (network, auth, parse) concerns this source only.
type Source interface {
	Name() string
	FetchRates() (map[string]float64, error)
}

// Summary reports the outcome of one aggregation run.
type Summary struct {
	Updated int // pairs merged into the rate table
	Failed  int // sources that errored
}

// Updater is the rate aggregator: it fetches rates from every configured
// source and merges them into the persisted rate table, tracking per-pair
// provenance. One Refresh is one run; no background work outlives it.
type Updater struct {
	store   *Store
	obs     Observer
	sources []Source
}

// NewUpdater builds an aggregator over the given sources. A nil observer
// discards events.
func NewUpdater(store *Store, obs Observer, sources ...Source) *Updater {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Updater{store: store, obs: obs, sources: sources}
}

// Refresh queries each source whose name contains filter (case-insensitive;
// empty matches all). A failing source is logged, counted and skipped, it
// never aborts the others. Every fetched pair is stamped with the run start
// time and tagged with its source, later sources overwriting earlier ones
// for the same key. Merged pairs are persisted to the rate table and
// appended to the bounded history.
//
// Refresh returns an error only when every attempted source failed. Sources
// that were fetched but yielded nothing make the run a no-op.
func (u *Updater) Refresh(filter string) (sum Summary, err error) {
	defer func() {
		u.obs.Observe(Event{Action: ActionRefresh, User: "system", Amount: decimal.Zero, Err: err})
	}()

	now := time.Now()
	merged := make(map[string]Quote)
	var failures []error
	successes := 0

	for _, src := range u.sources {
		if filter != "" && !strings.Contains(strings.ToLower(src.Name()), strings.ToLower(filter)) {
			continue
		}
		rates, ferr := src.FetchRates()
		if ferr != nil {
			log.Printf("rates refresh: source %s failed: %v", src.Name(), ferr)
			failures = append(failures, &FetchError{Source: src.Name(), Err: ferr})
			sum.Failed++
			continue
		}
		log.Printf("rates refresh: source %s returned %d pairs", src.Name(), len(rates))
		successes++
		for pair, rate := range rates {
			merged[pair] = Quote{Rate: rate, UpdatedAt: now, Source: src.Name()}
		}
	}
	sum.Updated = len(merged)

	if len(merged) == 0 {
		// A fetched-but-empty source is still a success: only a run where
		// every attempted source failed is an aggregate failure.
		if successes == 0 && len(failures) > 0 {
			return sum, fmt.Errorf("rates refresh failed: %w", errors.Join(failures...))
		}
		return sum, nil
	}

	if err := u.store.SaveRates(merged, now); err != nil {
		return sum, err
	}

	pairs := make([]string, 0, len(merged))
	for pair := range merged {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)
	records := make([]HistoryRecord, 0, len(pairs))
	for _, pair := range pairs {
		q := merged[pair]
		records = append(records, HistoryRecord{
			ID:        uuid.NewString(),
			Pair:      pair,
			Rate:      q.Rate,
			Timestamp: q.UpdatedAt,
			Source:    q.Source,
		})
	}
	if err := u.store.AppendHistory(records); err != nil {
		return sum, err
	}
	return sum, nil
}
