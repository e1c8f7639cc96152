package valutatrade

import (
	"errors"
	"fmt"
	"testing"
)

// stubSource is a canned Source for aggregation tests.
type stubSource struct {
	name  string
	rates map[string]float64
	err   error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchRates() (map[string]float64, error) { return s.rates, s.err }

func TestRefreshMergesSources(t *testing.T) {
	store := newTestStore(t)
	crypto := &stubSource{name: "CoinGecko", rates: map[string]float64{
		Pair("BTC", USD): 59337.21,
		Pair("ETH", USD): 3011.25,
		Pair("SOL", USD): 145.72,
	}}
	broken := &stubSource{name: "ExchangeRate-API", err: fmt.Errorf("status 503")}

	sum, err := NewUpdater(store, nil, crypto, broken).Refresh("")
	if err != nil {
		t.Fatalf("Refresh() error = %v, want nil when one source still delivered", err)
	}
	if sum.Updated != 3 || sum.Failed != 1 {
		t.Errorf("Summary = %+v, want 3 updated, 1 failed", sum)
	}

	rates, err := store.Rates()
	if err != nil {
		t.Fatal(err)
	}
	if rates.Len() != 3 {
		t.Errorf("persisted pairs = %d, want 3", rates.Len())
	}
	if got := rates.Rate("BTC", USD); got != 59337.21 {
		t.Errorf("Rate(BTC, USD) = %v, want 59337.21", got)
	}

	history, err := store.History()
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("history len = %d, want 3", len(history))
	}
	for i, r := range history {
		if r.ID == "" {
			t.Errorf("history[%d] has empty ID", i)
		}
		if r.Source != "CoinGecko" {
			t.Errorf("history[%d] source = %s, want CoinGecko", i, r.Source)
		}
	}
	// records land sorted by pair
	if history[0].Pair != Pair("BTC", USD) || history[2].Pair != Pair("SOL", USD) {
		t.Errorf("history order = %s .. %s, want BTC_USD first, SOL_USD last",
			history[0].Pair, history[2].Pair)
	}
}

func TestRefreshEmptySuccessBesideFailure(t *testing.T) {
	store := newTestStore(t)
	// e.g. CoinGecko answered but every coin was missing or invalid,
	// while the fiat source has no API key
	empty := &stubSource{name: "CoinGecko", rates: map[string]float64{}}
	broken := &stubSource{name: "ExchangeRate-API", err: fmt.Errorf("API key is missing")}

	sum, err := NewUpdater(store, nil, empty, broken).Refresh("")
	if err != nil {
		t.Fatalf("Refresh() error = %v, want nil: one source still succeeded", err)
	}
	if sum.Updated != 0 || sum.Failed != 1 {
		t.Errorf("Summary = %+v, want 0 updated, 1 failed", sum)
	}
	rates, rerr := store.Rates()
	if rerr != nil || rates.Len() != 0 {
		t.Errorf("rate table after no-op run: len = %d, err = %v, want empty", rates.Len(), rerr)
	}
}

func TestRefreshAllSourcesFail(t *testing.T) {
	store := newTestStore(t)
	a := &stubSource{name: "CoinGecko", err: fmt.Errorf("timeout")}
	b := &stubSource{name: "ExchangeRate-API", err: fmt.Errorf("bad key")}

	sum, err := NewUpdater(store, nil, a, b).Refresh("")
	if err == nil {
		t.Fatal("Refresh() succeeded, want error when every source failed")
	}
	if sum.Failed != 2 || sum.Updated != 0 {
		t.Errorf("Summary = %+v, want 0 updated, 2 failed", sum)
	}
	var fetch *FetchError
	if !errors.As(err, &fetch) {
		t.Errorf("error = %v, want a wrapped FetchError", err)
	}

	rates, rerr := store.Rates()
	if rerr != nil || rates.Len() != 0 {
		t.Errorf("rate table after total failure: len = %d, err = %v, want empty", rates.Len(), rerr)
	}
}

func TestRefreshSourceFilter(t *testing.T) {
	store := newTestStore(t)
	crypto := &stubSource{name: "CoinGecko", rates: map[string]float64{Pair("BTC", USD): 59337.21}}
	fiat := &stubSource{name: "ExchangeRate-API", rates: map[string]float64{Pair("EUR", USD): 1.0786}}
	updater := NewUpdater(store, nil, crypto, fiat)

	// case-insensitive substring match
	sum, err := updater.Refresh("coingecko")
	if err != nil {
		t.Fatalf("Refresh(coingecko) error = %v", err)
	}
	if sum.Updated != 1 || sum.Failed != 0 {
		t.Errorf("Summary = %+v, want only the crypto source fetched", sum)
	}
	rates, _ := store.Rates()
	if rates.Rate("EUR", USD) != 0 {
		t.Error("filtered-out source was fetched anyway")
	}

	// a filter matching nothing is a quiet no-op
	sum, err = updater.Refresh("bloomberg")
	if err != nil {
		t.Fatalf("Refresh(bloomberg) error = %v", err)
	}
	if sum.Updated != 0 || sum.Failed != 0 {
		t.Errorf("Summary = %+v, want a no-op", sum)
	}
}

func TestRefreshLastWriterWins(t *testing.T) {
	store := newTestStore(t)
	first := &stubSource{name: "SourceA", rates: map[string]float64{Pair("BTC", USD): 58000}}
	second := &stubSource{name: "SourceB", rates: map[string]float64{Pair("BTC", USD): 59337.21}}

	sum, err := NewUpdater(store, nil, first, second).Refresh("")
	if err != nil {
		t.Fatal(err)
	}
	// the pair was supplied twice but merged once
	if sum.Updated != 1 {
		t.Errorf("Summary.Updated = %d, want 1 unique pair", sum.Updated)
	}
	rates, err := store.Rates()
	if err != nil {
		t.Fatal(err)
	}
	if got := rates.Rate("BTC", USD); got != 59337.21 {
		t.Errorf("Rate(BTC, USD) = %v, want the later source's 59337.21", got)
	}
	for pair, q := range rates.All() {
		if pair == Pair("BTC", USD) && q.Source != "SourceB" {
			t.Errorf("pair source = %s, want SourceB", q.Source)
		}
	}
}

func TestRefreshEmitsEvent(t *testing.T) {
	store := newTestStore(t)
	obs := &recordingObserver{}
	src := &stubSource{name: "CoinGecko", rates: map[string]float64{Pair("BTC", USD): 59337.21}}

	if _, err := NewUpdater(store, obs, src).Refresh(""); err != nil {
		t.Fatal(err)
	}
	if len(obs.events) != 1 {
		t.Fatalf("events len = %d, want 1", len(obs.events))
	}
	e := obs.events[0]
	if e.Action != ActionRefresh || e.User != "system" || e.Err != nil {
		t.Errorf("event = %+v, want a successful system REFRESH", e)
	}
}
