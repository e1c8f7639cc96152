package valutatrade

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// newTestStore returns a store over a throwaway directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir())
}

// seedRates persists a rate document with the given pairs, all stamped now.
func seedRates(t *testing.T, s *Store, pairs map[string]float64) time.Time {
	t.Helper()
	now := time.Now()
	quotes := make(map[string]Quote, len(pairs))
	for pair, rate := range pairs {
		quotes[pair] = Quote{Rate: rate, UpdatedAt: now, Source: "test"}
	}
	if err := s.SaveRates(quotes, now); err != nil {
		t.Fatalf("SaveRates() error = %v", err)
	}
	return now
}

// newTestService registers and logs in a user backed by a throwaway store.
func newTestService(t *testing.T, username, password string) (*Service, *Store) {
	t.Helper()
	store := newTestStore(t)
	svc := NewService(store, DefaultConfig(), nil)
	if _, err := svc.Register(username, password); err != nil {
		t.Fatalf("Register(%q) error = %v", username, err)
	}
	if _, err := svc.Login(username, password); err != nil {
		t.Fatalf("Login(%q) error = %v", username, err)
	}
	return svc, store
}

// mustDecimal parses s or fails the test.
func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

// recordingObserver captures every event for assertions.
type recordingObserver struct {
	events []Event
}

func (o *recordingObserver) Observe(e Event) { o.events = append(o.events, e) }

// usdBalance returns the persisted USD balance of a user's portfolio.
func usdBalance(t *testing.T, s *Store, userID int) decimal.Decimal {
	t.Helper()
	p, ok, err := s.Portfolio(userID)
	if err != nil || !ok {
		t.Fatalf("Portfolio(%d) = ok=%v, err=%v", userID, ok, err)
	}
	w, err := p.Wallet(USD)
	if err != nil {
		t.Fatalf("Wallet(USD) error = %v", err)
	}
	return w.Balance
}
