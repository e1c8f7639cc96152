package valutatrade

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Service is the transaction engine. It orchestrates registration,
// authentication and trading over the persisted documents: validate, then
// price, then check, then commit, then persist. State mutation is deferred
// until all validation passes, so a failed operation never corrupts the
// persisted documents.
//
// One Service serves one session: it holds at most one current user.
type Service struct {
	store *Store
	cfg   Config
	obs   Observer
	user  *User
}

// NewService builds the engine. A nil observer discards events.
func NewService(store *Store, cfg Config, obs Observer) *Service {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Service{store: store, cfg: cfg, obs: obs}
}

// User returns the current user, nil before login.
func (s *Service) User() *User { return s.user }

// SetUser resumes a previously authenticated user, e.g. from a persisted
// login session.
func (s *Service) SetUser(u *User) { s.user = u }

func (s *Service) username() string {
	if s.user == nil {
		return "guest"
	}
	return s.user.Name
}

func (s *Service) emit(action Action, user, currency string, amount decimal.Decimal, err error) {
	s.obs.Observe(Event{Action: action, User: user, Currency: currency, Amount: amount, Err: err})
}

// Register creates a new user and seeds its portfolio with a single USD
// wallet holding the starting bonus.
func (s *Service) Register(username, password string) (u *User, err error) {
	defer func() { s.emit(ActionRegister, username, "", decimal.Zero, err) }()

	users, err := s.store.Users()
	if err != nil {
		return nil, err
	}
	for _, existing := range users {
		if existing.Name == username {
			return nil, Validationf("username %q is already taken", username)
		}
	}
	u, err = NewUser(len(users)+1, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveUsers(append(users, u)); err != nil {
		return nil, err
	}

	p := NewPortfolio(u.ID)
	p.AddCurrency(USD)
	w, _ := p.Wallet(USD)
	if err := w.Deposit(s.cfg.StartingBonus); err != nil {
		return nil, err
	}
	if err := s.store.SavePortfolio(p); err != nil {
		return nil, err
	}
	return u, nil
}

// Login authenticates username and makes it the session's current user.
func (s *Service) Login(username, password string) (u *User, err error) {
	defer func() { s.emit(ActionLogin, username, "", decimal.Zero, err) }()

	users, err := s.store.Users()
	if err != nil {
		return nil, err
	}
	for _, existing := range users {
		if existing.Name != username {
			continue
		}
		if !existing.VerifyPassword(password) {
			return nil, Validationf("invalid password")
		}
		s.user = existing
		return existing, nil
	}
	return nil, Validationf("user %q not found", username)
}

// portfolio loads the current user's portfolio, falling back to a fresh
// USD-seeded one when none is persisted yet.
func (s *Service) portfolio() (*Portfolio, error) {
	if s.user == nil {
		return nil, ErrNotLoggedIn
	}
	p, ok, err := s.store.Portfolio(s.user.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		p = NewPortfolio(s.user.ID)
		p.AddCurrency(USD)
	}
	return p, nil
}

// TradeConfirmation summarizes an executed buy or sell.
type TradeConfirmation struct {
	Action     Action
	Currency   string
	Amount     decimal.Decimal
	Rate       float64         // unit rate against USD at execution time
	Value      decimal.Decimal // USD debited (buy) or credited (sell)
	USDBalance decimal.Decimal // USD wallet balance after the trade
}

// Buy purchases amount of currency against the USD wallet at the current
// rate. The two wallet mutations and the persistence form one unit: nothing
// is written until both succeeded in memory.
func (s *Service) Buy(currency string, amount decimal.Decimal) (c *TradeConfirmation, err error) {
	defer func() { s.emit(ActionBuy, s.username(), currency, amount, err) }()

	if !amount.IsPositive() {
		return nil, Validationf("'amount' must be a positive number")
	}
	if currency == USD {
		return nil, Validationf("cannot buy USD with USD")
	}
	if _, err := Resolve(currency); err != nil {
		return nil, err
	}

	p, err := s.portfolio()
	if err != nil {
		return nil, err
	}
	rates, err := s.store.Rates()
	if err != nil {
		return nil, err
	}
	rate := rates.Rate(currency, USD)
	if rate == 0 {
		return nil, &RateUnavailableError{Base: currency, Quote: USD}
	}
	cost := amount.Mul(decimal.NewFromFloat(rate))

	p.AddCurrency(USD)
	usd, _ := p.Wallet(USD)
	if usd.Balance.LessThan(cost) {
		return nil, &InsufficientFundsError{Available: usd.Balance, Required: cost, Code: USD}
	}
	if err := usd.Withdraw(cost); err != nil {
		return nil, err
	}
	p.AddCurrency(currency)
	target, _ := p.Wallet(currency)
	if err := target.Deposit(amount); err != nil {
		return nil, err
	}

	if err := s.store.SavePortfolio(p); err != nil {
		return nil, err
	}
	return &TradeConfirmation{
		Action:     ActionBuy,
		Currency:   currency,
		Amount:     amount,
		Rate:       rate,
		Value:      cost,
		USDBalance: usd.Balance,
	}, nil
}

// Sell converts amount of currency back into USD at the current rate. The
// source wallet must exist and hold at least amount; otherwise nothing is
// mutated.
func (s *Service) Sell(currency string, amount decimal.Decimal) (c *TradeConfirmation, err error) {
	defer func() { s.emit(ActionSell, s.username(), currency, amount, err) }()

	if !amount.IsPositive() {
		return nil, Validationf("'amount' must be a positive number")
	}
	if currency == USD {
		return nil, Validationf("cannot sell USD")
	}
	if _, err := Resolve(currency); err != nil {
		return nil, err
	}

	p, err := s.portfolio()
	if err != nil {
		return nil, err
	}
	source, err := p.Wallet(currency)
	if err != nil {
		return nil, Validationf("you have no %q wallet", currency)
	}
	rates, err := s.store.Rates()
	if err != nil {
		return nil, err
	}
	rate := rates.Rate(currency, USD)
	if rate == 0 {
		return nil, &RateUnavailableError{Base: currency, Quote: USD}
	}

	if err := source.Withdraw(amount); err != nil {
		return nil, err
	}
	proceeds := amount.Mul(decimal.NewFromFloat(rate))
	p.AddCurrency(USD)
	usd, _ := p.Wallet(USD)
	if err := usd.Deposit(proceeds); err != nil {
		return nil, err
	}

	if err := s.store.SavePortfolio(p); err != nil {
		return nil, err
	}
	return &TradeConfirmation{
		Action:     ActionSell,
		Currency:   currency,
		Amount:     amount,
		Rate:       rate,
		Value:      proceeds,
		USDBalance: usd.Balance,
	}, nil
}

// RateInfo is the result of a cross-rate query.
type RateInfo struct {
	From      string
	To        string
	Rate      float64
	UpdatedAt time.Time     // zero when provenance is unknown
	Age       time.Duration // age of the whole rate table
	Stale     bool          // age exceeds the configured TTL (advisory)
}

// GetRate computes the from/to cross rate with its provenance timestamp.
// Both currencies must be registered; an underivable rate is a
// RateUnavailableError, never a silent zero.
func (s *Service) GetRate(from, to string) (*RateInfo, error) {
	if _, err := Resolve(from); err != nil {
		return nil, err
	}
	if _, err := Resolve(to); err != nil {
		return nil, err
	}
	rates, err := s.store.Rates()
	if err != nil {
		return nil, err
	}
	rate := rates.Rate(from, to)
	if rate == 0 {
		return nil, &RateUnavailableError{Base: from, Quote: to}
	}
	updated, _ := rates.UpdatedAt(from, to)
	age, stale := rates.Staleness(time.Now(), s.cfg.RatesTTL)
	return &RateInfo{From: from, To: to, Rate: rate, UpdatedAt: updated, Age: age, Stale: stale}, nil
}

// PortfolioLine is one wallet row valued in the report's base currency.
type PortfolioLine struct {
	Code    string
	Name    string
	Balance decimal.Decimal
	Value   decimal.Decimal
	Priced  bool // false when no rate was derivable; the value counts as zero
}

// PortfolioReport values every wallet of the current user in a base
// currency, home currency first.
type PortfolioReport struct {
	Username string
	Base     string
	Lines    []PortfolioLine
	Total    decimal.Decimal
}

// PortfolioReport renders the current user's wallets and their value in
// base. An unavailable rate contributes zero to the total: this is display,
// not settlement logic.
func (s *Service) PortfolioReport(base string) (*PortfolioReport, error) {
	if _, err := Resolve(base); err != nil {
		return nil, err
	}
	p, err := s.portfolio()
	if err != nil {
		return nil, err
	}
	rates, err := s.store.Rates()
	if err != nil {
		return nil, err
	}

	report := &PortfolioReport{Username: s.user.Name, Base: base}
	for _, code := range p.Codes(base) {
		w, _ := p.Wallet(code)
		name := code
		if c, err := Resolve(code); err == nil {
			name = c.Name
		}
		line := PortfolioLine{Code: code, Name: name, Balance: w.Balance}
		if rate := rates.Rate(code, base); rate != 0 {
			line.Value = w.Balance.Mul(decimal.NewFromFloat(rate))
			line.Priced = true
		}
		report.Total = report.Total.Add(line.Value)
		report.Lines = append(report.Lines, line)
	}
	return report, nil
}

// RateLine is one cached pair in a rates listing.
type RateLine struct {
	Pair  string
	Quote Quote
}

// RatesListing is the cached pairs sorted by descending rate.
type RatesListing struct {
	LastRefresh time.Time
	Lines       []RateLine
}

// RatesReport lists the cached pairs, optionally keeping only pairs whose
// key contains currency, and truncating to the top entries when top is
// positive.
func (s *Service) RatesReport(currency string, top int) (*RatesListing, error) {
	rates, err := s.store.Rates()
	if err != nil {
		return nil, err
	}
	listing := &RatesListing{LastRefresh: rates.LastRefresh()}
	for pair, quote := range rates.All() {
		if currency != "" && !strings.Contains(pair, currency) {
			continue
		}
		listing.Lines = append(listing.Lines, RateLine{Pair: pair, Quote: quote})
	}
	sort.Slice(listing.Lines, func(i, j int) bool {
		if listing.Lines[i].Quote.Rate != listing.Lines[j].Quote.Rate {
			return listing.Lines[i].Quote.Rate > listing.Lines[j].Quote.Rate
		}
		return listing.Lines[i].Pair < listing.Lines[j].Pair
	})
	if top > 0 && len(listing.Lines) > top {
		listing.Lines = listing.Lines[:top]
	}
	return listing, nil
}
