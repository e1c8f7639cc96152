package valutatrade

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Portfolio is the full set of wallets owned by one user, at most one
// wallet per currency code.
type Portfolio struct {
	UserID  int
	wallets map[string]*Wallet
}

// NewPortfolio returns an empty portfolio for userID.
func NewPortfolio(userID int) *Portfolio {
	return &Portfolio{UserID: userID, wallets: make(map[string]*Wallet)}
}

// AddCurrency creates an empty wallet for code. It is idempotent: an
// existing wallet is left untouched.
func (p *Portfolio) AddCurrency(code string) {
	if _, ok := p.wallets[code]; ok {
		return
	}
	p.wallets[code] = &Wallet{Code: code}
}

// Has reports whether a wallet exists for code.
func (p *Portfolio) Has(code string) bool {
	_, ok := p.wallets[code]
	return ok
}

// Wallet returns the wallet for code. Callers wanting lazy creation call
// AddCurrency first.
func (p *Portfolio) Wallet(code string) (*Wallet, error) {
	w, ok := p.wallets[code]
	if !ok {
		return nil, fmt.Errorf("no wallet for currency %q", code)
	}
	return w, nil
}

// Len returns the number of wallets.
func (p *Portfolio) Len() int { return len(p.wallets) }

// Codes returns the wallet codes with the home currency first, then in
// lexical order.
func (p *Portfolio) Codes(home string) []string {
	codes := make([]string, 0, len(p.wallets))
	for code := range p.wallets {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if (codes[i] == home) != (codes[j] == home) {
			return codes[i] == home
		}
		return codes[i] < codes[j]
	})
	return codes
}

// TotalValue sums every wallet's balance converted into base. A wallet
// whose rate is unavailable contributes zero: this is display, not
// settlement logic.
func (p *Portfolio) TotalValue(base string, rates *RateTable) decimal.Decimal {
	total := decimal.Zero
	for _, w := range p.wallets {
		rate := rates.Rate(w.Code, base)
		if rate == 0 {
			continue
		}
		total = total.Add(w.Balance.Mul(decimal.NewFromFloat(rate)))
	}
	return total
}
