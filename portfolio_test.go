package valutatrade

import (
	"reflect"
	"testing"
	"time"
)

func TestPortfolioAddCurrencyIdempotent(t *testing.T) {
	p := NewPortfolio(1)
	p.AddCurrency("BTC")
	w, err := p.Wallet("BTC")
	if err != nil {
		t.Fatalf("Wallet(BTC) error = %v", err)
	}
	if err := w.Deposit(mustDecimal(t, "0.5")); err != nil {
		t.Fatal(err)
	}

	// adding again must not reset the existing wallet
	p.AddCurrency("BTC")
	w, _ = p.Wallet("BTC")
	if !w.Balance.Equal(mustDecimal(t, "0.5")) {
		t.Errorf("balance after re-add = %s, want 0.5", w.Balance)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestPortfolioWalletNotFound(t *testing.T) {
	p := NewPortfolio(1)
	if _, err := p.Wallet("EUR"); err == nil {
		t.Fatal("Wallet(EUR) on empty portfolio expected an error")
	}
	if p.Has("EUR") {
		t.Error("Has(EUR) = true on empty portfolio")
	}
}

func TestPortfolioCodesOrder(t *testing.T) {
	p := NewPortfolio(1)
	for _, code := range []string{"ETH", "USD", "BTC", "EUR"} {
		p.AddCurrency(code)
	}
	testCases := []struct {
		home string
		want []string
	}{
		{home: "USD", want: []string{"USD", "BTC", "ETH", "EUR"}},
		{home: "EUR", want: []string{"EUR", "BTC", "ETH", "USD"}},
		{home: "RUB", want: []string{"BTC", "ETH", "EUR", "USD"}}, // home not held
	}
	for _, tc := range testCases {
		if got := p.Codes(tc.home); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Codes(%q) = %v, want %v", tc.home, got, tc.want)
		}
	}
}

func TestPortfolioTotalValue(t *testing.T) {
	now := time.Now()
	rates := NewRateTable(map[string]Quote{
		Pair("BTC", USD): {Rate: 50000, UpdatedAt: now, Source: "test"},
		Pair("EUR", USD): {Rate: 1.25, UpdatedAt: now, Source: "test"},
	}, now)

	p := NewPortfolio(1)
	p.AddCurrency(USD)
	p.AddCurrency("BTC")
	p.AddCurrency("EUR")
	p.AddCurrency("ETH") // no rate: counts as zero
	for code, amount := range map[string]string{"USD": "100", "BTC": "0.01", "EUR": "10", "ETH": "3"} {
		w, _ := p.Wallet(code)
		if err := w.Deposit(mustDecimal(t, amount)); err != nil {
			t.Fatal(err)
		}
	}

	// 100 USD + 0.01 BTC * 50000 + 10 EUR * 1.25 + (ETH unavailable -> 0)
	if got, want := p.TotalValue(USD, rates), mustDecimal(t, "612.5"); !got.Equal(want) {
		t.Errorf("TotalValue(USD) = %s, want %s", got, want)
	}
}
