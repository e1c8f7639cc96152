package valutatrade

import "github.com/shopspring/decimal"

// Wallet is a single currency balance owned by one user.
//
// The balance is never negative: any mutation that would break that
// invariant is rejected before taking effect.
type Wallet struct {
	Code    string
	Balance decimal.Decimal
}

// Deposit credits amount to the wallet. amount must be strictly positive.
func (w *Wallet) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return Validationf("deposit amount must be positive, got %s", amount)
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

// Withdraw debits amount from the wallet. amount must be strictly positive
// and no larger than the balance; otherwise the wallet is left unchanged.
// There is no partial debit.
func (w *Wallet) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return Validationf("withdraw amount must be positive, got %s", amount)
	}
	if amount.GreaterThan(w.Balance) {
		return &InsufficientFundsError{Available: w.Balance, Required: amount, Code: w.Code}
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}
