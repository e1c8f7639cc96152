package valutatrade

import "github.com/shopspring/decimal"

// Action identifies a user-facing operation in event reporting.
type Action string

const (
	ActionRegister Action = "REGISTER"
	ActionLogin    Action = "LOGIN"
	ActionBuy      Action = "BUY"
	ActionSell     Action = "SELL"
	ActionRefresh  Action = "REFRESH"
)

// Event is one structured record about an operation outcome.
type Event struct {
	Action   Action
	User     string // acting username, "guest" before login, "system" for refreshes
	Currency string
	Amount   decimal.Decimal
	Err      error // nil on success
}

// Observer receives one Event at the end of each operation, success or
// failure. Implementations must not block and must not panic.
type Observer interface {
	Observe(Event)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) Observe(Event) {}
