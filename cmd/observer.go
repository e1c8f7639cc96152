package cmd

import (
	"github.com/etnz/valutatrade"
	"github.com/phuslu/log"
)

// logObserver writes one structured event per operation through phuslu/log.
type logObserver struct{}

func (logObserver) Observe(e valutatrade.Event) {
	var entry *log.Entry
	if e.Err != nil {
		entry = log.Error().
			Str("error_type", valutatrade.ErrorKind(e.Err)).
			Str("error", e.Err.Error())
	} else {
		entry = log.Info()
	}
	entry = entry.
		Str("action", string(e.Action)).
		Str("user", e.User)
	if e.Currency != "" {
		entry = entry.Str("currency", e.Currency)
	}
	if !e.Amount.IsZero() {
		entry = entry.Str("amount", e.Amount.String())
	}
	if e.Err != nil {
		entry.Msg("action failed")
		return
	}
	entry.Msg("action ok")
}
