package valutatrade

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config gathers every tunable the simulator needs. It is built once at
// process start and passed explicitly to the components that need it; there
// is no process-wide settings state.
type Config struct {
	// DataDir holds all persisted documents.
	DataDir string
	// LogFile receives structured action events.
	LogFile string
	// RatesTTL is the soft freshness horizon of the rate cache. Staleness
	// beyond it is reported, not enforced.
	RatesTTL time.Duration
	// RequestTimeout bounds every provider HTTP call.
	RequestTimeout time.Duration
	// StartingBonus is the USD amount credited on registration.
	StartingBonus decimal.Decimal
	// ExchangeRateAPIKey authenticates against v6.exchangerate-api.com.
	// When empty the fiat source fails per-run, which the aggregator
	// tolerates.
	ExchangeRateAPIKey string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DataDir:        "data",
		LogFile:        "valutatrade.log",
		RatesTTL:       300 * time.Second,
		RequestTimeout: 10 * time.Second,
		StartingBonus:  decimal.NewFromInt(1000),
	}
}

// ConfigFromEnv builds a Config from the environment, falling back to
// defaults. The binary loads an optional .env file before calling this.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("VT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("VT_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if d, ok := envSeconds("VT_RATES_TTL_SECONDS"); ok {
		cfg.RatesTTL = d
	}
	if d, ok := envSeconds("VT_REQUEST_TIMEOUT_SECONDS"); ok {
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("VT_STARTING_BONUS"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.IsPositive() {
			cfg.StartingBonus = d
		}
	}
	if v := os.Getenv("EXCHANGERATE_API_KEY"); v != "" {
		cfg.ExchangeRateAPIKey = v
	}
	return cfg
}

func envSeconds(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return time.Duration(n) * time.Second, true
}
