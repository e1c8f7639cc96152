package valutatrade

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RatesTTL != 300*time.Second {
		t.Errorf("RatesTTL = %s, want 300s", cfg.RatesTTL)
	}
	if !cfg.StartingBonus.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("StartingBonus = %s, want 1000", cfg.StartingBonus)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("VT_DATA_DIR", "/tmp/vt-data")
	t.Setenv("VT_RATES_TTL_SECONDS", "60")
	t.Setenv("VT_REQUEST_TIMEOUT_SECONDS", "garbage")
	t.Setenv("VT_STARTING_BONUS", "2500")
	t.Setenv("EXCHANGERATE_API_KEY", "k-123")

	cfg := ConfigFromEnv()
	if cfg.DataDir != "/tmp/vt-data" {
		t.Errorf("DataDir = %s, want /tmp/vt-data", cfg.DataDir)
	}
	if cfg.RatesTTL != time.Minute {
		t.Errorf("RatesTTL = %s, want 1m", cfg.RatesTTL)
	}
	// unparsable values keep the default
	if cfg.RequestTimeout != DefaultConfig().RequestTimeout {
		t.Errorf("RequestTimeout = %s, want default", cfg.RequestTimeout)
	}
	if !cfg.StartingBonus.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("StartingBonus = %s, want 2500", cfg.StartingBonus)
	}
	if cfg.ExchangeRateAPIKey != "k-123" {
		t.Errorf("ExchangeRateAPIKey = %s, want k-123", cfg.ExchangeRateAPIKey)
	}
}

func TestConfigFromEnvRejectsBadBonus(t *testing.T) {
	t.Setenv("VT_STARTING_BONUS", "-5")
	cfg := ConfigFromEnv()
	if !cfg.StartingBonus.Equal(DefaultConfig().StartingBonus) {
		t.Errorf("StartingBonus = %s, want the default", cfg.StartingBonus)
	}
}
