package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
TokenSymbol = "FUSE"

[oracle]
MinPoolReserve = 100
MaxFeedAgeSeconds = 60
MaxFeedConfidenceBps = 150
MaxAgeManualSeconds = 1800

[redeem]
MaxRarityBonusBps = 2000
TokenDecimals = 9

[fees]
PlatformBps = 250
ProjectBps = 500
RoyaltyBps = 100
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "platform.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenSymbol != "FUSE" {
		t.Fatalf("unexpected token symbol: %q", cfg.TokenSymbol)
	}

	params := cfg.OracleParams()
	if params.MinPoolReserve.Int64() != 100 {
		t.Fatalf("unexpected min pool reserve: %s", params.MinPoolReserve)
	}
	if params.MaxAgeManualSeconds != 1_800 {
		t.Fatalf("unexpected manual staleness window: %d", params.MaxAgeManualSeconds)
	}
	// Unset windows fall back to the one hour default.
	if params.MaxAgeDexPoolSeconds != 3_600 || params.MaxAgeFeedSeconds != 3_600 {
		t.Fatalf("defaults not applied: %+v", params)
	}

	redeem, err := cfg.RedeemConfig()
	if err != nil {
		t.Fatalf("redeem config: %v", err)
	}
	if redeem.MaxRarityBonusBps != 2_000 || redeem.TokenDecimals != 9 {
		t.Fatalf("unexpected redeem config: %+v", redeem)
	}
	if redeem.FeeSplit == nil || redeem.FeeSplit.TotalBps() != 850 {
		t.Fatalf("fee split not assembled: %+v", redeem.FeeSplit)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	if _, err := Load(writeConfig(t, sampleConfig+"\nUnknownKey = 1\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadRejectsInvalidFees(t *testing.T) {
	body := `
[fees]
PlatformBps = 9000
ProjectBps = 9000
`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := cfg.RedeemConfig(); err == nil {
		t.Fatalf("expected fee split validation error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
