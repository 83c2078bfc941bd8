package config

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"fusionmarket/native/fees"
	"fusionmarket/native/oracle"
	"fusionmarket/native/swap"
)

// Oracle holds the price guardrails loaded from the [oracle] section.
type Oracle struct {
	MinPoolReserve       int64  `toml:"MinPoolReserve"`
	MaxFeedAgeSeconds    int64  `toml:"MaxFeedAgeSeconds"`
	MaxFeedConfidenceBps uint32 `toml:"MaxFeedConfidenceBps"`
	MaxAgeManualSeconds  int64  `toml:"MaxAgeManualSeconds"`
	MaxAgeDexPoolSeconds int64  `toml:"MaxAgeDexPoolSeconds"`
	MaxAgeFeedSeconds    int64  `toml:"MaxAgeFeedSeconds"`
}

// Redeem holds the redemption guardrails loaded from the [redeem] section.
type Redeem struct {
	MaxRarityBonusBps int64 `toml:"MaxRarityBonusBps"`
	TokenDecimals     uint8 `toml:"TokenDecimals"`
}

// Fees holds the fee schedule loaded from the [fees] section.
type Fees struct {
	PlatformBps uint32 `toml:"PlatformBps"`
	ProjectBps  uint32 `toml:"ProjectBps"`
	RoyaltyBps  uint32 `toml:"RoyaltyBps"`
}

// Platform is the settlement core's static configuration.
type Platform struct {
	TokenSymbol string `toml:"TokenSymbol"`
	Oracle      Oracle `toml:"oracle"`
	Redeem      Redeem `toml:"redeem"`
	Fees        Fees   `toml:"fees"`
}

// Load reads the platform configuration from a TOML file. Unknown keys are
// rejected so typos never silently fall back to defaults.
func Load(path string) (*Platform, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	cfg := &Platform{}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("config file %s has unknown keys: %s", path, strings.Join(keys, ", "))
	}
	normalised := cfg.Normalise()
	return &normalised, nil
}

// Normalise applies platform defaults to unset fields.
func (p Platform) Normalise() Platform {
	if strings.TrimSpace(p.TokenSymbol) == "" {
		p.TokenSymbol = "FUSE"
	}
	return p
}

// OracleParams converts the [oracle] section into engine parameters.
func (p Platform) OracleParams() oracle.Params {
	params := oracle.Params{
		MaxFeedAgeSeconds:    p.Oracle.MaxFeedAgeSeconds,
		MaxFeedConfidenceBps: p.Oracle.MaxFeedConfidenceBps,
		MaxAgeManualSeconds:  p.Oracle.MaxAgeManualSeconds,
		MaxAgeDexPoolSeconds: p.Oracle.MaxAgeDexPoolSeconds,
		MaxAgeFeedSeconds:    p.Oracle.MaxAgeFeedSeconds,
	}
	if p.Oracle.MinPoolReserve > 0 {
		params.MinPoolReserve = big.NewInt(p.Oracle.MinPoolReserve)
	}
	return params.Normalise()
}

// FeeSplit builds the validated fee schedule from the [fees] section.
func (p Platform) FeeSplit() (fees.Split, error) {
	return fees.NewSplit(p.Fees.PlatformBps, p.Fees.ProjectBps, p.Fees.RoyaltyBps)
}

// RedeemConfig assembles the redemption engine configuration, including the
// fee split when any fee share is set.
func (p Platform) RedeemConfig() (swap.Config, error) {
	cfg := swap.Config{
		MaxRarityBonusBps: p.Redeem.MaxRarityBonusBps,
		TokenDecimals:     p.Redeem.TokenDecimals,
		Oracle:            p.OracleParams(),
	}
	split, err := p.FeeSplit()
	if err != nil {
		return swap.Config{}, err
	}
	if split.TotalBps() > 0 {
		cfg.FeeSplit = &split
	}
	return cfg.Normalise(), nil
}
