package swap

import (
	"math/big"

	"fusionmarket/native/oracle"
)

var bpsDenominator = big.NewInt(10_000)

func pow10(exp uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}

// QuoteTokens converts a 6-decimal USD amount into token base units at the
// record's unit price, rounding toward zero.
func QuoteTokens(record *oracle.PriceRecord, usdAmount *big.Int, tokenDecimals uint8) (*big.Int, error) {
	if record == nil || record.UnitPriceUSD == nil || record.UnitPriceUSD.Sign() <= 0 {
		return nil, ErrPriceUnavailable
	}
	if usdAmount == nil || usdAmount.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	out := new(big.Int).Mul(usdAmount, pow10(tokenDecimals))
	return out.Quo(out, record.UnitPriceUSD), nil
}

// QuoteUSD converts token base units into a 6-decimal USD amount at the
// record's unit price, rounding toward zero. The round trip through
// QuoteTokens never diverges by more than one smallest unit.
func QuoteUSD(record *oracle.PriceRecord, tokenAmount *big.Int, tokenDecimals uint8) (*big.Int, error) {
	if record == nil || record.UnitPriceUSD == nil || record.UnitPriceUSD.Sign() <= 0 {
		return nil, ErrPriceUnavailable
	}
	if tokenAmount == nil || tokenAmount.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	out := new(big.Int).Mul(tokenAmount, record.UnitPriceUSD)
	return out.Quo(out, pow10(tokenDecimals)), nil
}

// ApplyRarityBonus scales a USD amount by (10000 + bonusBps) / 10000 with
// floor division.
func ApplyRarityBonus(usdAmount *big.Int, bonusBps int64) *big.Int {
	if usdAmount == nil {
		return big.NewInt(0)
	}
	out := new(big.Int).Mul(usdAmount, big.NewInt(10_000+bonusBps))
	return out.Quo(out, bpsDenominator)
}
