package fusion

const (
	maxScoreBps     = 10_000
	maxBoostBps     = 2_000
	maxTraitFreqBps = 9_999
)

var levelMultipliersBps = [...]uint32{10_000, 11_000, 12_000, 13_500, 15_000}

// RarityScore computes an asset's rarity on the [0, 10000] scale from the
// population frequency of its traits. Rarer traits score higher; per-type
// weights skew the contribution. The asset's cached score is ignored.
func RarityScore(asset *AssetDescriptor, table *FrequencyTable) uint16 {
	if asset == nil || len(asset.Traits) == 0 {
		return 0
	}
	var raw, max uint64
	for _, trait := range asset.Traits {
		weight := uint64(table.TypeWeight(trait.TypeID))
		freq := table.Frequency(trait.TypeID, trait.ValueID)
		if freq > maxScoreBps {
			freq = maxScoreBps
		}
		raw += weight * uint64(maxScoreBps-freq)
		max += weight * maxTraitFreqBps
	}
	if max == 0 {
		return 0
	}
	score := raw * maxScoreBps / max
	if score > maxScoreBps {
		score = maxScoreBps
	}
	return uint16(score)
}

// FusionBoost derives the rarity bonus contributed by a set of parent
// scores: the maximum dominates, the average tempers it, and the result is
// capped at 2000 bps.
func FusionBoost(parentScores []uint16) uint16 {
	if len(parentScores) == 0 {
		return 0
	}
	var max, sum uint64
	for _, score := range parentScores {
		sum += uint64(score)
		if uint64(score) > max {
			max = uint64(score)
		}
	}
	avg := sum / uint64(len(parentScores))
	boost := (6*max + 4*avg) / 10
	if boost > maxBoostBps {
		boost = maxBoostBps
	}
	return uint16(boost)
}

func levelMultiplierBps(level uint8) uint32 {
	if int(level) >= len(levelMultipliersBps) {
		return levelMultipliersBps[len(levelMultipliersBps)-1]
	}
	return levelMultipliersBps[level]
}

// FusedRarity combines the output's own trait score with the parents' boost
// and the fusion-level multiplier, capped at 10000.
func FusedRarity(baseScore uint16, parentScores []uint16, level uint8) uint16 {
	combined := uint64(baseScore) + uint64(FusionBoost(parentScores))
	scaled := combined * uint64(levelMultiplierBps(level)) / maxScoreBps
	if scaled > maxScoreBps {
		scaled = maxScoreBps
	}
	return uint16(scaled)
}
