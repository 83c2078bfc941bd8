package fusion

import (
	"encoding/binary"

	"lukechampine.com/blake3"
)

// drawer produces deterministic bounded draws from a seed. Draw k hashes the
// seed with the big-endian draw index; indices are strictly increasing and
// never reused, so distinct slots in one attempt are independent.
type drawer struct {
	seed [32]byte
	next uint32
}

func newDrawer(seed [32]byte) *drawer {
	return &drawer{seed: seed}
}

func (d *drawer) draw(bound uint64) uint64 {
	if bound == 0 {
		return 0
	}
	var buf [36]byte
	copy(buf[:32], d.seed[:])
	binary.BigEndian.PutUint32(buf[32:], d.next)
	d.next++
	digest := blake3.Sum256(buf[:])
	return binary.BigEndian.Uint64(digest[:8]) % bound
}

// pickWeighted selects an index with probability proportional to its weight
// via a cumulative walk. All-zero weights fall back to a uniform pick.
func pickWeighted(weights []uint64, d *drawer) int {
	if len(weights) == 0 {
		return -1
	}
	var total uint64
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return int(d.draw(uint64(len(weights))))
	}
	target := d.draw(total)
	var cumulative uint64
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// inheritTraits derives the output's trait set: one trait per inheritance
// rule, drawn from a rarity-weighted parent that carries the trait type.
func inheritTraits(inputs []*AssetDescriptor, scores []uint16, rules []TraitInheritanceRule, d *drawer) []Trait {
	traits := make([]Trait, 0, len(rules))
	for _, rule := range rules {
		var candidates []Trait
		var weights []uint64
		for i, input := range inputs {
			for _, trait := range input.Traits {
				if trait.TypeID == rule.TraitTypeID {
					candidates = append(candidates, trait)
					weights = append(weights, uint64(scores[i]))
					break
				}
			}
		}
		if len(candidates) == 0 {
			continue
		}
		traits = append(traits, candidates[pickWeighted(weights, d)])
	}
	return traits
}

// deriveOutputID computes the deterministic identifier of the fused asset
// from the attempt seed and the ordered input identifiers.
func deriveOutputID(seed [32]byte, inputs []*AssetDescriptor) [32]byte {
	hasher := blake3.New(32, nil)
	hasher.Write([]byte("fusion/output"))
	hasher.Write(seed[:])
	for _, input := range inputs {
		hasher.Write(input.ID[:])
	}
	var id [32]byte
	hasher.Sum(id[:0])
	return id
}
