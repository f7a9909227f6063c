package junction

import "sort"

// PosType is the genomic coordinate type, matching ivalmap.PosType.
type PosType = int32

// Junction is an observed splice event: a pair (LPos, RPos) with LPos < RPos,
// a support count, and (once linked by region.LinkJunctions) the indices of
// its left and right partial exons.
type Junction struct {
	LPos, RPos PosType
	Count      int
	// LExon/RExon are pexon indices, -1 until region.LinkJunctions runs.
	LExon, RExon int
}

// PackKey packs a (donor-exclusive-end, acceptor-inclusive-start) position
// pair into a single int64 key, matching the hit-derivation routines'
// (high32<<32)|low32 convention (spec.md §6).
func PackKey(lpos, rpos PosType) int64 {
	return int64(uint64(uint32(lpos))<<32 | uint64(uint32(rpos)))
}

// UnpackKey is the inverse of PackKey.
func UnpackKey(key int64) (lpos, rpos PosType) {
	return PosType(int32(uint32(key >> 32))), PosType(int32(uint32(key)))
}

// ExtractJunctions tallies the packed splice-gap keys across every hit in a
// bundle and retains those whose support count is at least minSupport.
// spliceGaps holds one slice of packed keys per hit (spec.md §4.3); the
// returned junctions are sorted by (LPos, RPos).
func ExtractJunctions(spliceGaps [][]int64, minSupport int) []Junction {
	tally := make(map[int64]int)
	for _, gaps := range spliceGaps {
		for _, key := range gaps {
			tally[key]++
		}
	}

	junctions := make([]Junction, 0, len(tally))
	for key, count := range tally {
		if count < minSupport {
			continue
		}
		lpos, rpos := UnpackKey(key)
		junctions = append(junctions, Junction{LPos: lpos, RPos: rpos, Count: count, LExon: -1, RExon: -1})
	}
	// Deterministic ordering (the original leaves this to map iteration
	// order; we sort so downstream graph construction is reproducible,
	// which matters for test expectations without changing semantics).
	sort.Slice(junctions, func(i, j int) bool {
		if junctions[i].LPos != junctions[j].LPos {
			return junctions[i].LPos < junctions[j].LPos
		}
		return junctions[i].RPos < junctions[j].RPos
	})
	return junctions
}
