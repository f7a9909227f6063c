package region

import (
	"sort"

	"github.com/grailbio/bio/rnaseq/junction"
	"github.com/grailbio/bio/rnaseq/rnaseqconfig"
)

// PexonIndex is the pmap of spec.md §4.6: an interval->pexon-index map over
// a bundle's (disjoint, sorted) partial exons, supporting the asymmetric
// flank-reclassification lookups locate_left/locate_right depend on.
type PexonIndex struct {
	pexons []PartialExon
}

// BuildPartialExonMap builds a PexonIndex over pexons, which must already be
// sorted and disjoint (the order spec.md's bundle assembles them in).
func BuildPartialExonMap(pexons []PartialExon) *PexonIndex {
	return &PexonIndex{pexons: pexons}
}

// find returns the index of the pexon containing x, or -1.
func (p *PexonIndex) find(x PosType) int {
	n := len(p.pexons)
	k := sort.Search(n, func(i int) bool { return p.pexons[i].RPos > x })
	if k >= n || p.pexons[k].LPos > x {
		return -1
	}
	return k
}

// LocatePexonLeft implements spec.md §4.6's locate_left(x): used when x is a
// read's left-matched coordinate.
func (p *PexonIndex) LocatePexonLeft(x PosType, cfg rnaseqconfig.Config) int {
	k := p.find(x)
	if k < 0 {
		return -1
	}
	l, r := p.pexons[k].LPos, p.pexons[k].RPos
	if x-l > cfg.MinFlankLength && r-x < cfg.MinFlankLength {
		k++
	}
	if k >= len(p.pexons) {
		return -1
	}
	return k
}

// LocatePexonRight implements spec.md §4.6's locate_right(x): used when x is
// a read's right-matched exclusive coordinate, so the containing pexon is
// found for x-1.
func (p *PexonIndex) LocatePexonRight(x PosType, cfg rnaseqconfig.Config) int {
	k := p.find(x - 1)
	if k < 0 {
		return -1
	}
	l, r := p.pexons[k].LPos, p.pexons[k].RPos
	if r-x > cfg.MinFlankLength && x-l <= cfg.MinFlankLength {
		k--
	}
	return k
}

// LinkJunctions implements spec.md §4.7: for every junction, find the pexon
// whose RPos equals the junction's LPos (left exon) and the pexon whose LPos
// equals the junction's RPos (right exon). The two lookup maps are each
// required to have unique keys; a collision is an upstream invariant
// violation and panics, matching
// original_source/src/src/bundle.cc:link_partial_exons's assert() calls.
func LinkJunctions(pexons []PartialExon, junctions []junction.Junction) {
	if len(pexons) == 0 {
		return
	}
	byLPos := make(map[PosType]int, len(pexons))
	byRPos := make(map[PosType]int, len(pexons))
	for i, pe := range pexons {
		if _, ok := byLPos[pe.LPos]; ok {
			panic("region: duplicate pexon LPos")
		}
		if _, ok := byRPos[pe.RPos]; ok {
			panic("region: duplicate pexon RPos")
		}
		byLPos[pe.LPos] = i
		byRPos[pe.RPos] = i
	}

	for i := range junctions {
		j := &junctions[i]
		lexon, lok := byRPos[j.LPos]
		rexon, rok := byLPos[j.RPos]
		if lok && rok {
			j.LExon = lexon
			j.RExon = rexon
		} else {
			j.LExon, j.RExon = -1, -1
		}
	}
}
