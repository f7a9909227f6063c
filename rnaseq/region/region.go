package region

import (
	"github.com/grailbio/bio/rnaseq/ivalmap"
	"github.com/grailbio/bio/rnaseq/junction"
	"github.com/grailbio/bio/rnaseq/rnaseqconfig"
)

// PosType is the genomic coordinate type.
type PosType = int32

// VertexType re-exports junction.VertexType so callers working only with
// regions and partial exons don't need to import the junction package just
// for the boundary-kind enum.
type VertexType = junction.VertexType

const (
	StartBoundary   = junction.StartBoundary
	EndBoundary     = junction.EndBoundary
	LeftSplice      = junction.LeftSplice
	RightSplice     = junction.RightSplice
	LeftRightSplice = junction.LeftRightSplice
)

// Region is the half-open interval between two adjacent junction-graph
// vertices. It borrows (never owns) the bundle's coverage and indel maps;
// per spec.md §9's "Cyclic back-references" redesign flag, it holds a plain
// Go pointer and must not outlive the bundle.
type Region struct {
	LPos, RPos PosType
	LType, RType VertexType

	coverage *ivalmap.Map
	indel    *ivalmap.Map
}

// New builds a Region from a junction-graph vertex pair. ltype/rtype have
// already had LeftRightSplice rewritten by the caller (RightSplice on the
// left boundary, LeftSplice on the right boundary), per spec.md §4.5.
func New(lpos, rpos PosType, ltype, rtype VertexType, coverage, indel *ivalmap.Map) *Region {
	return &Region{LPos: lpos, RPos: rpos, LType: ltype, RType: rtype, coverage: coverage, indel: indel}
}

// PartialExon is the atomic vertex of the splice graph: a genomic interval
// with mean coverage and standard deviation, and boundary-kind tags on each
// end.
type PartialExon struct {
	LPos, RPos   PosType
	LType, RType VertexType
	Ave, Dev     float64
}

// clamp1 enforces spec.md's "ave >= 1.0, dev >= 1.0 after clamping"
// invariant.
func clamp1(x float64) float64 {
	if x < 1.0 {
		return 1.0
	}
	return x
}

// Partition segments the region into one or more partial exons. The rule is
// specified by spec.md §4.5 only at the interface level ("inspects indel
// evidence and coverage discontinuities"); this implementation cuts at the
// first base of each run whose indel-map support reaches
// cfg.MinIndelSplitSupport, or where the coverage ratio between adjacent
// bases reaches cfg.MinCoverageRatioSplit,
// matching the original's region.h taking both an mmap and an imap.
func (r *Region) Partition(cfg rnaseqconfig.Config) []PartialExon {
	cuts := r.findCuts(cfg)
	bounds := append([]PosType{r.LPos}, cuts...)
	bounds = append(bounds, r.RPos)

	pexons := make([]PartialExon, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		lo, hi := bounds[i], bounds[i+1]
		if lo >= hi {
			continue
		}
		ltype := r.LType
		if i > 0 {
			ltype = RightSplice
		}
		rtype := r.RType
		if i < len(bounds)-2 {
			rtype = LeftSplice
		}
		ave, dev := r.coverage.RectangleStats(lo, hi)
		pexons = append(pexons, PartialExon{
			LPos: lo, RPos: hi,
			LType: ltype, RType: rtype,
			Ave: clamp1(ave), Dev: clamp1(dev),
		})
	}
	return pexons
}

// findCuts scans [LPos, RPos) for internal split points driven by indel
// evidence or coverage discontinuities.
func (r *Region) findCuts(cfg rnaseqconfig.Config) []PosType {
	var cuts []PosType
	for x := r.LPos + 1; x < r.RPos; x++ {
		if r.indel != nil && r.indel.Overlap(x) >= cfg.MinIndelSplitSupport && r.indel.Overlap(x-1) < cfg.MinIndelSplitSupport {
			cuts = append(cuts, x)
			continue
		}
		a, b := r.coverage.Overlap(x-1), r.coverage.Overlap(x)
		lo, hi := a, b
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo < 1 {
			lo = 1
		}
		if float64(hi)/float64(lo) >= cfg.MinCoverageRatioSplit {
			cuts = append(cuts, x)
		}
	}
	return cuts
}
