package bundle

import "github.com/grailbio/bio/rnaseq/junction"

// PosType is the genomic coordinate type.
type PosType = int32

// Strand-indicating XS tag values, as carried by spliced alignments (the
// "XS:A:+"/"XS:A:-" optional SAM tag set by most spliced aligners).
const (
	XSNone byte = '.'
	XSPlus byte = '+'
	XSMinus byte = '-'
)

// Hit is one aligned read (or one mate of a read pair) contributing to a
// bundle. Its interval fields are packed (lo<<32)|hi pairs via
// junction.PackKey/UnpackKey, matching spec.md §6's derivation-routine
// convention: Matched is every aligned (non-indel, non-intron) run,
// Inserted/Deleted are indel runs, and SplicedGaps is every "N" CIGAR
// operation's donor/acceptor span. These are computed once by the
// (out-of-scope) alignment parser; bundle.Build treats them as already
// derived, per spec.md §1's scope boundary.
type Hit struct {
	QName string
	Pos   PosType
	RPos  PosType
	Flag  uint16
	XS    byte

	Matched     []int64
	Inserted    []int64
	Deleted     []int64
	SplicedGaps []int64
}

// SAM flag bits this package tests directly (mirrors
// pileup/common.go's use of github.com/grailbio/hts/sam flag constants,
// narrowed to the bits bundle assembly cares about).
const (
	FlagUnmapped uint16 = 0x4
	FlagReverse  uint16 = 0x10
	FlagRead1    uint16 = 0x40
	FlagRead2    uint16 = 0x80
)

// MatchedIntervals unpacks h.Matched into genomic [lo, hi) spans.
func (h *Hit) MatchedIntervals() []Interval {
	out := make([]Interval, len(h.Matched))
	for i, key := range h.Matched {
		lo, hi := junction.UnpackKey(key)
		out[i] = Interval{Lo: lo, Hi: hi}
	}
	return out
}

// Interval is a genomic half-open [Lo, Hi) span.
type Interval struct {
	Lo, Hi PosType
}

// ComputeStrand determines a bundle's strand from its hits' XS tags,
// implementing spec.md §4.2 ("derive the bundle's transcription strand from
// the majority vote of its hits' spliced-alignment XS tags"). Ties and an
// empty hit set both resolve to XSNone, matching spec.md §7's "ambiguous
// strand is a valid, reportable outcome, not an error" edge case.
func ComputeStrand(hits []Hit) byte {
	var plus, minus int
	for _, h := range hits {
		switch h.XS {
		case XSPlus:
			plus++
		case XSMinus:
			minus++
		}
	}
	switch {
	case plus > minus:
		return XSPlus
	case minus > plus:
		return XSMinus
	default:
		return XSNone
	}
}

// CheckLeftAscending enforces spec.md §7's invariant that a bundle's hits
// arrive sorted by ascending Pos: it panics on the first out-of-order pair,
// matching original_source/src/src/bundle.cc:check_left_ascending's
// assert().
func CheckLeftAscending(hits []Hit) {
	for i := 1; i < len(hits); i++ {
		if hits[i].Pos < hits[i-1].Pos {
			panic("bundle: hits are not sorted by ascending left position")
		}
	}
}
