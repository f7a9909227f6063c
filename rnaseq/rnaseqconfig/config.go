// Package rnaseqconfig holds the tunables for the rnaseq splice-graph
// assembler. A single Config value is threaded explicitly through every
// pipeline stage; nothing here is package-global.
package rnaseqconfig

// Config collects every option the splice-graph assembler recognizes.
type Config struct {
	// MinSpliceBoundaryHits is the minimum number of spliced-gap
	// observations required to retain a junction.
	MinSpliceBoundaryHits int

	// MinFlankLength is the flank-reclassification threshold used by
	// LocatePexonLeft/LocatePexonRight.
	MinFlankLength int32

	// MinRouterCount is the minimum hyperedge-node support required to
	// materialize a node list as a hyperedge.
	MinRouterCount int

	// PartialExonLength is the target pexon length for split_partial_exons
	// style segmentation. No stage in this module reads it; BuildSegments
	// does not take a Config.
	PartialExonLength int32

	// AverageReadLength scales coverage into estimated read counts for
	// boundary scoring (identify5End / identify3End).
	AverageReadLength float64

	// IgnoreSingleExonTranscripts, if true, makes Bundle.Build return a nil
	// splice graph for a bundle with zero retained junctions.
	IgnoreSingleExonTranscripts bool

	// MinIndelSplitSupport is the minimum per-base indel support that
	// causes Region.Partition to cut a region at the first base of a run
	// reaching it. Supplements
	// spec.md's region collaborator, which is specified only at the
	// interface level.
	MinIndelSplitSupport int

	// MinCoverageRatioSplit is the minimum ratio jump in per-base coverage
	// (considering max(a,b)/min(a,b) of adjacent bases, with min floored
	// at 1) that causes Region.Partition to cut a region at that base.
	MinCoverageRatioSplit float64

	// BoundaryScoreThreshold is the minimum compute_binomial_score value
	// required for identify5End/identify3End to flag a boundary split
	// candidate.
	BoundaryScoreThreshold float64

	// BoundarySigmaThreshold is the minimum z-score (sigma) required
	// alongside BoundaryScoreThreshold.
	BoundarySigmaThreshold float64
}

// DefaultConfig mirrors the hardcoded constants in the original assembler.
var DefaultConfig = Config{
	MinSpliceBoundaryHits:       1,
	MinFlankLength:              5,
	MinRouterCount:              1,
	PartialExonLength:           100,
	AverageReadLength:           100.0,
	IgnoreSingleExonTranscripts: false,
	MinIndelSplitSupport:        5,
	MinCoverageRatioSplit:       5.0,
	BoundaryScoreThreshold:      600,
	BoundarySigmaThreshold:      10,
}
