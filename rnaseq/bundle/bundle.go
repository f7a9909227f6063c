package bundle

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/grailbio/bio/rnaseq/hyperedge"
	"github.com/grailbio/bio/rnaseq/ivalmap"
	"github.com/grailbio/bio/rnaseq/junction"
	"github.com/grailbio/bio/rnaseq/region"
	"github.com/grailbio/bio/rnaseq/rnaseqconfig"
	"github.com/grailbio/bio/rnaseq/splicegraph"
)

// Bundle is a contiguous, single-chromosome, single-strand cluster of
// aligned reads (spec.md §6 "Inputs"). Hits must already be sorted by
// ascending left position; Build enforces this.
type Bundle struct {
	Chrm string
	Tid  int
	LPos PosType
	RPos PosType
	Strand byte
	Hits []Hit
}

// Build runs the full leaf-to-root assembly pipeline of spec.md §2 over the
// bundle's hits: interval maps, junction extraction and junction graph,
// region segmentation into partial exons, splice-graph construction, the
// two (each-applied-once) boundary-extension heuristics, and hyperedge
// aggregation against the resulting partial-exon partition.
//
// It returns the splice graph, the hyperedge set, and the partial-exon
// partition the graph's interior vertices correspond to 1:1 (pexons[i] is
// vertex i+1) — a caller writing output needs the latter to resolve a
// transcript path's vertices back to genomic coordinates.
//
// If the bundle has zero retained junctions and cfg.IgnoreSingleExonTran-
// scripts is set, Build returns a nil graph, set and partition, plus any
// malformed-interval error seen so far: a single-exon bundle is deliberately
// not assembled into a (trivial) graph, per spec.md §6.
func (b *Bundle) Build(cfg rnaseqconfig.Config) (*splicegraph.Graph, *hyperedge.Set, []region.PartialExon, error) {
	CheckLeftAscending(b.Hits)
	if b.Strand == 0 {
		b.Strand = ComputeStrand(b.Hits)
	}

	var errOnce errors.Once
	coverage, indel := ivalmap.New(), ivalmap.New()
	for i := range b.Hits {
		h := &b.Hits[i]
		for _, key := range h.Matched {
			lo, hi := junction.UnpackKey(key)
			if lo >= hi {
				errOnce.Set(malformedIntervalError(h.QName, lo, hi))
				continue
			}
			coverage.Add(lo, hi, 1)
		}
		for _, key := range h.Inserted {
			lo, hi := junction.UnpackKey(key)
			if lo >= hi {
				errOnce.Set(malformedIntervalError(h.QName, lo, hi))
				continue
			}
			indel.Add(lo, hi, 1)
		}
		for _, key := range h.Deleted {
			lo, hi := junction.UnpackKey(key)
			if lo >= hi {
				errOnce.Set(malformedIntervalError(h.QName, lo, hi))
				continue
			}
			indel.Add(lo, hi, 1)
		}
	}

	spliceGaps := make([][]int64, len(b.Hits))
	for i := range b.Hits {
		spliceGaps[i] = b.Hits[i].SplicedGaps
	}
	junctions := junction.ExtractJunctions(spliceGaps, cfg.MinSpliceBoundaryHits)
	log.Debug.Printf("bundle %s:%d-%d: %d hits, %d retained junctions", b.Chrm, b.LPos, b.RPos, len(b.Hits), len(junctions))

	if len(junctions) == 0 && cfg.IgnoreSingleExonTranscripts {
		return nil, nil, nil, errOnce.Err()
	}

	jgraph := junction.Build(b.LPos, b.RPos, junctions)

	var pexons []region.PartialExon
	for i := 0; i < len(jgraph.Vertices)-1; i++ {
		lv, rv := jgraph.Vertices[i], jgraph.Vertices[i+1]
		ltype, rtype := lv.Type, rv.Type
		if ltype == junction.LeftRightSplice {
			ltype = junction.RightSplice
		}
		if rtype == junction.LeftRightSplice {
			rtype = junction.LeftSplice
		}
		reg := region.New(lv.Pos, rv.Pos, ltype, rtype, coverage, indel)
		pexons = append(pexons, reg.Partition(cfg)...)
	}

	pmap := region.BuildPartialExonMap(pexons)
	region.LinkJunctions(pexons, junctions)

	gr := splicegraph.Build(pexons, b.LPos, b.RPos, junctions)
	splicegraph.ExtendIsolatedStartBoundaries(gr)
	splicegraph.ExtendIsolatedEndBoundaries(gr)

	loc := hyperedge.PexonLocator{
		LocateLeft:  func(p int32) int { return pmap.LocatePexonLeft(p, cfg) },
		LocateRight: func(p int32) int { return pmap.LocatePexonRight(p, cfg) },
	}
	agg := hyperedge.NewAggregator(loc)
	hitViews := make([]hyperedge.HitView, len(b.Hits))
	for i, h := range b.Hits {
		ivs := h.MatchedIntervals()
		matched := make([]hyperedge.Interval, len(ivs))
		for j, iv := range ivs {
			matched[j] = hyperedge.Interval{Lo: iv.Lo, Hi: iv.Hi}
		}
		hitViews[i] = hyperedge.HitView{
			QName:    h.QName,
			Unmapped: h.Flag&FlagUnmapped != 0,
			Matched:  matched,
		}
	}
	agg.Add(hitViews)

	hs := hyperedge.Build(gr, agg.Entries(), cfg.MinRouterCount)
	hs.Purify()

	return gr, hs, pexons, errOnce.Err()
}

func malformedIntervalError(qname string, lo, hi int32) error {
	return errors.E("malformed interval", qname, lo, hi)
}
