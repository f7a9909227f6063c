package splicegraph

import (
	"math"

	"github.com/grailbio/bio/rnaseq/region"
)

// segmentMember is one partial exon folded into a Segment, along with the
// weight of the edge that merged it in (0 for the segment's anchor pexon).
type segmentMember struct {
	index  int
	pexon  region.PartialExon
	weight float64
}

// Segment is the pexon-refinement unit of the (unwired) segment-merging
// pass. It is not part of Bundle.Build's call graph — spec.md's own Open
// Questions section instructs treating the original's commented-out
// build_segments/update_partial_exons stage "as absent" in the main flow —
// but it is kept here, independently testable, because it is a complete
// piece of the original rather than an abandoned stub.
//
// Grounded on original_source/src/src/bundle.cc:build_segment{,s}.
type Segment struct {
	members []segmentMember
}

// Size returns the number of pexons folded into the segment.
func (s *Segment) Size() int { return len(s.members) }

func (s *Segment) addPartialExon(index int, pe region.PartialExon, weight float64) {
	s.members = append(s.members, segmentMember{index: index, pexon: pe, weight: weight})
}

// Merge collapses the segment's members into a single partial exon spanning
// its full genomic range, with length-weighted average coverage. This
// stands in for the original's segment::build(), whose source was not
// retained; the original_source excerpt only covers build_segment's
// membership-selection logic, not the merge arithmetic, so this combines
// members the same way region.Partition derives stats: length-weighted mean,
// clamped to >= 1.0.
func (s *Segment) Merge() region.PartialExon {
	first, last := s.members[0].pexon, s.members[len(s.members)-1].pexon
	var totalLen, weightedAve, weightedDevSq float64
	for _, m := range s.members {
		l := float64(m.pexon.RPos - m.pexon.LPos)
		totalLen += l
		weightedAve += l * m.pexon.Ave
		weightedDevSq += l * m.pexon.Dev * m.pexon.Dev
	}
	ave := weightedAve / totalLen
	dev := math.Sqrt(weightedDevSq / totalLen)
	if dev < 0 {
		dev = 0
	}
	if ave < 1.0 {
		ave = 1.0
	}
	if dev < 1.0 {
		dev = 1.0
	}
	return region.PartialExon{
		LPos: first.LPos, RPos: last.RPos,
		LType: first.LType, RType: last.RType,
		Ave: ave, Dev: dev,
	}
}

// buildSegment implements original_source/src/src/bundle.cc:build_segment.
// k is a splice-graph vertex index (1-based pexon slot); pexons[k-1] is its
// corresponding partial exon.
func buildSegment(g *Graph, pexons []region.PartialExon, k int) *Segment {
	s := &Segment{}
	if k == 0 || k >= g.NumVertices()-1 {
		return s
	}
	s.addPartialExon(k-1, pexons[k-1], 0)
	if pexons[k-1].LType == region.StartBoundary {
		return s
	}
	if pexons[k-1].RType == region.EndBoundary {
		return s
	}
	if k >= g.NumVertices()-2 {
		return s
	}
	od := g.OutDegree(k)
	if od >= 3 || od <= 0 {
		return s
	}

	if od == 2 {
		if k+2 >= g.NumVertices()-1 {
			return s
		}
		if pexons[k+1].RType == region.EndBoundary {
			return s
		}
		if pexons[k-1].RPos != pexons[k].LPos {
			return s
		}
		if pexons[k].RPos != pexons[k+1].LPos {
			return s
		}
		eb1, ok1 := g.FindEdge(k, k+1)
		eb2, ok2 := g.FindEdge(k, k+2)
		_, ok3 := g.FindEdge(k+1, k+2)
		_ = eb1
		if !ok1 || !ok2 || !ok3 {
			return s
		}
		if g.InDegree(k+2) > 2 {
			return s
		}
		w := g.EdgeWeight(eb2)
		s.addPartialExon(k, pexons[k], w)
		s.addPartialExon(k+1, pexons[k+1], 0)
		return s
	}

	// od == 1
	eb1, ok := g.FindEdge(k, k+1)
	if !ok {
		return s
	}
	if g.InDegree(k+1) >= 2 {
		return s
	}
	if pexons[k].RType == region.EndBoundary {
		return s
	}
	_ = eb1
	s.addPartialExon(k, pexons[k], 0)
	return s
}

// BuildSegments implements original_source/src/src/bundle.cc:build_segments:
// it walks the splice graph vertex by vertex, greedily folding simple
// out-degree-2 splice bubbles into a single Segment, and returns the
// resulting partition of [1, NumVertices()-1). Not called from Bundle.Build.
func BuildSegments(g *Graph, pexons []region.PartialExon) []*Segment {
	var segments []*Segment
	k := 1
	for k < g.NumVertices()-1 {
		s := buildSegment(g, pexons, k)
		if s.Size() < 1 {
			panic("splicegraph: BuildSegments produced an empty segment")
		}
		segments = append(segments, s)
		k += s.Size()
	}
	return segments
}
