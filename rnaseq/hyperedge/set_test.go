package hyperedge

import (
	"testing"

	"github.com/grailbio/testutil/expect"

	"github.com/grailbio/bio/rnaseq/region"
	"github.com/grailbio/bio/rnaseq/splicegraph"
)

// chainGraph returns a 5-vertex splice graph (source, 3 pexons, sink) wired
// as a single linear chain: 0->1->2->3->4.
func chainGraph() *splicegraph.Graph {
	pexons := []region.PartialExon{
		{LPos: 0, RPos: 10, LType: region.StartBoundary, RType: region.LeftSplice, Ave: 5, Dev: 1},
		{LPos: 10, RPos: 20, LType: region.RightSplice, RType: region.LeftSplice, Ave: 5, Dev: 1},
		{LPos: 20, RPos: 30, LType: region.RightSplice, RType: region.EndBoundary, Ave: 5, Dev: 1},
	}
	return splicegraph.Build(pexons, 0, 30, nil)
}

func newEntry(ids []int, count int) *nodeEntry {
	return &nodeEntry{ids: ids, count: count}
}

func TestBuildDropsChainsBelowMinCount(t *testing.T) {
	gr := chainGraph()
	entries := []*nodeEntry{newEntry([]int{1, 2, 3}, 1)}
	s := Build(gr, entries, 5)
	expect.EQ(t, len(s.Routes()), 0)
}

func TestBuildDropsUnrealizableChain(t *testing.T) {
	gr := chainGraph()
	// 1 -> 4 has no direct edge in this graph.
	entries := []*nodeEntry{newEntry([]int{1, 4}, 10)}
	s := Build(gr, entries, 1)
	expect.EQ(t, len(s.Routes()), 0)
}

func TestBuildMaterializesRealizableChain(t *testing.T) {
	gr := chainGraph()
	entries := []*nodeEntry{newEntry([]int{1, 2, 3}, 7)}
	s := Build(gr, entries, 1)
	routes := s.Routes()
	expect.EQ(t, len(routes), 1)
	expect.EQ(t, len(routes[0]), 2)
	expect.EQ(t, s.Count(0), 7)
}

func TestPurifyDropsSingleEdgeRoutes(t *testing.T) {
	gr := chainGraph()
	entries := []*nodeEntry{
		newEntry([]int{1, 2}, 3), // single-edge chain
		newEntry([]int{1, 2, 3}, 4),
	}
	s := Build(gr, entries, 1)
	s.Purify()
	routes := s.Routes()
	expect.EQ(t, len(routes), 1)
	expect.EQ(t, len(routes[0]), 2)
}

func TestPurifyMergesIdenticalChains(t *testing.T) {
	gr := chainGraph()
	entries := []*nodeEntry{
		newEntry([]int{1, 2, 3}, 4),
		newEntry([]int{1, 2, 3}, 6),
	}
	s := Build(gr, entries, 1)
	// Build materializes each entry on its own, so two identical ids
	// produce two separate routes pre-Purify (entries came from distinct
	// nodeEntry values, as Aggregator would never emit duplicates itself,
	// but a caller merging two Aggregators' output might).
	s.routes = append(s.routes, s.routes[0])
	s.rebuildIndex()
	s.Purify()
	expect.EQ(t, len(s.Routes()), 1)
	expect.EQ(t, s.Count(0), 14)
}

func TestPurifyDropsSubsequenceOfLongerRoute(t *testing.T) {
	gr := chainGraph()
	entries := []*nodeEntry{
		newEntry([]int{0, 1, 2, 3, 4}, 3), // e1,e2,e3,e4
		newEntry([]int{1, 2, 3}, 2),       // e2,e3: a subsequence of the above
	}
	s := Build(gr, entries, 1)
	s.Purify()
	routes := s.Routes()
	expect.EQ(t, len(routes), 1)
	expect.EQ(t, len(routes[0]), 4)
	expect.EQ(t, s.Count(0), 3)
}

func TestGetSuccessorsAndPredecessors(t *testing.T) {
	gr := chainGraph()
	entries := []*nodeEntry{newEntry([]int{1, 2, 3}, 1)}
	s := Build(gr, entries, 1)
	e1, _ := gr.FindEdge(1, 2)
	e2, _ := gr.FindEdge(2, 3)

	succ := s.GetSuccessors(e1)
	expect.EQ(t, len(succ), 1)
	expect.EQ(t, succ[0], e2)

	pred := s.GetPredecessors(e2)
	expect.EQ(t, len(pred), 1)
	expect.EQ(t, pred[0], e1)
}

func TestGetIntersection(t *testing.T) {
	gr := chainGraph()
	entries := []*nodeEntry{newEntry([]int{1, 2, 3}, 1)}
	s := Build(gr, entries, 1)
	e1, _ := gr.FindEdge(1, 2)
	e2, _ := gr.FindEdge(2, 3)
	inter := s.GetIntersection([]splicegraph.EdgeID{e1, e2})
	expect.EQ(t, len(inter), 1)
}

func TestLeftRightExtendEvidence(t *testing.T) {
	gr := chainGraph()
	entries := []*nodeEntry{
		newEntry([]int{1, 2, 3, 4}, 5), // e12, e23, e34
		newEntry([]int{0, 1}, 2),       // e01, alone in its own route
	}
	s := Build(gr, entries, 1)
	e01, _ := gr.FindEdge(0, 1)
	e12, _ := gr.FindEdge(1, 2)
	e23, _ := gr.FindEdge(2, 3)
	e34, _ := gr.FindEdge(3, 4)

	// e12 is the left terminal of its only route: no evidence of anything
	// further left, but it continues right into e23/e34.
	expect.False(t, s.LeftExtend(e12))
	expect.True(t, s.RightExtend(e12))

	// e23 sits in the interior of its route: evidence on both sides.
	expect.True(t, s.LeftExtend(e23))
	expect.True(t, s.RightExtend(e23))

	// e34 is the right terminal of its only route: evidence to its left,
	// none beyond it.
	expect.True(t, s.LeftExtend(e34))
	expect.False(t, s.RightExtend(e34))

	// e01 is the sole edge of its own single-edge route: no evidence either
	// direction.
	expect.False(t, s.LeftExtend(e01))
	expect.False(t, s.RightExtend(e01))
}

func TestRemovePanicsOnInteriorEdge(t *testing.T) {
	gr := chainGraph()
	entries := []*nodeEntry{newEntry([]int{0, 1, 2, 3}, 1)}
	s := Build(gr, entries, 1)
	e1, _ := gr.FindEdge(1, 2)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic removing an interior edge")
		}
	}()
	s.Remove(e1)
}

func TestRemoveTrimsHeadEdge(t *testing.T) {
	gr := chainGraph()
	entries := []*nodeEntry{newEntry([]int{1, 2, 3}, 1)}
	s := Build(gr, entries, 1)
	e1, _ := gr.FindEdge(1, 2)

	s.Remove(e1)
	routes := s.Routes()
	expect.EQ(t, len(routes), 1)
	expect.EQ(t, len(routes[0]), 1)
}

func TestReplaceCollapsesSubsequence(t *testing.T) {
	gr := chainGraph()
	entries := []*nodeEntry{newEntry([]int{1, 2, 3}, 1)}
	s := Build(gr, entries, 1)
	e1, _ := gr.FindEdge(1, 2)
	e2, _ := gr.FindEdge(2, 3)
	merged := gr.AddEdge(1, 3, 1.0)

	s.Replace([]splicegraph.EdgeID{e1, e2}, merged)
	routes := s.Routes()
	expect.EQ(t, len(routes[0]), 1)
	expect.EQ(t, routes[0][0], merged)
}
