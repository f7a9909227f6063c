package splicegraph

import (
	"github.com/grailbio/bio/rnaseq/junction"
	"github.com/grailbio/bio/rnaseq/region"
)

// PosType is the genomic coordinate type.
type PosType = int32

// EdgeID is a stable handle into a Graph's edge arena. Per spec.md §9's
// "Shared graph with external index maps" redesign flag, external
// collaborators (a router, a hyperedge set) store EdgeIDs and resolve them
// through the Graph rather than holding raw edge references; any structural
// mutation of the graph invalidates EdgeID->index assumptions cached
// elsewhere (spec.md §5), so callers must rebuild such caches after calling
// ExtendIsolated{Start,End}Boundaries.
type EdgeID int

// Vertex is a splice-graph vertex. Index 0 is the synthetic source and index
// len(Vertices)-1 is the synthetic sink; vertex i+1 corresponds to pexon i.
type Vertex struct {
	LPos, RPos PosType
	Length     int
	StdDev     float64
	Weight     float64
}

// Edge is a splice-graph edge. Source < Target always holds (DAG invariant).
type Edge struct {
	Source, Target int
	Weight         float64
	// InfoWeight carries the hyperedge-derived weight assigned later by
	// assign_edge_info_weights-equivalent logic; it starts equal to Weight.
	InfoWeight float64
}

// Graph is the splice graph of spec.md §4.8.
type Graph struct {
	Vertices []Vertex
	edges    []Edge

	out        map[int][]EdgeID
	in         map[int][]EdgeID
	bySrcDst   map[[2]int]EdgeID
}

func newGraph(n int) *Graph {
	return &Graph{
		Vertices: make([]Vertex, n),
		out:      make(map[int][]EdgeID),
		in:       make(map[int][]EdgeID),
		bySrcDst: make(map[[2]int]EdgeID),
	}
}

// NumVertices returns the number of vertices, including source and sink.
func (g *Graph) NumVertices() int { return len(g.Vertices) }

// AddEdge adds an edge from s to t with the given weight, returning its
// EdgeID.
//
// REQUIRES: s < t.
func (g *Graph) AddEdge(s, t int, weight float64) EdgeID {
	if s >= t {
		panic("splicegraph: AddEdge requires source < target")
	}
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{Source: s, Target: t, Weight: weight, InfoWeight: weight})
	g.out[s] = append(g.out[s], id)
	g.in[t] = append(g.in[t], id)
	g.bySrcDst[[2]int{s, t}] = id
	return id
}

// Edge returns the edge for id.
func (g *Graph) Edge(id EdgeID) Edge { return g.edges[id] }

// EdgeWeight returns the weight of edge id.
func (g *Graph) EdgeWeight(id EdgeID) float64 { return g.edges[id].Weight }

// SetEdgeWeight sets the weight (and info weight) of edge id.
func (g *Graph) SetEdgeWeight(id EdgeID, w float64) {
	g.edges[id].Weight = w
	g.edges[id].InfoWeight = w
}

// SetEdgeInfoWeight sets only the info weight of edge id.
func (g *Graph) SetEdgeInfoWeight(id EdgeID, w float64) { g.edges[id].InfoWeight = w }

// FindEdge returns the edge (if any) from s to t.
func (g *Graph) FindEdge(s, t int) (EdgeID, bool) {
	id, ok := g.bySrcDst[[2]int{s, t}]
	return id, ok
}

// OutEdges returns the outgoing edges of v, in insertion order.
func (g *Graph) OutEdges(v int) []EdgeID { return g.out[v] }

// InEdges returns the incoming edges of v, in insertion order.
func (g *Graph) InEdges(v int) []EdgeID { return g.in[v] }

// OutDegree returns the out-degree of v.
func (g *Graph) OutDegree(v int) int { return len(g.out[v]) }

// InDegree returns the in-degree of v.
func (g *Graph) InDegree(v int) int { return len(g.in[v]) }

// VertexWeight returns the weight of vertex v.
func (g *Graph) VertexWeight(v int) float64 { return g.Vertices[v].Weight }

// SetVertexWeight sets the weight of vertex v.
func (g *Graph) SetVertexWeight(v int, w float64) { g.Vertices[v].Weight = w }

func clamp1(x float64) float64 {
	if x < 1.0 {
		return 1.0
	}
	return x
}

// Build constructs the splice graph for a bundle spanning [lpos, rpos) from
// its partial exons and retained junctions, per spec.md §4.8. Edges are
// inserted in three passes: junction edges, boundary (source/sink) edges,
// then adjacency edges.
func Build(pexons []region.PartialExon, lpos, rpos PosType, junctions []junction.Junction) *Graph {
	n := len(pexons) + 2
	g := newGraph(n)

	g.Vertices[0] = Vertex{LPos: lpos, RPos: lpos, Weight: 0}
	sinkIdx := len(pexons) + 1
	for i, pe := range pexons {
		g.Vertices[i+1] = Vertex{
			LPos:   pe.LPos,
			RPos:   pe.RPos,
			Length: int(pe.RPos - pe.LPos),
			StdDev: clamp1(pe.Dev),
			Weight: clamp1(pe.Ave),
		}
	}
	g.Vertices[sinkIdx] = Vertex{LPos: rpos, RPos: rpos, Weight: 0}

	// Pass 1: junction edges.
	for _, j := range junctions {
		if j.LExon < 0 || j.RExon < 0 {
			continue
		}
		if j.Count < 1 {
			panic("splicegraph: junction count must be >= 1 at graph-build time")
		}
		g.AddEdge(j.LExon+1, j.RExon+1, float64(j.Count))
	}

	// Pass 2: boundary edges (source/sink <-> pexon).
	for i, pe := range pexons {
		if pe.LType == region.StartBoundary {
			w := pe.Ave
			if i >= 1 && pexons[i-1].RPos == pe.LPos {
				w -= pexons[i-1].Ave
			}
			g.AddEdge(0, i+1, clamp1(w))
		}
		if pe.RType == region.EndBoundary {
			w := pe.Ave
			if i < len(pexons)-1 && pexons[i+1].LPos == pe.RPos {
				w -= pexons[i+1].Ave
			}
			g.AddEdge(i+1, sinkIdx, clamp1(w))
		}
	}

	// Pass 3: adjacency edges between genomically-abutting pexons. The
	// weight is taken from whichever side currently has the smaller
	// out/in-degree, matching
	// original_source/src/src/bundle.cc:build_splice_graph's "use smaller
	// degree, take that side's ave" rule.
	for i := 0; i < len(pexons)-1; i++ {
		x, y := pexons[i], pexons[i+1]
		if x.RPos != y.LPos {
			continue
		}
		xd := g.OutDegree(i + 1)
		yd := g.InDegree(i + 2)
		w := y.Ave
		if xd < yd {
			w = x.Ave
		}
		g.AddEdge(i+1, i+2, clamp1(w))
	}

	return g
}
