package junction

import (
	"math"
	"sort"
)

// VertexType classifies a junction-graph vertex (and, after region
// derivation, a region/pexon boundary) by how it is evidenced. This is a
// small closed enum, not a class hierarchy, per spec.md §9's "Polymorphism
// over vertex kinds" redesign flag.
type VertexType int

const (
	// StartBoundary marks a bundle's left endpoint.
	StartBoundary VertexType = iota
	// EndBoundary marks a bundle's right endpoint.
	EndBoundary
	// LeftSplice marks a position that appears only as a junction's left
	// (donor) endpoint.
	LeftSplice
	// RightSplice marks a position that appears only as a junction's
	// right (acceptor) endpoint.
	RightSplice
	// LeftRightSplice marks a position that is simultaneously some
	// junction's right endpoint and another junction's left endpoint.
	LeftRightSplice
)

// Vertex is a junction-graph vertex: a genomic position and its type.
type Vertex struct {
	Pos  PosType
	Type VertexType
}

// adjacencyEdgeID is the JID of an adjacency edge between consecutive
// vertices; a junction shortcut edge's JID is instead its index into the
// Graph's Junctions slice.
const adjacencyEdgeID = -1

// Edge is a junction-graph edge, either an adjacency edge (id -1) between
// consecutive vertices or a shortcut edge spanning one retained junction.
type Edge struct {
	Source, Target int
	JID             int
}

// Graph is the junction graph of spec.md §4.4: a linear chain of vertices
// ordered by genomic position (bundle endpoints plus every junction
// endpoint), connected by adjacency edges between consecutive vertices and
// by junction edges bridging each junction's left and right position.
//
// Grounded on original_source/src/src/bundle.cc:build_junction_graph.
type Graph struct {
	Vertices  []Vertex
	Edges     []Edge
	Junctions []Junction
}

// Build constructs the junction graph for a bundle spanning [lpos, rpos)
// with the given retained junctions.
func Build(lpos, rpos PosType, junctions []Junction) *Graph {
	type posType struct {
		pos PosType
		typ VertexType
	}
	byPos := make(map[PosType]VertexType)
	byPos[lpos] = StartBoundary
	byPos[rpos] = EndBoundary

	for _, j := range junctions {
		if t, ok := byPos[j.LPos]; !ok {
			byPos[j.LPos] = LeftSplice
		} else if t == RightSplice {
			byPos[j.LPos] = LeftRightSplice
		}
		if t, ok := byPos[j.RPos]; !ok {
			byPos[j.RPos] = RightSplice
		} else if t == LeftSplice {
			byPos[j.RPos] = LeftRightSplice
		}
	}

	positions := make([]PosType, 0, len(byPos))
	for p := range byPos {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })

	gr := &Graph{
		Vertices:  make([]Vertex, len(positions)),
		Junctions: junctions,
	}
	pos2vertex := make(map[PosType]int, len(positions))
	for i, p := range positions {
		gr.Vertices[i] = Vertex{Pos: p, Type: byPos[p]}
		pos2vertex[p] = i
	}

	for i := 0; i < len(gr.Vertices)-1; i++ {
		gr.Edges = append(gr.Edges, Edge{Source: i, Target: i + 1, JID: adjacencyEdgeID})
	}
	for i, j := range junctions {
		l, ok1 := pos2vertex[j.LPos]
		r, ok2 := pos2vertex[j.RPos]
		if !ok1 || !ok2 {
			panic("junction: endpoint missing from junction graph")
		}
		gr.Edges = append(gr.Edges, Edge{Source: l, Target: r, JID: i})
	}
	return gr
}

// Search returns the index k such that Vertices[k].Pos <= p < Vertices[k+1].Pos,
// by binary search; -1 if p is outside the graph's span.
func (g *Graph) Search(p PosType) int {
	n := len(g.Vertices)
	if n < 2 {
		return -1
	}
	l, r := 0, n-1
	for l < r {
		m := (l + r) / 2
		p1 := g.Vertices[m].Pos
		p2 := g.Vertices[m+1].Pos
		if p >= p1 && p < p2 {
			return m
		}
		if p < p1 {
			r = m
		} else {
			l = m + 1
		}
	}
	return -1
}

// inEdges returns the indices, into g.Edges, of edges whose Target is v.
func (g *Graph) inEdges(v int) []int {
	var idx []int
	for i, e := range g.Edges {
		if e.Target == v {
			idx = append(idx, i)
		}
	}
	return idx
}

// TraversePath returns the minimum-length path (by genomic span, with
// junction edges counted as zero-length shortcuts) from vertex s to vertex t,
// and the edge indices composing it. It mirrors
// original_source/src/src/bundle.cc:traverse_junction_graph, treating every
// reachable predecessor uniformly (no preference for junction edges).
func (g *Graph) TraversePath(s, t int) (length PosType, edges []int) {
	if s > t {
		return -1, nil
	}
	v1 := make([]float64, t-s+1)
	v2 := make([]int, t-s+1)
	v1[0] = 0
	v2[0] = -1

	for k := s + 1; k <= t; k++ {
		bestEdge := -1
		bestW := math.Inf(1)
		for _, ei := range g.inEdges(k) {
			e := g.Edges[ei]
			if e.Source < s {
				continue
			}
			w := 0.0
			if e.JID == adjacencyEdgeID {
				w = float64(g.Vertices[k].Pos - g.Vertices[e.Source].Pos)
			}
			if v1[e.Source-s]+w < bestW {
				bestW = v1[e.Source-s] + w
				bestEdge = ei
			}
		}
		if bestEdge < 0 {
			panic("junction: no predecessor edge found in TraversePath")
		}
		v1[k-s] = bestW
		v2[k-s] = bestEdge
	}

	k := t - s
	for v2[k] >= 0 {
		ei := v2[k]
		edges = append(edges, ei)
		k = g.Edges[ei].Source - s
	}
	// reverse
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return PosType(v1[t-s]), edges
}

// TraversePathPreferJunction mirrors
// original_source/src/src/bundle.cc:traverse_junction_graph1: it tracks two
// competing shortest paths into each vertex — the shortest path of any
// kind, and the shortest path that has taken at least one junction
// shortcut — and returns the latter, since a path that actually follows
// observed splicing is more informative than one that merely walks genomic
// distance. If no path from s to t takes a junction edge, it returns
// (-1, nil).
func (g *Graph) TraversePathPreferJunction(s, t int) (length PosType, edges []int) {
	if s > t {
		return -1, nil
	}
	n := t - s + 1
	v1 := make([]float64, n) // best path, adjacency-only allowed
	v2 := make([]float64, n) // best path that has used >=1 junction edge; -1 if none
	ve1 := make([]int, n)
	ve2 := make([]int, n)
	v1[0] = 0
	v2[0] = -1
	ve1[0] = -1
	ve2[0] = -1

	for k := s + 1; k <= t; k++ {
		ee1, ee2 := -1, -1
		ww1, ww2 := math.Inf(1), math.Inf(1)
		for _, ei := range g.inEdges(k) {
			e := g.Edges[ei]
			ss := e.Source
			if ss < s {
				continue
			}
			if e.JID == adjacencyEdgeID {
				w := float64(g.Vertices[k].Pos - g.Vertices[ss].Pos)
				if v1[ss-s]+w < ww1 {
					ww1 = v1[ss-s] + w
					ee1 = ei
				}
				if v2[ss-s] >= 0 && v2[ss-s]+w < ww2 {
					ww2 = v2[ss-s] + w
					ee2 = ei
				}
			} else {
				if v1[ss-s] < ww1 {
					ww1 = v1[ss-s]
					ee1 = ei
				}
				if v1[ss-s] < ww2 {
					ww2 = v1[ss-s]
					ee2 = ei
				}
			}
		}
		if ee1 < 0 {
			panic("junction: no predecessor edge found in TraversePathPreferJunction")
		}
		v1[k-s] = ww1
		ve1[k-s] = ee1
		if ee2 < 0 {
			v2[k-s] = -1
			ve2[k-s] = -1
		} else {
			v2[k-s] = ww2
			ve2[k-s] = ee2
		}
	}

	if v2[t-s] < 0 {
		return -1, nil
	}

	k := t - s
	for ve2[k] >= 0 {
		ei := ve2[k]
		edges = append(edges, ei)
		nk := g.Edges[ei].Source - s
		id := g.Edges[ei].JID
		k = nk
		if id >= 0 {
			break
		}
	}
	for ve1[k] >= 0 {
		ei := ve1[k]
		edges = append(edges, ei)
		k = g.Edges[ei].Source - s
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return PosType(v2[t-s]), edges
}
