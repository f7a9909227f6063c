package splicegraph

import "github.com/grailbio/bio/rnaseq/rnaseqconfig"

// ExtendIsolatedStartBoundaries implements spec.md §4.9's 5' pass
// (extend_isolated_start_boundaries): over every non-source/sink vertex i
// with in-degree 1 and out-degree 1, let s be the sole predecessor and t the
// sole successor. If s is the source, t has in-degree 1, the i->t edge
// weight is below 1.5, t's vertex weight exceeds 5.0, and i->t is a splice
// (not a genomic adjacency), add a source->t edge carrying the coverage
// "left over" after accounting for the thin i->t edge.
//
// Applied once, not to a fixed point, matching
// original_source/src/src/bundle.cc's single call from build().
func ExtendIsolatedStartBoundaries(g *Graph) {
	n := g.NumVertices()
	for i := 1; i < n; i++ {
		if g.InDegree(i) != 1 || g.OutDegree(i) != 1 {
			continue
		}
		e1 := g.InEdges(i)[0]
		e2 := g.OutEdges(i)[0]
		s := g.Edge(e1).Source
		t := g.Edge(e2).Target

		if s != 0 {
			continue
		}
		if g.InDegree(t) != 1 {
			continue
		}
		if g.EdgeWeight(e2) >= 1.5 {
			continue
		}
		if g.VertexWeight(t) <= 5.0 {
			continue
		}
		if g.Vertices[i].RPos == g.Vertices[t].LPos {
			continue
		}

		w := g.VertexWeight(t) - g.EdgeWeight(e2)
		if w < 1.0 {
			w = 1.0
		}
		g.AddEdge(s, t, w)
	}
}

// ExtendIsolatedEndBoundaries implements spec.md §4.9's symmetric 3' pass
// (extend_isolated_end_boundaries).
func ExtendIsolatedEndBoundaries(g *Graph) {
	n := g.NumVertices()
	for i := 1; i < n; i++ {
		if g.InDegree(i) != 1 || g.OutDegree(i) != 1 {
			continue
		}
		e1 := g.InEdges(i)[0]
		e2 := g.OutEdges(i)[0]
		s := g.Edge(e1).Source
		t := g.Edge(e2).Target

		if g.OutDegree(s) != 1 {
			continue
		}
		if t != n-1 {
			continue
		}
		if g.EdgeWeight(e1) >= 1.5 {
			continue
		}
		if g.VertexWeight(s) <= 5.0 {
			continue
		}
		if g.Vertices[s].RPos == g.Vertices[i].LPos {
			continue
		}

		w := g.VertexWeight(s) - g.EdgeWeight(e1)
		if w < 1.0 {
			w = 1.0
		}
		g.AddEdge(s, t, w)
	}
}

// IdentifyBoundaryEdges implements spec.md §4.9's identify_boundary_edges:
// unreachable from Bundle.Build (left as "caller's choice" per spec.md's
// Open Question), it scans for a 5' and a 3' split candidate scoring at least
// cfg.BoundaryScoreThreshold with sigma at least cfg.BoundarySigmaThreshold and
// adds the corresponding source/sink edge. Returns true if either pass added
// an edge.
func IdentifyBoundaryEdges(g *Graph, cfg rnaseqconfig.Config) bool {
	b1 := identify5End(g, cfg)
	b2 := identify3End(g, cfg)
	return b1 || b2
}

func identify5End(g *Graph, cfg rnaseqconfig.Config) bool {
	score5, k5 := -1.0, -1
	for i := 1; i < g.NumVertices()-1; i++ {
		score, sigma := scoreBoundary5(g, i, cfg)
		if score <= score5 {
			continue
		}
		if score < cfg.BoundaryScoreThreshold {
			continue
		}
		if sigma < cfg.BoundarySigmaThreshold {
			continue
		}
		score5, k5 = score, i
	}
	if k5 == -1 {
		return false
	}
	w := g.VertexWeight(k5) - g.VertexWeight(k5-1)
	if w <= 1.0 {
		w = 1.0
	}
	g.AddEdge(0, k5, w)
	return true
}

func identify3End(g *Graph, cfg rnaseqconfig.Config) bool {
	score3, k3 := -1.0, -1
	for i := 1; i < g.NumVertices()-1; i++ {
		score, sigma := scoreBoundary3(g, i, cfg)
		if score <= score3 {
			continue
		}
		if score < cfg.BoundaryScoreThreshold {
			continue
		}
		if sigma < cfg.BoundarySigmaThreshold {
			continue
		}
		score3, k3 = score, i
	}
	if k3 == -1 {
		return false
	}
	w := g.VertexWeight(k3) - g.VertexWeight(k3+1)
	if w <= 1.0 {
		w = 1.0
	}
	g.AddEdge(k3, g.NumVertices()-1, w)
	return true
}
