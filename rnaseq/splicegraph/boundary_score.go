package splicegraph

import (
	"github.com/grailbio/bio/rnaseq/binom"
	"github.com/grailbio/bio/rnaseq/rnaseqconfig"
)

// scoreBoundary5 implements original_source/src/src/bundle.cc:identify_5end:
// it scores vertex x as a candidate unannotated 5' start, by testing whether
// the coverage jump from vertex x-1 to vertex x is more extreme than
// read-sampling noise alone would explain.
func scoreBoundary5(g *Graph, x int, cfg rnaseqconfig.Config) (score, sigma float64) {
	score, sigma = -1, -1
	if x <= 1 {
		return
	}
	if _, ok := g.FindEdge(0, x-1); ok {
		return
	}
	if _, ok := g.FindEdge(0, x); ok {
		return
	}
	if _, ok := g.FindEdge(x-1, x); !ok {
		return
	}
	if g.InDegree(x) >= 2 {
		return
	}
	if g.OutDegree(x-1) >= 2 {
		return
	}

	v1, v2 := g.Vertices[x-1], g.Vertices[x]
	l1, l2 := v1.Length, v2.Length
	if l1 <= 50 || l2 <= 50 {
		return
	}

	w1, w2 := g.VertexWeight(x-1), g.VertexWeight(x)
	x1 := int(w1 * float64(l1) / cfg.AverageReadLength)
	x2 := int(w2 * float64(l2) / cfg.AverageReadLength)
	if x1+x2 <= 10 {
		return
	}

	r := float64(l2) / float64(l1+l2)
	score = binom.Score(x1+x2, r, x2)
	sigma = (w2 - w1) / v1.StdDev
	return
}

// scoreBoundary3 implements original_source/src/src/bundle.cc:identify_3end,
// symmetric to scoreBoundary5.
func scoreBoundary3(g *Graph, x int, cfg rnaseqconfig.Config) (score, sigma float64) {
	score, sigma = -1, -1
	n := g.NumVertices() - 1
	if x >= n-1 {
		return
	}
	if _, ok := g.FindEdge(x, n); ok {
		return
	}
	if _, ok := g.FindEdge(x+1, n); ok {
		return
	}
	if _, ok := g.FindEdge(x, x+1); !ok {
		return
	}
	if g.OutDegree(x) >= 2 {
		return
	}
	if g.InDegree(x+1) >= 2 {
		return
	}

	v1, v2 := g.Vertices[x], g.Vertices[x+1]
	l1, l2 := v1.Length, v2.Length
	if l1 <= 50 || l2 <= 50 {
		return
	}

	w1, w2 := g.VertexWeight(x), g.VertexWeight(x+1)
	x1 := int(w1 * float64(l1) / cfg.AverageReadLength)
	x2 := int(w2 * float64(l2) / cfg.AverageReadLength)
	if x1+x2 <= 10 {
		return
	}

	r := float64(l1) / float64(l1+l2)
	score = binom.Score(x1+x2, r, x1)
	sigma = (w1 - w2) / v2.StdDev
	return
}
