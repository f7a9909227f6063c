// Package splicegraph builds the splice graph (spec.md §4.8): a DAG with a
// synthetic source (vertex 0), one vertex per partial exon, and a synthetic
// sink, plus junction, boundary, and adjacency edges carrying expression
// evidence. It also implements the boundary-extension heuristics of spec.md
// §4.9.
//
// Grounded on original_source/src/src/bundle.cc's
// build_splice_graph/extend_isolated_{start,end}_boundaries/
// identify_{5,3}end/build_segment{,s}.
package splicegraph
