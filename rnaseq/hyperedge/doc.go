// Package hyperedge aggregates read-name groups into ordered pexon-index
// paths (spec.md §4.11, build_hyper_edges2) and materializes the surviving
// paths against a splice graph's edges (spec.md §4.12).
//
// build_hyper_edges1 (single-hit hyperedges, one node list per hit rather
// than per qname group) is superseded by build_hyper_edges2 and is
// intentionally not implemented here, per spec.md's Open Question.
//
// Grounded on original_source/src/src/bundle.cc:build_hyper_edges2 and
// original_source/src/src/hyper_set.cc.
package hyperedge
