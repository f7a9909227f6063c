// Package bundle assembles a single contiguous, same-strand cluster of
// aligned reads (a bundle) into a splice graph and a set of observed
// hyperedges, running the full leaf-to-root pipeline of interval maps,
// junction extraction, region segmentation, partial-exon derivation and
// splice-graph construction.
//
// Grounded on original_source/src/src/bundle.cc's bundle::build.
package bundle
