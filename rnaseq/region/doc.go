// Package region derives partial exons from the intervals between
// consecutive junction-graph vertices (spec.md §4.5), indexes them for
// genomic-position lookup (spec.md §4.6), and links junctions to the
// partial exons that border them (spec.md §4.7).
//
// Grounded on original_source/src/src/bundle.cc's
// build_regions/build_partial_exons/build_partial_exon_map/
// locate_{left,right}_partial_exon/link_partial_exons.
package region
