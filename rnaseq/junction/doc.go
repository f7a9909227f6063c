// Package junction tallies observed splice sites into Junctions (spec.md
// §4.3) and arranges bundle endpoints plus junction endpoints into a linear
// junction graph (spec.md §4.4), the structure regions are later derived
// from. Grounded on original_source/src/src/bundle.cc's
// build_junctions/build_junction_graph/search_junction_graph and
// traverse_junction_graph{,1}.
package junction
