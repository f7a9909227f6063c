// Package gtf writes assembled transcripts in the nine-column
// transcript/exon TSV format spec.md §6 defines, given a bundle and the
// path decomposition a (out-of-scope) router produced over its splice
// graph.
//
// Grounded on original_source/src/src/bundle.cc's output_transcript.
package gtf
