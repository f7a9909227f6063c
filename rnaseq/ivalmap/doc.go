// Package ivalmap implements the two additive-merge interval maps the
// splice-graph assembler is built on: a coverage map (sum of read-body
// coverage per base) and an indel map (insertion/deletion evidence per
// base). Both support range insertion with additive merging, point lookup,
// and rectangle mean/stddev statistics.
package ivalmap
