// Package binom implements the numerically stable binomial tail-sum score
// used to evaluate candidate boundary splits (spec.md §4.10).
package binom
