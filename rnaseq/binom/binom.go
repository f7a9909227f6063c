package binom

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Score implements compute_binomial_score (spec.md §4.10): the negative
// base-10 log survival function of Binomial(n, r) evaluated at k, i.e.
// -log10(P[X >= k]).
//
// The tail sum P[X >= k] = sum_{i=k}^{n} P[X = i] is accumulated in log
// space via a log-sum-exp over distuv.Binomial.LogProb (itself backed by
// lgamma-based log-binomial coefficients), avoiding the catastrophic
// cancellation that summing raw probabilities would suffer for large n or
// extreme r.
//
// Domain: n >= 0, 0 < r < 1, 0 <= k <= n. Out-of-domain inputs return 0, per
// spec.md §7.
func Score(n int, r float64, k int) float64 {
	if n < 0 || r <= 0 || r >= 1 || k < 0 || k > n {
		return 0
	}

	dist := distuv.Binomial{N: float64(n), P: r}

	maxLog := math.Inf(-1)
	logProbs := make([]float64, 0, n-k+1)
	for i := k; i <= n; i++ {
		lp := dist.LogProb(float64(i))
		logProbs = append(logProbs, lp)
		if lp > maxLog {
			maxLog = lp
		}
	}
	if math.IsInf(maxLog, -1) {
		return 0
	}

	var sum float64
	for _, lp := range logProbs {
		sum += math.Exp(lp - maxLog)
	}
	logSurvival := maxLog + math.Log(sum)
	return -logSurvival / math.Ln10
}
