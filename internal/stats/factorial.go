package stats

import (
	"math"
)

// LnFactorial returns ln(n!), computed via the log-gamma function
// (math.Lgamma), rather than a hand-rolled loop or table — the same trick
// the original's lnFactorial(n) helper uses internally.
func LnFactorial(n int) float64 {
	if n < 0 {
		return 0
	}
	v, _ := math.Lgamma(float64(n) + 1)
	return v
}

// MultinomialLogLikelihood scores observed integer bin counts against a
// probability vector p (aligned by index), following the original's
// calculateLikelihood: logL = ln(N!) - Σln(x_i!) + Σ x_i * ln(p_i), skipping
// terms where p_i is effectively zero (<= 1e-15) the same way the Java does.
// N is the sum of counts; callers are expected to have already normalised
// counts to sum to N via IntegerHistogram.NormaliseBins.
func MultinomialLogLikelihood(counts []int, p []float64) float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	logL := LnFactorial(n)
	for i, c := range counts {
		if c == 0 {
			continue
		}
		logL -= LnFactorial(c)
		if i < len(p) && p[i] > 1e-15 {
			logL += float64(c) * math.Log(p[i])
		}
	}
	return logL
}
