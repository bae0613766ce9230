// Package stats is the statistical container library spec.md §1 names as an
// external collaborator (Samples, integer histograms, hypergeometric sampling,
// factorial utilities). Samples is a thin adapter over gonum/stat; the
// integer histogram, the hypergeometric sampler and the factorial helpers are
// written directly in Go (LnFactorial uses the standard library's
// math.Lgamma).
package stats

import "gonum.org/v1/gonum/stat"

// Samples accumulates a stream of float64 observations and reports mean and
// standard deviation on demand, the same contract as broadwick.statistics.Samples
// used throughout ControllerResults.
type Samples struct {
	values []float64
}

func (s *Samples) Add(v float64) { s.values = append(s.values, v) }

func (s *Samples) Size() int { return len(s.values) }

// Mean returns 0 for an empty sample set, matching gonum.stat.Mean's contract
// of operating over whatever slice it is given.
func (s *Samples) Mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return stat.Mean(s.values, nil)
}

// StdDev returns the sample standard deviation (gonum's stat.StdDev, which
// uses an n-1 denominator). Zero for fewer than 2 samples.
func (s *Samples) StdDev() float64 {
	if len(s.values) < 2 {
		return 0
	}
	return stat.StdDev(s.values, nil)
}
