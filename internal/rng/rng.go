// Package rng is the random-number generator abstraction the core simulator
// and controller are built against. spec.md §1 names "the random-number
// generator abstraction" as an external collaborator; this package is that
// collaborator's concrete (and only) implementation, built the way the
// teacher repo builds its own randomness — a single seeded math/rand.Rand
// (animal.Rng in initSimulation.go) feeding gonum/stat/distuv distributions
// for anything beyond a uniform draw.
package rng

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// RNG is a single seeded stream. One is owned per scenario process and one
// by the controller process — never shared across OS processes.
type RNG struct {
	src  *rand.Rand
	seed int64
}

func New(seed int64) *RNG {
	return &RNG{src: rand.New(rand.NewSource(seed)), seed: seed}
}

func (r *RNG) Seed() int64 { return r.seed }

// expRandSource adapts *math/rand.Rand to the golang.org/x/exp/rand.Source
// interface gonum's distuv package requires, without altering the
// underlying stream math/rand already produces.
type expRandSource struct{ r *rand.Rand }

func (s expRandSource) Uint64() uint64   { return s.r.Uint64() }
func (s expRandSource) Seed(seed uint64) { s.r.Seed(int64(seed)) }

// Float64 returns a uniform draw in [0, 1).
func (r *RNG) Float64() float64 { return r.src.Float64() }

// Int returns a uniform integer in [lo, hi] inclusive, matching
// broadwick.rng.RNG.getInteger(lo, hi).
func (r *RNG) Int(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.src.Intn(hi-lo+1)
}

// Gaussian draws from a Normal(mean, sd).
func (r *RNG) Gaussian(mean, sd float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: sd, Src: expRandSource{r.src}}.Rand()
}

// Poisson draws a nonnegative integer count from Poisson(lambda). lambda<=0
// deterministically yields 0, matching the degenerate case the Java
// generator.getPoisson would otherwise panic on.
func (r *RNG) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	return int(distuv.Poisson{Lambda: lambda, Src: expRandSource{r.src}}.Rand())
}

// ExponentialCDF returns the CDF of an Exponential(rate) distribution evaluated
// at x. Used verbatim for the legacy badger-decay kernel weight (§4.2, §9).
func ExponentialCDF(x, rate float64) float64 {
	if x < 0 {
		return 0
	}
	return 1 - math.Exp(-rate*x)
}

// SelectIndex picks a uniformly random index in [0, n).
func (r *RNG) SelectIndex(n int) int {
	if n <= 0 {
		return 0
	}
	return r.src.Intn(n)
}

// ShuffleStrings permutes s in place using the Fisher-Yates shuffle backing
// SelectManyIndices, used wherever the original shuffles a Java List (e.g.
// the slaughter phase's farmsMovingAnimals).
func (r *RNG) ShuffleStrings(s []string) {
	r.src.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

// SelectManyIndices picks n distinct indices from [0, size) uniformly at
// random without replacement, mirroring broadwick.rng.RNG.selectManyOf. If n
// >= size every index is returned, shuffled.
func (r *RNG) SelectManyIndices(size, n int) []int {
	if n > size {
		n = size
	}
	if n <= 0 {
		return nil
	}
	indices := make([]int, size)
	for i := range indices {
		indices[i] = i
	}
	r.src.Shuffle(size, func(i, j int) { indices[i], indices[j] = indices[j], indices[i] })
	return indices[:n]
}
