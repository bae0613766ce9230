package controller

import (
	"math"

	"github.com/anthonyohare/NIBtbClusterModel/internal/config"
	"github.com/anthonyohare/NIBtbClusterModel/internal/rng"
)

// adaptiveMetropolisScale is applied to the covariance *update* itself, not
// the proposal draw — a deliberate deviation from textbook adaptive
// Metropolis that spec.md §9 calls out as intentional and preserved here
// exactly as named.
func adaptiveMetropolisScale(n int) float64 {
	return 2.85 / math.Sqrt(float64(n))
}

// covarianceDiagonalInflation keeps Σ numerically nonsingular between steps.
const covarianceDiagonalInflation = 0.001

// Chain holds the controller's evolving estimate of the proposal
// distribution and the running step counters (§4.7).
type Chain struct {
	Means       []float64
	Covariances [][]float64
	NumSteps    int
	NumAccepted int
}

// NewChain initialises a chain for the very first invocation: θ sampled
// uniformly within each configured range, Σ diagonal at
// percentageDeviation·θ/100, means = θ (§4.7 "On the very first invocation").
func NewChain(r *rng.RNG, ranges []config.Range, percentageDeviation float64) (*Chain, []float64) {
	n := len(ranges)
	theta := make([]float64, n)
	for i, rg := range ranges {
		theta[i] = rg.Lo + r.Float64()*(rg.Hi-rg.Lo)
	}
	cov := make([][]float64, n)
	for i := range cov {
		cov[i] = make([]float64, n)
		cov[i][i] = percentageDeviation * theta[i] / 100
	}
	means := append([]float64(nil), theta...)
	return &Chain{Means: means, Covariances: cov}, theta
}

// Update folds θ into the running mean/covariance estimate in place (§4.7
// step 5): meansᵢ ← meansᵢ + (θᵢ−meansᵢ)/(t+1); Σᵢⱼ updated the same way then
// scaled as a whole by adaptiveMetropolisScale, then diagonal-inflated.
func (ch *Chain) Update(theta []float64) {
	t := ch.NumSteps
	n := len(theta)
	scale := adaptiveMetropolisScale(n)

	prevMeans := append([]float64(nil), ch.Means...)
	for i := range ch.Means {
		ch.Means[i] += (theta[i] - ch.Means[i]) / float64(t+1)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			delta := (theta[i]-prevMeans[i])*(theta[j]-prevMeans[j]) - ch.Covariances[i][j]
			ch.Covariances[i][j] = (ch.Covariances[i][j] + delta/float64(t+1)) * scale
		}
		ch.Covariances[i][i] += covarianceDiagonalInflation
	}
}

// AcceptStep implements §4.7 step 2's acceptance decision. t is the 1-based
// iteration count for the step that produced results (t==1 on the very first
// call). stateLogLikelihood is the log-likelihood accepted at the end of the
// previous step (−∞ if there was none).
func AcceptStep(r *rng.RNG, t int, resultsMean float64, resultsSize int, stateLogLikelihood float64, smoothingRatio float64) bool {
	switch {
	case t == 1:
		return true
	case resultsSize == 0:
		return false
	case math.IsInf(stateLogLikelihood, -1):
		return true
	default:
		return math.Log(r.Float64()) < (resultsMean-stateLogLikelihood)/smoothingRatio
	}
}
