package controller

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/anthonyohare/NIBtbClusterModel/internal/config"
	"github.com/anthonyohare/NIBtbClusterModel/internal/rng"
)

// maxProposalAttempts bounds the truncated-normal rejection loop. A
// pathologically narrow box relative to Σ could otherwise reject forever;
// the reference implementation has no such bound, but an unbounded loop here
// would turn a bad prior config into a hang rather than a diagnostic.
const maxProposalAttempts = 100000

// SampleTruncatedMVN draws from a multivariate normal(means, cov), sampled
// via a Cholesky factor of cov the same way the teacher's varStuff/factor.go
// decomposes its genetic and residual covariance matrices, and rejects any
// draw falling outside the configured [lo, hi] box per component (§4.7).
func SampleTruncatedMVN(r *rng.RNG, means []float64, cov [][]float64, ranges []config.Range) ([]float64, error) {
	n := len(means)
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, cov[i][j])
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		// Non-positive-definite covariance: fall back to its diagonal, which
		// is always PD when every variance is positive. This mirrors the
		// defensive inflation the reference implementation relies on the
		// +0.001 diagonal term for, extended to cover a genuinely singular Σ.
		diag := mat.NewSymDense(n, nil)
		for i := 0; i < n; i++ {
			diag.SetSym(i, i, cov[i][i]+1e-6)
		}
		if ok := chol.Factorize(diag); !ok {
			return nil, fmt.Errorf("controller: covariance matrix is not positive definite even after diagonal fallback")
		}
	}
	var lower mat.TriDense
	chol.LTo(&lower)

	for attempt := 0; attempt < maxProposalAttempts; attempt++ {
		z := make([]float64, n)
		for i := range z {
			z[i] = r.Gaussian(0, 1)
		}
		zVec := mat.NewVecDense(n, z)
		var scaled mat.VecDense
		scaled.MulVec(&lower, zVec)

		theta := make([]float64, n)
		inBounds := true
		for i := 0; i < n; i++ {
			theta[i] = means[i] + scaled.AtVec(i)
			if theta[i] < ranges[i].Lo || theta[i] > ranges[i].Hi {
				inBounds = false
				break
			}
		}
		if inBounds {
			return theta, nil
		}
	}
	return nil, fmt.Errorf("controller: could not sample a proposal inside the configured bounds after %d attempts", maxProposalAttempts)
}
