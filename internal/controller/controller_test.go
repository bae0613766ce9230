package controller

import (
	"math"
	"testing"

	"github.com/anthonyohare/NIBtbClusterModel/internal/config"
	"github.com/anthonyohare/NIBtbClusterModel/internal/rng"
)

func TestNewChainInitialisesDiagonalCovariance(t *testing.T) {
	r := rng.New(1)
	ranges := []config.Range{{Lo: 0, Hi: 1}, {Lo: 0, Hi: 10}}
	chain, theta := NewChain(r, ranges, 20)
	for i, v := range theta {
		if v < ranges[i].Lo || v > ranges[i].Hi {
			t.Errorf("theta[%d] = %v out of configured range %v", i, v, ranges[i])
		}
		if chain.Means[i] != v {
			t.Errorf("initial means[%d] = %v, want %v", i, chain.Means[i], v)
		}
	}
	if chain.Covariances[0][1] != 0 {
		t.Errorf("off-diagonal covariance should start at zero, got %v", chain.Covariances[0][1])
	}
}

func TestChainUpdateScalesCovariance(t *testing.T) {
	chain := &Chain{
		Means:       []float64{1, 1},
		Covariances: [][]float64{{1, 0}, {0, 1}},
		NumSteps:    1,
	}
	chain.Update([]float64{2, 2})
	scale := adaptiveMetropolisScale(2)
	// meansᵢ should have moved halfway towards 2 (t=1, so /2).
	if chain.Means[0] != 1.5 {
		t.Errorf("means[0] = %v, want 1.5", chain.Means[0])
	}
	// Covariance update is scaled as a whole, then diagonal-inflated.
	wantDiag := (1+(1-1)/2.0)*scale + covarianceDiagonalInflation
	if math.Abs(chain.Covariances[0][0]-wantDiag) > 1e-9 {
		t.Errorf("covariances[0][0] = %v, want %v", chain.Covariances[0][0], wantDiag)
	}
}

func TestAcceptStepFirstStepAlwaysAccepts(t *testing.T) {
	r := rng.New(1)
	if !AcceptStep(r, 1, -1000, 5, math.Inf(-1), 50) {
		t.Error("the first step must always be accepted regardless of likelihood")
	}
}

func TestAcceptStepEmptyResultsRejects(t *testing.T) {
	r := rng.New(1)
	if AcceptStep(r, 2, 0, 0, -100, 50) {
		t.Error("an empty results set must be rejected")
	}
}

func TestAcceptStepPreviousNegInfAlwaysAccepts(t *testing.T) {
	r := rng.New(1)
	if !AcceptStep(r, 2, -95, 5, math.Inf(-1), 50) {
		t.Error("a previous -Inf likelihood must always accept the next step")
	}
}

func TestAcceptStepLogRatioExampleAlwaysAccepts(t *testing.T) {
	// §8's worked example: state.logLikelihood=-100, results.mean=-95,
	// smoothingRatio=50 => ratio=0.1, ln(u) < 0.1 for essentially all u.
	r := rng.New(7)
	accepted := 0
	const trials = 200
	for i := 0; i < trials; i++ {
		if AcceptStep(r, 2, -95, 5, -100, 50) {
			accepted++
		}
	}
	if accepted < trials-5 {
		t.Errorf("expected acceptance probability close to min(1, exp(0.1)) (~1), got %d/%d accepted", accepted, trials)
	}
}

func TestSampleTruncatedMVNStaysInBounds(t *testing.T) {
	r := rng.New(3)
	means := []float64{0.5, 0.5}
	cov := [][]float64{{0.01, 0}, {0, 0.01}}
	ranges := []config.Range{{Lo: 0, Hi: 1}, {Lo: 0, Hi: 1}}
	for i := 0; i < 50; i++ {
		theta, err := SampleTruncatedMVN(r, means, cov, ranges)
		if err != nil {
			t.Fatalf("SampleTruncatedMVN: %v", err)
		}
		for j, v := range theta {
			if v < ranges[j].Lo || v > ranges[j].Hi {
				t.Fatalf("sample[%d] = %v out of bounds %v", j, v, ranges[j])
			}
		}
	}
}

func TestFormatExp6MatchesSixSignificantDigits(t *testing.T) {
	got := formatExp6(0.0001234567)
	if got != "1.23457E-4" {
		t.Errorf("formatExp6(0.0001234567) = %q, want %q", got, "1.23457E-4")
	}
}

func TestFormatExp6HandlesInfinity(t *testing.T) {
	if got := formatExp6(math.Inf(-1)); got != "-Infinity" {
		t.Errorf("formatExp6(-Inf) = %q, want -Infinity", got)
	}
}

func TestStateVectorRoundTrip(t *testing.T) {
	v := []float64{1.5, -2.25, 3}
	s := formatVector(v)
	back, err := parseVector(s)
	if err != nil {
		t.Fatalf("parseVector: %v", err)
	}
	for i := range v {
		if back[i] != v[i] {
			t.Errorf("roundtrip[%d] = %v, want %v", i, back[i], v[i])
		}
	}
}

func TestMatrixRowMajorRoundTrip(t *testing.T) {
	m := [][]float64{{1, 2}, {3, 4}}
	s := formatMatrixRowMajor(m)
	back, err := parseMatrixRowMajor(s, 2)
	if err != nil {
		t.Fatalf("parseMatrixRowMajor: %v", err)
	}
	for i := range m {
		for j := range m[i] {
			if back[i][j] != m[i][j] {
				t.Errorf("roundtrip[%d][%d] = %v, want %v", i, j, back[i][j], m[i][j])
			}
		}
	}
}
