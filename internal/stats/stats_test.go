package stats

import (
	"math"
	"testing"

	"github.com/anthonyohare/NIBtbClusterModel/internal/rng"
)

func TestSamplesMeanStdDev(t *testing.T) {
	var s Samples
	if s.Size() != 0 || s.Mean() != 0 || s.StdDev() != 0 {
		t.Fatalf("empty Samples should report zero mean/stddev/size")
	}
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Add(v)
	}
	if s.Size() != 8 {
		t.Fatalf("Size() = %d, want 8", s.Size())
	}
	if math.Abs(s.Mean()-5) > 1e-9 {
		t.Fatalf("Mean() = %v, want 5", s.Mean())
	}
	if math.Abs(s.StdDev()-2.13809) > 1e-4 {
		t.Fatalf("StdDev() = %v, want ~2.13809", s.StdDev())
	}
}

func TestIntegerHistogramRoundTrip(t *testing.T) {
	h := NewIntegerHistogram()
	h.AddOne(1)
	h.AddOne(1)
	h.SetFrequency(3, 5)
	str := h.String()
	parsed, err := ParseIntegerHistogram(str)
	if err != nil {
		t.Fatalf("ParseIntegerHistogram: %v", err)
	}
	if parsed.GetFrequency(1) != 2 || parsed.GetFrequency(3) != 5 {
		t.Fatalf("round trip mismatch: %s", str)
	}
	if parsed.SumCounts() != 7 {
		t.Fatalf("SumCounts() = %d, want 7", parsed.SumCounts())
	}
}

func TestNormaliseBinsPreservesSum(t *testing.T) {
	h := NewIntegerHistogram()
	h.SetFrequency(0, 1)
	h.SetFrequency(1, 1)
	h.SetFrequency(2, 1)
	if err := h.NormaliseBins(10); err != nil {
		t.Fatalf("NormaliseBins: %v", err)
	}
	if got := h.SumCounts(); got != 10 {
		t.Fatalf("SumCounts() after normalise = %d, want 10", got)
	}
}

func TestNormaliseBinsEmptyToPositiveFails(t *testing.T) {
	h := NewIntegerHistogram()
	if err := h.NormaliseBins(5); err == nil {
		t.Fatalf("expected error normalising an empty histogram to a positive target")
	}
}

func TestHypergeometricBounds(t *testing.T) {
	r := rng.New(42)
	for i := 0; i < 200; i++ {
		got := Hypergeometric(r, 50, 10, 5)
		if got < 0 || got > 5 || got > 10 {
			t.Fatalf("Hypergeometric out of bounds: %d", got)
		}
	}
}

func TestHypergeometricDegenerate(t *testing.T) {
	r := rng.New(1)
	if got := Hypergeometric(r, 0, 5, 2); got != 0 {
		t.Fatalf("zero population should draw 0, got %d", got)
	}
}

func TestLnFactorial(t *testing.T) {
	cases := map[int]float64{0: 0, 1: 0, 5: 4.787492}
	for n, want := range cases {
		if got := LnFactorial(n); math.Abs(got-want) > 1e-5 {
			t.Fatalf("LnFactorial(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestMultinomialLogLikelihoodUniform(t *testing.T) {
	counts := []int{5, 5}
	p := []float64{0.5, 0.5}
	got := MultinomialLogLikelihood(counts, p)
	want := LnFactorial(10) - 2*LnFactorial(5) + 10*math.Log(0.5)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("MultinomialLogLikelihood = %v, want %v", got, want)
	}
}
