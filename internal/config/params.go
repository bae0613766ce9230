package config

import (
	"bufio"
	"fmt"
	"os"

	"github.com/anthonyohare/NIBtbClusterModel/internal/errs"
)

// Parameters is the θ vector exchanged between controller and scenario via
// the parameters file: beta, sigma, gamma, alpha, alphaPrime, testSensitivity,
// mutationRate and, when badgers are modelled explicitly, infectedBadgerLifetime.
type Parameters struct {
	Beta                  float64
	Sigma                 float64
	Gamma                 float64
	Alpha                 float64
	AlphaPrime            float64
	TestSensitivity       float64
	MutationRate          float64
	InfectedBadgerLifetime float64
	HasBadgerLifetime     bool
}

// Dimension returns 8 when the badger lifetime parameter is present, 7
// otherwise, matching ControllerState's dimension rule.
func (p Parameters) Dimension() int {
	if p.HasBadgerLifetime {
		return 8
	}
	return 7
}

// Vector returns θ in the fixed order used throughout the controller:
// beta, sigma, gamma, alpha, alphaPrime, testSensitivity, mutationRate[, infectedBadgerLifetime].
func (p Parameters) Vector() []float64 {
	v := []float64{p.Beta, p.Sigma, p.Gamma, p.Alpha, p.AlphaPrime, p.TestSensitivity, p.MutationRate}
	if p.HasBadgerLifetime {
		v = append(v, p.InfectedBadgerLifetime)
	}
	return v
}

// FromVector fills the θ fields from a vector in the same order Vector
// produces, preserving HasBadgerLifetime.
func (p *Parameters) FromVector(v []float64) error {
	want := p.Dimension()
	if len(v) != want {
		return fmt.Errorf("%w: expected %d-dimensional parameter vector, got %d", errs.ErrInvariant, want, len(v))
	}
	p.Beta, p.Sigma, p.Gamma, p.Alpha, p.AlphaPrime, p.TestSensitivity, p.MutationRate = v[0], v[1], v[2], v[3], v[4], v[5], v[6]
	if p.HasBadgerLifetime {
		p.InfectedBadgerLifetime = v[7]
	}
	return nil
}

// ReadParametersFile loads a parameters file in the key=value %g form.
func ReadParametersFile(path string) (*Parameters, error) {
	kv, _, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	p := &Parameters{}
	var ferr error
	read := func(key string) float64 {
		v, err := kv.Float(key)
		if err != nil && ferr == nil {
			ferr = err
		}
		return v
	}
	p.Beta = read("beta")
	p.Sigma = read("sigma")
	p.Gamma = read("gamma")
	p.Alpha = read("alpha")
	p.AlphaPrime = read("alphaPrime")
	p.TestSensitivity = read("testSensitivity")
	p.MutationRate = read("mutationRate")
	if ferr != nil {
		return nil, ferr
	}
	if kv.Has("infectedBadgerLifetime") {
		p.InfectedBadgerLifetime, ferr = kv.Float("infectedBadgerLifetime")
		if ferr != nil {
			return nil, ferr
		}
		p.HasBadgerLifetime = true
	}
	return p, nil
}

// WriteParametersFile writes the θ vector in %g form, one key=value line per
// component, mirroring ProjectParameters.generateParametersFile.
func WriteParametersFile(path string, p *Parameters) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", errs.ErrIO, path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "beta = %g\n", p.Beta)
	fmt.Fprintf(w, "sigma = %g\n", p.Sigma)
	fmt.Fprintf(w, "gamma = %g\n", p.Gamma)
	fmt.Fprintf(w, "alpha = %g\n", p.Alpha)
	fmt.Fprintf(w, "alphaPrime = %g\n", p.AlphaPrime)
	fmt.Fprintf(w, "testSensitivity = %g\n", p.TestSensitivity)
	fmt.Fprintf(w, "mutationRate = %g\n", p.MutationRate)
	if p.HasBadgerLifetime {
		fmt.Fprintf(w, "infectedBadgerLifetime = %g\n", p.InfectedBadgerLifetime)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: writing %s: %v", errs.ErrIO, path, err)
	}
	return nil
}
