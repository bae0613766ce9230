package config

import "fmt"

// ControllerConfig is the controller-side configuration file (spec.md §6).
type ControllerConfig struct {
	NumScenarios       int
	SmoothingRatio     float64
	PercentageDeviation float64
	ParametersFile     string
	OutputFile         string
	StateFile          string
	ResultsDir         string
	ResultsFile        string
	IncludeBadgers     bool

	BetaRange            Range
	SigmaRange           Range
	GammaRange           Range
	AlphaRange           Range
	AlphaPrimeRange      Range
	TestSensitivityRange Range
	MutationRateRange    Range
	// InfectedBadgerLifetimeRange is read from the literal key
	// "infectedBadgerLifetime", not "infectedBadgerLifetimeRange" — preserved
	// verbatim from the reference implementation's quirk (see DESIGN.md).
	InfectedBadgerLifetimeRange Range

	Overrides map[string]interface{}
}

// Ranges returns the configured prior ranges in θ order, truncated to 7
// entries unless badgers are included.
func (c *ControllerConfig) Ranges() []Range {
	r := []Range{c.BetaRange, c.SigmaRange, c.GammaRange, c.AlphaRange, c.AlphaPrimeRange, c.TestSensitivityRange, c.MutationRateRange}
	if c.IncludeBadgers {
		r = append(r, c.InfectedBadgerLifetimeRange)
	}
	return r
}

func (c *ControllerConfig) Dimension() int {
	if c.IncludeBadgers {
		return 8
	}
	return 7
}

func LoadControllerConfig(path string) (*ControllerConfig, error) {
	kv, overrides, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	c := &ControllerConfig{Overrides: overrides}

	if c.NumScenarios, err = kv.Int("numScenarios"); err != nil {
		return nil, err
	}
	if c.SmoothingRatio, err = kv.Float("smoothingRatio"); err != nil {
		return nil, err
	}
	if c.PercentageDeviation, err = kv.Float("percentageDeviation"); err != nil {
		return nil, err
	}
	if c.ParametersFile, err = kv.String("parametersFile"); err != nil {
		return nil, err
	}
	if c.OutputFile, err = kv.String("outputFile"); err != nil {
		return nil, err
	}
	if c.StateFile, err = kv.String("stateFile"); err != nil {
		return nil, err
	}
	if c.ResultsDir, err = kv.String("resultsDir"); err != nil {
		return nil, err
	}
	if c.ResultsFile, err = kv.String("resultsFile"); err != nil {
		return nil, err
	}
	c.IncludeBadgers = kv.BoolOr("includeBadgers", false)

	if c.BetaRange, err = kv.Range("betaRange"); err != nil {
		return nil, err
	}
	if c.SigmaRange, err = kv.Range("sigmaRange"); err != nil {
		return nil, err
	}
	if c.GammaRange, err = kv.Range("gammaRange"); err != nil {
		return nil, err
	}
	if c.AlphaRange, err = kv.Range("alphaRange"); err != nil {
		return nil, err
	}
	if c.AlphaPrimeRange, err = kv.Range("alphaPrimeRange"); err != nil {
		return nil, err
	}
	if c.TestSensitivityRange, err = kv.Range("testSensitivityRange"); err != nil {
		return nil, err
	}
	if c.MutationRateRange, err = kv.Range("mutationRateRange"); err != nil {
		return nil, err
	}
	if c.IncludeBadgers {
		// Deliberately the bare key, not "infectedBadgerLifetimeRange".
		if c.InfectedBadgerLifetimeRange, err = kv.Range("infectedBadgerLifetime"); err != nil {
			return nil, fmt.Errorf("%w (note: this key is named exactly %q, not %q)", err, "infectedBadgerLifetime", "infectedBadgerLifetimeRange")
		}
	}
	return c, nil
}
