package controller

import (
	"math"

	"github.com/anthonyohare/NIBtbClusterModel/internal/config"
	"github.com/anthonyohare/NIBtbClusterModel/internal/jsonutil"
	"github.com/anthonyohare/NIBtbClusterModel/internal/logging"
	"github.com/anthonyohare/NIBtbClusterModel/internal/rng"
)

// nextSeed draws a fresh int32-range seed, mirroring
// generator.getInteger(Integer.MIN_VALUE, Integer.MAX_VALUE) (§4.7 step 7).
func nextSeed(r *rng.RNG) int64 {
	return int64(r.Int(math.MinInt32, math.MaxInt32))
}

// Run executes one controller invocation end to end (§4.7): load state,
// aggregate the ensemble's result files, decide accept/reject, update the
// running mean/covariance, append a CSV row, propose the next parameter
// vector, and persist state. On the very first run it only samples the
// initial θ, writes the parameters file, the CSV header and the state file;
// no result files are read and no CSV row is appended.
func Run(log *logging.Logger, cfg *config.ControllerConfig) error {
	ranges := cfg.Ranges()
	n := cfg.Dimension()

	state, existed, err := LoadState(cfg.StateFile)
	if err != nil {
		return err
	}

	firstInvocation := !existed || state.NumSteps == 0
	var r *rng.RNG
	if existed && state.RngSeed != 0 {
		r = rng.New(state.RngSeed)
	} else {
		r = rng.New(1)
	}

	if firstInvocation {
		return runFirstStep(log, cfg, r, ranges, n)
	}
	return runSubsequentStep(log, cfg, state, r, ranges, n)
}

func runFirstStep(log *logging.Logger, cfg *config.ControllerConfig, r *rng.RNG, ranges []config.Range, n int) error {
	chain, theta := NewChain(r, ranges, cfg.PercentageDeviation)

	params, err := thetaToParameters(theta, cfg.IncludeBadgers)
	if err != nil {
		return err
	}
	if err := config.WriteParametersFile(cfg.ParametersFile, params); err != nil {
		return err
	}
	if err := writeHeader(cfg.OutputFile, cfg.IncludeBadgers); err != nil {
		return err
	}

	covStr := formatMatrixRowMajor(chain.Covariances)
	state := &State{
		ProposedStep:     formatVector(theta),
		CurrentStep:      "",
		LogLikelihood:    jsonutil.InfFloat64(math.Inf(-1)),
		NumSteps:         1,
		NumAcceptedSteps: 0,
		LastStepAccepted: true,
		RngSeed:          nextSeed(r),
		Means:            formatVector(chain.Means),
		Covariances:      covStr,
	}
	log.Infof("controller: first invocation, proposing %v", theta)
	return state.Save(cfg.StateFile)
}

func runSubsequentStep(log *logging.Logger, cfg *config.ControllerConfig, state *State, r *rng.RNG, ranges []config.Range, n int) error {
	results, err := ReadResults(cfg.ResultsDir, cfg.ResultsFile, cfg.NumScenarios)
	if err != nil {
		return err
	}

	theta, err := parseVector(state.ProposedStep)
	if err != nil {
		return err
	}
	means, err := parseVector(state.Means)
	if err != nil {
		return err
	}
	cov, err := parseMatrixRowMajor(state.Covariances, n)
	if err != nil {
		return err
	}
	chain := &Chain{Means: means, Covariances: cov, NumSteps: state.NumSteps, NumAccepted: state.NumAcceptedSteps}

	t := state.NumSteps
	accepted := AcceptStep(r, t, results.LogLikelihood.Mean(), results.LogLikelihood.Size(), state.LogLikelihood.Float64(), cfg.SmoothingRatio)

	if accepted {
		state.CurrentStep = state.ProposedStep
		state.NumAcceptedSteps++
		if results.LogLikelihood.Size() == 0 {
			state.LogLikelihood = jsonutil.InfFloat64(math.Inf(-1))
		} else {
			state.LogLikelihood = jsonutil.InfFloat64(results.LogLikelihood.Mean())
		}
		if err := WriteScenarioData(cfg.OutputFile, results); err != nil {
			return err
		}
		log.Infof("controller: step %d accepted, logLikelihood=%g", t, state.LogLikelihood.Float64())
	} else {
		log.Infof("controller: step %d rejected", t)
	}
	state.LastStepAccepted = accepted

	if err := appendRow(cfg.OutputFile, t, accepted, theta, results); err != nil {
		return err
	}

	chain.Update(theta)

	proposed, err := SampleTruncatedMVN(r, chain.Means, chain.Covariances, ranges)
	if err != nil {
		return err
	}
	params, err := thetaToParameters(proposed, cfg.IncludeBadgers)
	if err != nil {
		return err
	}
	if err := config.WriteParametersFile(cfg.ParametersFile, params); err != nil {
		return err
	}

	state.NumSteps++
	state.ProposedStep = formatVector(proposed)
	state.Means = formatVector(chain.Means)
	state.Covariances = formatMatrixRowMajor(chain.Covariances)
	state.RngSeed = nextSeed(r)
	return state.Save(cfg.StateFile)
}

func thetaToParameters(theta []float64, includeBadgers bool) (*config.Parameters, error) {
	p := &config.Parameters{HasBadgerLifetime: includeBadgers}
	if err := p.FromVector(theta); err != nil {
		return nil, err
	}
	return p, nil
}
