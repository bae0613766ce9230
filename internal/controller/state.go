// Package controller implements the adaptive Metropolis fitting loop (§4.7):
// reading aggregated scenario results, deciding accept/reject, updating the
// running mean and covariance, and proposing the next parameter vector from a
// truncated multivariate normal sampled via Cholesky factorisation, the same
// pattern the teacher repo uses for its own genetic/residual covariance
// matrices in varStuff/factor.go.
package controller

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anthonyohare/NIBtbClusterModel/internal/errs"
	"github.com/anthonyohare/NIBtbClusterModel/internal/jsonutil"
)

// State is the controller's persisted chain state (§6 "State file"). Means
// and covariances are serialised as comma-separated decimal strings, the
// matrix stored row-major, exactly as spec.md requires — not as JSON arrays,
// so a state file stays diffable against the reference format.
type State struct {
	ProposedStep     string              `json:"proposedStep"`
	CurrentStep      string              `json:"currentStep"`
	LogLikelihood    jsonutil.InfFloat64 `json:"logLikelihood"`
	NumSteps         int                 `json:"numSteps"`
	NumAcceptedSteps int                 `json:"numAcceptedSteps"`
	LastStepAccepted bool                `json:"lastStepAccepted"`
	RngSeed          int64               `json:"rngSeed"`
	Means            string              `json:"means"`
	Covariances      string              `json:"covariances"`
}

// LoadState reads path, or reports ok=false if it does not exist yet (the
// "no state file" branch of §4.7's first-invocation rule).
func LoadState(path string) (*State, bool, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: reading state file %s: %v", errs.ErrIO, path, err)
	}
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, false, fmt.Errorf("%w: parsing state file %s: %v", errs.ErrIO, path, err)
	}
	return &s, true, nil
}

// Save writes the state as indented JSON.
func (s *State) Save(path string) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshalling state: %v", errs.ErrIO, err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", errs.ErrIO, path, err)
	}
	return nil
}

// formatVector renders v as a comma-separated decimal string.
func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// parseVector is formatVector's inverse.
func parseVector(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: vector field %q is not numeric: %v", errs.ErrIO, f, err)
		}
		out[i] = v
	}
	return out, nil
}

// formatMatrixRowMajor flattens an n x n matrix (row-major) into the same
// comma-separated string form as formatVector.
func formatMatrixRowMajor(m [][]float64) string {
	n := len(m)
	flat := make([]float64, 0, n*n)
	for _, row := range m {
		flat = append(flat, row...)
	}
	return formatVector(flat)
}

// parseMatrixRowMajor is formatMatrixRowMajor's inverse, given the expected
// dimension n.
func parseMatrixRowMajor(s string, n int) ([][]float64, error) {
	flat, err := parseVector(s)
	if err != nil {
		return nil, err
	}
	if len(flat) != n*n {
		return nil, fmt.Errorf("%w: covariance string has %d entries, want %d for an %dx%d matrix", errs.ErrIO, len(flat), n*n, n, n)
	}
	m := make([][]float64, n)
	for i := range m {
		m[i] = flat[i*n : (i+1)*n]
	}
	return m, nil
}
