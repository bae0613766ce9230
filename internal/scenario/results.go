package scenario

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/anthonyohare/NIBtbClusterModel/internal/errs"
	"github.com/anthonyohare/NIBtbClusterModel/internal/jsonutil"
	"github.com/anthonyohare/NIBtbClusterModel/internal/stats"
)

// Results accumulates the counters one scenario run produces and the two
// histograms scored against observed data, matching ScenarioResults and its
// JSON field names (§6 "Scenario result file").
type Results struct {
	NumCowCowTransmissions        int     `json:"numCowCowTransmissions"`
	NumCowBadgerTransmissions     int     `json:"numCowBadgerTransmissions"`
	NumBadgerCowTransmissions     int     `json:"numBadgerCowTransmissions"`
	NumReactors                   int     `json:"numReactors"`
	NumBreakdowns                 int     `json:"numBreakdowns"`
	NumDetectedAnimalsAtSlaughter int     `json:"numDetectedAnimalsAtSlaughter"`
	NumUndetectedAnimalsAtSlaughter int   `json:"numUndetectedAnimalsAtSlaughter"`
	NumInfectedAnimalsMoved       int     `json:"numInfectedAnimalsMoved"`
	NumSamplesTaken               int                 `json:"numSamplesTaken"`
	LogLikelihood                 jsonutil.InfFloat64 `json:"loglikelihood"`

	ReactorsAtBreakdownDistribution string `json:"reactorsAtBreakdownDistribution"`
	SnpDistanceDistribution         string `json:"snpDistanceDistribution"`

	reactorsHist *stats.IntegerHistogram
	snpHist      *stats.IntegerHistogram
}

func NewResults() *Results {
	return &Results{
		LogLikelihood: jsonutil.InfFloat64(math.Inf(-1)),
		reactorsHist:  stats.NewIntegerHistogram(),
		snpHist:       stats.NewIntegerHistogram(),
	}
}

// RecordReactors tallies a breakdown of the given size into both the raw
// counters and the reactorsAtBreakdown histogram (§4.4 "If >= 1 reactors").
func (r *Results) RecordReactors(size int) {
	r.NumReactors += size
	r.NumBreakdowns++
	r.reactorsHist.AddOne(size)
}

// Save writes the result file as JSON to path, serialising the two
// histograms to their "bin:count,..." string form first.
func (r *Results) Save(path string) error {
	r.ReactorsAtBreakdownDistribution = r.reactorsHist.String()
	r.SnpDistanceDistribution = r.snpHist.String()
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshalling results: %v", errs.ErrIO, err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", errs.ErrIO, path, err)
	}
	return nil
}

// Summary is an INFO-level human-readable line, the Go stand-in for the
// original's ScenarioResults.toString() (SPEC_FULL.md supplemented feature 2).
func (r *Results) Summary() string {
	return fmt.Sprintf(
		"breakdowns=%d reactors=%d cow-cow=%d cow-badger=%d badger-cow=%d movedInfected=%d detectedAtSlaughter=%d undetectedAtSlaughter=%d logL=%g",
		r.NumBreakdowns, r.NumReactors, r.NumCowCowTransmissions, r.NumCowBadgerTransmissions,
		r.NumBadgerCowTransmissions, r.NumInfectedAnimalsMoved, r.NumDetectedAnimalsAtSlaughter,
		r.NumUndetectedAnimalsAtSlaughter, r.LogLikelihood.Float64())
}
