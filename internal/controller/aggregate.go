package controller

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anthonyohare/NIBtbClusterModel/internal/jsonutil"
	"github.com/anthonyohare/NIBtbClusterModel/internal/stats"
)

// AggregatedResults accumulates per-metric Samples across every
// scenario_<id>.results file in one ensemble (§4.7 step 1), the Go analogue
// of the original's ControllerResults.
type AggregatedResults struct {
	NumCowCowTransmissions        stats.Samples
	NumCowBadgerTransmissions     stats.Samples
	NumBadgerCowTransmissions     stats.Samples
	NumReactors                   stats.Samples
	NumBreakdowns                 stats.Samples
	NumDetectedAnimalsAtSlaughter stats.Samples
	NumUndetectedAnimalsAtSlaughter stats.Samples
	NumInfectedAnimalsMoved       stats.Samples
	LogLikelihood                 stats.Samples

	ReactorsAtBreakdownDistribution map[int]*stats.Samples
	SnpDistanceDistribution         map[int]*stats.Samples
}

func newAggregatedResults() *AggregatedResults {
	return &AggregatedResults{
		ReactorsAtBreakdownDistribution: make(map[int]*stats.Samples),
		SnpDistanceDistribution:         make(map[int]*stats.Samples),
	}
}

// scenarioResultJSON mirrors the fields of internal/scenario.Results this
// package needs to read back; it is intentionally a separate, narrower type
// so this package does not import internal/scenario for a handful of fields.
type scenarioResultJSON struct {
	NumCowCowTransmissions          float64 `json:"numCowCowTransmissions"`
	NumCowBadgerTransmissions       float64 `json:"numCowBadgerTransmissions"`
	NumBadgerCowTransmissions       float64 `json:"numBadgerCowTransmissions"`
	NumReactors                     float64 `json:"numReactors"`
	NumBreakdowns                   float64 `json:"numBreakdowns"`
	NumDetectedAnimalsAtSlaughter   float64 `json:"numDetectedAnimalsAtSlaughter"`
	NumUndetectedAnimalsAtSlaughter float64 `json:"numUndetectedAnimalsAtSlaughter"`
	NumInfectedAnimalsMoved         float64 `json:"numInfectedAnimalsMoved"`
	LogLikelihood                   jsonutil.InfFloat64 `json:"loglikelihood"`
	ReactorsAtBreakdownDistribution string  `json:"reactorsAtBreakdownDistribution"`
	SnpDistanceDistribution         string  `json:"snpDistanceDistribution"`
}

func addDistribution(dist map[int]*stats.Samples, s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		parts := strings.SplitN(tok, ":", 2)
		if len(parts) != 2 {
			continue
		}
		bin, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		value, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if dist[bin] == nil {
			dist[bin] = &stats.Samples{}
		}
		dist[bin].Add(value)
	}
}

// ReadResults reads scenario_<id>.results for id in [0, numScenarios) out of
// resultsDir, using resultsFile as a Printf-style pattern (e.g.
// "scenario_%d.results"), and accumulates every metric (§4.7 step 1). A
// file whose loglikelihood is -Infinity contributes to no metric. A
// missing file is "no contribution" per §7, not an error — the controller
// must be able to advance even if one scenario process never wrote its file.
func ReadResults(resultsDir, resultsFilePattern string, numScenarios int) (*AggregatedResults, error) {
	agg := newAggregatedResults()
	for id := 0; id < numScenarios; id++ {
		name := fmt.Sprintf(resultsFilePattern, id)
		path := filepath.Join(resultsDir, name)
		b, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading scenario result %s: %w", path, err)
		}
		var r scenarioResultJSON
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("parsing scenario result %s: %w", path, err)
		}
		if math.IsInf(r.LogLikelihood.Float64(), -1) {
			continue
		}
		agg.NumCowCowTransmissions.Add(r.NumCowCowTransmissions)
		agg.NumCowBadgerTransmissions.Add(r.NumCowBadgerTransmissions)
		agg.NumBadgerCowTransmissions.Add(r.NumBadgerCowTransmissions)
		agg.NumReactors.Add(r.NumReactors)
		agg.NumBreakdowns.Add(r.NumBreakdowns)
		agg.NumDetectedAnimalsAtSlaughter.Add(r.NumDetectedAnimalsAtSlaughter)
		agg.NumUndetectedAnimalsAtSlaughter.Add(r.NumUndetectedAnimalsAtSlaughter)
		agg.NumInfectedAnimalsMoved.Add(r.NumInfectedAnimalsMoved)
		agg.LogLikelihood.Add(r.LogLikelihood.Float64())
		addDistribution(agg.ReactorsAtBreakdownDistribution, r.ReactorsAtBreakdownDistribution)
		addDistribution(agg.SnpDistanceDistribution, r.SnpDistanceDistribution)
	}
	return agg, nil
}
