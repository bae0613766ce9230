package config

import (
	"fmt"

	"github.com/anthonyohare/NIBtbClusterModel/internal/errs"
)

// DiversityModel selects how a badger-to-cow transmission event's SNP set is
// computed (§4.3).
type DiversityModel int

const (
	DiversityMaximum DiversityModel = iota
	DiversityMinimum
	DiversityIntermediate
)

func ParseDiversityModel(s string) (DiversityModel, error) {
	switch s {
	case "MAXIMUM":
		return DiversityMaximum, nil
	case "MINIMUM":
		return DiversityMinimum, nil
	case "INTERMEDIATE":
		return DiversityIntermediate, nil
	default:
		return 0, fmt.Errorf("%w: unknown diversityModel %q", errs.ErrDomain, s)
	}
}

// ScenarioConfig is the scenario-side configuration file (spec.md §6),
// excluding the rate parameters which live in the separate parameters file.
type ScenarioConfig struct {
	FarmIDFile                  string
	SettIDFile                  string
	InitialInfectionStates      string
	DiversityModel               DiversityModel
	SlaughterhouseMovesFile      string
	ObservedSnpDistributionFile  string
	MovementFrequenciesFile      string
	SamplingRateFile             string
	TestIntervalInYears          int
	NumInitialRestrictedHerds    int
	MaxOutbreakSize              int
	StepSize                     int
	NumMovements                 int
	NumSlaughters                int
	StartDate                    int
	EndDate                      int
	ReservoirsIncluded           bool
	DateFormat                   string
	BadgersModelledExplicitly    bool
	InfectedBadgerLifetime       float64
	Overrides                    map[string]interface{}
}

// LoadScenarioConfig parses path into a ScenarioConfig. The presence of the
// "badgerLifetime" key (any value) is what flips BadgersModelledExplicitly —
// the numeric value itself is read from the differently-named
// "infectedBadgerLifetime" key, an inconsistency inherited verbatim from the
// reference implementation (see DESIGN.md).
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	kv, overrides, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	c := &ScenarioConfig{Overrides: overrides}

	c.FarmIDFile, err = kv.String("farmIds")
	if err != nil {
		return nil, err
	}
	c.SettIDFile, err = kv.String("settIds")
	if err != nil {
		return nil, err
	}
	c.InitialInfectionStates, err = kv.String("initialInfectionStates")
	if err != nil {
		return nil, err
	}
	dm, err := kv.String("diversityModel")
	if err != nil {
		return nil, err
	}
	c.DiversityModel, err = ParseDiversityModel(dm)
	if err != nil {
		return nil, err
	}
	c.SlaughterhouseMovesFile, err = kv.String("slaughterhouseMovesFile")
	if err != nil {
		return nil, err
	}
	c.ObservedSnpDistributionFile, err = kv.String("observedSnpPairwiseDistanceFile")
	if err != nil {
		return nil, err
	}
	c.MovementFrequenciesFile, err = kv.String("movementFrequenciesFile")
	if err != nil {
		return nil, err
	}
	c.SamplingRateFile, err = kv.String("samplingRateFile")
	if err != nil {
		return nil, err
	}
	c.TestIntervalInYears, err = kv.Int("testIntervalInYears")
	if err != nil {
		return nil, err
	}
	c.NumInitialRestrictedHerds, err = kv.Int("numInitialRestrictedHerds")
	if err != nil {
		return nil, err
	}
	c.MaxOutbreakSize, err = kv.Int("maxOutbreakSize")
	if err != nil {
		return nil, err
	}
	c.StepSize, err = kv.Int("stepSize")
	if err != nil {
		return nil, err
	}
	c.NumMovements, err = kv.Int("numMovements")
	if err != nil {
		return nil, err
	}
	c.NumSlaughters, err = kv.Int("numSlaughters")
	if err != nil {
		return nil, err
	}
	c.StartDate, err = kv.Int("startDate")
	if err != nil {
		return nil, err
	}
	c.EndDate, err = kv.Int("endDate")
	if err != nil {
		return nil, err
	}
	c.ReservoirsIncluded, err = kv.Bool("reservoirsIncluded")
	if err != nil {
		return nil, err
	}
	c.DateFormat = kv.StringOr("dateFormat", "2006-01-02")

	if kv.Has("badgerLifetime") {
		c.BadgersModelledExplicitly = true
		c.InfectedBadgerLifetime, err = kv.Float("infectedBadgerLifetime")
		if err != nil {
			return nil, fmt.Errorf("%w: badgerLifetime present but infectedBadgerLifetime missing", errs.ErrConfig)
		}
	}
	return c, nil
}
