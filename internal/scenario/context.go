// Package scenario implements the scenario engine: the tau-leap simulator,
// transition kernel, amount manager, observer (tests/movements/slaughter),
// seeding, and scoring described in spec.md §4. internal/model supplies the
// data; this package supplies the behaviour.
package scenario

import (
	"fmt"

	"github.com/anthonyohare/NIBtbClusterModel/internal/config"
	"github.com/anthonyohare/NIBtbClusterModel/internal/errs"
	"github.com/anthonyohare/NIBtbClusterModel/internal/logging"
	"github.com/anthonyohare/NIBtbClusterModel/internal/model"
	"github.com/anthonyohare/NIBtbClusterModel/internal/rng"
	"github.com/anthonyohare/NIBtbClusterModel/internal/stats"
)

// MovementPair is a configured (departure, destination) farm pair eligible
// for the movement phase (§4.4).
type MovementPair struct {
	Departure   string
	Destination string
}

// Context is the scenario-process-local state the simulator mutates at each
// step: the farm/sett arenas, the infection tree, the id/SNP counters and
// the RNG stream. Per §9, these counters are fields here, never globals —
// nothing about a Context is shared across scenario processes.
type Context struct {
	Log *logging.Logger
	RNG *rng.RNG

	Config     *config.ScenarioConfig
	Parameters *config.Parameters

	Farms map[string]*model.Farm
	Setts map[string]*model.Sett
	Tree  *model.InfectionTree

	// AllCows and AllBadgers archive every animal ever created, including
	// ones later removed from a farm's or sett's active set (via test
	// detection or decay). The infection tree only stores ids, so scoring
	// (§4.6) needs this registry to look a sampled cow's data back up after
	// it has been pulled off its farm.
	AllCows    map[string]*model.InfectedCow
	AllBadgers map[string]*model.InfectedBadger

	MovementFrequencies []MovementPair
	SamplingRatesByYear map[int]float64
	ObservedSNPDist     *stats.IntegerHistogram
	SlaughterDatesByFarm map[string][]int

	snpCounter    int
	cowCounter    int
	badgerCounter int

	currentDate int

	// movesPerPeriod is numMovements*stepSize/(endDate-startDate), computed
	// once here (not recomputed per step) — the reference implementation
	// computes this once in its constructor despite the "ForPeriod" name
	// suggesting it should track the current period; preserved verbatim
	// (see DESIGN.md). The slaughter-phase equivalent is recomputed every
	// call, deliberately the opposite (§9, §4.4).
	movesPerPeriod int

	Results *Results
}

// CurrentDate returns the simulation clock as of the most recent step.
func (c *Context) CurrentDate() int { return c.currentDate }

// NewContext wires a fresh scenario context from parsed configuration. It
// does not yet load satellite data files or seed infections — see Load and
// the seed.go helpers, called from cmd/scenario's main.
func NewContext(log *logging.Logger, seed int64, cfg *config.ScenarioConfig, params *config.Parameters) *Context {
	c := &Context{
		Log:                  log,
		RNG:                  rng.New(seed),
		Config:               cfg,
		Parameters:           params,
		Farms:                make(map[string]*model.Farm),
		Setts:                make(map[string]*model.Sett),
		Tree:                 model.NewInfectionTree(),
		AllCows:              make(map[string]*model.InfectedCow),
		AllBadgers:           make(map[string]*model.InfectedBadger),
		SamplingRatesByYear:  make(map[int]float64),
		SlaughterDatesByFarm: make(map[string][]int),
		ObservedSNPDist:      stats.NewIntegerHistogram(),
		Results:              NewResults(),
	}
	if span := cfg.EndDate - cfg.StartDate; span > 0 {
		c.movesPerPeriod = cfg.NumMovements * cfg.StepSize / span
	}
	return c
}

// addCow registers cow with a farm and the all-time archive in one step.
func (c *Context) addCow(farm *model.Farm, cow *model.InfectedCow) {
	farm.AddInfectedCow(cow)
	c.AllCows[cow.ID] = cow
}

// addBadger registers badger with a sett and the all-time archive.
func (c *Context) addBadger(sett *model.Sett, badger *model.InfectedBadger) {
	sett.AddBadger(badger)
	c.AllBadgers[badger.ID] = badger
}

func (c *Context) nextCowID() string {
	c.cowCounter++
	return fmt.Sprintf("Cow_%05d", c.cowCounter)
}

func (c *Context) nextBadgerID() string {
	c.badgerCounter++
	return fmt.Sprintf("Badger_%05d", c.badgerCounter)
}

// TotalInfectedCows is the global count used against maxOutbreakSize (§4.1).
func (c *Context) TotalInfectedCows() int {
	total := 0
	for _, f := range c.Farms {
		total += len(f.InfectedCows)
	}
	return total
}

// Farm looks up a farm by id, returning ErrData if it is unknown — the Go
// analogue of the "data" error kind named in §7 (a movement or sett record
// referencing a farm that does not exist).
func (c *Context) Farm(id string) (*model.Farm, error) {
	f, ok := c.Farms[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown farm id %q", errs.ErrData, id)
	}
	return f, nil
}

func (c *Context) Sett(id string) (*model.Sett, error) {
	s, ok := c.Setts[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sett id %q", errs.ErrData, id)
	}
	return s, nil
}
