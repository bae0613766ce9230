package scenario

import (
	"github.com/anthonyohare/NIBtbClusterModel/internal/config"
	"github.com/anthonyohare/NIBtbClusterModel/internal/logging"
)

// Load builds a fully seeded, ready-to-Run Context from a scenario config
// file and a parameters file: it parses both, reads every satellite data
// file the config names, creates the farm/sett arena, and seeds the initial
// infections and restriction history. Theta events are registered later, by
// Step on each iteration of Run. This is the one place all of package scenario's setup steps are
// wired together; cmd/scenario calls nothing else before Run (§6).
func Load(log *logging.Logger, seed int64, configPath, parametersPath string) (*Context, error) {
	cfg, err := config.LoadScenarioConfig(configPath)
	if err != nil {
		return nil, err
	}
	params, err := config.ReadParametersFile(parametersPath)
	if err != nil {
		return nil, err
	}

	c := NewContext(log, seed, cfg, params)

	if err := c.CreateFarms(cfg.FarmIDFile); err != nil {
		return nil, err
	}
	if err := c.CreateSetts(cfg.SettIDFile); err != nil {
		return nil, err
	}
	if err := c.ReadSlaughterhouseMoves(cfg.SlaughterhouseMovesFile); err != nil {
		return nil, err
	}
	if err := c.ReadObservedSNPDistribution(cfg.ObservedSnpDistributionFile); err != nil {
		return nil, err
	}
	if err := c.ReadSamplingRates(cfg.SamplingRateFile); err != nil {
		return nil, err
	}
	if err := c.ReadMovementFrequencies(cfg.MovementFrequenciesFile); err != nil {
		return nil, err
	}

	states, err := ParseInitialInfectionStates(cfg.InitialInfectionStates)
	if err != nil {
		return nil, err
	}
	// Seed infections before marking restricted herds, matching
	// NIBtbClusterScenario.init()'s call order exactly (seedInfectedAnimals()
	// then markRestrictedHerds()) — the two passes touch disjoint farm
	// fields, but preserving the original order avoids an unexplained
	// deviation from the reference implementation's initialisation sequence.
	if err := c.SeedInfectedAnimals(states); err != nil {
		return nil, err
	}
	c.MarkRestrictedHerds(cfg.NumInitialRestrictedHerds)

	log.Infof("scenario loaded: %d farms, %d setts, %d initial infections", len(c.Farms), len(c.Setts), c.TotalInfectedCows())
	return c, nil
}
