package scenario

import (
	"github.com/anthonyohare/NIBtbClusterModel/internal/model"
	"github.com/anthonyohare/NIBtbClusterModel/internal/rng"
)

// KernelEntry pairs a candidate event with its instantaneous rate.
type KernelEntry struct {
	Event Event
	Rate  float64
}

// Kernel is the rebuilt-every-step mapping from candidate event to rate
// (§4.1 step 2, §4.2). Event order is the order entries were added; it is
// deterministic given a Context but otherwise unspecified, exactly as §4.1
// allows.
type Kernel struct {
	entries []KernelEntry
}

func NewKernel() *Kernel { return &Kernel{} }

func (k *Kernel) add(e Event, rate float64) {
	if rate <= 0 {
		return
	}
	k.entries = append(k.entries, KernelEntry{Event: e, Rate: rate})
}

func (k *Kernel) Entries() []KernelEntry { return k.entries }

func (k *Kernel) Empty() bool { return len(k.entries) == 0 }

// BuildKernel rebuilds the transition kernel from scratch against the
// current farm/sett state (§4.2). Called once per simulation step.
func (c *Context) BuildKernel() *Kernel {
	k := NewKernel()
	for _, farmID := range sortedKeys(c.Farms) {
		farm := c.Farms[farmID]
		if len(farm.InfectedCows) == 0 {
			continue
		}
		susceptibleHeadroom := float64(farm.HerdSize - len(farm.InfectedCows))
		if susceptibleHeadroom < 0 {
			susceptibleHeadroom = 0
		}
		for _, cowID := range sortedKeys(farm.InfectedCows) {
			cow := farm.InfectedCows[cowID]
			switch cow.InfectionStatus {
			case model.Exposed:
				k.add(Event{Kind: EventCowProgress, FarmID: farm.ID, SourceCowID: cowID, NextStatus: model.TestSensitive}, c.Parameters.Sigma)
			case model.TestSensitive:
				k.add(Event{Kind: EventCowProgress, FarmID: farm.ID, SourceCowID: cowID, NextStatus: model.Infectious}, c.Parameters.Gamma)
			case model.Infectious:
				k.add(Event{Kind: EventCowInfectsCow, FarmID: farm.ID, SourceCowID: cowID}, c.Parameters.Beta*susceptibleHeadroom)
				if c.Config.ReservoirsIncluded {
					for _, settID := range farm.ConnectedSetts {
						k.add(Event{Kind: EventCowInfectsBadger, FarmID: farm.ID, SourceCowID: cowID, SettID: settID}, c.Parameters.AlphaPrime)
					}
				}
			}
		}
		if c.Config.ReservoirsIncluded {
			for _, settID := range farm.ConnectedSetts {
				sett, err := c.Sett(settID)
				if err != nil {
					continue
				}
				for _, badgerID := range sortedKeys(sett.InfectedBadgers) {
					k.add(Event{Kind: EventBadgerInfectsCow, FarmID: farm.ID, SourceBadgerID: badgerID, SettID: settID}, c.Parameters.Alpha*susceptibleHeadroom)
				}
			}
		}
	}

	if c.Config.BadgersModelledExplicitly {
		c.addBadgerDecayEvents(k)
	}

	return k
}

// addBadgerDecayEvents adds one self-decay event per infected badger,
// targeting a uniformly chosen connected farm. The weight is
// ExponentialCDF(daysInfected, 1/lifetime) used directly as a kernel rate —
// dimensionally a probability, not a rate, and preserved only because §9
// calls this out explicitly as likely-a-bug-but-reproduce.
func (c *Context) addBadgerDecayEvents(k *Kernel) {
	for _, settID := range sortedKeys(c.Setts) {
		sett := c.Setts[settID]
		if len(sett.ConnectedFarms) == 0 {
			continue
		}
		for _, badgerID := range sortedKeys(sett.InfectedBadgers) {
			badger := sett.InfectedBadgers[badgerID]
			targetFarm := sett.ConnectedFarms[c.RNG.SelectIndex(len(sett.ConnectedFarms))]
			weight := rng.ExponentialCDF(float64(badger.DaysInfected(c.currentDate)), 1/c.Config.InfectedBadgerLifetime)
			k.add(Event{Kind: EventBadgerDecay, FarmID: targetFarm, SourceBadgerID: badgerID, SettID: sett.ID}, weight)
		}
	}
}
