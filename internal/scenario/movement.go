package scenario

import (
	"github.com/anthonyohare/NIBtbClusterModel/internal/model"
	"github.com/anthonyohare/NIBtbClusterModel/internal/rng"
	"github.com/anthonyohare/NIBtbClusterModel/internal/stats"
)

// maxMovementAttempts bounds the movement-phase retry loop so a
// misconfigured (empty, or all-restricted) movement-frequency list cannot
// spin forever; the reference implementation has no such bound and can
// livelock in the same degenerate case §8 boundary scenario 1 documents for
// seeding.
const maxMovementAttempts = 10000

func infectedCowIDs(farm *model.Farm) []string {
	return sortedKeys(farm.InfectedCows)
}

func selectInfectedCowIDs(farm *model.Farm, n int, r *rng.RNG) []string {
	ids := infectedCowIDs(farm)
	indices := r.SelectManyIndices(len(ids), n)
	out := make([]string, 0, len(indices))
	for _, i := range indices {
		out = append(out, ids[i])
	}
	return out
}

// DoMovements runs one movement phase (§4.4 "Movement phase"), then always
// runs the slaughter phase, matching the original's doMovements always
// calling doSlaughterhouseMoves at the end regardless of how many animals
// were moved.
func (c *Context) DoMovements(currentTime int) {
	if len(c.MovementFrequencies) > 0 {
		numMovedSoFar := 0
		attempts := 0
		for numMovedSoFar < c.movesPerPeriod && attempts < maxMovementAttempts {
			attempts++
			pair := c.MovementFrequencies[c.RNG.SelectIndex(len(c.MovementFrequencies))]
			departure, err := c.Farm(pair.Departure)
			if err != nil {
				continue
			}
			destination, err := c.Farm(pair.Destination)
			if err != nil {
				continue
			}
			if departure.Restricted || destination.Restricted {
				continue
			}
			numAnimalsToBeMoved := departure.OffMovementHistogram.SampleWeighted(c.RNG)
			if numAnimalsToBeMoved <= 0 {
				continue
			}
			infectedOnFarm := len(departure.InfectedCows)
			if departure.HerdSize < numAnimalsToBeMoved {
				departure.HerdSize = numAnimalsToBeMoved
			}
			if departure.HerdSize < infectedOnFarm {
				departure.HerdSize = infectedOnFarm
			}
			numInfectedToMove := stats.Hypergeometric(c.RNG, departure.HerdSize, numAnimalsToBeMoved, infectedOnFarm)
			if numInfectedToMove > 0 {
				selected := selectInfectedCowIDs(departure, numInfectedToMove, c.RNG)
				anyPositive := false
				for _, id := range selected {
					if c.testCow(departure.InfectedCows[id], currentTime) {
						anyPositive = true
					}
				}
				if anyPositive {
					for _, id := range selected {
						if departure.InfectedCows[id].Sampled() {
							departure.RemoveInfectedCow(id)
						}
					}
					departure.SetLastPositiveTestDate(currentTime)
					numAnimalsToBeMoved = 0
				} else {
					for _, id := range selected {
						cow := departure.InfectedCows[id]
						departure.RemoveInfectedCow(id)
						destination.AddInfectedCow(cow)
					}
					if destination.HerdSize < len(destination.InfectedCows) {
						destination.HerdSize = len(destination.InfectedCows)
					}
					c.Results.NumInfectedAnimalsMoved += numInfectedToMove
				}
			}
			numMovedSoFar += numAnimalsToBeMoved
		}
	}
	c.DoSlaughterhouseMoves(currentTime)
}
