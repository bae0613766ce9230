package scenario

import (
	"math"

	"github.com/anthonyohare/NIBtbClusterModel/internal/stats"
)

// DoSlaughterhouseMoves runs the slaughter phase (§4.4 "Slaughter phase").
// movesForPeriod is recomputed on every call (integer division), unlike the
// movement phase's cached movesPerPeriod — preserved deliberately, see §9.
func (c *Context) DoSlaughterhouseMoves(date int) {
	span := c.Config.EndDate - c.Config.StartDate
	if span <= 0 {
		return
	}
	movesForPeriod := c.Config.NumSlaughters * c.Config.StepSize / span
	if movesForPeriod <= 0 {
		return
	}

	windowStart := date - c.Config.StepSize
	var farmsMovingAnimals []string
	for _, farmID := range sortedKeys(c.SlaughterDatesByFarm) {
		dates := c.SlaughterDatesByFarm[farmID]
		for _, d := range dates {
			if d >= windowStart && d < date {
				farmsMovingAnimals = append(farmsMovingAnimals, farmID)
				break
			}
		}
	}
	if len(farmsMovingAnimals) == 0 {
		return
	}
	c.RNG.ShuffleStrings(farmsMovingAnimals)

	perFarmCap := int(math.Ceil(float64(movesForPeriod) / float64(len(farmsMovingAnimals))))
	totalMoved := 0
	for _, farmID := range farmsMovingAnimals {
		if totalMoved > movesForPeriod {
			break
		}
		farm, err := c.Farm(farmID)
		if err != nil {
			continue
		}
		numAnimalsToMove := c.RNG.Int(1, perFarmCap)
		numInfectedOnFarm := len(farm.InfectedCows)
		if farm.HerdSize < numAnimalsToMove {
			farm.HerdSize = numAnimalsToMove
		}
		numInfectedForRemoval := stats.Hypergeometric(c.RNG, farm.HerdSize, numAnimalsToMove, numInfectedOnFarm)
		if numInfectedForRemoval > 0 {
			for _, id := range selectInfectedCowIDs(farm, numInfectedForRemoval, c.RNG) {
				cow := farm.InfectedCows[id]
				if c.testCow(cow, date) {
					c.Results.NumDetectedAnimalsAtSlaughter++
					farm.SetLastPositiveTestDate(date)
					farm.RemoveInfectedCow(id)
				} else {
					c.Results.NumUndetectedAnimalsAtSlaughter++
				}
			}
		}
		totalMoved += numAnimalsToMove
	}
}
