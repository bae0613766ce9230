package scenario

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/anthonyohare/NIBtbClusterModel/internal/errs"
	"github.com/anthonyohare/NIBtbClusterModel/internal/model"
)

// InitialInfectionState is one parsed entry from the initialInfectionStates
// config value: "cowId:farmId:p0,p1,p2,p3" (§4.5). The probability vector is
// indexed by model.InfectionState (Susceptible..Infectious).
type InitialInfectionState struct {
	CowID string
	FarmID string
	Probs [4]float64
}

// ParseInitialInfectionStates splits the ";"-separated triples.
func ParseInitialInfectionStates(s string) ([]InitialInfectionState, error) {
	var out []InitialInfectionState
	for _, tok := range strings.Split(s, ";") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		parts := strings.Split(tok, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: initialInfectionStates entry %q must be cowId:farmId:p0,p1,p2,p3", errs.ErrConfig, tok)
		}
		probParts := strings.Split(parts[2], ",")
		if len(probParts) != 4 {
			return nil, fmt.Errorf("%w: initialInfectionStates entry %q needs 4 probabilities", errs.ErrConfig, tok)
		}
		var probs [4]float64
		for i, p := range probParts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: initialInfectionStates entry %q: %v", errs.ErrConfig, tok, err)
			}
			probs[i] = v
		}
		out = append(out, InitialInfectionState{CowID: parts[0], FarmID: parts[1], Probs: probs})
	}
	return out, nil
}

// drawInfectionState picks a state from the probability vector.
func (c *Context) drawInfectionState(probs [4]float64) model.InfectionState {
	r := c.RNG.Float64()
	cum := 0.0
	for i, p := range probs {
		cum += p
		if r < cum {
			return model.InfectionState(i)
		}
	}
	return model.InfectionState(len(probs) - 1)
}

// SeedInfectedAnimals instantiates the configured initial infections,
// repeating the whole pass until at least one infection has been added
// (§4.5). With a degenerate all-Susceptible probability configuration this
// never terminates — §8 boundary scenario 1 names this explicitly as
// existing, intentionally unguarded, behaviour to pin with a timeout in
// tests rather than "fix" here.
func (c *Context) SeedInfectedAnimals(states []InitialInfectionState) error {
	for {
		infectionsAdded := 0
		for _, state := range states {
			status := c.drawInfectionState(state.Probs)
			if status == model.Susceptible {
				continue
			}
			farm, err := c.Farm(state.FarmID)
			if err != nil {
				return err
			}
			snps := c.GenerateSNPs(model.NoDate, c.Config.StartDate)
			cow := model.NewInfectedCow(state.CowID, status, snps, c.Config.StartDate)
			c.addCow(farm, cow)
			if err := c.Tree.Insert(model.Root, model.CowNode(cow.ID)); err != nil {
				return err
			}
			c.Results.RecordReactors(1)
			infectionsAdded++

			if c.Config.ReservoirsIncluded && len(farm.ConnectedSetts) > 0 {
				settID := farm.ConnectedSetts[c.RNG.SelectIndex(len(farm.ConnectedSetts))]
				sett, err := c.Sett(settID)
				if err != nil {
					return err
				}
				maxAge := int(math.Floor(c.Config.InfectedBadgerLifetime))
				dateInfected := c.Config.StartDate - c.RNG.Int(0, maxAge)
				badger := model.NewInfectedBadger(c.nextBadgerID(), dateInfected, nil)
				c.addBadger(sett, badger)
				if err := c.Tree.Insert(model.Root, model.BadgerNode(badger.ID)); err != nil {
					return err
				}
			}
		}
		if infectionsAdded > 0 {
			return nil
		}
	}
}

// MarkRestrictedHerds picks numInitialRestrictedHerds farms and gives every
// farm a plausible test history (§4.5).
func (c *Context) MarkRestrictedHerds(numInitialRestrictedHerds int) {
	ids := sortedKeys(c.Farms)
	restricted := make(map[string]bool, numInitialRestrictedHerds)
	for _, i := range c.RNG.SelectManyIndices(len(ids), numInitialRestrictedHerds) {
		restricted[ids[i]] = true
	}

	testIntervalInDays := 365 * c.Config.TestIntervalInYears
	for _, id := range ids {
		farm := c.Farms[id]
		if restricted[id] {
			previousTest := c.Config.StartDate - c.RNG.Int(0, 60)
			farm.Restricted = true
			if c.RNG.Float64() < 0.5 {
				farm.LastClearTestDate = model.NoDate
				farm.LastPositiveTestDate = previousTest
				farm.NextWHTDate = previousTest + 60
				farm.NumClearTests = 0
			} else {
				farm.SetLastPositiveTestDate(previousTest - 60)
				farm.AddClearTest(previousTest, c.Config.TestIntervalInYears)
				farm.NumClearTests = 1
			}
		} else {
			previousTest := c.Config.StartDate - c.RNG.Int(0, testIntervalInDays)
			farm.LastPositiveTestDate = model.NoDate
			farm.LastClearTestDate = previousTest
			farm.NumClearTests = -1
			farm.NextWHTDate = previousTest + testIntervalInDays
			farm.Restricted = false
		}
	}
}
