package scenario

import "github.com/anthonyohare/NIBtbClusterModel/internal/model"

// ThetaEvent is a deterministic, date-pinned event registered ahead of the
// step that will fire it — here, only whole-herd tests (§4.4 "Theta
// registration").
type ThetaEvent struct {
	Date   int
	FarmID string
}

// RegisterThetaEvents returns a whole-herd test event for every farm whose
// NextWHTDate falls in [currentTime, currentTime+stepSize).
func (c *Context) RegisterThetaEvents(currentTime int) []ThetaEvent {
	var events []ThetaEvent
	for _, farmID := range sortedKeys(c.Farms) {
		farm := c.Farms[farmID]
		if farm.NextWHTDate >= currentTime && farm.NextWHTDate < currentTime+c.Config.StepSize {
			events = append(events, ThetaEvent{Date: farm.NextWHTDate, FarmID: farm.ID})
		}
	}
	return events
}

// testResult is the outcome of testing one cow under the shared WHT rule.
type testResult struct {
	cowID    string
	positive bool
}

// testCow applies the shared detection rule (§4.4, §4.3): a cow is detected
// iff its status is detectable and a uniform draw falls under testSensitivity.
// On a positive, its SNPs are regenerated to date (a single call, per §9) and
// dateSampleTaken is stamped.
func (c *Context) testCow(cow *model.InfectedCow, date int) bool {
	u := c.RNG.Float64()
	positive := cow.InfectionStatus.Detectable() && u < c.Parameters.TestSensitivity
	if positive {
		cow.Snps, cow.LastSnpGeneration = c.RegenerateSNPs(cow.Snps, cow.LastSnpGeneration, date)
		cow.DateSampleTaken = date
	}
	return positive
}

// PerformWHT runs a whole-herd test on farm at date (§4.4). Reactors are
// removed from the farm's infected set (but remain in the infection tree);
// the farm's restriction bookkeeping is updated via SetLastPositiveTestDate
// or AddClearTest.
func (c *Context) PerformWHT(farm *model.Farm, date int) {
	var reactors []string
	for _, id := range sortedKeys(farm.InfectedCows) {
		if c.testCow(farm.InfectedCows[id], date) {
			reactors = append(reactors, id)
		}
	}
	for _, id := range reactors {
		farm.RemoveInfectedCow(id)
	}
	if len(reactors) > 0 {
		c.Results.RecordReactors(len(reactors))
		farm.SetLastPositiveTestDate(date)
	} else {
		farm.AddClearTest(date, c.Config.TestIntervalInYears)
	}
}

// Step advances the observer by one tau-leap interval ending at currentTime:
// theta events fire, then movements (which trigger slaughter moves), then
// the caller rebuilds the kernel (§4.1 step 1, §4.4).
func (c *Context) Step(currentTime int) {
	c.currentDate = currentTime
	for _, te := range c.RegisterThetaEvents(currentTime) {
		farm, err := c.Farm(te.FarmID)
		if err != nil {
			c.Log.Warnf("theta event for unknown farm %s skipped", te.FarmID)
			continue
		}
		c.PerformWHT(farm, te.Date)
	}
	c.DoMovements(currentTime)
}
