package scenario

import (
	"fmt"

	"github.com/anthonyohare/NIBtbClusterModel/internal/config"
	"github.com/anthonyohare/NIBtbClusterModel/internal/model"
)

// ApplyEvent realises one occurrence of event at the current simulation
// date (§4.3, "amount manager"). If the event's source cow or badger is no
// longer present — e.g. removed by a test earlier in the same step — the
// event is silently discarded, as the spec requires.
func (c *Context) ApplyEvent(event Event) error {
	switch event.Kind {
	case EventCowProgress:
		return c.applyCowProgress(event)
	case EventCowInfectsCow:
		return c.applyCowInfectsCow(event)
	case EventCowInfectsBadger:
		return c.applyCowInfectsBadger(event)
	case EventBadgerInfectsCow:
		return c.applyBadgerInfectsCow(event)
	case EventBadgerDecay:
		return c.applyBadgerDecay(event)
	default:
		return fmt.Errorf("applying event: unrecognised event kind %d", event.Kind)
	}
}

func (c *Context) applyCowProgress(event Event) error {
	farm, err := c.Farm(event.FarmID)
	if err != nil {
		return err
	}
	cow, ok := farm.InfectedCows[event.SourceCowID]
	if !ok {
		c.Log.Tracef("cow progress: source %s no longer on farm %s, skipping", event.SourceCowID, event.FarmID)
		return nil
	}
	cow.Snps, cow.LastSnpGeneration = c.RegenerateSNPs(cow.Snps, cow.LastSnpGeneration, c.currentDate)
	cow.InfectionStatus = event.NextStatus
	return nil
}

func (c *Context) applyCowInfectsCow(event Event) error {
	farm, err := c.Farm(event.FarmID)
	if err != nil {
		return err
	}
	source, ok := farm.InfectedCows[event.SourceCowID]
	if !ok {
		c.Log.Tracef("cow->cow: source %s no longer on farm %s, skipping", event.SourceCowID, event.FarmID)
		return nil
	}
	source.Snps, source.LastSnpGeneration = c.RegenerateSNPs(source.Snps, source.LastSnpGeneration, c.currentDate)

	newCow := model.NewInfectedCow(c.nextCowID(), model.Exposed, source.Snps.Clone(), c.currentDate)
	c.addCow(farm, newCow)
	if err := c.Tree.Insert(model.CowNode(source.ID), model.CowNode(newCow.ID)); err != nil {
		return err
	}
	c.Results.NumCowCowTransmissions++
	return nil
}

func (c *Context) applyCowInfectsBadger(event Event) error {
	farm, err := c.Farm(event.FarmID)
	if err != nil {
		return err
	}
	source, ok := farm.InfectedCows[event.SourceCowID]
	if !ok {
		c.Log.Tracef("cow->badger: source %s no longer on farm %s, skipping", event.SourceCowID, event.FarmID)
		return nil
	}
	sett, err := c.Sett(event.SettID)
	if err != nil {
		return err
	}
	source.Snps, source.LastSnpGeneration = c.RegenerateSNPs(source.Snps, source.LastSnpGeneration, c.currentDate)

	newBadger := model.NewInfectedBadger(c.nextBadgerID(), c.currentDate, source.Snps.Clone())
	c.addBadger(sett, newBadger)
	if err := c.Tree.Insert(model.CowNode(source.ID), model.BadgerNode(newBadger.ID)); err != nil {
		return err
	}
	c.Results.NumCowBadgerTransmissions++
	return nil
}

// badgerContributedSNPs computes the SNP set a badger-to-cow transmission
// passes on, per the configured diversity model (§4.3):
//
//   - MAXIMUM: union of every badger's SNPs across every sett connected to
//     the farm, each regenerated to the current date first.
//   - MINIMUM: the source badger's SNPs verbatim, no regeneration.
//   - INTERMEDIATE: the source badger's SNPs, regenerated to the current date.
func (c *Context) badgerContributedSNPs(farm *model.Farm, sourceSettID, sourceBadgerID string) (model.SNPSet, error) {
	switch c.Config.DiversityModel {
	case config.DiversityMinimum:
		sett, err := c.Sett(sourceSettID)
		if err != nil {
			return nil, err
		}
		badger, ok := sett.InfectedBadgers[sourceBadgerID]
		if !ok {
			return model.NewSNPSet(), nil
		}
		return badger.Snps.Clone(), nil
	case config.DiversityIntermediate:
		sett, err := c.Sett(sourceSettID)
		if err != nil {
			return nil, err
		}
		badger, ok := sett.InfectedBadgers[sourceBadgerID]
		if !ok {
			return model.NewSNPSet(), nil
		}
		badger.Snps, badger.LastSnpGeneration = c.RegenerateSNPs(badger.Snps, badger.LastSnpGeneration, c.currentDate)
		return badger.Snps.Clone(), nil
	case config.DiversityMaximum:
		union := model.NewSNPSet()
		for _, settID := range farm.ConnectedSetts {
			sett, err := c.Sett(settID)
			if err != nil {
				continue
			}
			for _, badgerID := range sortedKeys(sett.InfectedBadgers) {
				badger := sett.InfectedBadgers[badgerID]
				badger.Snps, badger.LastSnpGeneration = c.RegenerateSNPs(badger.Snps, badger.LastSnpGeneration, c.currentDate)
				union = union.Union(badger.Snps)
			}
		}
		return union, nil
	default:
		return nil, fmt.Errorf("badger SNP contribution: unknown diversity model")
	}
}

func (c *Context) applyBadgerInfectsCow(event Event) error {
	farm, err := c.Farm(event.FarmID)
	if err != nil {
		return err
	}
	sett, err := c.Sett(event.SettID)
	if err != nil {
		return err
	}
	if _, ok := sett.InfectedBadgers[event.SourceBadgerID]; !ok {
		c.Log.Tracef("badger->cow: source %s no longer in sett %s, skipping", event.SourceBadgerID, event.SettID)
		return nil
	}
	snps, err := c.badgerContributedSNPs(farm, event.SettID, event.SourceBadgerID)
	if err != nil {
		return err
	}
	newCow := model.NewInfectedCow(c.nextCowID(), model.Exposed, snps, c.currentDate)
	c.addCow(farm, newCow)
	if err := c.Tree.Insert(model.BadgerNode(event.SourceBadgerID), model.CowNode(newCow.ID)); err != nil {
		return err
	}
	c.Results.NumBadgerCowTransmissions++
	return nil
}

func (c *Context) applyBadgerDecay(event Event) error {
	sett, err := c.Sett(event.SettID)
	if err != nil {
		return err
	}
	if _, ok := sett.InfectedBadgers[event.SourceBadgerID]; !ok {
		return nil
	}
	sett.RemoveBadger(event.SourceBadgerID)
	return nil
}
