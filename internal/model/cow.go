package model

import "fmt"

// InfectedCow is a cow currently (or formerly, once sampled/removed) carrying
// infection. Only infected cows are ever represented — a susceptible cow is
// simply not modelled (§3 invariant: any cow referenced from a farm's
// infected set has status != SUSCEPTIBLE).
type InfectedCow struct {
	ID                string
	Snps              SNPSet
	LastSnpGeneration int
	DateSampleTaken   int
	InfectionStatus   InfectionState
}

func NewInfectedCow(id string, status InfectionState, snps SNPSet, snpGenerationDate int) *InfectedCow {
	if snps == nil {
		snps = NewSNPSet()
	}
	return &InfectedCow{
		ID:                id,
		Snps:              snps,
		LastSnpGeneration: snpGenerationDate,
		DateSampleTaken:   NoDate,
		InfectionStatus:   status,
	}
}

func (c *InfectedCow) Sampled() bool { return c.DateSampleTaken != NoDate }

// DebugJSON is a small trace-only serialisation, the Go stand-in for the
// original's asJson() debug dumps (SPEC_FULL.md supplemented feature 1).
func (c *InfectedCow) DebugJSON() string {
	return fmt.Sprintf(`{"id":%q,"status":%q,"snps":%d,"lastSnpGeneration":%d,"dateSampleTaken":%d}`,
		c.ID, c.InfectionStatus, len(c.Snps), c.LastSnpGeneration, c.DateSampleTaken)
}
