package model

import "fmt"

// InfectedBadger always behaves as status Infectious; it carries a
// DateInfected instead of a progression state (§3).
type InfectedBadger struct {
	ID                string
	Snps              SNPSet
	LastSnpGeneration int
	DateInfected      int
}

func NewInfectedBadger(id string, dateInfected int, snps SNPSet) *InfectedBadger {
	if snps == nil {
		snps = NewSNPSet()
	}
	return &InfectedBadger{
		ID:                id,
		Snps:              snps,
		LastSnpGeneration: dateInfected,
		DateInfected:      dateInfected,
	}
}

func (b *InfectedBadger) DaysInfected(currentDate int) int {
	d := currentDate - b.DateInfected
	if d < 0 {
		return 0
	}
	return d
}

func (b *InfectedBadger) DebugJSON() string {
	return fmt.Sprintf(`{"id":%q,"snps":%d,"dateInfected":%d,"lastSnpGeneration":%d}`,
		b.ID, len(b.Snps), b.DateInfected, b.LastSnpGeneration)
}
