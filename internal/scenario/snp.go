package scenario

import "github.com/anthonyohare/NIBtbClusterModel/internal/model"

// GenerateSNPs draws the SNPs a lineage accumulates between lastSnpGeneration
// and day and issues them from the process-wide counter (§4.3 "SNP
// generation"):
//
//   - day < lastSnpGeneration (the initial-seeding marker, day == -1):
//     draw max(1, Poisson(1)) SNPs.
//   - day == lastSnpGeneration: zero SNPs — the idempotence law §8 pins.
//   - otherwise: draw Poisson(mutationRate * (day - lastSnpGeneration)).
func (c *Context) GenerateSNPs(day, lastSnpGeneration int) model.SNPSet {
	var count int
	switch {
	case day < lastSnpGeneration:
		count = c.RNG.Poisson(1)
		if count < 1 {
			count = 1
		}
	case day == lastSnpGeneration:
		count = 0
	default:
		count = c.RNG.Poisson(c.Parameters.MutationRate * float64(day-lastSnpGeneration))
	}
	snps := model.NewSNPSet()
	for i := 0; i < count; i++ {
		c.snpCounter++
		snps.Add(c.snpCounter)
	}
	return snps
}

// RegenerateSNPs advances cow or badger lineage SNPs to currentDate in
// place, via a single GenerateSNPs call — the reference implementation calls
// generateSnps twice on detection and keeps only the second result; §9 flags
// this as a bug not to be reproduced, so every call site here regenerates
// exactly once.
func (c *Context) RegenerateSNPs(snps model.SNPSet, lastSnpGeneration, currentDate int) (model.SNPSet, int) {
	fresh := c.GenerateSNPs(currentDate, lastSnpGeneration)
	return snps.Union(fresh), currentDate
}
