package stats

import "github.com/anthonyohare/NIBtbClusterModel/internal/rng"

// Hypergeometric draws a sample from Hypergeometric(population, draws,
// successStates): the number of "marked" items found among draws items
// sampled without replacement from a population of that size containing
// successStates marked items. Neither gonum/stat/distuv nor any other
// library in the retrieval pack ships a hypergeometric distribution, so this
// is a hand-rolled sequential draw — at each of the draws picks, the
// remaining marked/unmarked counts determine the success probability, which
// is exactly what a physical marbles-from-an-urn draw does and so reproduces
// the distribution exactly without needing its closed-form PMF.
func Hypergeometric(r *rng.RNG, population, draws, successStates int) int {
	if population <= 0 || draws <= 0 || successStates <= 0 {
		return 0
	}
	if draws > population {
		draws = population
	}
	if successStates > population {
		successStates = population
	}
	remainingPopulation := population
	remainingSuccesses := successStates
	drawn := 0
	for i := 0; i < draws; i++ {
		if remainingPopulation <= 0 {
			break
		}
		if r.Float64() < float64(remainingSuccesses)/float64(remainingPopulation) {
			drawn++
			remainingSuccesses--
		}
		remainingPopulation--
	}
	return drawn
}
