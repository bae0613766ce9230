package scenario

import (
	"math"
	"sort"

	"github.com/anthonyohare/NIBtbClusterModel/internal/jsonutil"
	"github.com/anthonyohare/NIBtbClusterModel/internal/model"
	"github.com/anthonyohare/NIBtbClusterModel/internal/stats"
)

// maxSamplingAttempts bounds the retry loop §4.6 allows for an empty
// sampled-cow pool.
const maxSamplingAttempts = 10

// sampleYear maps a sample date to a bucketing year. Scenario dates are
// plain integer day offsets (§3), so "year" here is date/365 — callers that
// need calendar years convert at the config boundary.
func sampleYear(date int) int {
	return date / 365
}

// sampleCows buckets sampled cows by year and draws
// floor(bucketSize*samplingRatesPerYear[year]) from each bucket uniformly
// without replacement, retrying up to maxSamplingAttempts times if the
// combined pool comes back empty (§4.6).
func (c *Context) sampleCows() []*model.InfectedCow {
	var candidates []*model.InfectedCow
	for _, node := range c.Tree.InfectedCows() {
		cow, ok := c.AllCows[node.ID]
		if !ok || !cow.Sampled() {
			continue
		}
		candidates = append(candidates, cow)
	}
	if len(candidates) == 0 {
		return nil
	}
	// The tree yields cows in map order; sort so the RNG selection below sees
	// the same bucket order on every run with the same seed.
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	buckets := make(map[int][]*model.InfectedCow)
	for _, cow := range candidates {
		y := sampleYear(cow.DateSampleTaken)
		buckets[y] = append(buckets[y], cow)
	}

	years := make([]int, 0, len(buckets))
	for y := range buckets {
		years = append(years, y)
	}
	sort.Ints(years)

	for attempt := 0; attempt < maxSamplingAttempts; attempt++ {
		var sampled []*model.InfectedCow
		for _, year := range years {
			bucket := buckets[year]
			rate := c.SamplingRatesByYear[year]
			n := int(math.Floor(float64(len(bucket)) * rate))
			if n <= 0 {
				continue
			}
			for _, i := range c.RNG.SelectManyIndices(len(bucket), n) {
				sampled = append(sampled, bucket[i])
			}
		}
		if len(sampled) > 0 {
			return sampled
		}
	}
	return nil
}

// snpDistanceHistogram tallies the symmetric SNP distance for every
// unordered pair of sampled cows (§4.6, §8 boundary scenario 3).
func snpDistanceHistogram(cows []*model.InfectedCow) *stats.IntegerHistogram {
	h := stats.NewIntegerHistogram()
	for i := 0; i < len(cows); i++ {
		for j := i + 1; j < len(cows); j++ {
			d := cows[i].Snps.SymmetricDistance(cows[j].Snps)
			h.AddOne(d)
		}
	}
	return h
}

// Score runs the full end-of-simulation scoring pipeline: sampling, pairwise
// SNP distance, and the multinomial log-likelihood against the observed
// distribution (§4.6). The computed likelihood and sample count are stored
// directly on c.Results.
func (c *Context) Score() {
	sampled := c.sampleCows()
	c.Results.NumSamplesTaken = len(sampled)
	hist := snpDistanceHistogram(sampled)
	c.Results.snpHist = hist
	c.Results.LogLikelihood = jsonutil.InfFloat64(c.calculateLikelihood(hist))
}

// calculateLikelihood implements §4.6's multinomial scoring exactly,
// including its two abort-to-(-Inf) conditions: more simulated bins than
// observed, or a simulated distribution that normalises to nothing.
func (c *Context) calculateLikelihood(simulated *stats.IntegerHistogram) float64 {
	observedBins := c.ObservedSNPDist.Bins()
	totalObserved := c.ObservedSNPDist.SumCounts()
	if totalObserved == 0 {
		return math.Inf(-1)
	}
	probs := make([]float64, len(observedBins))
	index := make(map[int]int, len(observedBins))
	for i, b := range observedBins {
		index[b] = i
		probs[i] = float64(c.ObservedSNPDist.GetFrequency(b)) / float64(totalObserved)
	}

	if len(simulated.Bins()) > len(observedBins) {
		return math.Inf(-1)
	}

	reindexed := stats.NewIntegerHistogram()
	for _, b := range simulated.Bins() {
		if i, ok := index[b]; ok {
			reindexed.SetFrequency(i, simulated.GetFrequency(b))
		}
	}
	if reindexed.SumCounts() == 0 {
		return math.Inf(-1)
	}
	if err := reindexed.NormaliseBins(totalObserved); err != nil {
		c.Log.Warnf("normaliseBins: %v", err)
		return math.Inf(-1)
	}

	counts := make([]int, len(observedBins))
	for i := range observedBins {
		counts[i] = reindexed.GetFrequency(i)
	}
	return stats.MultinomialLogLikelihood(counts, probs)
}
