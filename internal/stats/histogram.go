package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/anthonyohare/NIBtbClusterModel/internal/errs"
	"github.com/anthonyohare/NIBtbClusterModel/internal/rng"
)

// IntegerHistogram is a sparse frequency table over integer bins, the Go
// equivalent of the Java IntegerDistribution used for reactorsAtBreakdown and
// snpDistanceDistribution. It serialises to the same "bin:count,bin:count,..."
// text form the original persists in .results files.
type IntegerHistogram struct {
	counts map[int]int
}

func NewIntegerHistogram() *IntegerHistogram {
	return &IntegerHistogram{counts: make(map[int]int)}
}

// AddOne increments the frequency recorded at bin by one.
func (h *IntegerHistogram) AddOne(bin int) {
	h.counts[bin]++
}

// SetFrequency overwrites the frequency recorded at bin.
func (h *IntegerHistogram) SetFrequency(bin, count int) {
	h.counts[bin] = count
}

// GetFrequency returns the count recorded at bin, 0 if never set.
func (h *IntegerHistogram) GetFrequency(bin int) int {
	return h.counts[bin]
}

// Bins returns the set bins in ascending order.
func (h *IntegerHistogram) Bins() []int {
	bins := make([]int, 0, len(h.counts))
	for b := range h.counts {
		bins = append(bins, b)
	}
	sort.Ints(bins)
	return bins
}

// SumCounts is the total number of observations across all bins.
func (h *IntegerHistogram) SumCounts() int {
	total := 0
	for _, c := range h.counts {
		total += c
	}
	return total
}

// String renders "bin:count,bin:count,..." in ascending bin order, matching
// the original's IntegerDistribution serialisation.
func (h *IntegerHistogram) String() string {
	bins := h.Bins()
	parts := make([]string, 0, len(bins))
	for _, b := range bins {
		parts = append(parts, fmt.Sprintf("%d:%d", b, h.counts[b]))
	}
	return strings.Join(parts, ",")
}

// ParseIntegerHistogram parses the "bin:count,..." form back into a histogram.
func ParseIntegerHistogram(s string) (*IntegerHistogram, error) {
	h := NewIntegerHistogram()
	s = strings.TrimSpace(s)
	if s == "" {
		return h, nil
	}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		parts := strings.SplitN(tok, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("parsing histogram entry %q: expected bin:count", tok)
		}
		bin, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("parsing histogram bin %q: %w", parts[0], err)
		}
		count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("parsing histogram count %q: %w", parts[1], err)
		}
		h.counts[bin] = count
	}
	return h, nil
}

// SampleWeighted picks a bin with probability proportional to its recorded
// frequency, the draw the movement phase uses to pick a historical move size
// from a farm's off-movement histogram (§4.4 step 3). Returns 0 for an empty
// histogram.
func (h *IntegerHistogram) SampleWeighted(r *rng.RNG) int {
	total := h.SumCounts()
	if total == 0 {
		return 0
	}
	target := r.Int(0, total-1)
	acc := 0
	for _, b := range h.Bins() {
		acc += h.counts[b]
		if target < acc {
			return b
		}
	}
	return h.Bins()[len(h.Bins())-1]
}

// NormaliseBins rescales the histogram in place so its total equals target,
// preserving relative bin weights as closely as integer counts allow. This is
// the Go stand-in for the original's unspecified normaliseBins(expectedCount)
// external call: largest-remainder rounding guarantees the result sums to
// target exactly whenever target >= 0 and the histogram is non-empty, so the
// "Sum_x != N" invariant the original guards against can only be tripped by an
// empty histogram (sum 0, target > 0), which callers must check for first.
func (h *IntegerHistogram) NormaliseBins(target int) error {
	total := h.SumCounts()
	if total == 0 {
		if target == 0 {
			return nil
		}
		return fmt.Errorf("%w: cannot normalise an empty histogram to %d", errs.ErrData, target)
	}
	bins := h.Bins()
	scale := float64(target) / float64(total)

	type remainder struct {
		bin  int
		frac float64
	}
	scaled := make(map[int]int, len(bins))
	remainders := make([]remainder, 0, len(bins))
	assigned := 0
	for _, b := range bins {
		exact := float64(h.counts[b]) * scale
		floor := int(exact)
		scaled[b] = floor
		assigned += floor
		remainders = append(remainders, remainder{bin: b, frac: exact - float64(floor)})
	}
	sort.Slice(remainders, func(i, j int) bool { return remainders[i].frac > remainders[j].frac })
	remaining := target - assigned
	for i := 0; i < remaining && i < len(remainders); i++ {
		scaled[remainders[i].bin]++
	}
	h.counts = scaled
	if h.SumCounts() != target {
		return fmt.Errorf("%w: Sum_x != N after normalisation (%d != %d)", errs.ErrInvariant, h.SumCounts(), target)
	}
	return nil
}
