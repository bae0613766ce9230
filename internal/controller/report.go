package controller

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/anthonyohare/NIBtbClusterModel/internal/errs"
	"github.com/anthonyohare/NIBtbClusterModel/internal/stats"
)

// formatExp6 renders v in six-significant-digit exponential notation
// ("1.23456E-2"), the Go equivalent of the Java DecimalFormat("0.######E0")
// used throughout NIBtbClusterController.saveResults (§4.7 step 6).
func formatExp6(v float64) string {
	if math.IsInf(v, -1) {
		return "-Infinity"
	}
	if math.IsInf(v, 1) {
		return "Infinity"
	}
	s := strconv.FormatFloat(v, 'E', 5, 64)
	// strconv produces "1.23456E-02"; DecimalFormat's pattern has no leading
	// zero in the exponent, so trim it to match the reference format exactly.
	parts := strings.SplitN(s, "E", 2)
	if len(parts) != 2 {
		return s
	}
	mantissa, exp := parts[0], parts[1]
	sign := "+"
	if strings.HasPrefix(exp, "+") || strings.HasPrefix(exp, "-") {
		sign = string(exp[0])
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	if sign == "-" {
		return mantissa + "E-" + exp
	}
	return mantissa + "E" + exp
}

// writeHeader writes the commented CSV header block describing every column
// index, accounting for the 7- vs 8-dimensional parameter vector
// (SPEC_FULL.md supplemented feature 4, grounded on
// NIBtbClusterController.createResults).
func writeHeader(path string, includeBadgers bool) error {
	var b strings.Builder
	b.WriteString("#Steps taken [1]\n")
	b.WriteString("#Current step accepted ? [2]\n")
	b.WriteString("#beta [3]\n")
	b.WriteString("#sigma [4]\n")
	b.WriteString("#gamma [5]\n")
	b.WriteString("#alpha [6]\n")
	b.WriteString("#alphaPrime [7]\n")
	b.WriteString("#test sensitivity [8]\n")
	b.WriteString("#mu [9]\n")
	i := 0
	if includeBadgers {
		i = 1
		b.WriteString("#infected badger lifespan [10]\n")
	}
	fmt.Fprintf(&b, "#Likelihood (mean, stddev) [%d-%d]\n", 10+i, 11+i)
	fmt.Fprintf(&b, "#Num cow-cow transmissions (mean, stddev) [%d-%d]\n", 12+i, 13+i)
	fmt.Fprintf(&b, "#Num cow-badger transmissions (mean, stddev) [%d-%d]\n", 14+i, 15+i)
	fmt.Fprintf(&b, "#Num badger-cow transmissions (mean, stddev) [%d-%d]\n", 16+i, 17+i)
	fmt.Fprintf(&b, "#Num reactors (mean, stddev) [%d-%d]\n", 18+i, 19+i)
	fmt.Fprintf(&b, "#Num breakdowns (mean, stddev) [%d-%d]\n", 20+i, 21+i)
	fmt.Fprintf(&b, "#Num infected animals moved (mean, stddev) [%d-%d]\n", 22+i, 23+i)
	fmt.Fprintf(&b, "#Num animals detected at slaughter (mean, stddev) [%d-%d]\n", 24+i, 25+i)
	fmt.Fprintf(&b, "#Num infections undetected at slaughter (mean, stddev) [%d-%d]\n", 26+i, 27+i)
	b.WriteString("\n")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("%w: writing header to %s: %v", errs.ErrIO, path, err)
	}
	return nil
}

// appendRow appends one evaluated step to the output CSV (§4.7 step 4): the
// parameter vector just evaluated, the accept flag, and every per-metric
// mean/stddev pair.
func appendRow(path string, numSteps int, accepted bool, theta []float64, results *AggregatedResults) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", errs.ErrIO, path, err)
	}
	defer f.Close()

	var row []string
	row = append(row, strconv.Itoa(numSteps))
	if accepted {
		row = append(row, "1")
	} else {
		row = append(row, "0")
	}
	for _, v := range theta {
		row = append(row, formatExp6(v))
	}
	if results.LogLikelihood.Size() == 0 {
		row = append(row, "-Infinity", "-Infinity")
	} else {
		row = append(row, formatExp6(results.LogLikelihood.Mean()), formatExp6(results.LogLikelihood.StdDev()))
	}
	pairs := []stats.Samples{
		results.NumCowCowTransmissions, results.NumCowBadgerTransmissions, results.NumBadgerCowTransmissions,
		results.NumReactors, results.NumBreakdowns, results.NumInfectedAnimalsMoved,
		results.NumDetectedAnimalsAtSlaughter, results.NumUndetectedAnimalsAtSlaughter,
	}
	for _, s := range pairs {
		row = append(row, formatExp6(s.Mean()), formatExp6(s.StdDev()))
	}
	if _, err := fmt.Fprintln(f, strings.Join(row, ",")); err != nil {
		return fmt.Errorf("%w: appending row to %s: %v", errs.ErrIO, path, err)
	}
	return nil
}

// writeDistributionReport writes one of the two per-metric text reports
// (SPEC_FULL.md supplemented feature 3): one row per histogram bin with its
// mean and standard deviation across the ensemble, grounded on
// NIBtbClusterController.saveScenarioData.
func writeDistributionReport(path, binLabel string, dist map[int]*stats.Samples) error {
	var b strings.Builder
	fmt.Fprintf(&b, "#%s [1]\n", binLabel)
	b.WriteString("#Mean Frequency [2]\n")
	b.WriteString("#Standard Deviation Frequency [3]\n")
	bins := make([]int, 0, len(dist))
	for bin := range dist {
		bins = append(bins, bin)
	}
	sort.Ints(bins)
	for _, bin := range bins {
		fmt.Fprintf(&b, "%d\t%g\t%g\n", bin, dist[bin].Mean(), dist[bin].StdDev())
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", errs.ErrIO, path, err)
	}
	return nil
}

// WriteScenarioData writes both per-metric distribution reports alongside
// outputFile, named by stripping its extension and appending the fixed
// suffixes the reference implementation uses.
func WriteScenarioData(outputFile string, results *AggregatedResults) error {
	base := strings.TrimSuffix(outputFile, filepath.Ext(outputFile))
	if err := writeDistributionReport(base+"_snpDiffDistribution.txt", "Number of SNP differences", results.SnpDistanceDistribution); err != nil {
		return err
	}
	return writeDistributionReport(base+"_numReactorsAtBreakdownDistribution.txt", "Number of reactors at breakdown", results.ReactorsAtBreakdownDistribution)
}
