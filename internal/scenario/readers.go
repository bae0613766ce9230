package scenario

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anthonyohare/NIBtbClusterModel/internal/errs"
	"github.com/anthonyohare/NIBtbClusterModel/internal/model"
)

func openLines(path string) (*bufio.Scanner, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening %s: %v", errs.ErrIO, path, err)
	}
	return bufio.NewScanner(f), f.Close, nil
}

// CreateFarms reads one farm id per line and instantiates each with a herd
// size drawn from a truncated Normal(120, 40) (§3), floored at 1.
func (c *Context) CreateFarms(path string) error {
	scanner, closeFn, err := openLines(path)
	if err != nil {
		return err
	}
	defer closeFn()
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" || strings.HasPrefix(id, "#") {
			continue
		}
		herdSize := int(c.RNG.Gaussian(120, 40))
		if herdSize < 1 {
			herdSize = 1
		}
		c.Farms[id] = model.NewFarm(id, herdSize)
	}
	return scanner.Err()
}

// CreateSetts reads "settId:farm1,farm2,..." lines, then synthesises one
// RESERVOIR_X<seq> sett for any farm left without a connected sett (§3).
func (c *Context) CreateSetts(path string) error {
	scanner, closeFn, err := openLines(path)
	if err != nil {
		return err
	}
	defer closeFn()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("%w: sett line %q must be settId:farm1,farm2,...", errs.ErrData, line)
		}
		settID := strings.TrimSpace(parts[0])
		var farmIDs []string
		for _, f := range strings.Split(parts[1], ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if _, ok := c.Farms[f]; !ok {
				c.Log.Errorf("sett %s references unknown farm %s", settID, f)
				continue
			}
			farmIDs = append(farmIDs, f)
			c.Farms[f].ConnectedSetts = append(c.Farms[f].ConnectedSetts, settID)
		}
		c.Setts[settID] = model.NewSett(settID, farmIDs...)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	seq := 0
	for _, farmID := range sortedKeys(c.Farms) {
		farm := c.Farms[farmID]
		if len(farm.ConnectedSetts) > 0 {
			continue
		}
		seq++
		settID := fmt.Sprintf("RESERVOIR_X%07d", seq)
		c.Setts[settID] = model.NewSett(settID, farm.ID)
		farm.ConnectedSetts = append(farm.ConnectedSetts, settID)
	}
	return nil
}

// ReadSlaughterhouseMoves parses "date:farm1,farm2,..." lines into
// SlaughterDatesByFarm (§6).
func (c *Context) ReadSlaughterhouseMoves(path string) error {
	scanner, closeFn, err := openLines(path)
	if err != nil {
		return err
	}
	defer closeFn()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("%w: slaughterhouse moves line %q must be date:farm1,farm2,...", errs.ErrData, line)
		}
		date, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return fmt.Errorf("%w: slaughterhouse moves line %q: %v", errs.ErrData, line, err)
		}
		for _, f := range strings.Split(parts[1], ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			c.SlaughterDatesByFarm[f] = append(c.SlaughterDatesByFarm[f], date)
		}
	}
	return scanner.Err()
}

// ReadObservedSNPDistribution parses "x:frequency" lines (§6).
func (c *Context) ReadObservedSNPDistribution(path string) error {
	scanner, closeFn, err := openLines(path)
	if err != nil {
		return err
	}
	defer closeFn()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("%w: observed SNP distribution line %q must be x:frequency", errs.ErrData, line)
		}
		bin, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		freq, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return fmt.Errorf("%w: observed SNP distribution line %q is not numeric", errs.ErrData, line)
		}
		c.ObservedSNPDist.SetFrequency(bin, freq)
	}
	return scanner.Err()
}

// ReadSamplingRates parses the CSV sampling-rate file: column 0 = year,
// column 3 = rate, "#" comments and blank lines skipped (§6).
func (c *Context) ReadSamplingRates(path string) error {
	scanner, closeFn, err := openLines(path)
	if err != nil {
		return err
	}
	defer closeFn()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, ",")
		if len(cols) < 4 {
			return fmt.Errorf("%w: sampling rate line %q needs at least 4 columns", errs.ErrData, line)
		}
		year, err1 := strconv.Atoi(strings.TrimSpace(cols[0]))
		rate, err2 := strconv.ParseFloat(strings.TrimSpace(cols[3]), 64)
		if err1 != nil || err2 != nil {
			return fmt.Errorf("%w: sampling rate line %q is not numeric", errs.ErrData, line)
		}
		c.SamplingRatesByYear[year] = rate
	}
	return scanner.Err()
}

// ReadMovementFrequencies parses "farmA-farmB count1,count2,..." lines.
// Self-moves are ignored; every observed count becomes one histogram entry
// on the departure farm's off-movement histogram, and the (departure,
// destination) pair is added to the movement-frequency list (§4.4, §6).
func (c *Context) ReadMovementFrequencies(path string) error {
	scanner, closeFn, err := openLines(path)
	if err != nil {
		return err
	}
	defer closeFn()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			return fmt.Errorf("%w: movement frequency line %q must be farmA-farmB count1,count2,...", errs.ErrData, line)
		}
		farms := strings.SplitN(fields[0], "-", 2)
		if len(farms) != 2 {
			return fmt.Errorf("%w: movement frequency line %q has no farmA-farmB pair", errs.ErrData, line)
		}
		departureID, destinationID := strings.TrimSpace(farms[0]), strings.TrimSpace(farms[1])
		if departureID == destinationID {
			continue
		}
		departure, ok1 := c.Farms[departureID]
		_, ok2 := c.Farms[destinationID]
		if !ok1 || !ok2 {
			c.Log.Errorf("movement frequency line %q references an unknown farm", line)
			continue
		}
		c.MovementFrequencies = append(c.MovementFrequencies, MovementPair{Departure: departureID, Destination: destinationID})
		for _, countStr := range strings.Split(fields[1], ",") {
			countStr = strings.TrimSpace(countStr)
			if countStr == "" {
				continue
			}
			count, err := strconv.Atoi(countStr)
			if err != nil {
				return fmt.Errorf("%w: movement frequency line %q has a non-numeric count", errs.ErrData, line)
			}
			departure.OffMovementHistogram.AddOne(count)
		}
	}
	return scanner.Err()
}
