package model

import (
	"fmt"

	"github.com/anthonyohare/NIBtbClusterModel/internal/stats"
)

// Farm is a single cattle holding (§3). Restriction bookkeeping
// (LastPositiveTestDate, NumClearTests, NextWHTDate, Restricted) is mutated
// during the simulation only through SetLastPositiveTestDate and AddClearTest
// so the invariant `Restricted <=> LastPositiveTestDate >= 0 && 0 <= NumClearTests < 2`
// is not broken by a partial update; the initial test history written by
// MarkRestrictedHerds also sets some of these fields directly.
type Farm struct {
	ID                  string
	HerdSize            int
	ConnectedSetts      []string
	InfectedCows        map[string]*InfectedCow
	SlaughterDates      []int
	Restricted          bool
	LastClearTestDate   int
	LastPositiveTestDate int
	NumClearTests       int
	NextWHTDate         int
	OffMovementHistogram *stats.IntegerHistogram
}

func NewFarm(id string, herdSize int) *Farm {
	return &Farm{
		ID:                   id,
		HerdSize:             herdSize,
		InfectedCows:         make(map[string]*InfectedCow),
		Restricted:           false,
		LastClearTestDate:    NoDate,
		LastPositiveTestDate: NoDate,
		NumClearTests:        NoDate,
		NextWHTDate:          NoDate,
		OffMovementHistogram: stats.NewIntegerHistogram(),
	}
}

func (f *Farm) AddInfectedCow(c *InfectedCow) { f.InfectedCows[c.ID] = c }

func (f *Farm) RemoveInfectedCow(id string) { delete(f.InfectedCows, id) }

func (f *Farm) NumInfectedCows() int { return len(f.InfectedCows) }

// SetLastPositiveTestDate records a breakdown: the farm is restricted and a
// fresh clear-test count begins (§4.4).
func (f *Farm) SetLastPositiveTestDate(date int) {
	f.LastPositiveTestDate = date
	f.NumClearTests = 0
	f.NextWHTDate = date + 60
	f.Restricted = true
}

// AddClearTest records a WHT at date that found zero reactors, advancing the
// farm towards derestriction after two consecutive clear tests (§4.4).
func (f *Farm) AddClearTest(date int, testIntervalInYears int) {
	// NumClearTests >= 1 means this clear test is the second since the
	// breakdown, which lifts the restriction.
	if f.NumClearTests == -1 || f.NumClearTests >= 1 {
		f.NumClearTests = -1
		f.NextWHTDate = date + 365*testIntervalInYears
		f.Restricted = false
		return
	}
	f.NumClearTests++
	f.NextWHTDate = date + 60
	f.Restricted = true
}

func (f *Farm) DebugJSON() string {
	return fmt.Sprintf(`{"id":%q,"herdSize":%d,"infectedCows":%d,"restricted":%t,"numClearTests":%d,"nextWHTDate":%d}`,
		f.ID, f.HerdSize, len(f.InfectedCows), f.Restricted, f.NumClearTests, f.NextWHTDate)
}
