package scenario

import "github.com/anthonyohare/NIBtbClusterModel/internal/model"

// EventKind enumerates the five shapes a simulation event can take (§9:
// "Represent SimulationEvent as a sum type... dispatch in the amount manager
// is an exhaustive match").
type EventKind int

const (
	// EventCowProgress moves a single cow to NextStatus (Exposed->TestSensitive
	// or TestSensitive->Infectious).
	EventCowProgress EventKind = iota
	// EventCowInfectsCow spawns a new Exposed cow on the same farm.
	EventCowInfectsCow
	// EventCowInfectsBadger spawns a new badger in SettID.
	EventCowInfectsBadger
	// EventBadgerInfectsCow spawns a new Exposed cow on FarmID from a badger in
	// one of its connected setts.
	EventBadgerInfectsCow
	// EventBadgerDecay removes SourceBadger from its sett (self-transition).
	EventBadgerDecay
)

// Event is one candidate transition the kernel can realise. Only the fields
// relevant to Kind are meaningful; this mirrors the original's
// ScenarioTransmissionEvent(initialState, finalState, farm) but as a flat
// struct rather than a pair of polymorphic state objects.
type Event struct {
	Kind         EventKind
	FarmID       string
	SourceCowID  string
	SourceBadgerID string
	SettID       string
	NextStatus   model.InfectionState
}
