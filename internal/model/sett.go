package model

import "fmt"

// Sett is a badger social group acting as a wildlife reservoir, connected to
// one or more farms. Every farm has at least one connected sett; farms with
// no sett in the input data get one synthesised with id RESERVOIR_X<seq>
// (§3).
type Sett struct {
	ID              string
	ConnectedFarms  []string
	InfectedBadgers map[string]*InfectedBadger
}

func NewSett(id string, connectedFarms ...string) *Sett {
	return &Sett{
		ID:              id,
		ConnectedFarms:  connectedFarms,
		InfectedBadgers: make(map[string]*InfectedBadger),
	}
}

func (s *Sett) AddBadger(b *InfectedBadger) { s.InfectedBadgers[b.ID] = b }

func (s *Sett) RemoveBadger(id string) { delete(s.InfectedBadgers, id) }

func (s *Sett) DebugJSON() string {
	return fmt.Sprintf(`{"id":%q,"connectedFarms":%d,"infectedBadgers":%d}`,
		s.ID, len(s.ConnectedFarms), len(s.InfectedBadgers))
}
