package rules

import (
	"sort"

	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/model"
)

// ReturnScheduler tracks which ships are committed to bringing their cargo
// home. A ship stays committed until it stands on the shipyard. At most one
// ship holds the priority designation, which is handed to the top carrier
// once it is half full and released when that ship arrives.
//
// One scheduler lives for the whole session and is passed into every turn.
type ReturnScheduler struct {
	tuning    Tuning
	constants model.Constants

	returning   map[int]struct{}
	priority    int
	hasPriority bool
}

func NewReturnScheduler(t Tuning, c model.Constants) *ReturnScheduler {
	return &ReturnScheduler{
		tuning:    t,
		constants: c,
		returning: make(map[int]struct{}),
	}
}

// ShouldReturn decides whether ship heads for the shipyard this turn and
// records the commitment. sorted is the turn's ship ids ordered by cargo
// descending; only sorted[0] can take the priority designation.
func (s *ReturnScheduler) ShouldReturn(ship model.Ship, turn int, sorted []int) bool {
	if s.IsReturning(ship.ID) {
		return true
	}

	if turn >= s.constants.MaxTurns-s.tuning.EndgameReturnTurns {
		s.returning[ship.ID] = struct{}{}
		return true
	}

	if s.atLeast(ship.Halite, s.tuning.FullRatio) {
		s.returning[ship.ID] = struct{}{}
		return true
	}

	if !s.hasPriority &&
		len(sorted) > 0 && sorted[0] == ship.ID &&
		s.atLeast(ship.Halite, s.tuning.PriorityReturnRatio) {
		s.priority = ship.ID
		s.hasPriority = true
		s.returning[ship.ID] = struct{}{}
		return true
	}

	return false
}

// UpdateStatus releases ship from the returning set once it is on base.
func (s *ReturnScheduler) UpdateStatus(ship model.Ship, base model.Position) {
	if ship.Position != base {
		return
	}
	delete(s.returning, ship.ID)
	if s.hasPriority && s.priority == ship.ID {
		s.hasPriority = false
		s.priority = 0
	}
}

func (s *ReturnScheduler) IsReturning(id int) bool {
	_, ok := s.returning[id]
	return ok
}

// Priority returns the designated priority returner, if any.
func (s *ReturnScheduler) Priority() (int, bool) {
	return s.priority, s.hasPriority
}

// Returning lists committed ship ids in ascending order.
func (s *ReturnScheduler) Returning() []int {
	ids := make([]int, 0, len(s.returning))
	for id := range s.returning {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *ReturnScheduler) atLeast(halite int, ratio float64) bool {
	return float64(halite) >= float64(s.constants.MaxHalite)*ratio
}
