package agent

import (
	"fmt"
	"sort"

	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/model"
)

// EventKind identifies something that changed between two consecutive turns.
type EventKind string

const (
	EventShipSpawned EventKind = "ship_spawned"
	EventShipLost    EventKind = "ship_lost"
	EventDeposit     EventKind = "deposit"
)

// Event is a change detected by diffing consecutive frames.
type Event struct {
	Kind   EventKind
	Turn   int
	ShipID int
	Detail string
}

func (e Event) String() string { return string(e.Kind) + ": " + e.Detail }

// stateSnapshot captures the diffable fields of one frame for our player.
type stateSnapshot struct {
	turn   int
	halite int
	ships  map[int]model.Ship
}

func takeSnapshot(turn int, p *model.Player) stateSnapshot {
	ships := make(map[int]model.Ship, len(p.Ships))
	for id, s := range p.Ships {
		ships[id] = s
	}
	return stateSnapshot{turn: turn, halite: p.Halite, ships: ships}
}

// detectEvents compares prev to cur. A zero prev (first frame) yields nothing.
func detectEvents(prev, cur stateSnapshot) []Event {
	if prev.ships == nil {
		return nil
	}
	var events []Event

	for _, id := range sortedIDs(cur.ships) {
		if _, ok := prev.ships[id]; !ok {
			s := cur.ships[id]
			events = append(events, Event{
				Kind:   EventShipSpawned,
				Turn:   cur.turn,
				ShipID: id,
				Detail: fmt.Sprintf("ship %d at %v", id, s.Position),
			})
		}
	}

	for _, id := range sortedIDs(prev.ships) {
		if _, ok := cur.ships[id]; !ok {
			s := prev.ships[id]
			events = append(events, Event{
				Kind:   EventShipLost,
				Turn:   cur.turn,
				ShipID: id,
				Detail: fmt.Sprintf("ship %d lost near %v carrying %d", id, s.Position, s.Halite),
			})
		}
	}

	// Spawning costs halite, so only a net gain shows up as a deposit.
	if gain := cur.halite - prev.halite; gain > 0 {
		events = append(events, Event{
			Kind:   EventDeposit,
			Turn:   cur.turn,
			Detail: fmt.Sprintf("banked +%d (total %d)", gain, cur.halite),
		})
	}
	return events
}

func sortedIDs(ships map[int]model.Ship) []int {
	ids := make([]int, 0, len(ships))
	for id := range ships {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
