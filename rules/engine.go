package rules

import (
	"log/slog"
	"sort"

	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/ipc"
	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/model"
)

// MapQuery is the slice of the game map the policy reads. NaiveNavigate may
// reserve the returned step so later queries in the same turn see it occupied.
type MapQuery interface {
	Normalize(p model.Position) model.Position
	Halite(p model.Position) int
	IsOccupied(p model.Position) bool
	CalculateDistance(a, b model.Position) int
	NaiveNavigate(ship model.Ship, destination model.Position) model.Direction
}

// TurnInput is everything the policy needs for one turn.
type TurnInput struct {
	Turn      int
	Ships     []model.Ship // own ships in engine enumeration order
	Shipyard  model.Position
	Halite    int // banked halite
	Constants model.Constants
	Map       MapQuery
}

type Phase string

const (
	PhaseReturning Phase = "returning"
	PhaseForaging  Phase = "foraging"
)

// Reasons recorded on each decision.
const (
	ReasonMove    = "move"    // step claimed
	ReasonBlocked = "blocked" // step already claimed by an earlier ship
	ReasonHarvest = "harvest" // current cell is rich enough to mine
	ReasonNoBest  = "no-better-neighbor"
)

// Decision is the outcome for one ship. Distance is measured from the ship
// to Target before it moves.
type Decision struct {
	ShipID   int            `json:"ship_id"`
	Phase    Phase          `json:"phase"`
	Reason   string         `json:"reason"`
	Target   model.Position `json:"target"`
	Distance int            `json:"distance"`
	Command  ipc.Command    `json:"command"`
}

// TurnPlan is the policy's full output for one turn. Commands holds one
// entry per ship in decision order, followed by the spawn if any.
type TurnPlan struct {
	Turn      int           `json:"turn"`
	Decisions []Decision    `json:"decisions"`
	Commands  []ipc.Command `json:"commands"`
	Spawn     bool          `json:"spawn"`
}

// Engine turns a snapshot into commands. It holds no per-turn state; the
// scheduler carries everything that outlives a turn.
type Engine struct {
	tuning Tuning
	spawn  *Rule
}

// NewEngine validates t and compiles its spawn rule.
func NewEngine(t Tuning) (*Engine, error) {
	t.Validate()
	spawn := &Rule{Name: "spawn", ConditionSrc: t.SpawnRule}
	if err := compileRule(spawn); err != nil {
		return nil, err
	}
	return &Engine{tuning: t, spawn: spawn}, nil
}

func (e *Engine) Tuning() Tuning { return e.tuning }

// SortShips returns ship ids ordered by cargo descending. Ties keep the
// input order.
func SortShips(ships []model.Ship) []int {
	sorted := make([]model.Ship, len(ships))
	copy(sorted, ships)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Halite > sorted[j].Halite
	})
	ids := make([]int, len(sorted))
	for i, s := range sorted {
		ids[i] = s.ID
	}
	return ids
}

// PlanTurn decides every ship's command for in.Turn. Ships are handled in
// cargo order so the richest ships get first pick of contested cells; a
// claimed destination is never granted twice.
func (e *Engine) PlanTurn(sched *ReturnScheduler, in TurnInput) TurnPlan {
	arena := make(map[int]model.Ship, len(in.Ships))
	for _, s := range in.Ships {
		arena[s.ID] = s
	}
	order := SortShips(in.Ships)

	plan := TurnPlan{
		Turn:      in.Turn,
		Decisions: make([]Decision, 0, len(order)),
		Commands:  make([]ipc.Command, 0, len(order)+1),
	}
	claimed := make(map[model.Position]struct{}, len(order))

	for _, id := range order {
		ship := arena[id]
		sched.UpdateStatus(ship, in.Shipyard)

		var d Decision
		if sched.ShouldReturn(ship, in.Turn, order) {
			d = stepToward(in.Map, claimed, ship, in.Shipyard)
			d.Phase = PhaseReturning
		} else {
			d = e.forage(in, claimed, ship)
			d.Phase = PhaseForaging
		}

		slog.Debug("ship decision",
			"turn", in.Turn,
			"ship", ship.ID,
			"halite", ship.Halite,
			"phase", d.Phase,
			"reason", d.Reason,
			"target", d.Target,
			"distance", d.Distance,
			"command", d.Command.String(),
		)
		plan.Decisions = append(plan.Decisions, d)
		plan.Commands = append(plan.Commands, d.Command)
	}

	if e.shouldSpawn(sched, in) {
		plan.Spawn = true
		plan.Commands = append(plan.Commands, ipc.Spawn())
	}
	return plan
}

// forage mines in place on a rich cell, otherwise steps to the richest free
// neighbor if it beats the current cell.
func (e *Engine) forage(in TurnInput, claimed map[model.Position]struct{}, ship model.Ship) Decision {
	here := in.Map.Halite(ship.Position)
	if float64(here) >= float64(in.Constants.MaxHalite)*e.tuning.HarvestRatio {
		return stay(ship, ReasonHarvest)
	}

	best, bestHalite, found := ship.Position, here, false
	for _, n := range ship.Position.Neighbors() {
		if in.Map.IsOccupied(n) {
			continue
		}
		if h := in.Map.Halite(n); h > bestHalite {
			best, bestHalite, found = n, h, true
		}
	}
	if !found {
		return stay(ship, ReasonNoBest)
	}
	return stepToward(in.Map, claimed, ship, best)
}

// stepToward navigates one step toward target and claims the resulting cell,
// falling back to staying when an earlier ship already claimed it. Staying
// never claims the current cell.
func stepToward(m MapQuery, claimed map[model.Position]struct{}, ship model.Ship, target model.Position) Decision {
	dist := m.CalculateDistance(ship.Position, target)
	dir := m.NaiveNavigate(ship, target)
	dest := m.Normalize(ship.Position.DirectionalOffset(dir))
	if _, taken := claimed[dest]; taken {
		d := stay(ship, ReasonBlocked)
		d.Target = target
		d.Distance = dist
		return d
	}
	claimed[dest] = struct{}{}
	return Decision{
		ShipID:   ship.ID,
		Reason:   ReasonMove,
		Target:   target,
		Distance: dist,
		Command:  ipc.Move(ship.ID, dir),
	}
}

func stay(ship model.Ship, reason string) Decision {
	return Decision{
		ShipID:  ship.ID,
		Reason:  reason,
		Target:  ship.Position,
		Command: ipc.Stay(ship.ID),
	}
}

func (e *Engine) shouldSpawn(sched *ReturnScheduler, in TurnInput) bool {
	env := SpawnEnv{
		Turn:             in.Turn,
		MaxTurns:         in.Constants.MaxTurns,
		Halite:           in.Halite,
		ShipCost:         in.Constants.ShipCost,
		Ships:            len(in.Ships),
		Returning:        len(sched.Returning()),
		ShipyardOccupied: in.Map.IsOccupied(in.Shipyard),
		SpawnCutoff:      e.tuning.SpawnCutoffTurn,
	}
	ok, err := e.spawn.Eval(env)
	if err != nil {
		slog.Warn("spawn rule error", "turn", in.Turn, "error", err)
		return false
	}
	return ok
}
