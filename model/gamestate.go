package model

// Constants are the engine-provided game parameters sent on the first line
// of the handshake.
type Constants struct {
	MaxTurns                int     `json:"MAX_TURNS"`
	MaxHalite               int     `json:"MAX_ENERGY"`
	ShipCost                int     `json:"NEW_ENTITY_ENERGY_COST"`
	DropoffCost             int     `json:"DROPOFF_COST"`
	ExtractRatio            int     `json:"EXTRACT_RATIO"`
	MoveCostRatio           int     `json:"MOVE_COST_RATIO"`
	InspirationEnabled      bool    `json:"INSPIRATION_ENABLED"`
	InspirationRadius       int     `json:"INSPIRATION_RADIUS"`
	InspirationShipCount    int     `json:"INSPIRATION_SHIP_COUNT"`
	InspiredExtractRatio    int     `json:"INSPIRED_EXTRACT_RATIO"`
	InspiredBonusMultiplier float64 `json:"INSPIRED_BONUS_MULTIPLIER"`
	InspiredMoveCostRatio   int     `json:"INSPIRED_MOVE_COST_RATIO"`
	GameSeed                int64   `json:"game_seed"`
}

// Game is the full observed state for one session. The ipc layer refreshes
// it in place every turn.
type Game struct {
	Constants Constants
	MyID      int
	Turn      int
	Players   map[int]*Player
	Map       *GameMap
}

// Me returns the player this bot controls.
func (g *Game) Me() *Player { return g.Players[g.MyID] }

type Player struct {
	ID       int
	Shipyard Shipyard
	Halite   int
	// Ships is the arena of this player's ships keyed by stable id.
	Ships map[int]Ship
	// ShipOrder lists ship ids in the order the engine enumerated them this turn.
	ShipOrder []int
	Dropoffs  map[int]Dropoff
}

// OrderedShips returns ship snapshots in engine enumeration order.
func (p *Player) OrderedShips() []Ship {
	out := make([]Ship, 0, len(p.ShipOrder))
	for _, id := range p.ShipOrder {
		if s, ok := p.Ships[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

type Ship struct {
	ID       int      `json:"id"`
	Owner    int      `json:"owner"`
	Position Position `json:"position"`
	Halite   int      `json:"halite"`
}

type Shipyard struct {
	Owner    int
	Position Position
}

type Dropoff struct {
	ID       int
	Owner    int
	Position Position
}
