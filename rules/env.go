package rules

// SpawnEnv is the read-only view a spawn rule is evaluated against. Fields
// and methods are callable from expr sources.
type SpawnEnv struct {
	Turn             int
	MaxTurns         int
	Halite           int
	ShipCost         int
	Ships            int
	Returning        int
	ShipyardOccupied bool
	SpawnCutoff      int
}

func (e SpawnEnv) CanAfford() bool { return e.Halite >= e.ShipCost }

func (e SpawnEnv) TurnsLeft() int { return e.MaxTurns - e.Turn }
