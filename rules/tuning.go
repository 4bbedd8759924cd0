package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSpawnRule keeps spawning while it is early enough to pay back a
// ship, the bank covers the cost and nothing is parked on the shipyard.
const DefaultSpawnRule = `Turn <= SpawnCutoff && Halite >= ShipCost && !ShipyardOccupied`

const DefaultBotName = "LaBeteDuMaroc"

// Tuning holds the policy thresholds. Ratios are fractions of the engine's
// per-ship halite capacity.
type Tuning struct {
	BotName             string  `yaml:"bot_name"`
	EndgameReturnTurns  int     `yaml:"endgame_return_turns"`
	FullRatio           float64 `yaml:"full_ratio"`
	PriorityReturnRatio float64 `yaml:"priority_return_ratio"`
	HarvestRatio        float64 `yaml:"harvest_ratio"`
	SpawnCutoffTurn     int     `yaml:"spawn_cutoff_turn"`
	SpawnRule           string  `yaml:"spawn_rule"`
}

func DefaultTuning() Tuning {
	return Tuning{
		BotName:             DefaultBotName,
		EndgameReturnTurns:  25,
		FullRatio:           0.9,
		PriorityReturnRatio: 0.5,
		HarvestRatio:        0.1,
		SpawnCutoffTurn:     220,
		SpawnRule:           DefaultSpawnRule,
	}
}

// Validate clamps every field to a usable range and restores defaults for
// empty strings.
func (t *Tuning) Validate() {
	t.FullRatio = clamp(t.FullRatio, 0, 1)
	t.PriorityReturnRatio = clamp(t.PriorityReturnRatio, 0, 1)
	t.HarvestRatio = clamp(t.HarvestRatio, 0, 1)
	t.EndgameReturnTurns = clampInt(t.EndgameReturnTurns, 0, 1<<20)
	t.SpawnCutoffTurn = clampInt(t.SpawnCutoffTurn, 0, 1<<20)
	if t.BotName == "" {
		t.BotName = DefaultBotName
	}
	if t.SpawnRule == "" {
		t.SpawnRule = DefaultSpawnRule
	}
}

// LoadTuning reads a YAML tuning file. Keys absent from the file keep their
// default values.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	t.Validate()
	return t, nil
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
