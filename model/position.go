package model

import "fmt"

// Direction is a single-step move as the engine spells it on the wire.
type Direction byte

const (
	North Direction = 'n'
	South Direction = 's'
	East  Direction = 'e'
	West  Direction = 'w'
	Still Direction = 'o'
)

// Cardinals is the fixed neighbor scan order.
var Cardinals = [4]Direction{North, South, East, West}

func (d Direction) String() string { return string(d) }

func (d Direction) MarshalText() ([]byte, error) { return []byte{byte(d)}, nil }

func (d *Direction) UnmarshalText(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("invalid direction %q", b)
	}
	switch v := Direction(b[0]); v {
	case North, South, East, West, Still:
		*d = v
		return nil
	}
	return fmt.Errorf("invalid direction %q", b)
}

// Position is a grid coordinate. It is not normalized on its own; callers
// that need torus semantics go through GameMap.Normalize.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// DirectionalOffset returns the raw neighbor in direction d.
func (p Position) DirectionalOffset(d Direction) Position {
	switch d {
	case North:
		return Position{X: p.X, Y: p.Y - 1}
	case South:
		return Position{X: p.X, Y: p.Y + 1}
	case East:
		return Position{X: p.X + 1, Y: p.Y}
	case West:
		return Position{X: p.X - 1, Y: p.Y}
	}
	return p
}

// Neighbors returns the four raw cardinal neighbors in Cardinals order.
func (p Position) Neighbors() [4]Position {
	var out [4]Position
	for i, d := range Cardinals {
		out[i] = p.DirectionalOffset(d)
	}
	return out
}
