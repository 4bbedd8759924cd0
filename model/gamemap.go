package model

// Cell is one map square. Occupancy covers both real ships and cells that
// navigation has already reserved this turn.
type Cell struct {
	Position Position
	Halite   int

	occupied bool
}

// IsOccupied reports whether a ship stands on or has been routed into the cell.
func (c *Cell) IsOccupied() bool { return c.occupied }

func (c *Cell) MarkUnsafe() { c.occupied = true }

// GameMap is a toroidal Width x Height grid stored row-major:
// Cells[y*Width + x].
type GameMap struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewGameMap builds a map from row-major halite values. halite[y][x] must be
// Height rows of Width values.
func NewGameMap(width, height int, halite [][]int) *GameMap {
	m := &GameMap{Width: width, Height: height, Cells: make([]Cell, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := &m.Cells[y*width+x]
			c.Position = Position{X: x, Y: y}
			if y < len(halite) && x < len(halite[y]) {
				c.Halite = halite[y][x]
			}
		}
	}
	return m
}

// Normalize wraps p onto the torus.
func (m *GameMap) Normalize(p Position) Position {
	return Position{
		X: ((p.X % m.Width) + m.Width) % m.Width,
		Y: ((p.Y % m.Height) + m.Height) % m.Height,
	}
}

// At returns the cell at p after wrapping.
func (m *GameMap) At(p Position) *Cell {
	n := m.Normalize(p)
	return &m.Cells[n.Y*m.Width+n.X]
}

func (m *GameMap) Halite(p Position) int      { return m.At(p).Halite }
func (m *GameMap) IsOccupied(p Position) bool { return m.At(p).IsOccupied() }

// MarkUnsafe reserves the cell at p.
func (m *GameMap) MarkUnsafe(p Position) { m.At(p).MarkUnsafe() }

// ClearOccupancy drops every ship marker. The session calls it before
// re-marking from a fresh frame.
func (m *GameMap) ClearOccupancy() {
	for i := range m.Cells {
		m.Cells[i].occupied = false
	}
}

// CalculateDistance is the Manhattan distance on the torus.
func (m *GameMap) CalculateDistance(a, b Position) int {
	a = m.Normalize(a)
	b = m.Normalize(b)
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	return min(dx, m.Width-dx) + min(dy, m.Height-dy)
}

// GetUnsafeMoves returns the directions that reduce the torus distance from
// source to destination, horizontal first. It ignores occupancy.
func (m *GameMap) GetUnsafeMoves(source, destination Position) []Direction {
	s := m.Normalize(source)
	d := m.Normalize(destination)

	dx := abs(s.X - d.X)
	dy := abs(s.Y - d.Y)
	wrappedDX := m.Width - dx
	wrappedDY := m.Height - dy

	var moves []Direction
	switch {
	case s.X < d.X:
		if dx > wrappedDX {
			moves = append(moves, West)
		} else {
			moves = append(moves, East)
		}
	case s.X > d.X:
		if dx < wrappedDX {
			moves = append(moves, West)
		} else {
			moves = append(moves, East)
		}
	}
	switch {
	case s.Y < d.Y:
		if dy > wrappedDY {
			moves = append(moves, North)
		} else {
			moves = append(moves, South)
		}
	case s.Y > d.Y:
		if dy < wrappedDY {
			moves = append(moves, North)
		} else {
			moves = append(moves, South)
		}
	}
	return moves
}

// NaiveNavigate picks the first unoccupied step toward destination and marks
// it unsafe so later ships in the same turn treat it as occupied. It returns
// Still when no such step exists or the ship is already there.
func (m *GameMap) NaiveNavigate(ship Ship, destination Position) Direction {
	for _, d := range m.GetUnsafeMoves(ship.Position, destination) {
		target := ship.Position.DirectionalOffset(d)
		if !m.IsOccupied(target) {
			m.MarkUnsafe(target)
			return d
		}
	}
	return Still
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
