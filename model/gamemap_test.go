package model

import (
	"slices"
	"testing"
)

func flatMap(w, h, halite int) *GameMap {
	rows := make([][]int, h)
	for y := range rows {
		rows[y] = make([]int, w)
		for x := range rows[y] {
			rows[y][x] = halite
		}
	}
	return NewGameMap(w, h, rows)
}

func TestGameMapAt(t *testing.T) {
	m := NewGameMap(4, 3, [][]int{
		{0, 1, 2, 3},
		{10, 11, 12, 13},
		{20, 21, 22, 23},
	})

	tests := []struct {
		pos  Position
		want int
	}{
		{Position{0, 0}, 0},
		{Position{3, 0}, 3},
		{Position{2, 1}, 12},
		{Position{1, 2}, 21},
		{Position{-1, 0}, 3},  // wraps west
		{Position{4, 2}, 20},  // wraps east
		{Position{0, -1}, 20}, // wraps north
		{Position{1, 3}, 1},   // wraps south
	}
	for _, tc := range tests {
		if got := m.Halite(tc.pos); got != tc.want {
			t.Errorf("Halite(%v) = %d, want %d", tc.pos, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	m := flatMap(8, 8, 0)
	tests := []struct {
		in, want Position
	}{
		{Position{0, 0}, Position{0, 0}},
		{Position{-1, -1}, Position{7, 7}},
		{Position{8, 9}, Position{0, 1}},
		{Position{-17, 3}, Position{7, 3}},
	}
	for _, tc := range tests {
		if got := m.Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDirectionalOffset(t *testing.T) {
	p := Position{X: 5, Y: 5}
	tests := []struct {
		d    Direction
		want Position
	}{
		{North, Position{5, 4}},
		{South, Position{5, 6}},
		{East, Position{6, 5}},
		{West, Position{4, 5}},
		{Still, Position{5, 5}},
	}
	for _, tc := range tests {
		if got := p.DirectionalOffset(tc.d); got != tc.want {
			t.Errorf("DirectionalOffset(%s) = %v, want %v", tc.d, got, tc.want)
		}
	}
}

func TestCalculateDistanceWraps(t *testing.T) {
	m := flatMap(10, 10, 0)
	if got := m.CalculateDistance(Position{0, 0}, Position{9, 9}); got != 2 {
		t.Errorf("distance across corner = %d, want 2", got)
	}
	if got := m.CalculateDistance(Position{2, 3}, Position{5, 7}); got != 7 {
		t.Errorf("direct distance = %d, want 7", got)
	}
}

func TestGetUnsafeMoves(t *testing.T) {
	m := flatMap(10, 10, 0)

	tests := []struct {
		name     string
		src, dst Position
		want     []Direction
	}{
		{"same cell", Position{3, 3}, Position{3, 3}, nil},
		{"east", Position{1, 1}, Position{3, 1}, []Direction{East}},
		{"west via wrap", Position{1, 1}, Position{8, 1}, []Direction{West}},
		{"north", Position{4, 4}, Position{4, 2}, []Direction{North}},
		{"south via wrap", Position{4, 8}, Position{4, 1}, []Direction{South}},
		{"diagonal", Position{1, 1}, Position{3, 3}, []Direction{East, South}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.GetUnsafeMoves(tc.src, tc.dst)
			if !slices.Equal(got, tc.want) {
				t.Errorf("GetUnsafeMoves(%v, %v) = %v, want %v", tc.src, tc.dst, got, tc.want)
			}
		})
	}
}

func TestNaiveNavigateMarksTarget(t *testing.T) {
	m := flatMap(8, 8, 0)
	ship := Ship{ID: 7, Position: Position{2, 2}}

	d := m.NaiveNavigate(ship, Position{4, 2})
	if d != East {
		t.Fatalf("NaiveNavigate = %s, want e", d)
	}
	if !m.IsOccupied(Position{3, 2}) {
		t.Error("target cell not reserved")
	}
}

func TestNaiveNavigateFallsBack(t *testing.T) {
	m := flatMap(8, 8, 0)
	ship := Ship{ID: 1, Position: Position{2, 2}}

	m.MarkUnsafe(Position{3, 2})
	if d := m.NaiveNavigate(ship, Position{4, 4}); d != South {
		t.Errorf("with east blocked got %s, want s", d)
	}

	m.MarkUnsafe(Position{2, 1})
	if d := m.NaiveNavigate(Ship{ID: 2, Position: Position{2, 2}}, Position{3, 1}); d != Still {
		t.Errorf("with all candidates blocked got %s, want o", d)
	}
}

func TestClearOccupancy(t *testing.T) {
	m := flatMap(3, 3, 0)
	m.MarkUnsafe(Position{1, 1})
	m.MarkUnsafe(Position{-1, 0})

	m.ClearOccupancy()

	for _, c := range m.Cells {
		if c.IsOccupied() {
			t.Errorf("cell %v still occupied after ClearOccupancy", c.Position)
		}
	}
}

func TestOrderedShipsFollowsEngineOrder(t *testing.T) {
	p := &Player{
		Ships: map[int]Ship{
			1: {ID: 1},
			5: {ID: 5},
			3: {ID: 3},
		},
		ShipOrder: []int{5, 1, 3, 42},
	}
	var ids []int
	for _, s := range p.OrderedShips() {
		ids = append(ids, s.ID)
	}
	if !slices.Equal(ids, []int{5, 1, 3}) {
		t.Errorf("OrderedShips ids = %v, want [5 1 3]", ids)
	}
}
