package ipc

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/model"
)

const handshake = `{"MAX_TURNS":400,"MAX_ENERGY":1000,"NEW_ENTITY_ENERGY_COST":1000,"DROPOFF_COST":4000,"EXTRACT_RATIO":4,"MOVE_COST_RATIO":10,"INSPIRATION_ENABLED":true,"game_seed":1234}
2 1
0 1 1
1 3 2
4 3
0 10 20 30
40 50 60 70
80 90 100 110
`

const frame = `5
0 1 1 2000
3 1 2 100
1 2 1
1 2 0 4500
7 3 1 900
4 0 0 0
2
0 0 555
3 2 7
`

func TestSessionInit(t *testing.T) {
	s := NewSession(strings.NewReader(handshake), &bytes.Buffer{})
	g, err := s.Init()
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	if g.Constants.MaxTurns != 400 || g.Constants.MaxHalite != 1000 || g.Constants.ShipCost != 1000 {
		t.Errorf("constants = %+v", g.Constants)
	}
	if g.Constants.GameSeed != 1234 {
		t.Errorf("game seed = %d, want 1234", g.Constants.GameSeed)
	}
	if g.MyID != 1 {
		t.Errorf("MyID = %d, want 1", g.MyID)
	}
	if got := g.Me().Shipyard.Position; got != (model.Position{X: 3, Y: 2}) {
		t.Errorf("own shipyard = %v, want (3,2)", got)
	}
	if g.Map.Width != 4 || g.Map.Height != 3 {
		t.Fatalf("map size = %dx%d, want 4x3", g.Map.Width, g.Map.Height)
	}
	if got := g.Map.Halite(model.Position{X: 2, Y: 1}); got != 60 {
		t.Errorf("halite at (2,1) = %d, want 60", got)
	}
}

func TestSessionUpdateFrame(t *testing.T) {
	s := NewSession(strings.NewReader(handshake+frame), &bytes.Buffer{})
	g, err := s.Init()
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := s.UpdateFrame(g); err != nil {
		t.Fatalf("UpdateFrame: %v", err)
	}

	if g.Turn != 5 {
		t.Errorf("Turn = %d, want 5", g.Turn)
	}
	me := g.Me()
	if me.Halite != 4500 {
		t.Errorf("own halite = %d, want 4500", me.Halite)
	}
	if len(me.ShipOrder) != 2 || me.ShipOrder[0] != 7 || me.ShipOrder[1] != 4 {
		t.Errorf("ship order = %v, want [7 4]", me.ShipOrder)
	}
	if s := me.Ships[7]; s.Position != (model.Position{X: 3, Y: 1}) || s.Halite != 900 || s.Owner != 1 {
		t.Errorf("ship 7 = %+v", s)
	}
	if d, ok := g.Players[0].Dropoffs[1]; !ok || d.Position != (model.Position{X: 2, Y: 1}) {
		t.Errorf("dropoff 1 = %+v, %v", d, ok)
	}
	if got := g.Map.Halite(model.Position{X: 0, Y: 0}); got != 555 {
		t.Errorf("updated halite = %d, want 555", got)
	}
	if got := g.Map.Halite(model.Position{X: 3, Y: 2}); got != 7 {
		t.Errorf("updated halite = %d, want 7", got)
	}

	// Every ship marks its cell; an empty shipyard stays free.
	for _, p := range []model.Position{{X: 1, Y: 2}, {X: 3, Y: 1}, {X: 0, Y: 0}} {
		if !g.Map.IsOccupied(p) {
			t.Errorf("cell %v should be occupied", p)
		}
	}
	if g.Map.IsOccupied(model.Position{X: 3, Y: 2}) {
		t.Error("empty shipyard reported occupied")
	}
}

func TestSessionUpdateFrameGameOver(t *testing.T) {
	s := NewSession(strings.NewReader(handshake), &bytes.Buffer{})
	g, err := s.Init()
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := s.UpdateFrame(g); !errors.Is(err, ErrGameOver) {
		t.Errorf("UpdateFrame at EOF = %v, want ErrGameOver", err)
	}
}

func TestSessionInitRejectsShortRow(t *testing.T) {
	bad := strings.Replace(handshake, "40 50 60 70", "40 50 60", 1)
	s := NewSession(strings.NewReader(bad), &bytes.Buffer{})
	if _, err := s.Init(); err == nil {
		t.Fatal("expected error for short map row")
	}
}

func TestReadyAndEndTurn(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(strings.NewReader(""), &out)

	if err := s.Ready("LaBeteDuMaroc"); err != nil {
		t.Fatalf("Ready: %v", err)
	}
	cmds := []Command{
		Move(3, model.North),
		Stay(8),
		Spawn(),
	}
	if err := s.EndTurn(cmds); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if err := s.EndTurn(nil); err != nil {
		t.Fatalf("EndTurn(nil): %v", err)
	}

	want := "LaBeteDuMaroc\nm 3 n m 8 o g\n\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Move(12, model.East), "m 12 e"},
		{Stay(4), "m 4 o"},
		{Spawn(), "g"},
	}
	for _, tc := range tests {
		if got := tc.cmd.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
	if !Stay(1).IsStay() || Move(1, model.West).IsStay() || Spawn().IsStay() {
		t.Error("IsStay misclassified a command")
	}
}
