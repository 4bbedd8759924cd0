package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/model"
)

// readConstants parses the first handshake line.
func readConstants(l *lineReader) (model.Constants, error) {
	var c model.Constants
	line, err := l.readLine()
	if err != nil {
		return c, fmt.Errorf("read constants: %w", err)
	}
	if err := json.Unmarshal([]byte(line), &c); err != nil {
		return c, fmt.Errorf("unmarshal constants: %w", err)
	}
	return c, nil
}

// readPlayers parses the player count line and one shipyard line per player.
func readPlayers(l *lineReader) (myID int, players map[int]*model.Player, err error) {
	header, err := l.readInts(2)
	if err != nil {
		return 0, nil, fmt.Errorf("read player header: %w", err)
	}
	numPlayers, myID := header[0], header[1]

	players = make(map[int]*model.Player, numPlayers)
	for i := 0; i < numPlayers; i++ {
		v, err := l.readInts(3)
		if err != nil {
			return 0, nil, fmt.Errorf("read player %d: %w", i, err)
		}
		id := v[0]
		players[id] = &model.Player{
			ID: id,
			Shipyard: model.Shipyard{
				Owner:    id,
				Position: model.Position{X: v[1], Y: v[2]},
			},
			Ships:    make(map[int]model.Ship),
			Dropoffs: make(map[int]model.Dropoff),
		}
	}
	return myID, players, nil
}

func readMap(l *lineReader) (*model.GameMap, error) {
	dims, err := l.readInts(2)
	if err != nil {
		return nil, fmt.Errorf("read map size: %w", err)
	}
	width, height := dims[0], dims[1]
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", width, height)
	}

	rows := make([][]int, height)
	for y := 0; y < height; y++ {
		row, err := l.readInts(width)
		if err != nil {
			return nil, fmt.Errorf("read map row %d: %w", y, err)
		}
		rows[y] = row
	}
	return model.NewGameMap(width, height, rows), nil
}

// readPlayerUpdate refreshes one player's ships, dropoffs and stored halite.
// Ships missing from the frame are dropped from the arena.
func readPlayerUpdate(l *lineReader, players map[int]*model.Player) error {
	v, err := l.readInts(4)
	if err != nil {
		return fmt.Errorf("read player update: %w", err)
	}
	id, numShips, numDropoffs, halite := v[0], v[1], v[2], v[3]

	p, ok := players[id]
	if !ok {
		return fmt.Errorf("update for unknown player %d", id)
	}
	p.Halite = halite
	p.Ships = make(map[int]model.Ship, numShips)
	p.ShipOrder = p.ShipOrder[:0]
	for i := 0; i < numShips; i++ {
		s, err := l.readInts(4)
		if err != nil {
			return fmt.Errorf("read ship %d of player %d: %w", i, id, err)
		}
		ship := model.Ship{
			ID:       s[0],
			Owner:    id,
			Position: model.Position{X: s[1], Y: s[2]},
			Halite:   s[3],
		}
		p.Ships[ship.ID] = ship
		p.ShipOrder = append(p.ShipOrder, ship.ID)
	}

	p.Dropoffs = make(map[int]model.Dropoff, numDropoffs)
	for i := 0; i < numDropoffs; i++ {
		d, err := l.readInts(3)
		if err != nil {
			return fmt.Errorf("read dropoff %d of player %d: %w", i, id, err)
		}
		p.Dropoffs[d[0]] = model.Dropoff{
			ID:       d[0],
			Owner:    id,
			Position: model.Position{X: d[1], Y: d[2]},
		}
	}
	return nil
}

func readCellUpdates(l *lineReader, m *model.GameMap) error {
	v, err := l.readInts(1)
	if err != nil {
		return fmt.Errorf("read update count: %w", err)
	}
	for i := 0; i < v[0]; i++ {
		u, err := l.readInts(3)
		if err != nil {
			return fmt.Errorf("read cell update %d: %w", i, err)
		}
		m.At(model.Position{X: u[0], Y: u[1]}).Halite = u[2]
	}
	return nil
}

// markOccupancy rebuilds per-cell occupancy from the freshly read frame.
func markOccupancy(g *model.Game) {
	g.Map.ClearOccupancy()
	for _, p := range g.Players {
		for _, s := range p.Ships {
			g.Map.MarkUnsafe(s.Position)
		}
	}
}
