package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/model"
)

// Session is the bot's side of one match with the engine. The engine writes
// to our stdin and reads our stdout; the session owns both for its lifetime.
type Session struct {
	in  *lineReader
	out *bufio.Writer
}

func NewSession(r io.Reader, w io.Writer) *Session {
	return &Session{
		in:  newLineReader(r),
		out: bufio.NewWriter(w),
	}
}

// Init reads the handshake: constants, players with their shipyards and the
// initial halite map.
func (s *Session) Init() (*model.Game, error) {
	constants, err := readConstants(s.in)
	if err != nil {
		return nil, err
	}
	myID, players, err := readPlayers(s.in)
	if err != nil {
		return nil, err
	}
	if _, ok := players[myID]; !ok {
		return nil, fmt.Errorf("own player %d not in player list", myID)
	}
	gameMap, err := readMap(s.in)
	if err != nil {
		return nil, err
	}

	g := &model.Game{
		Constants: constants,
		MyID:      myID,
		Players:   players,
		Map:       gameMap,
	}
	slog.Info("handshake received",
		"player", myID,
		"players", len(players),
		"width", gameMap.Width,
		"height", gameMap.Height,
		"maxTurns", constants.MaxTurns,
	)
	return g, nil
}

// Ready completes the handshake by announcing the bot name.
func (s *Session) Ready(name string) error {
	if err := writeLine(s.out, name); err != nil {
		return fmt.Errorf("send name: %w", err)
	}
	return nil
}

// UpdateFrame reads one turn into g. It returns ErrGameOver when the engine
// has closed the stream before the next frame.
func (s *Session) UpdateFrame(g *model.Game) error {
	v, err := s.in.readInts(1)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrGameOver
		}
		return fmt.Errorf("read turn number: %w", err)
	}
	g.Turn = v[0]

	for range len(g.Players) {
		if err := readPlayerUpdate(s.in, g.Players); err != nil {
			return fmt.Errorf("turn %d: %w", g.Turn, err)
		}
	}
	if err := readCellUpdates(s.in, g.Map); err != nil {
		return fmt.Errorf("turn %d: %w", g.Turn, err)
	}
	markOccupancy(g)
	return nil
}

// EndTurn submits the turn's commands. Any error means the engine is no
// longer listening and the loop should stop.
func (s *Session) EndTurn(cmds []Command) error {
	if err := writeLine(s.out, EncodeCommands(cmds)); err != nil {
		return fmt.Errorf("send commands: %w", err)
	}
	return nil
}
