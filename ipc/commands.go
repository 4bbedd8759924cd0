package ipc

import (
	"strconv"
	"strings"

	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/model"
)

// Command type tokens as the engine parses them.
const (
	TypeMove  = "m"
	TypeSpawn = "g"
)

// Command is one order for the current turn. ShipID and Direction are unused
// for spawn.
type Command struct {
	Type      string          `json:"type"`
	ShipID    int             `json:"ship_id,omitempty"`
	Direction model.Direction `json:"direction,omitempty"`
}

func Move(shipID int, d model.Direction) Command {
	return Command{Type: TypeMove, ShipID: shipID, Direction: d}
}

// Stay is a move with the still direction; the engine has no separate token.
func Stay(shipID int) Command {
	return Move(shipID, model.Still)
}

func Spawn() Command {
	return Command{Type: TypeSpawn}
}

// IsStay reports whether c keeps a ship in place.
func (c Command) IsStay() bool {
	return c.Type == TypeMove && c.Direction == model.Still
}

func (c Command) String() string {
	if c.Type == TypeMove {
		return TypeMove + " " + strconv.Itoa(c.ShipID) + " " + c.Direction.String()
	}
	return c.Type
}

// EncodeCommands renders a turn's commands as the single line the engine expects.
func EncodeCommands(cmds []Command) string {
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
