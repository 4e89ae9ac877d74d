package input

import (
	"fmt"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
)

// Kind identifies an abstract player command
type Kind int

const (
	None Kind = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	Interact
	EndTurn
	Quit
	Cancel
	Select
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case MoveUp:
		return "move up"
	case MoveDown:
		return "move down"
	case MoveLeft:
		return "move left"
	case MoveRight:
		return "move right"
	case Interact:
		return "interact"
	case EndTurn:
		return "end turn"
	case Quit:
		return "quit"
	case Cancel:
		return "cancel"
	case Select:
		return "select"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Command is one decoded key press
type Command struct {
	Kind Kind
	// Index is the zero-based menu entry for Select
	Index int
}

func (c Command) String() string {
	if c.Kind == Select {
		return fmt.Sprintf("select %d", c.Index+1)
	}
	return c.Kind.String()
}

// Direction maps the move commands onto the grid
func (c Command) Direction() (core.Direction, bool) {
	switch c.Kind {
	case MoveUp:
		return core.North, true
	case MoveDown:
		return core.South, true
	case MoveLeft:
		return core.West, true
	case MoveRight:
		return core.East, true
	default:
		return 0, false
	}
}
