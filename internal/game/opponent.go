package game

import (
	"context"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
)

// Opponent decides the computer's actions for one turn. It receives a copy
// of the board; changes to it have no effect on the game. Returned actions
// are applied in order and must act for core.OwnedByComputer.
type Opponent interface {
	TakeTurn(ctx context.Context, board *core.Board, turn int) ([]core.Action, error)
}

// OpponentFunc adapts a plain function to Opponent
type OpponentFunc func(ctx context.Context, board *core.Board, turn int) ([]core.Action, error)

func (f OpponentFunc) TakeTurn(ctx context.Context, board *core.Board, turn int) ([]core.Action, error) {
	return f(ctx, board, turn)
}

// IdleOpponent passes every turn
type IdleOpponent struct{}

func (IdleOpponent) TakeTurn(context.Context, *core.Board, int) ([]core.Action, error) {
	return nil, nil
}
