package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPosition    = errors.New("invalid position")
	ErrNoCityAtSource     = errors.New("no city at source")
	ErrNoCityAtTarget     = errors.New("no city at target")
	ErrTargetIsSource     = errors.New("target is the source")
	ErrNeedTargetPosition = errors.New("action needs a target position")
	ErrNotEnoughResources = errors.New("not enough resources")
	ErrNotOwned           = errors.New("city not owned by actor")
	ErrTargetNotWall      = errors.New("target is not a wall")
	ErrTargetNotEnemy     = errors.New("target is not an enemy city")
	ErrTargetNotRuin      = errors.New("target is not a destroyed city")
	ErrTargetBlocked      = errors.New("target is blocked")
	ErrTargetOccupied     = errors.New("target is occupied")
	ErrUnknownAction      = errors.New("unknown action")
	ErrGameOver           = errors.New("game is over")
	ErrNotPlayerTurn      = errors.New("not the player's turn")
)

// ActionError ties a rejection to the action that caused it
type ActionError struct {
	Action Action
	Err    error
}

func (e *ActionError) Error() string {
	if e.Action == nil {
		return fmt.Sprintf("action: %v", e.Err)
	}
	source := e.Action.GetSource()
	if target, ok := e.Action.GetTarget(); ok {
		return fmt.Sprintf("%s: %s from %s to %s: %v", e.Action.GetActor(), e.Action.GetType(), source, target, e.Err)
	}
	return fmt.Sprintf("%s: %s at %s: %v", e.Action.GetActor(), e.Action.GetType(), source, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// WrapActionError wraps err with action context. A nil err stays nil.
func WrapActionError(action Action, err error) error {
	if err == nil {
		return nil
	}
	return &ActionError{Action: action, Err: err}
}

// GameStateError ties a failure to the turn and step it happened in
type GameStateError struct {
	Turn  int
	Phase string
	Err   error
}

func (e *GameStateError) Error() string {
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Phase, e.Err)
}

func (e *GameStateError) Unwrap() error { return e.Err }

// WrapGameStateError wraps err with turn context. A nil err stays nil.
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return &GameStateError{Turn: turn, Phase: phase, Err: err}
}
