package game

import (
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/mitchelldurbincs/cellwars/internal/game/events"
	"github.com/mitchelldurbincs/cellwars/internal/game/processor"
	"github.com/mitchelldurbincs/cellwars/internal/game/rules"
	"github.com/mitchelldurbincs/cellwars/internal/game/states"
	"github.com/rs/zerolog"
)

// GameConfig holds everything needed to start a session. Zero values are
// replaced with defaults by the initializer.
type GameConfig struct {
	GameID     string
	GridSize   int
	Difficulty core.Difficulty
	// MaxTurns ends the game in a stalemate once exceeded; 0 disables the limit
	MaxTurns int
	// Costs left nil uses core.DefaultCosts; an explicit table is kept as is,
	// including free actions
	Costs    *core.Costs
	Rng      *rand.Rand
	Logger   zerolog.Logger
	EventBus *events.EventBus
	Opponent Opponent
}

// Session is the single mutable aggregate of a running game. It owns the
// board; the opponent only ever sees copies.
type Session struct {
	ID         string
	Board      *core.Board
	Difficulty core.Difficulty
	Cursor     core.Position
	// Status is a transient message for the player, cleared on the next move
	Status string
	// Menu holds the action options of the city under the cursor while open
	Menu []rules.ActionOption

	logger        zerolog.Logger
	rng           *rand.Rand
	eventBus      *events.EventBus
	processor     *processor.ActionProcessor
	winCondition  *rules.WinConditionChecker
	legalActions  *rules.LegalActionCalculator
	stateMachine  *states.StateMachine
	opponent      Opponent
	turnProcessor *TurnProcessor

	// player actions applied and start time of the current player turn
	turnActions int
	turnStarted time.Time
}

// Phase returns the current turn phase
func (s *Session) Phase() states.TurnPhase {
	return s.stateMachine.CurrentPhase()
}

// Turn returns the 1-based round number
func (s *Session) Turn() int {
	return s.stateMachine.GetContext().Turn
}

// IsOver reports whether the session reached a terminal phase
func (s *Session) IsOver() bool {
	return s.Phase().IsTerminal()
}

// Reason explains why the session ended; empty while it is running
func (s *Session) Reason() string {
	return s.stateMachine.GetContext().Reason
}

// EventBus exposes the session's bus for subscribers
func (s *Session) EventBus() *events.EventBus {
	return s.eventBus
}

// Costs returns the action prices in force for this session
func (s *Session) Costs() core.Costs {
	return s.processor.Costs()
}

// History returns the turn phase transitions so far
func (s *Session) History() []states.Transition {
	return s.stateMachine.GetHistory()
}

// CursorCell returns the cell under the cursor
func (s *Session) CursorCell() *core.Cell {
	cell, _ := s.Board.CellAt(s.Cursor)
	return cell
}
