package game

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/mitchelldurbincs/cellwars/internal/game/events"
	"github.com/mitchelldurbincs/cellwars/internal/game/rules"
	"github.com/mitchelldurbincs/cellwars/internal/game/states"
)

// Options lists the player's action menu for the city at pos
func (s *Session) Options(pos core.Position) ([]rules.ActionOption, error) {
	return s.legalActions.Options(s.Board, core.OwnedByPlayer, pos)
}

// ValidTargets lists the cells an action of kind from source may be aimed at
func (s *Session) ValidTargets(source core.Position, kind core.ActionKind) []core.Position {
	return s.legalActions.ValidTargets(s.Board, core.OwnedByPlayer, source, kind)
}

// Perform applies one player action. The turn does not end; the player may
// act any number of times before calling EndTurn.
func (s *Session) Perform(action core.Action) error {
	if err := s.requirePlayerTurn("perform"); err != nil {
		return err
	}
	if action != nil && action.GetActor() != core.OwnedByPlayer {
		return core.WrapActionError(action, core.ErrNotOwned)
	}

	if err := s.processor.Apply(s.Board, action); err != nil {
		return err
	}
	s.turnActions++

	s.checkGameOver()
	return nil
}

// EndTurn hands control to the computer and runs its whole turn. On return
// the session is either back in the player's turn or over. A context
// cancelled before the call leaves the player's turn untouched.
func (s *Session) EndTurn(ctx context.Context) error {
	if err := s.requirePlayerTurn("end turn"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return core.WrapGameStateError(s.Turn(), states.PhasePlayerTurn.String(), err)
	}

	turn := s.Turn()
	s.eventBus.Publish(events.NewTurnEndedEvent(s.ID, turn, core.OwnedByPlayer, s.turnActions, time.Since(s.turnStarted)))
	if err := s.stateMachine.TransitionTo(states.PhaseComputerTurn, "player ended turn"); err != nil {
		return core.WrapGameStateError(turn, states.PhasePlayerTurn.String(), err)
	}

	return s.turnProcessor.ProcessComputerTurn(ctx)
}

// Quit abandons the session
func (s *Session) Quit() error {
	if s.IsOver() {
		return core.WrapGameStateError(s.Turn(), s.Phase().String(), core.ErrGameOver)
	}
	if err := s.stateMachine.TransitionTo(states.PhaseAborted, "player quit"); err != nil {
		return core.WrapGameStateError(s.Turn(), s.Phase().String(), err)
	}
	s.publishGameEnded()
	return nil
}

// Outcome maps the session phase to a result; OutcomeNone while running or
// after the player quit
func (s *Session) Outcome() rules.Outcome {
	switch s.Phase() {
	case states.PhasePlayerWon:
		return rules.OutcomePlayerWon
	case states.PhaseComputerWon:
		return rules.OutcomeComputerWon
	case states.PhaseStalemate:
		return rules.OutcomeStalemate
	default:
		return rules.OutcomeNone
	}
}

func (s *Session) requirePlayerTurn(step string) error {
	phase := s.Phase()
	if phase.IsTerminal() {
		s.logger.Warn().Str("step", step).Msg("Attempted to act in a game that is already over")
		return core.WrapGameStateError(s.Turn(), phase.String(), core.ErrGameOver)
	}
	if !phase.CanReceiveActions() {
		s.logger.Warn().Str("step", step).Stringer("phase", phase).Msg("Attempted to act outside the player turn")
		return core.WrapGameStateError(s.Turn(), phase.String(), core.ErrNotPlayerTurn)
	}
	return nil
}

// checkGameOver ends the session if the board or turn count decides it.
// It reports whether the session is over afterwards.
func (s *Session) checkGameOver() bool {
	if s.IsOver() {
		return true
	}

	outcome, reason := s.winCondition.Check(s.Board, s.Turn())
	var phase states.TurnPhase
	switch outcome {
	case rules.OutcomePlayerWon:
		phase = states.PhasePlayerWon
	case rules.OutcomeComputerWon:
		phase = states.PhaseComputerWon
	case rules.OutcomeStalemate:
		phase = states.PhaseStalemate
	default:
		return false
	}

	if err := s.stateMachine.TransitionTo(phase, reason); err != nil {
		s.logger.Error().Err(err).Stringer("outcome", outcome).Msg("Failed to enter terminal phase")
		return false
	}
	s.publishGameEnded()
	return true
}

func (s *Session) publishGameEnded() {
	ctx := s.stateMachine.GetContext()
	s.eventBus.Publish(events.NewGameEndedEvent(
		s.ID,
		s.Phase().String(),
		ctx.Reason,
		ctx.GetElapsedTime(),
		ctx.Turn,
	))
}

// String gives a one-line summary for logs
func (s *Session) String() string {
	return fmt.Sprintf("session %s turn %d %s", s.ID, s.Turn(), s.Phase())
}
