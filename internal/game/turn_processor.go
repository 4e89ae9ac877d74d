package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/mitchelldurbincs/cellwars/internal/game/events"
	"github.com/mitchelldurbincs/cellwars/internal/game/states"
	"github.com/rs/zerolog"
)

// TurnProcessor runs the computer's half of a round
type TurnProcessor struct {
	session *Session
	logger  zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(session *Session) *TurnProcessor {
	return &TurnProcessor{
		session: session,
		logger:  session.logger.With().Str("component", "TurnProcessor").Logger(),
	}
}

// ProcessComputerTurn asks the opponent for its actions, applies them and
// advances to the next round. The session must be in the computer turn.
func (tp *TurnProcessor) ProcessComputerTurn(ctx context.Context) error {
	s := tp.session
	turn := s.Turn()

	if err := tp.validateGameState(); err != nil {
		return err
	}
	if err := tp.checkContext(ctx, "before opponent"); err != nil {
		return core.WrapGameStateError(turn, states.PhaseComputerTurn.String(), fmt.Errorf("context cancelled: %w", err))
	}

	turnLogger := tp.logger.With().Int("turn", turn).Logger()
	turnStartTime := time.Now()
	s.eventBus.Publish(events.NewTurnStartedEvent(s.ID, turn, core.OwnedByComputer))

	actions, err := s.opponent.TakeTurn(ctx, s.Board.Clone(), turn)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return core.WrapGameStateError(turn, states.PhaseComputerTurn.String(), fmt.Errorf("context cancelled: %w", err))
		}
		// A broken opponent forfeits its turn rather than the game
		turnLogger.Error().Err(err).Msg("Opponent failed, passing its turn")
		actions = nil
	}

	applied, err := tp.processActionsPhase(ctx, actions, turnLogger)
	if err != nil {
		return err
	}

	s.eventBus.Publish(events.NewTurnEndedEvent(s.ID, turn, core.OwnedByComputer, applied, time.Since(turnStartTime)))
	if s.IsOver() {
		return nil
	}

	return tp.advanceRound(turnLogger)
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.session.Turn()).
			Str("phase", phase).
			Msg("Computer turn cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the computer is the side to move
func (tp *TurnProcessor) validateGameState() error {
	s := tp.session
	phase := s.Phase()
	if phase.IsTerminal() {
		tp.logger.Warn().Int("turn", s.Turn()).Msg("Attempted to run computer turn in a game that is already over")
		return core.WrapGameStateError(s.Turn(), phase.String(), core.ErrGameOver)
	}
	if phase != states.PhaseComputerTurn {
		tp.logger.Warn().Stringer("current_phase", phase).Int("turn", s.Turn()).Msg("Attempted to run computer turn out of phase")
		return core.WrapGameStateError(s.Turn(), phase.String(), fmt.Errorf("game is in %s phase, not the computer turn", phase))
	}
	return nil
}

// processActionsPhase applies the opponent's actions in order. Rejected
// actions are skipped. It stops early once the game is decided.
func (tp *TurnProcessor) processActionsPhase(ctx context.Context, actions []core.Action, turnLogger zerolog.Logger) (int, error) {
	s := tp.session
	turnLogger.Debug().Int("num_actions_submitted", len(actions)).Msg("Processing computer actions")

	applied := 0
	for i, action := range actions {
		if err := tp.checkContext(ctx, "computer actions"); err != nil {
			return applied, core.WrapGameStateError(s.Turn(), states.PhaseComputerTurn.String(), fmt.Errorf("context cancelled: %w", err))
		}

		if action != nil && action.GetActor() != core.OwnedByComputer {
			err := core.WrapActionError(action, core.ErrNotOwned)
			s.eventBus.Publish(events.NewActionRejectedEvent(s.ID, action, err, s.Turn()))
			turnLogger.Warn().Err(err).Int("index", i).Msg("Opponent submitted an action for the wrong side")
			continue
		}

		if err := s.processor.Apply(s.Board, action); err != nil {
			turnLogger.Debug().Err(err).Int("index", i).Msg("Computer action rejected")
			continue
		}
		applied++

		if s.checkGameOver() {
			turnLogger.Debug().Int("remaining", len(actions)-i-1).Msg("Game decided during computer turn")
			break
		}
	}

	turnLogger.Debug().Int("applied", applied).Msg("Finished processing computer actions")
	return applied, nil
}

// advanceRound bumps the turn counter and hands control back to the player,
// unless the turn limit ends the game first
func (tp *TurnProcessor) advanceRound(turnLogger zerolog.Logger) error {
	s := tp.session
	ctx := s.stateMachine.GetContext()
	ctx.Turn++
	s.processor.SetTurn(ctx.Turn)

	if s.checkGameOver() {
		return nil
	}

	if err := s.stateMachine.TransitionTo(states.PhasePlayerTurn, "computer ended turn"); err != nil {
		return core.WrapGameStateError(ctx.Turn, states.PhaseComputerTurn.String(), err)
	}
	s.turnActions = 0
	s.turnStarted = time.Now()
	s.eventBus.Publish(events.NewTurnStartedEvent(s.ID, ctx.Turn, core.OwnedByPlayer))

	turnLogger.Debug().Int("next_turn", ctx.Turn).Msg("Round complete")
	return nil
}
