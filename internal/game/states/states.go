package states

import (
	"fmt"
	"time"
)

// SetupState is the initial phase while the map is generated
type SetupState struct{}

func NewSetupState() State {
	return &SetupState{}
}

func (s *SetupState) Phase() TurnPhase {
	return PhaseSetup
}

func (s *SetupState) Enter(ctx *TurnContext) error {
	ctx.Logger.Debug().Msg("Entering Setup state")
	return nil
}

func (s *SetupState) Exit(ctx *TurnContext) error {
	ctx.Logger.Debug().Msg("Setup complete")
	return nil
}

func (s *SetupState) Validate(ctx *TurnContext) error {
	return nil
}

// PlayerTurnState waits for the player's commands
type PlayerTurnState struct{}

func NewPlayerTurnState() State {
	return &PlayerTurnState{}
}

func (s *PlayerTurnState) Phase() TurnPhase {
	return PhasePlayerTurn
}

func (s *PlayerTurnState) Enter(ctx *TurnContext) error {
	if ctx.StartTime.IsZero() {
		ctx.StartTime = time.Now()
	}
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Player turn started")
	return nil
}

func (s *PlayerTurnState) Exit(ctx *TurnContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Player turn ended")
	return nil
}

func (s *PlayerTurnState) Validate(ctx *TurnContext) error {
	if ctx.Turn < 1 {
		return fmt.Errorf("player turn needs a turn number of at least 1, got %d", ctx.Turn)
	}
	return nil
}

// ComputerTurnState runs the opponent
type ComputerTurnState struct{}

func NewComputerTurnState() State {
	return &ComputerTurnState{}
}

func (s *ComputerTurnState) Phase() TurnPhase {
	return PhaseComputerTurn
}

func (s *ComputerTurnState) Enter(ctx *TurnContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Computer turn started")
	return nil
}

func (s *ComputerTurnState) Exit(ctx *TurnContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Computer turn ended")
	return nil
}

func (s *ComputerTurnState) Validate(ctx *TurnContext) error {
	return nil
}

// EndedState is shared by every terminal phase
type EndedState struct {
	phase TurnPhase
}

func NewEndedState(phase TurnPhase) State {
	return &EndedState{phase: phase}
}

func (s *EndedState) Phase() TurnPhase {
	return s.phase
}

func (s *EndedState) Enter(ctx *TurnContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Str("outcome", s.phase.String()).
		Str("reason", ctx.Reason).
		Int("turn", ctx.Turn).
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *TurnContext) error {
	return fmt.Errorf("cannot leave terminal phase %s", s.phase)
}

func (s *EndedState) Validate(ctx *TurnContext) error {
	if !s.phase.IsTerminal() {
		return fmt.Errorf("%s is not a terminal phase", s.phase)
	}
	return nil
}
