package states

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/cellwars/internal/game/events"
)

// State represents a turn phase with lifecycle callbacks
type State interface {
	// Phase returns the TurnPhase this state represents
	Phase() TurnPhase

	// Enter is called when transitioning into this state
	Enter(ctx *TurnContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *TurnContext) error

	// Validate checks if the state can be entered given the context
	Validate(ctx *TurnContext) error
}

// Transition represents a state transition in the history
type Transition struct {
	From      TurnPhase
	To        TurnPhase
	Timestamp time.Time
	Reason    string
}

// StateMachine sequences the turn phases of one session. It is owned by the
// play loop and not safe for concurrent use.
type StateMachine struct {
	currentPhase   TurnPhase
	states         map[TurnPhase]State
	context        *TurnContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine creates a new state machine in PhaseSetup
func NewStateMachine(ctx *TurnContext, publisher events.Publisher) *StateMachine {
	if publisher == nil {
		publisher = events.Discard
	}
	sm := &StateMachine{
		currentPhase:   PhaseSetup,
		states:         make(map[TurnPhase]State),
		context:        ctx,
		history:        make([]Transition, 0, 64),
		maxHistorySize: 1000,
		publisher:      publisher,
	}

	sm.registerDefaultStates()

	return sm
}

func (sm *StateMachine) registerDefaultStates() {
	sm.RegisterState(NewSetupState())
	sm.RegisterState(NewPlayerTurnState())
	sm.RegisterState(NewComputerTurnState())
	for _, phase := range []TurnPhase{PhasePlayerWon, PhaseComputerWon, PhaseStalemate, PhaseAborted} {
		sm.RegisterState(NewEndedState(phase))
	}
}

// RegisterState registers a state implementation, replacing any previous one
// for the same phase
func (sm *StateMachine) RegisterState(state State) {
	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current turn phase
func (sm *StateMachine) CurrentPhase() TurnPhase {
	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(targetPhase TurnPhase, reason string) error {
	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return fmt.Errorf("invalid transition from %s to %s", sm.currentPhase, targetPhase)
	}

	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]

	if !hasTargetState {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
			// Continue with transition despite exit error
		}
	}

	previousPhase := sm.currentPhase
	previousReason := sm.context.Reason
	sm.currentPhase = targetPhase
	if targetPhase.IsTerminal() {
		sm.context.Reason = reason
	}

	if err := targetState.Enter(sm.context); err != nil {
		// Rollback on enter failure
		sm.currentPhase = previousPhase
		sm.context.Reason = previousReason
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.addToHistory(Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	sm.publisher.Publish(events.NewStateTransitionEvent(
		sm.context.GameID,
		previousPhase.String(),
		targetPhase.String(),
		reason,
	))

	sm.context.Logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

// addToHistory adds a transition to the history, maintaining max size
func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)

	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the turn context
func (sm *StateMachine) GetContext() *TurnContext {
	return sm.context
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase TurnPhase) bool {
	return sm.currentPhase.CanTransitionTo(targetPhase)
}
