package states

import "fmt"

// TurnPhase represents where a session is in its turn cycle
type TurnPhase int

const (
	// PhaseSetup - map generation, before the first turn
	PhaseSetup TurnPhase = iota

	// PhasePlayerTurn - waiting for player input
	PhasePlayerTurn

	// PhaseComputerTurn - the opponent is acting
	PhaseComputerTurn

	// PhasePlayerWon - every computer city is destroyed
	PhasePlayerWon

	// PhaseComputerWon - every player city is destroyed
	PhaseComputerWon

	// PhaseStalemate - nobody can win any more, or the turn limit ran out
	PhaseStalemate

	// PhaseAborted - the player quit
	PhaseAborted
)

var phaseNames = map[TurnPhase]string{
	PhaseSetup:        "setup",
	PhasePlayerTurn:   "player_turn",
	PhaseComputerTurn: "computer_turn",
	PhasePlayerWon:    "player_won",
	PhaseComputerWon:  "computer_won",
	PhaseStalemate:    "stalemate",
	PhaseAborted:      "aborted",
}

// String returns the string representation of a TurnPhase
func (p TurnPhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// IsTerminal returns true if no transition leaves the phase
func (p TurnPhase) IsTerminal() bool {
	switch p {
	case PhasePlayerWon, PhaseComputerWon, PhaseStalemate, PhaseAborted:
		return true
	default:
		return false
	}
}

// CanReceiveActions returns true if the player may act in this phase
func (p TurnPhase) CanReceiveActions() bool {
	return p == PhasePlayerTurn
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p TurnPhase) AllowedTransitions() []TurnPhase {
	switch p {
	case PhaseSetup:
		return []TurnPhase{PhasePlayerTurn, PhaseAborted}
	case PhasePlayerTurn:
		return []TurnPhase{PhaseComputerTurn, PhasePlayerWon, PhaseComputerWon, PhaseStalemate, PhaseAborted}
	case PhaseComputerTurn:
		return []TurnPhase{PhasePlayerTurn, PhasePlayerWon, PhaseComputerWon, PhaseStalemate}
	default:
		return []TurnPhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p TurnPhase) CanTransitionTo(target TurnPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
