package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/rs/zerolog"
)

// Outcome is the result of a win condition check
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomePlayerWon
	OutcomeComputerWon
	OutcomeStalemate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomePlayerWon:
		return "player_won"
	case OutcomeComputerWon:
		return "computer_won"
	case OutcomeStalemate:
		return "stalemate"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// IsOver reports whether the outcome ends the game
func (o Outcome) IsOver() bool { return o != OutcomeNone }

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger   zerolog.Logger
	maxTurns int
}

// NewWinConditionChecker creates a new win condition checker.
// maxTurns <= 0 disables the turn limit.
func NewWinConditionChecker(logger zerolog.Logger, maxTurns int) *WinConditionChecker {
	return &WinConditionChecker{
		logger:   logger.With().Str("component", "WinConditionChecker").Logger(),
		maxTurns: maxTurns,
	}
}

// Check evaluates the board after an action or turn change. A faction loses
// when none of its cities are left standing; ruins do not count.
func (wc *WinConditionChecker) Check(board *core.Board, turn int) (Outcome, string) {
	playerCities := board.CountCities(core.OwnedByPlayer)
	computerCities := board.CountCities(core.OwnedByComputer)

	outcome, reason := OutcomeNone, ""
	switch {
	case playerCities == 0 && computerCities == 0:
		outcome, reason = OutcomeStalemate, "no cities left on either side"
	case computerCities == 0:
		outcome, reason = OutcomePlayerWon, "all computer cities destroyed"
	case playerCities == 0:
		outcome, reason = OutcomeComputerWon, "all player cities destroyed"
	case wc.maxTurns > 0 && turn > wc.maxTurns:
		outcome, reason = OutcomeStalemate, fmt.Sprintf("turn limit of %d reached", wc.maxTurns)
	}

	wc.logger.Debug().
		Int("player_cities", playerCities).
		Int("computer_cities", computerCities).
		Int("turn", turn).
		Stringer("outcome", outcome).
		Msg("Win condition check complete")
	if outcome.IsOver() {
		wc.logger.Info().Stringer("outcome", outcome).Str("reason", reason).Msg("Game over")
	}
	return outcome, reason
}
