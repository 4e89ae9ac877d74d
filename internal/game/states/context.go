package states

import (
	"time"

	"github.com/rs/zerolog"
)

// TurnContext provides session information to states for making decisions
type TurnContext struct {
	// GameID uniquely identifies the session
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// Turn is the 1-based number of the current player+computer round
	Turn int

	// StartTime is when the first player turn began
	StartTime time.Time

	// EndTime is when a terminal phase was entered
	EndTime time.Time

	// Reason explains the most recent transition into a terminal phase
	Reason string
}

// NewTurnContext creates a new turn context
func NewTurnContext(gameID string, logger zerolog.Logger) *TurnContext {
	return &TurnContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
	}
}

// GetElapsedTime returns the time from the first turn until the game ended,
// or until now while it is still running
func (tc *TurnContext) GetElapsedTime() time.Duration {
	if tc.StartTime.IsZero() {
		return 0
	}
	if !tc.EndTime.IsZero() {
		return tc.EndTime.Sub(tc.StartTime)
	}
	return time.Since(tc.StartTime)
}
