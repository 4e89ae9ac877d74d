package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/mitchelldurbincs/cellwars/internal/game/events"
	"github.com/mitchelldurbincs/cellwars/internal/game/mapgen"
	"github.com/mitchelldurbincs/cellwars/internal/game/processor"
	"github.com/mitchelldurbincs/cellwars/internal/game/rules"
	"github.com/mitchelldurbincs/cellwars/internal/game/states"
	"github.com/rs/zerolog"
)

// SessionInitializer handles the setup of a new session
type SessionInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewSessionInitializer creates a new session initializer
func NewSessionInitializer(cfg GameConfig) *SessionInitializer {
	return &SessionInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "GameSession").Logger(),
	}
}

// NewSession generates a map and returns a session waiting for the player's first move
func NewSession(ctx context.Context, cfg GameConfig) (*Session, error) {
	return NewSessionInitializer(cfg).Initialize(ctx)
}

// Initialize creates and initializes a new session
func (si *SessionInitializer) Initialize(ctx context.Context) (*Session, error) {
	select {
	case <-ctx.Done():
		si.logger.Error().Err(ctx.Err()).Msg("Session creation cancelled before map generation")
		return nil, ctx.Err()
	default:
	}

	si.setupDefaults()

	board, cursor, err := si.generateMap()
	if err != nil {
		return nil, fmt.Errorf("map generation failed: %w", err)
	}

	session := si.createSession(board, cursor)

	session.eventBus.Publish(events.NewGameStartedEvent(
		session.ID,
		board.Size,
		si.config.Difficulty.String(),
		cursor,
		board.CityPositions(core.OwnedByComputer)[0],
		board.CountBlocked(),
	))

	if err := si.startFirstTurn(session); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	si.logger.Info().
		Str("game_id", session.ID).
		Int("grid_size", board.Size).
		Stringer("difficulty", si.config.Difficulty).
		Int("max_turns", si.config.MaxTurns).
		Msg("Session created successfully")

	return session, nil
}

// setupDefaults fills in missing configuration
func (si *SessionInitializer) setupDefaults() {
	if si.config.Rng == nil {
		si.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		si.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if si.config.GameID == "" {
		si.config.GameID = uuid.NewString()
	}
	if si.config.GridSize == 0 {
		si.config.GridSize = core.DefaultGridSize
	}
	if si.config.Costs == nil {
		costs := core.DefaultCosts()
		si.config.Costs = &costs
	}
	if si.config.EventBus == nil {
		si.config.EventBus = events.NewEventBus(si.logger)
	}
	if si.config.Opponent == nil {
		si.logger.Debug().Msg("No opponent provided, computer will pass every turn")
		si.config.Opponent = IdleOpponent{}
	}
}

func (si *SessionInitializer) generateMap() (*core.Board, core.Position, error) {
	generator := mapgen.NewGenerator(mapgen.MapConfig{
		Size:       si.config.GridSize,
		Difficulty: si.config.Difficulty,
	}, si.config.Rng)
	return generator.GenerateMap()
}

// createSession wires the engine components around the generated board
func (si *SessionInitializer) createSession(board *core.Board, cursor core.Position) *Session {
	cfg := si.config
	logger := si.logger.With().Str("game_id", cfg.GameID).Logger()

	turnContext := states.NewTurnContext(cfg.GameID, logger)

	s := &Session{
		ID:         cfg.GameID,
		Board:      board,
		Difficulty: cfg.Difficulty,
		Cursor:     cursor,

		logger:   logger,
		rng:      cfg.Rng,
		eventBus: cfg.EventBus,
		processor: processor.NewActionProcessor(logger, cfg.Rng, processor.Config{
			GameID:    cfg.GameID,
			Costs:     *cfg.Costs,
			Publisher: cfg.EventBus,
		}),
		winCondition: rules.NewWinConditionChecker(logger, cfg.MaxTurns),
		legalActions: rules.NewLegalActionCalculator(*cfg.Costs),
		stateMachine: states.NewStateMachine(turnContext, cfg.EventBus),
		opponent:     cfg.Opponent,
	}
	s.turnProcessor = NewTurnProcessor(s)
	return s
}

// startFirstTurn moves the session out of setup into the player's first turn
func (si *SessionInitializer) startFirstTurn(s *Session) error {
	s.stateMachine.GetContext().Turn = 1
	s.processor.SetTurn(1)
	if err := s.stateMachine.TransitionTo(states.PhasePlayerTurn, "map generated"); err != nil {
		si.logger.Error().Err(err).Msg("Failed to transition to PlayerTurn state")
		return err
	}
	s.turnStarted = time.Now()
	s.eventBus.Publish(events.NewTurnStartedEvent(s.ID, 1, core.OwnedByPlayer))
	return nil
}
