package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/cellwars/internal/config"
	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/rs/zerolog"
)

// ConfigFromSettings builds a session configuration from loaded settings.
// The event bus and opponent are left for the caller.
func ConfigFromSettings(c *config.Config, logger zerolog.Logger) (GameConfig, error) {
	difficulty, err := core.ParseDifficulty(c.Game.Difficulty)
	if err != nil {
		return GameConfig{}, fmt.Errorf("game.difficulty: %w", err)
	}
	costs := CostsFromSettings(c.Game.Costs)

	seed := c.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug().Int64("seed", seed).Msg("Seeding game RNG")

	return GameConfig{
		GridSize:   c.Game.GridSize,
		Difficulty: difficulty,
		MaxTurns:   c.Game.MaxTurns,
		Costs:      &costs,
		Rng:        rand.New(rand.NewSource(seed)),
		Logger:     logger,
	}, nil
}

// CostsFromSettings converts configured prices into core.Costs
func CostsFromSettings(c config.CostsConfig) core.Costs {
	return core.Costs{
		DestroyWall: c.DestroyWall,
		ClearRuin:   c.ClearRuin,
		FoundCity:   c.FoundCity,
		Attack:      c.Attack,
	}
}
