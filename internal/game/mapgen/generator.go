package mapgen

import (
	"errors"
	"math/rand"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
)

// ErrBoardTooSmall is returned when the grid cannot hold two distinct cities
var ErrBoardTooSmall = errors.New("board needs at least two cells")

// MapConfig holds configuration for map generation
type MapConfig struct {
	Size       int
	Difficulty core.Difficulty
}

// DefaultMapConfig returns the reference grid for the given difficulty
func DefaultMapConfig(d core.Difficulty) MapConfig {
	return MapConfig{
		Size:       core.DefaultGridSize,
		Difficulty: d,
	}
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap creates a new board with both starting cities placed and
// walls scattered over the remaining cells. The returned position is the
// player's city, where the cursor starts.
func (g *Generator) GenerateMap() (*core.Board, core.Position, error) {
	if g.config.Size < 2 {
		return nil, core.Position{}, ErrBoardTooSmall
	}

	board := core.NewBoard(g.config.Size)

	playerPos, computerPos := g.pickStartPositions(board)
	if err := g.placeStartCities(board, playerPos, computerPos); err != nil {
		return nil, core.Position{}, err
	}
	g.placeWalls(board)

	return board, playerPos, nil
}

func (g *Generator) randomPosition(b *core.Board) core.Position {
	return core.Position{X: g.rng.Intn(b.Size), Y: g.rng.Intn(b.Size)}
}

// pickStartPositions draws the player cell, then redraws the computer cell
// until it differs
func (g *Generator) pickStartPositions(b *core.Board) (core.Position, core.Position) {
	player := g.randomPosition(b)
	computer := g.randomPosition(b)
	for computer == player {
		computer = g.randomPosition(b)
	}
	return player, computer
}

func (g *Generator) placeStartCities(b *core.Board, playerPos, computerPos core.Position) error {
	d := g.config.Difficulty
	resources := d.StartingResources()

	if err := b.PlaceCity(playerPos, core.NewCity(core.OwnedByPlayer, d.StartingPlayerLevel(), resources)); err != nil {
		return err
	}
	return b.PlaceCity(computerPos, core.NewCity(core.OwnedByComputer, d.StartingEnemyLevel(), resources))
}

// placeWalls runs one Bernoulli trial per non-city cell
func (g *Generator) placeWalls(b *core.Board) {
	p := g.config.Difficulty.WallProbability()
	for i := range b.Cells {
		cell := &b.Cells[i]
		if cell.HasCity() {
			continue
		}
		cell.Blocked = g.rng.Float64() < p
	}
}
