package mapgen

import (
	"math/rand"
	"testing"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRNG provides a random number generator with a fixed seed for deterministic tests.
func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func TestDefaultMapConfig(t *testing.T) {
	config := DefaultMapConfig(core.Hard)
	assert.Equal(t, core.DefaultGridSize, config.Size)
	assert.Equal(t, core.Hard, config.Difficulty)
}

func TestNewGenerator(t *testing.T) {
	config := DefaultMapConfig(core.Standard)
	rng := newTestRNG()
	generator := NewGenerator(config, rng)

	require.NotNil(t, generator)
	assert.Equal(t, config, generator.config)
	assert.Same(t, rng, generator.rng)
}

func TestGenerateMap_Invariants(t *testing.T) {
	rng := newTestRNG()

	for _, d := range core.Difficulties() {
		t.Run(d.String(), func(t *testing.T) {
			for i := 0; i < 200; i++ {
				board, cursor, err := NewGenerator(DefaultMapConfig(d), rng).GenerateMap()
				require.NoError(t, err)

				players := board.CityPositions(core.OwnedByPlayer)
				computers := board.CityPositions(core.OwnedByComputer)
				require.Len(t, players, 1)
				require.Len(t, computers, 1)
				assert.NotEqual(t, players[0], computers[0])
				assert.Equal(t, players[0], cursor, "cursor starts on the player city")
				assert.Equal(t, 0, board.CountCities(core.Destroyed))

				for idx, cell := range board.Cells {
					assert.False(t, cell.Blocked && cell.HasCity(), "cell %d is both wall and city", idx)
				}
			}
		})
	}
}

func TestGenerateMap_StartingCities(t *testing.T) {
	tests := []struct {
		difficulty  core.Difficulty
		playerLevel int
		enemyLevel  int
		resources   int
	}{
		{core.Easy, 2, 1, 10},
		{core.Standard, 1, 1, 3},
		{core.Hard, 1, 2, 0},
		{core.NotEvenRemotelyFair, 1, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty.String(), func(t *testing.T) {
			board, cursor, err := NewGenerator(DefaultMapConfig(tt.difficulty), newTestRNG()).GenerateMap()
			require.NoError(t, err)

			player, err := board.CityAt(cursor)
			require.NoError(t, err)
			assert.Equal(t, core.OwnedByPlayer, player.Owner)
			assert.Equal(t, tt.playerLevel, player.CombatLevel)
			assert.Equal(t, tt.playerLevel, player.ProductionLevel)
			assert.Equal(t, tt.resources, player.Resources)

			enemy, err := board.CityAt(board.CityPositions(core.OwnedByComputer)[0])
			require.NoError(t, err)
			assert.Equal(t, tt.enemyLevel, enemy.CombatLevel)
			assert.Equal(t, tt.enemyLevel, enemy.ProductionLevel)
			assert.Equal(t, tt.resources, enemy.Resources)
		})
	}
}

func TestGenerateMap_WallFractionConverges(t *testing.T) {
	const runs = 2000
	rng := newTestRNG()

	for _, d := range core.Difficulties() {
		t.Run(d.String(), func(t *testing.T) {
			walls, free := 0, 0
			for i := 0; i < runs; i++ {
				board, _, err := NewGenerator(DefaultMapConfig(d), rng).GenerateMap()
				require.NoError(t, err)
				walls += board.CountBlocked()
				free += len(board.Cells) - 2
			}
			fraction := float64(walls) / float64(free)
			assert.InDelta(t, d.WallProbability(), fraction, 0.01)
		})
	}
}

func TestGenerateMap_DeterministicPerSeed(t *testing.T) {
	config := DefaultMapConfig(core.Standard)

	a, cursorA, err := NewGenerator(config, rand.New(rand.NewSource(7))).GenerateMap()
	require.NoError(t, err)
	b, cursorB, err := NewGenerator(config, rand.New(rand.NewSource(7))).GenerateMap()
	require.NoError(t, err)

	assert.Equal(t, cursorA, cursorB)
	assert.Equal(t, a, b)
}

func TestGenerateMap_SmallBoards(t *testing.T) {
	for _, size := range []int{-3, 0, 1} {
		_, _, err := NewGenerator(MapConfig{Size: size, Difficulty: core.Easy}, newTestRNG()).GenerateMap()
		assert.ErrorIs(t, err, ErrBoardTooSmall)
	}

	board, _, err := NewGenerator(MapConfig{Size: 2, Difficulty: core.NotEvenRemotelyFair}, newTestRNG()).GenerateMap()
	require.NoError(t, err)
	assert.Equal(t, 1, board.CountCities(core.OwnedByPlayer))
	assert.Equal(t, 1, board.CountCities(core.OwnedByComputer))
}
