package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
)

// Cells of the board built by SimpleBoard
var (
	PlayerCity   = core.Position{X: 0, Y: 0}
	ComputerCity = core.Position{X: 4, Y: 4}
	Wall         = core.Position{X: 1, Y: 0}
	EmptyCell    = core.Position{X: 0, Y: 1}
)

// StartingResources is the player city's stock on SimpleBoard
const StartingResources = 30

// SimpleBoard creates a 5x5 board with a level 1 player city holding 30
// resources in the top left corner, a level 1 computer city with nothing in
// the bottom right corner and a wall east of the player.
func SimpleBoard(t testing.TB) *core.Board {
	t.Helper()
	return CreateTestBoard(t, 5, map[core.Position]*core.City{
		PlayerCity:   core.NewCity(core.OwnedByPlayer, 1, StartingResources),
		ComputerCity: core.NewCity(core.OwnedByComputer, 1, 0),
	}, Wall)
}

// CreateTestBoard creates a size x size board with the given cities and walls
func CreateTestBoard(t testing.TB, size int, cities map[core.Position]*core.City, walls ...core.Position) *core.Board {
	t.Helper()
	board := core.NewBoard(size)
	for pos, city := range cities {
		require.NoError(t, board.PlaceCity(pos, city))
	}
	for _, pos := range walls {
		require.NoError(t, board.SetBlocked(pos, true))
	}
	return board
}
