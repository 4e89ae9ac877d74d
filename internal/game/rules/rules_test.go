package rules

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
)

func boardWith(t *testing.T, size int, cities map[core.Position]core.Ownership) *core.Board {
	t.Helper()
	board := core.NewBoard(size)
	for pos, owner := range cities {
		city := core.NewCity(owner, 1, 0)
		if owner == core.Destroyed {
			city.Destroy()
		}
		require.NoError(t, board.PlaceCity(pos, city))
	}
	return board
}

func TestWinConditionChecker_Check(t *testing.T) {
	tests := []struct {
		name     string
		cities   map[core.Position]core.Ownership
		maxTurns int
		turn     int
		expected Outcome
	}{
		{
			name:     "both sides alive",
			cities:   map[core.Position]core.Ownership{{X: 0, Y: 0}: core.OwnedByPlayer, {X: 2, Y: 2}: core.OwnedByComputer},
			turn:     1,
			expected: OutcomeNone,
		},
		{
			name:     "computer reduced to ruins",
			cities:   map[core.Position]core.Ownership{{X: 0, Y: 0}: core.OwnedByPlayer, {X: 2, Y: 2}: core.Destroyed},
			turn:     3,
			expected: OutcomePlayerWon,
		},
		{
			name:     "player reduced to ruins",
			cities:   map[core.Position]core.Ownership{{X: 0, Y: 0}: core.Destroyed, {X: 2, Y: 2}: core.OwnedByComputer},
			turn:     3,
			expected: OutcomeComputerWon,
		},
		{
			name:     "nobody left",
			cities:   map[core.Position]core.Ownership{{X: 0, Y: 0}: core.Destroyed, {X: 2, Y: 2}: core.Destroyed},
			turn:     3,
			expected: OutcomeStalemate,
		},
		{
			name:     "turn limit exceeded",
			cities:   map[core.Position]core.Ownership{{X: 0, Y: 0}: core.OwnedByPlayer, {X: 2, Y: 2}: core.OwnedByComputer},
			maxTurns: 10,
			turn:     11,
			expected: OutcomeStalemate,
		},
		{
			name:     "last allowed turn",
			cities:   map[core.Position]core.Ownership{{X: 0, Y: 0}: core.OwnedByPlayer, {X: 2, Y: 2}: core.OwnedByComputer},
			maxTurns: 10,
			turn:     10,
			expected: OutcomeNone,
		},
		{
			name:     "elimination beats turn limit",
			cities:   map[core.Position]core.Ownership{{X: 0, Y: 0}: core.OwnedByPlayer},
			maxTurns: 10,
			turn:     50,
			expected: OutcomePlayerWon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wc := NewWinConditionChecker(zerolog.Nop(), tt.maxTurns)
			outcome, reason := wc.Check(boardWith(t, 3, tt.cities), tt.turn)
			assert.Equal(t, tt.expected, outcome)
			assert.Equal(t, outcome.IsOver(), reason != "")
		})
	}
}

func TestLegalActionCalculator_Options(t *testing.T) {
	board := boardWith(t, 3, map[core.Position]core.Ownership{
		{X: 0, Y: 0}: core.OwnedByPlayer,
		{X: 2, Y: 2}: core.OwnedByComputer,
		{X: 2, Y: 0}: core.Destroyed,
	})
	require.NoError(t, board.SetBlocked(core.Position{X: 1, Y: 0}, true))
	city, _ := board.CityAt(core.Position{X: 0, Y: 0})
	city.Resources = 10

	lac := NewLegalActionCalculator(core.DefaultCosts())
	options, err := lac.Options(board, core.OwnedByPlayer, core.Position{X: 0, Y: 0})
	require.NoError(t, err)
	require.Len(t, options, len(core.ActionKinds()))

	byKind := make(map[core.ActionKind]ActionOption)
	for i, opt := range options {
		assert.Equal(t, core.ActionKinds()[i], opt.Kind, "menu order")
		byKind[opt.Kind] = opt
	}

	assert.True(t, byKind[core.ActionProduce].Available())
	assert.Equal(t, 5, byKind[core.ActionUpgradeAttack].Cost)
	assert.True(t, byKind[core.ActionUpgradeAttack].Affordable)

	assert.Equal(t, []core.Position{{X: 1, Y: 0}}, byKind[core.ActionDestroyWall].Targets)
	assert.True(t, byKind[core.ActionDestroyWall].Available())

	assert.Equal(t, []core.Position{{X: 2, Y: 2}}, byKind[core.ActionAttackCity].Targets)
	assert.Equal(t, []core.Position{{X: 2, Y: 0}}, byKind[core.ActionClearRuin].Targets)

	found := byKind[core.ActionGenerateCity]
	assert.Len(t, found.Targets, 5)
	assert.False(t, found.Affordable)
	assert.False(t, found.Available())
}

func TestLegalActionCalculator_OptionsRejectsForeignSource(t *testing.T) {
	board := boardWith(t, 3, map[core.Position]core.Ownership{{X: 2, Y: 2}: core.OwnedByComputer})
	lac := NewLegalActionCalculator(core.DefaultCosts())

	_, err := lac.Options(board, core.OwnedByPlayer, core.Position{X: 2, Y: 2})
	assert.ErrorIs(t, err, core.ErrNotOwned)

	_, err = lac.Options(board, core.OwnedByPlayer, core.Position{X: 0, Y: 0})
	assert.ErrorIs(t, err, core.ErrNoCityAtSource)
}

func TestLegalActionCalculator_ValidTargetsSelfKinds(t *testing.T) {
	board := boardWith(t, 3, map[core.Position]core.Ownership{{X: 0, Y: 0}: core.OwnedByPlayer})
	lac := NewLegalActionCalculator(core.DefaultCosts())
	assert.Nil(t, lac.ValidTargets(board, core.OwnedByPlayer, core.Position{}, core.ActionProduce))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "player_won", OutcomePlayerWon.String())
	assert.Equal(t, "stalemate", OutcomeStalemate.String())
	assert.False(t, OutcomeNone.IsOver())
}
