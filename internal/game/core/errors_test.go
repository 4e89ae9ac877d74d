package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapActionError(t *testing.T) {
	tests := []struct {
		name     string
		action   Action
		err      error
		expected string
		isNil    bool
	}{
		{
			name:   "nil error returns nil",
			action: &ProduceAction{Actor: OwnedByPlayer},
			err:    nil,
			isNil:  true,
		},
		{
			name:     "target action",
			action:   &DestroyWallAction{Actor: OwnedByPlayer, Source: Position{1, 2}, Target: Position{3, 4}},
			err:      ErrNotEnoughResources,
			expected: "player: destroy wall from (1,2) to (3,4): not enough resources",
		},
		{
			name:     "self action",
			action:   &ProduceAction{Actor: OwnedByComputer, Source: Position{5, 5}},
			err:      ErrNoCityAtSource,
			expected: "computer: produce at (5,5): no city at source",
		},
		{
			name:     "nil action",
			action:   nil,
			err:      ErrUnknownAction,
			expected: "action: unknown action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapActionError(tt.action, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapActionError_ErrorsAs(t *testing.T) {
	action := &AttackCityAction{Actor: OwnedByPlayer, Source: Position{0, 0}, Target: Position{1, 0}}
	err := fmt.Errorf("apply: %w", WrapActionError(action, ErrTargetNotEnemy))

	var actionErr *ActionError
	require.True(t, errors.As(err, &actionErr))
	assert.Same(t, action, actionErr.Action)
	assert.ErrorIs(t, err, ErrTargetNotEnemy)
}

func TestWrapGameStateError(t *testing.T) {
	assert.Nil(t, WrapGameStateError(3, "computer turn", nil))

	wrapped := WrapGameStateError(12, "computer turn", ErrGameOver)
	require.NotNil(t, wrapped)
	assert.Equal(t, "turn 12: computer turn: game is over", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrGameOver)

	var stateErr *GameStateError
	require.True(t, errors.As(wrapped, &stateErr))
	assert.Equal(t, 12, stateErr.Turn)
	assert.Equal(t, "computer turn", stateErr.Phase)
}
