package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/mitchelldurbincs/cellwars/internal/game/events"
	"github.com/mitchelldurbincs/cellwars/internal/game/rules"
	"github.com/mitchelldurbincs/cellwars/internal/game/states"
)

func scripted(actions ...core.Action) Opponent {
	return OpponentFunc(func(context.Context, *core.Board, int) ([]core.Action, error) {
		return actions, nil
	})
}

func TestEndTurn_IdleOpponent(t *testing.T) {
	s, rec := newTestSession(t, GameConfig{})

	require.NoError(t, s.EndTurn(context.Background()))

	assert.Equal(t, states.PhasePlayerTurn, s.Phase())
	assert.Equal(t, 2, s.Turn())
	assert.Equal(t, []string{
		events.TypeTurnEnded,
		events.TypeStateTransition,
		events.TypeTurnStarted,
		events.TypeTurnEnded,
		events.TypeStateTransition,
		events.TypeTurnStarted,
	}, rec.types())

	playerEnded := rec.events[0].(*events.TurnEndedEvent)
	assert.Equal(t, core.OwnedByPlayer, playerEnded.Faction)
	assert.Equal(t, 1, playerEnded.TurnNumber)

	computerStarted := rec.events[2].(*events.TurnStartedEvent)
	assert.Equal(t, core.OwnedByComputer, computerStarted.Faction)
	assert.Equal(t, 1, computerStarted.TurnNumber)

	next := rec.events[5].(*events.TurnStartedEvent)
	assert.Equal(t, core.OwnedByPlayer, next.Faction)
	assert.Equal(t, 2, next.TurnNumber)

	history := s.History()
	require.Len(t, history, 3)
	assert.Equal(t, states.PhaseComputerTurn, history[1].To)
	assert.Equal(t, states.PhasePlayerTurn, history[2].To)
}

func TestEndTurn_PlayerActionsCounted(t *testing.T) {
	s, rec := newTestSession(t, GameConfig{})

	require.NoError(t, s.Perform(&core.ProduceAction{Actor: core.OwnedByPlayer, Source: playerPos}))
	require.NoError(t, s.Perform(&core.ProduceAction{Actor: core.OwnedByPlayer, Source: playerPos}))
	rec.reset()

	require.NoError(t, s.EndTurn(context.Background()))
	ended := rec.events[0].(*events.TurnEndedEvent)
	assert.Equal(t, 2, ended.ActionsCount)
}

func TestEndTurn_OpponentSeesBoardCopy(t *testing.T) {
	var seenTurn int
	opponent := OpponentFunc(func(_ context.Context, board *core.Board, turn int) ([]core.Action, error) {
		seenTurn = turn
		require.NoError(t, board.ClearCell(playerPos))
		return nil, nil
	})
	s, _ := newTestSession(t, GameConfig{Opponent: opponent})

	require.NoError(t, s.EndTurn(context.Background()))

	assert.Equal(t, 1, seenTurn)
	assert.True(t, s.Board.Cells[s.Board.Idx(playerPos)].HasLivingCity(), "changes to the copy must not leak")
	assert.False(t, s.IsOver())
}

func TestEndTurn_AppliesOpponentActions(t *testing.T) {
	s, rec := newTestSession(t, GameConfig{Opponent: scripted(
		&core.ProduceAction{Actor: core.OwnedByComputer, Source: computerPos},
		&core.DestroyWallAction{Actor: core.OwnedByComputer, Source: computerPos, Target: emptyPos},
		&core.ProduceAction{Actor: core.OwnedByPlayer, Source: playerPos},
		nil,
		&core.ProduceAction{Actor: core.OwnedByComputer, Source: computerPos},
	)})

	require.NoError(t, s.EndTurn(context.Background()))

	computer, _ := s.Board.CityAt(computerPos)
	assert.Equal(t, 2, computer.Resources, "two produces at level 1")
	player, _ := s.Board.CityAt(playerPos)
	assert.Equal(t, 30, player.Resources, "actions for the player side are refused")

	var rejected []*events.ActionRejectedEvent
	var computerEnded *events.TurnEndedEvent
	for _, e := range rec.events {
		switch ev := e.(type) {
		case *events.ActionRejectedEvent:
			rejected = append(rejected, ev)
		case *events.TurnEndedEvent:
			if ev.Faction == core.OwnedByComputer {
				computerEnded = ev
			}
		}
	}
	assert.Len(t, rejected, 2, "the nil action is refused without an event")
	require.NotNil(t, computerEnded)
	assert.Equal(t, 2, computerEnded.ActionsCount)

	assert.Equal(t, states.PhasePlayerTurn, s.Phase())
	assert.Equal(t, 2, s.Turn())
}

func TestEndTurn_ComputerWins(t *testing.T) {
	s, rec := newTestSession(t, GameConfig{Opponent: scripted(
		&core.AttackCityAction{Actor: core.OwnedByComputer, Source: computerPos, Target: playerPos},
		&core.ProduceAction{Actor: core.OwnedByComputer, Source: computerPos},
	)})
	computer, _ := s.Board.CityAt(computerPos)
	computer.CombatLevel = 20
	computer.Resources = 10

	require.NoError(t, s.EndTurn(context.Background()))

	assert.Equal(t, states.PhaseComputerWon, s.Phase())
	assert.Equal(t, rules.OutcomeComputerWon, s.Outcome())
	assert.Equal(t, 1, s.Turn(), "the round does not advance once decided")
	assert.Equal(t, 5, computer.Resources, "actions after the decisive one are not applied")
	assert.Contains(t, rec.types(), events.TypeGameEnded)
	assert.Equal(t, events.TypeTurnEnded, rec.types()[len(rec.events)-1])
}

func TestEndTurn_TurnLimitStalemate(t *testing.T) {
	s, rec := newTestSession(t, GameConfig{MaxTurns: 2})

	require.NoError(t, s.EndTurn(context.Background()))
	assert.Equal(t, states.PhasePlayerTurn, s.Phase())

	require.NoError(t, s.EndTurn(context.Background()))
	assert.Equal(t, states.PhaseStalemate, s.Phase())
	assert.Equal(t, 3, s.Turn())
	assert.Equal(t, "turn limit of 2 reached", s.Reason())

	ended, ok := rec.events[len(rec.events)-1].(*events.GameEndedEvent)
	require.True(t, ok)
	assert.Equal(t, "stalemate", ended.Outcome)
	assert.Equal(t, 3, ended.FinalTurn)
}

func TestEndTurn_OpponentErrorPassesTurn(t *testing.T) {
	s, _ := newTestSession(t, GameConfig{Opponent: OpponentFunc(func(context.Context, *core.Board, int) ([]core.Action, error) {
		return []core.Action{&core.ProduceAction{Actor: core.OwnedByComputer, Source: computerPos}}, errors.New("boom")
	})})

	require.NoError(t, s.EndTurn(context.Background()))

	computer, _ := s.Board.CityAt(computerPos)
	assert.Equal(t, 0, computer.Resources)
	assert.Equal(t, states.PhasePlayerTurn, s.Phase())
	assert.Equal(t, 2, s.Turn())
}

func TestEndTurn_CancelledContext(t *testing.T) {
	s, _ := newTestSession(t, GameConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.EndTurn(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, states.PhasePlayerTurn, s.Phase())
	assert.Equal(t, 1, s.Turn())
}

func TestEndTurn_CancelledByOpponent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s, _ := newTestSession(t, GameConfig{Opponent: OpponentFunc(func(context.Context, *core.Board, int) ([]core.Action, error) {
		cancel()
		return []core.Action{&core.ProduceAction{Actor: core.OwnedByComputer, Source: computerPos}}, nil
	})})

	err := s.EndTurn(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	computer, _ := s.Board.CityAt(computerPos)
	assert.Equal(t, 0, computer.Resources)
}

func TestProcessComputerTurn_OutOfPhase(t *testing.T) {
	s, _ := newTestSession(t, GameConfig{})

	err := s.turnProcessor.ProcessComputerTurn(context.Background())
	assert.Error(t, err)

	var stateErr *core.GameStateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, states.PhasePlayerTurn, s.Phase())
}

func TestIdleOpponent(t *testing.T) {
	actions, err := IdleOpponent{}.TakeTurn(context.Background(), core.NewBoard(3), 1)
	assert.NoError(t, err)
	assert.Empty(t, actions)
}
