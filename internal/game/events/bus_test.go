package events_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/mitchelldurbincs/cellwars/internal/game/events"
)

// TestSubscriber implements the Subscriber interface for testing
type TestSubscriber struct {
	id         string
	events     []events.Event
	interested map[string]bool
}

func NewTestSubscriber(id string, interestedTypes ...string) *TestSubscriber {
	interested := make(map[string]bool)
	for _, t := range interestedTypes {
		interested[t] = true
	}
	return &TestSubscriber{
		id:         id,
		interested: interested,
	}
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(event events.Event) {
	ts.events = append(ts.events, event)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if len(ts.interested) == 0 {
		return true
	}
	return ts.interested[eventType]
}

func newBus() *events.EventBus {
	return events.NewEventBus(zerolog.Nop())
}

func TestEventBusBasicFunctionality(t *testing.T) {
	bus := newBus()

	subscriber := NewTestSubscriber("test1", events.TypeGameStarted, events.TypeGameEnded)
	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.GetSubscriberCount())

	bus.Publish(events.NewGameStartedEvent("game1", 10, "standard", core.Position{X: 1, Y: 1}, core.Position{X: 8, Y: 8}, 9))
	require.Len(t, subscriber.events, 1)
	assert.Equal(t, events.TypeGameStarted, subscriber.events[0].Type())
	assert.Equal(t, "game1", subscriber.events[0].GameID())

	// Not interested in turn events
	bus.Publish(events.NewTurnStartedEvent("game1", 1, core.OwnedByPlayer))
	assert.Len(t, subscriber.events, 1)

	bus.Publish(events.NewGameEndedEvent("game1", "player_won", "no computer cities left", time.Minute, 12))
	require.Len(t, subscriber.events, 2)
	assert.Equal(t, events.TypeGameEnded, subscriber.events[1].Type())
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := newBus()

	subscriber := NewTestSubscriber("test2")
	bus.Subscribe(subscriber)
	bus.Publish(events.NewTurnStartedEvent("game2", 5, core.OwnedByPlayer))
	assert.Len(t, subscriber.events, 1)

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(events.NewTurnEndedEvent("game2", 5, core.OwnedByPlayer, 2, 100*time.Millisecond))
	assert.Len(t, subscriber.events, 1)
	assert.Equal(t, 0, bus.GetSubscriberCount())
}

func TestEventBusFunctionHandlers(t *testing.T) {
	bus := newBus()

	var received []events.Event
	id1 := bus.SubscribeFunc(events.TypeCityFounded, func(e events.Event) {
		received = append(received, e)
	})
	id2 := bus.SubscribeFunc(events.TypeCityFounded, func(e events.Event) {})
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, bus.GetFuncHandlerCount(events.TypeCityFounded))

	bus.Publish(events.NewCityFoundedEvent("game3", core.Position{X: 2, Y: 2}, core.OwnedByPlayer, core.Position{X: 1, Y: 1}, 4))
	require.Len(t, received, 1)

	founded, ok := received[0].(*events.CityFoundedEvent)
	require.True(t, ok)
	assert.Equal(t, core.Position{X: 2, Y: 2}, founded.Location)
	assert.Equal(t, 4, founded.Turn)
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := newBus()

	sub1 := NewTestSubscriber("sub1", events.TypeCombatResolved)
	sub2 := NewTestSubscriber("sub2", events.TypeCombatResolved)
	sub3 := NewTestSubscriber("sub3")
	bus.Subscribe(sub1)
	bus.Subscribe(sub2)
	bus.Subscribe(sub3)

	funcCalled := false
	bus.SubscribeFunc(events.TypeCombatResolved, func(e events.Event) {
		funcCalled = true
	})

	bus.Publish(events.NewCombatResolvedEvent("game4", core.OwnedByPlayer, core.OwnedByComputer,
		core.Position{X: 0, Y: 0}, core.Position{X: 3, Y: 3}, 6, 2, true, 4, 7))

	assert.Len(t, sub1.events, 1)
	assert.Len(t, sub2.events, 1)
	assert.Len(t, sub3.events, 1)
	assert.True(t, funcCalled)
}

func TestEventBusPanicRecovery(t *testing.T) {
	bus := newBus()

	bus.SubscribeFunc(events.TypeCityDestroyed, func(e events.Event) {
		panic("test panic")
	})
	normalSub := NewTestSubscriber("normal")
	bus.Subscribe(normalSub)

	assert.NotPanics(t, func() {
		bus.Publish(events.NewCityDestroyedEvent("game5", core.Position{X: 3, Y: 3}, core.OwnedByComputer, core.OwnedByPlayer, 2))
	})
	assert.Len(t, normalSub.events, 1)
}

func TestEventTimestamps(t *testing.T) {
	startTime := time.Now()
	action := &core.ProduceAction{Actor: core.OwnedByPlayer}

	all := []events.Event{
		events.NewGameStartedEvent("game6", 10, "easy", core.Position{}, core.Position{X: 1}, 0),
		events.NewTurnStartedEvent("game6", 1, core.OwnedByPlayer),
		events.NewTurnEndedEvent("game6", 1, core.OwnedByComputer, 2, 50*time.Millisecond),
		events.NewActionProcessedEvent("game6", action, 0, 1),
		events.NewActionRejectedEvent("game6", action, core.ErrNoCityAtSource, 1),
		events.NewStateTransitionEvent("game6", "setup", "player_turn", "map generated"),
	}

	for _, event := range all {
		assert.False(t, event.Timestamp().IsZero())
		assert.False(t, event.Timestamp().Before(startTime))
		assert.Equal(t, "game6", event.GameID())
	}
}

func TestPublisherFunc(t *testing.T) {
	var got []string
	pub := events.PublisherFunc(func(e events.Event) { got = append(got, e.Type()) })

	pub.Publish(events.NewTurnStartedEvent("g", 1, core.OwnedByComputer))
	assert.Equal(t, []string{events.TypeTurnStarted}, got)

	assert.NotPanics(t, func() { events.Discard.Publish(events.NewTurnStartedEvent("g", 1, core.OwnedByPlayer)) })
}

func BenchmarkEventBusPublish(b *testing.B) {
	bus := newBus()
	bus.Subscribe(NewTestSubscriber("bench"))

	event := events.NewTurnStartedEvent("bench-game", 1, core.OwnedByPlayer)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bus.Publish(event)
	}
}
