package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/cellwars/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("grid_size", e.GridSize).
			Str("difficulty", e.Difficulty).
			Stringer("player_city", e.PlayerCity).
			Stringer("computer_city", e.ComputerCity).
			Int("walls", e.Walls)

	case *events.GameEndedEvent:
		logEvent.
			Str("outcome", e.Outcome).
			Str("reason", e.Reason).
			Dur("duration", e.Duration).
			Int("final_turn", e.FinalTurn)

	case *events.TurnStartedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Stringer("faction", e.Faction)

	case *events.TurnEndedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Stringer("faction", e.Faction).
			Int("actions_count", e.ActionsCount).
			Dur("process_time", e.ProcessedTime)

	case *events.ActionProcessedEvent:
		logEvent.
			Stringer("actor", e.Action.GetActor()).
			Stringer("action_type", e.Action.GetType()).
			Stringer("source", e.Action.GetSource()).
			Int("cost", e.Cost).
			Int("turn", e.Turn)

	case *events.ActionRejectedEvent:
		logEvent.
			Stringer("actor", e.Action.GetActor()).
			Stringer("action_type", e.Action.GetType()).
			Str("reason", e.Reason).
			Int("turn", e.Turn)

	case *events.CombatResolvedEvent:
		logEvent.
			Stringer("attacker", e.Attacker).
			Stringer("defender", e.Defender).
			Stringer("source", e.Source).
			Stringer("target", e.Target).
			Int("attack_roll", e.AttackRoll).
			Int("defense_roll", e.DefenseRoll).
			Bool("destroyed", e.Destroyed).
			Int("resources_lost", e.ResourcesLost)

	case *events.CityDestroyedEvent:
		logEvent.
			Stringer("location", e.Location).
			Stringer("previous_owner", e.PreviousOwner).
			Stringer("destroyed_by", e.DestroyedBy)

	case *events.CityFoundedEvent:
		logEvent.
			Stringer("location", e.Location).
			Stringer("owner", e.Owner).
			Stringer("founded_from", e.FoundedFrom)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
