package events

import (
	"time"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeTurnStarted     = "turn.started"
	TypeTurnEnded       = "turn.ended"
	TypeActionProcessed = "action.processed"
	TypeActionRejected  = "action.rejected"
	TypeCombatResolved  = "combat.resolved"
	TypeCityDestroyed   = "city.destroyed"
	TypeCityFounded     = "city.founded"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published once the map is generated
type GameStartedEvent struct {
	BaseEvent
	GridSize     int
	Difficulty   string
	PlayerCity   core.Position
	ComputerCity core.Position
	Walls        int
}

func NewGameStartedEvent(gameID string, gridSize int, difficulty string, playerCity, computerCity core.Position, walls int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:    newBase(TypeGameStarted, gameID),
		GridSize:     gridSize,
		Difficulty:   difficulty,
		PlayerCity:   playerCity,
		ComputerCity: computerCity,
		Walls:        walls,
	}
}

// GameEndedEvent is published when the session reaches a terminal phase
type GameEndedEvent struct {
	BaseEvent
	Outcome   string
	Reason    string
	Duration  time.Duration
	FinalTurn int
}

func NewGameEndedEvent(gameID, outcome, reason string, duration time.Duration, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Outcome:   outcome,
		Reason:    reason,
		Duration:  duration,
		FinalTurn: finalTurn,
	}
}

// TurnStartedEvent is published when a faction gets control
type TurnStartedEvent struct {
	BaseEvent
	TurnNumber int
	Faction    core.Ownership
}

func NewTurnStartedEvent(gameID string, turn int, faction core.Ownership) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  newBase(TypeTurnStarted, gameID),
		TurnNumber: turn,
		Faction:    faction,
	}
}

// TurnEndedEvent is published when a faction hands over control
type TurnEndedEvent struct {
	BaseEvent
	TurnNumber    int
	Faction       core.Ownership
	ActionsCount  int
	ProcessedTime time.Duration
}

func NewTurnEndedEvent(gameID string, turn int, faction core.Ownership, actionsCount int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     newBase(TypeTurnEnded, gameID),
		TurnNumber:    turn,
		Faction:       faction,
		ActionsCount:  actionsCount,
		ProcessedTime: processedTime,
	}
}

// ActionProcessedEvent is published after an action was applied
type ActionProcessedEvent struct {
	BaseEvent
	Action core.Action
	Cost   int
	Turn   int
}

func NewActionProcessedEvent(gameID string, action core.Action, cost, turn int) *ActionProcessedEvent {
	return &ActionProcessedEvent{
		BaseEvent: newBase(TypeActionProcessed, gameID),
		Action:    action,
		Cost:      cost,
		Turn:      turn,
	}
}

// ActionRejectedEvent is published when validation or payment failed
type ActionRejectedEvent struct {
	BaseEvent
	Action core.Action
	Reason string
	Turn   int
}

func NewActionRejectedEvent(gameID string, action core.Action, reason error, turn int) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, gameID),
		Action:    action,
		Reason:    reason.Error(),
		Turn:      turn,
	}
}

// CombatResolvedEvent describes one attack and its outcome
type CombatResolvedEvent struct {
	BaseEvent
	Attacker      core.Ownership
	Defender      core.Ownership
	Source        core.Position
	Target        core.Position
	AttackRoll    int
	DefenseRoll   int
	Destroyed     bool
	ResourcesLost int
	Turn          int
}

func NewCombatResolvedEvent(gameID string, attacker, defender core.Ownership, source, target core.Position,
	attackRoll, defenseRoll int, destroyed bool, resourcesLost, turn int) *CombatResolvedEvent {
	return &CombatResolvedEvent{
		BaseEvent:     newBase(TypeCombatResolved, gameID),
		Attacker:      attacker,
		Defender:      defender,
		Source:        source,
		Target:        target,
		AttackRoll:    attackRoll,
		DefenseRoll:   defenseRoll,
		Destroyed:     destroyed,
		ResourcesLost: resourcesLost,
		Turn:          turn,
	}
}

// CityDestroyedEvent is published when a city becomes a ruin
type CityDestroyedEvent struct {
	BaseEvent
	Location      core.Position
	PreviousOwner core.Ownership
	DestroyedBy   core.Ownership
	Turn          int
}

func NewCityDestroyedEvent(gameID string, location core.Position, previousOwner, destroyedBy core.Ownership, turn int) *CityDestroyedEvent {
	return &CityDestroyedEvent{
		BaseEvent:     newBase(TypeCityDestroyed, gameID),
		Location:      location,
		PreviousOwner: previousOwner,
		DestroyedBy:   destroyedBy,
		Turn:          turn,
	}
}

// CityFoundedEvent is published when GenerateCity places a new city
type CityFoundedEvent struct {
	BaseEvent
	Location    core.Position
	Owner       core.Ownership
	FoundedFrom core.Position
	Turn        int
}

func NewCityFoundedEvent(gameID string, location core.Position, owner core.Ownership, foundedFrom core.Position, turn int) *CityFoundedEvent {
	return &CityFoundedEvent{
		BaseEvent:   newBase(TypeCityFounded, gameID),
		Location:    location,
		Owner:       owner,
		FoundedFrom: foundedFrom,
		Turn:        turn,
	}
}

// StateTransitionEvent is published on every turn phase change
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
