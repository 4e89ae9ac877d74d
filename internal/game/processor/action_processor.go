package processor

import (
	"math/rand"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/mitchelldurbincs/cellwars/internal/game/events"
	"github.com/rs/zerolog"
)

// ActionProcessor validates and applies actions against a board. Every check
// runs before the first mutation, so a rejected action leaves the board as it was.
type ActionProcessor struct {
	logger    zerolog.Logger
	rng       *rand.Rand
	costs     core.Costs
	publisher events.Publisher

	gameID string
	turn   int
}

// Config wires the processor into a session
type Config struct {
	GameID    string
	Costs     core.Costs
	Publisher events.Publisher
}

// NewActionProcessor creates a new action processor. A nil publisher drops events.
func NewActionProcessor(logger zerolog.Logger, rng *rand.Rand, cfg Config) *ActionProcessor {
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = events.Discard
	}
	return &ActionProcessor{
		logger:    logger.With().Str("component", "ActionProcessor").Logger(),
		rng:       rng,
		costs:     cfg.Costs,
		publisher: publisher,
		gameID:    cfg.GameID,
	}
}

// SetTurn stamps subsequent events with turn
func (ap *ActionProcessor) SetTurn(turn int) {
	ap.turn = turn
}

// Costs returns the price list the processor enforces
func (ap *ActionProcessor) Costs() core.Costs {
	return ap.costs
}

// Apply validates action against board and, if it passes, performs it.
// Rejections are returned wrapped in *core.ActionError.
func (ap *ActionProcessor) Apply(board *core.Board, action core.Action) error {
	if action == nil {
		return core.WrapActionError(nil, core.ErrUnknownAction)
	}

	cost, err := ap.check(board, action)
	if err != nil {
		return ap.reject(action, err)
	}

	source, err := board.CityAt(action.GetSource())
	if err != nil {
		return ap.fail(action, core.ErrNoCityAtSource)
	}

	switch act := action.(type) {
	case *core.ProduceAction:
		source.Produce()

	case *core.UpgradeAttackAction:
		if err := source.UpgradeAttack(); err != nil {
			return ap.reject(action, err)
		}

	case *core.UpgradeProduceAction:
		if err := source.UpgradeProduction(); err != nil {
			return ap.reject(action, err)
		}

	case *core.DestroyWallAction:
		if err := ap.commit(action, source, cost, func() error {
			return board.SetBlocked(act.Target, false)
		}); err != nil {
			return err
		}

	case *core.ClearRuinAction:
		if err := ap.commit(action, source, cost, func() error {
			return board.ClearCell(act.Target)
		}); err != nil {
			return err
		}

	case *core.GenerateCityAction:
		if err := ap.commit(action, source, cost, func() error {
			return board.PlaceCity(act.Target, core.NewCity(act.Actor, 1, 0))
		}); err != nil {
			return err
		}
		ap.publisher.Publish(events.NewCityFoundedEvent(ap.gameID, act.Target, act.Actor, act.Source, ap.turn))

	case *core.AttackCityAction:
		defender, err := board.CityAt(act.Target)
		if err != nil {
			return ap.fail(action, err)
		}
		if err := ap.commit(action, source, cost, func() error { return nil }); err != nil {
			return err
		}
		ap.resolveAttack(act, source, defender)

	default:
		return ap.reject(action, core.ErrUnknownAction)
	}

	ap.logger.Debug().
		Stringer("actor", action.GetActor()).
		Stringer("action", action.GetType()).
		Stringer("source", action.GetSource()).
		Int("cost", cost).
		Msg("Action applied")
	ap.publisher.Publish(events.NewActionProcessedEvent(ap.gameID, action, cost, ap.turn))
	return nil
}

// check runs positional validation and the affordability test for flat costs.
// Upgrades are priced by the city itself and checked when applied.
func (ap *ActionProcessor) check(board *core.Board, action core.Action) (int, error) {
	if err := action.Validate(board); err != nil {
		return 0, err
	}
	source, err := board.CityAt(action.GetSource())
	if err != nil {
		return 0, core.ErrNoCityAtSource
	}
	cost := ap.costs.For(action.GetType(), source)
	if !source.CanAfford(cost) {
		return cost, core.ErrNotEnoughResources
	}
	return cost, nil
}

// resolveAttack rolls for both sides. The attacker must beat the defender
// outright; on a tie or loss the defender keeps the city but loses resources
// equal to the attack roll.
func (ap *ActionProcessor) resolveAttack(act *core.AttackCityAction, attacker, defender *core.City) {
	attackRoll := core.RollForAttack(attacker, ap.rng)
	defenseRoll := core.RollForAttack(defender, ap.rng)
	defenderOwner := defender.Owner

	destroyed := attackRoll > defenseRoll
	lost := defender.Resources
	if destroyed {
		defender.Destroy()
	} else {
		defender.Deplete(attackRoll)
		lost -= defender.Resources
	}

	ap.logger.Info().
		Stringer("attacker", act.Actor).
		Stringer("source", act.Source).
		Stringer("target", act.Target).
		Int("attack_roll", attackRoll).
		Int("defense_roll", defenseRoll).
		Bool("destroyed", destroyed).
		Msg("Combat resolved")

	ap.publisher.Publish(events.NewCombatResolvedEvent(ap.gameID, act.Actor, defenderOwner,
		act.Source, act.Target, attackRoll, defenseRoll, destroyed, lost, ap.turn))
	if destroyed {
		ap.publisher.Publish(events.NewCityDestroyedEvent(ap.gameID, act.Target, defenderOwner, act.Actor, ap.turn))
	}
}

// commit pays cost from source and then runs mutate. A failing mutation
// refunds the cost, so the action still applies all or nothing.
func (ap *ActionProcessor) commit(action core.Action, source *core.City, cost int, mutate func() error) error {
	if err := source.Spend(cost); err != nil {
		return ap.fail(action, err)
	}
	if err := mutate(); err != nil {
		source.Resources += cost
		return ap.fail(action, err)
	}
	return nil
}

// fail rejects an action that passed validation but could not be applied.
// That means the board broke an invariant validation relies on.
func (ap *ActionProcessor) fail(action core.Action, err error) error {
	ap.logger.Error().
		Err(err).
		Stringer("action", action.GetType()).
		Stringer("source", action.GetSource()).
		Msg("Validated action failed to apply")
	return ap.reject(action, err)
}

func (ap *ActionProcessor) reject(action core.Action, err error) error {
	wrapped := core.WrapActionError(action, err)
	ap.logger.Debug().Err(wrapped).Msg("Action rejected")
	ap.publisher.Publish(events.NewActionRejectedEvent(ap.gameID, action, err, ap.turn))
	return wrapped
}
