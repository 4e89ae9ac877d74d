package rules

import "github.com/mitchelldurbincs/cellwars/internal/game/core"

// ActionOption is one entry of a city's action menu
type ActionOption struct {
	Kind       core.ActionKind
	Cost       int
	Affordable bool
	// Targets lists the cells a target-bearing kind can currently be aimed at
	Targets []core.Position
}

// Available reports whether choosing the option can succeed right now
func (o ActionOption) Available() bool {
	if !o.Affordable {
		return false
	}
	return !o.Kind.NeedsTarget() || len(o.Targets) > 0
}

// LegalActionCalculator computes what a city can do
type LegalActionCalculator struct {
	costs core.Costs
}

// NewLegalActionCalculator creates a new legal action calculator
func NewLegalActionCalculator(costs core.Costs) *LegalActionCalculator {
	return &LegalActionCalculator{costs: costs}
}

// Options lists every action kind for the actor's city at source, in menu
// order, with its price and whether the city can pay it
func (lac *LegalActionCalculator) Options(board *core.Board, actor core.Ownership, source core.Position) ([]ActionOption, error) {
	produce := &core.ProduceAction{Actor: actor, Source: source}
	if err := produce.Validate(board); err != nil {
		return nil, err
	}
	city, err := board.CityAt(source)
	if err != nil {
		return nil, err
	}

	kinds := core.ActionKinds()
	options := make([]ActionOption, 0, len(kinds))
	for _, kind := range kinds {
		cost := lac.costs.For(kind, city)
		opt := ActionOption{
			Kind:       kind,
			Cost:       cost,
			Affordable: city.CanAfford(cost),
		}
		if kind.NeedsTarget() {
			opt.Targets = lac.ValidTargets(board, actor, source, kind)
		}
		options = append(options, opt)
	}
	return options, nil
}

// ValidTargets returns every cell, in row-major order, that an action of kind
// from source would pass validation against. Costs are not considered.
func (lac *LegalActionCalculator) ValidTargets(board *core.Board, actor core.Ownership, source core.Position, kind core.ActionKind) []core.Position {
	if !kind.NeedsTarget() {
		return nil
	}

	var targets []core.Position
	for idx := range board.Cells {
		target := board.Pos(idx)
		if target == source {
			continue
		}
		action, err := core.NewAction(kind, actor, source, &target)
		if err != nil {
			continue
		}
		if action.Validate(board) == nil {
			targets = append(targets, target)
		}
	}
	return targets
}
