package core

import "fmt"

// ActionKind identifies an action variant without its payload
type ActionKind int

const (
	ActionProduce ActionKind = iota
	ActionUpgradeAttack
	ActionUpgradeProduce
	ActionDestroyWall
	ActionAttackCity
	ActionGenerateCity
	ActionClearRuin
)

// ActionKinds lists every kind in menu order
func ActionKinds() []ActionKind {
	return []ActionKind{
		ActionProduce,
		ActionUpgradeAttack,
		ActionUpgradeProduce,
		ActionAttackCity,
		ActionDestroyWall,
		ActionClearRuin,
		ActionGenerateCity,
	}
}

func (k ActionKind) String() string {
	switch k {
	case ActionProduce:
		return "produce"
	case ActionUpgradeAttack:
		return "upgrade attack"
	case ActionUpgradeProduce:
		return "upgrade production"
	case ActionDestroyWall:
		return "destroy wall"
	case ActionAttackCity:
		return "attack city"
	case ActionGenerateCity:
		return "generate city"
	case ActionClearRuin:
		return "clear ruin"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Label is the menu text for the kind
func (k ActionKind) Label() string {
	switch k {
	case ActionProduce:
		return "Produce Resources"
	case ActionUpgradeAttack:
		return "Upgrade Combat Readiness Level"
	case ActionUpgradeProduce:
		return "Upgrade Production Level"
	case ActionDestroyWall:
		return "Destroy Wall"
	case ActionAttackCity:
		return "Attack City"
	case ActionGenerateCity:
		return "Build New City"
	case ActionClearRuin:
		return "Clean Up Ruin"
	default:
		return k.String()
	}
}

// NeedsTarget reports whether the kind acts on a second cell
func (k ActionKind) NeedsTarget() bool {
	switch k {
	case ActionDestroyWall, ActionAttackCity, ActionGenerateCity, ActionClearRuin:
		return true
	default:
		return false
	}
}

// Action is a closed set of requests a faction can make against the board.
// Implementations are the *Action structs in this file; consumers dispatch
// with a type switch.
type Action interface {
	GetActor() Ownership
	GetType() ActionKind
	GetSource() Position
	// GetTarget returns the target cell and true for target-bearing kinds
	GetTarget() (Position, bool)
	// Validate checks the positional and ownership preconditions shared by
	// every kind plus the target cell kind. It never mutates the board and
	// does not look at costs.
	Validate(b *Board) error
	isAction()
}

type ProduceAction struct {
	Actor  Ownership
	Source Position
}

type UpgradeAttackAction struct {
	Actor  Ownership
	Source Position
}

type UpgradeProduceAction struct {
	Actor  Ownership
	Source Position
}

type DestroyWallAction struct {
	Actor  Ownership
	Source Position
	Target Position
}

type AttackCityAction struct {
	Actor  Ownership
	Source Position
	Target Position
}

type GenerateCityAction struct {
	Actor  Ownership
	Source Position
	Target Position
}

// ClearRuinAction removes a destroyed city, leaving an empty cell
type ClearRuinAction struct {
	Actor  Ownership
	Source Position
	Target Position
}

func (a *ProduceAction) GetActor() Ownership        { return a.Actor }
func (a *UpgradeAttackAction) GetActor() Ownership  { return a.Actor }
func (a *UpgradeProduceAction) GetActor() Ownership { return a.Actor }
func (a *DestroyWallAction) GetActor() Ownership    { return a.Actor }
func (a *AttackCityAction) GetActor() Ownership     { return a.Actor }
func (a *GenerateCityAction) GetActor() Ownership   { return a.Actor }
func (a *ClearRuinAction) GetActor() Ownership      { return a.Actor }

func (a *ProduceAction) GetType() ActionKind        { return ActionProduce }
func (a *UpgradeAttackAction) GetType() ActionKind  { return ActionUpgradeAttack }
func (a *UpgradeProduceAction) GetType() ActionKind { return ActionUpgradeProduce }
func (a *DestroyWallAction) GetType() ActionKind    { return ActionDestroyWall }
func (a *AttackCityAction) GetType() ActionKind     { return ActionAttackCity }
func (a *GenerateCityAction) GetType() ActionKind   { return ActionGenerateCity }
func (a *ClearRuinAction) GetType() ActionKind      { return ActionClearRuin }

func (a *ProduceAction) GetSource() Position        { return a.Source }
func (a *UpgradeAttackAction) GetSource() Position  { return a.Source }
func (a *UpgradeProduceAction) GetSource() Position { return a.Source }
func (a *DestroyWallAction) GetSource() Position    { return a.Source }
func (a *AttackCityAction) GetSource() Position     { return a.Source }
func (a *GenerateCityAction) GetSource() Position   { return a.Source }
func (a *ClearRuinAction) GetSource() Position      { return a.Source }

func (a *ProduceAction) GetTarget() (Position, bool)        { return Position{}, false }
func (a *UpgradeAttackAction) GetTarget() (Position, bool)  { return Position{}, false }
func (a *UpgradeProduceAction) GetTarget() (Position, bool) { return Position{}, false }
func (a *DestroyWallAction) GetTarget() (Position, bool)    { return a.Target, true }
func (a *AttackCityAction) GetTarget() (Position, bool)     { return a.Target, true }
func (a *GenerateCityAction) GetTarget() (Position, bool)   { return a.Target, true }
func (a *ClearRuinAction) GetTarget() (Position, bool)      { return a.Target, true }

func (*ProduceAction) isAction()        {}
func (*UpgradeAttackAction) isAction()  {}
func (*UpgradeProduceAction) isAction() {}
func (*DestroyWallAction) isAction()    {}
func (*AttackCityAction) isAction()     {}
func (*GenerateCityAction) isAction()   {}
func (*ClearRuinAction) isAction()      {}

func (a *ProduceAction) Validate(b *Board) error {
	_, err := validateSource(b, a)
	return err
}

func (a *UpgradeAttackAction) Validate(b *Board) error {
	_, err := validateSource(b, a)
	return err
}

func (a *UpgradeProduceAction) Validate(b *Board) error {
	_, err := validateSource(b, a)
	return err
}

func (a *DestroyWallAction) Validate(b *Board) error {
	target, err := validateSource(b, a)
	if err != nil {
		return err
	}
	if !target.Blocked {
		return ErrTargetNotWall
	}
	return nil
}

func (a *AttackCityAction) Validate(b *Board) error {
	target, err := validateSource(b, a)
	if err != nil {
		return err
	}
	if target.City == nil {
		return ErrNoCityAtTarget
	}
	if target.City.Owner != a.Actor.Opponent() {
		return ErrTargetNotEnemy
	}
	return nil
}

func (a *GenerateCityAction) Validate(b *Board) error {
	target, err := validateSource(b, a)
	if err != nil {
		return err
	}
	if target.Blocked {
		return ErrTargetBlocked
	}
	if target.City != nil {
		return ErrTargetOccupied
	}
	return nil
}

func (a *ClearRuinAction) Validate(b *Board) error {
	target, err := validateSource(b, a)
	if err != nil {
		return err
	}
	if target.City == nil {
		return ErrNoCityAtTarget
	}
	if !target.City.IsDestroyed() {
		return ErrTargetNotRuin
	}
	return nil
}

// validateSource runs the checks every kind shares, in order: bounds,
// target == source, city at source, source owned by the actor. It returns the
// target cell for target-bearing kinds (nil otherwise).
func validateSource(b *Board, a Action) (*Cell, error) {
	source := a.GetSource()
	if !b.InBounds(source) {
		return nil, ErrInvalidPosition
	}
	targetPos, hasTarget := a.GetTarget()
	if hasTarget {
		if !b.InBounds(targetPos) {
			return nil, ErrInvalidPosition
		}
		if targetPos == source {
			return nil, ErrTargetIsSource
		}
	}

	city, err := b.CityAt(source)
	if err != nil {
		if err == ErrNoCityAtTarget {
			return nil, ErrNoCityAtSource
		}
		return nil, err
	}
	if !a.GetActor().IsFaction() || city.Owner != a.GetActor() {
		return nil, ErrNotOwned
	}

	if !hasTarget {
		return nil, nil
	}
	target, _ := b.CellAt(targetPos)
	return target, nil
}

// NewAction builds the variant for kind. Target-bearing kinds need a target
// distinct from source; other kinds ignore target.
func NewAction(kind ActionKind, actor Ownership, source Position, target *Position) (Action, error) {
	requireTarget := func() (Position, error) {
		if target == nil {
			return Position{}, ErrNeedTargetPosition
		}
		if *target == source {
			return Position{}, ErrTargetIsSource
		}
		return *target, nil
	}

	switch kind {
	case ActionProduce:
		return &ProduceAction{Actor: actor, Source: source}, nil
	case ActionUpgradeAttack:
		return &UpgradeAttackAction{Actor: actor, Source: source}, nil
	case ActionUpgradeProduce:
		return &UpgradeProduceAction{Actor: actor, Source: source}, nil
	}
	if !kind.NeedsTarget() {
		return nil, ErrUnknownAction
	}

	t, err := requireTarget()
	if err != nil {
		return nil, err
	}
	switch kind {
	case ActionDestroyWall:
		return &DestroyWallAction{Actor: actor, Source: source, Target: t}, nil
	case ActionAttackCity:
		return &AttackCityAction{Actor: actor, Source: source, Target: t}, nil
	case ActionGenerateCity:
		return &GenerateCityAction{Actor: actor, Source: source, Target: t}, nil
	default:
		return &ClearRuinAction{Actor: actor, Source: source, Target: t}, nil
	}
}
