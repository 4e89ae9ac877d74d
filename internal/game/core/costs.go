package core

// Costs are the flat resource prices of the board-changing actions.
// Upgrade prices depend on the city and come from City instead.
type Costs struct {
	DestroyWall int
	ClearRuin   int
	FoundCity   int
	Attack      int
}

// DefaultCosts matches the prices shown in the cell info panel
func DefaultCosts() Costs {
	return Costs{
		DestroyWall: 10,
		ClearRuin:   5,
		FoundCity:   20,
		Attack:      5,
	}
}

// For returns what kind costs when issued from source
func (c Costs) For(kind ActionKind, source *City) int {
	switch kind {
	case ActionUpgradeAttack:
		return source.AttackUpgradeCost()
	case ActionUpgradeProduce:
		return source.ProduceUpgradeCost()
	case ActionDestroyWall:
		return c.DestroyWall
	case ActionClearRuin:
		return c.ClearRuin
	case ActionGenerateCity:
		return c.FoundCity
	case ActionAttackCity:
		return c.Attack
	default:
		return 0
	}
}
