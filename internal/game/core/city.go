package core

import (
	"fmt"

	"github.com/mitchelldurbincs/cellwars/internal/common"
)

// Ownership says who controls a city. Destroyed is terminal: the ruin keeps
// occupying its cell until it is cleaned up.
type Ownership int

const (
	OwnedByPlayer Ownership = iota
	OwnedByComputer
	Destroyed
)

func (o Ownership) String() string {
	switch o {
	case OwnedByPlayer:
		return "player"
	case OwnedByComputer:
		return "computer"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("Ownership(%d)", int(o))
	}
}

// IsFaction reports whether o is one of the two playing sides
func (o Ownership) IsFaction() bool {
	return o == OwnedByPlayer || o == OwnedByComputer
}

// Opponent returns the other faction. Destroyed has no opponent and maps to itself.
func (o Ownership) Opponent() Ownership {
	switch o {
	case OwnedByPlayer:
		return OwnedByComputer
	case OwnedByComputer:
		return OwnedByPlayer
	default:
		return o
	}
}

// UpgradeCostMultiplier scales a level into the resources needed to raise it
const UpgradeCostMultiplier = 5

// City holds the economic and military state of one settlement
type City struct {
	Owner           Ownership
	ProductionLevel int
	CombatLevel     int
	Resources       int
}

// NewCity creates a city whose production and combat levels both start at level
func NewCity(owner Ownership, level, resources int) *City {
	if level < 1 {
		level = 1
	}
	if resources < 0 {
		resources = 0
	}
	return &City{
		Owner:           owner,
		ProductionLevel: level,
		CombatLevel:     level,
		Resources:       resources,
	}
}

func (c *City) IsDestroyed() bool { return c.Owner == Destroyed }

// ProductionYield is what a single Produce adds: ceil(production/2)
func (c *City) ProductionYield() int {
	return common.CeilDiv(c.ProductionLevel, 2)
}

// Produce adds the production yield to the city's resources
func (c *City) Produce() {
	c.Resources = common.SaturatingAdd(c.Resources, c.ProductionYield())
}

// Power summarizes a city's strength:
// ceil((combat + production + ceil(resources/2)) / 3)
func (c *City) Power() int {
	bonus := common.CeilDiv(c.Resources, 2)
	sum := common.SaturatingAdd(common.SaturatingAdd(c.CombatLevel, c.ProductionLevel), bonus)
	return common.CeilDiv(sum, 3)
}

func (c *City) AttackUpgradeCost() int {
	return common.SaturatingMul(c.CombatLevel, UpgradeCostMultiplier)
}

func (c *City) ProduceUpgradeCost() int {
	return common.SaturatingMul(c.ProductionLevel, UpgradeCostMultiplier)
}

// CanAfford reports whether the city holds at least amount resources
func (c *City) CanAfford(amount int) bool {
	return c.Resources >= amount
}

// Spend deducts amount from the city's resources. It fails without touching
// the city if the balance is too low.
func (c *City) Spend(amount int) error {
	if amount < 0 {
		amount = 0
	}
	if !c.CanAfford(amount) {
		return ErrNotEnoughResources
	}
	c.Resources -= amount
	return nil
}

// UpgradeAttack raises the combat level by one for AttackUpgradeCost resources
func (c *City) UpgradeAttack() error {
	if err := c.Spend(c.AttackUpgradeCost()); err != nil {
		return err
	}
	c.CombatLevel = common.SaturatingAdd(c.CombatLevel, 1)
	return nil
}

// UpgradeProduction raises the production level by one for ProduceUpgradeCost resources
func (c *City) UpgradeProduction() error {
	if err := c.Spend(c.ProduceUpgradeCost()); err != nil {
		return err
	}
	c.ProductionLevel = common.SaturatingAdd(c.ProductionLevel, 1)
	return nil
}

// Deplete removes up to amount resources, stopping at zero
func (c *City) Deplete(amount int) {
	c.Resources = common.SaturatingSub(c.Resources, amount)
}

// Destroy turns the city into a ruin. Levels are kept for display; resources are lost.
func (c *City) Destroy() {
	c.Owner = Destroyed
	c.Resources = 0
}
