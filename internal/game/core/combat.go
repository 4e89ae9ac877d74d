package core

import (
	"math/rand"

	"github.com/mitchelldurbincs/cellwars/internal/common"
)

// AttackRollSpread is how far below the combat level a roll may fall
const AttackRollSpread = 5

// AttackRange returns the inclusive bounds of a city's attack roll:
// [max(combat-5, 0)+1, combat+1]
func AttackRange(c *City) (lo, hi int) {
	lo = common.SaturatingSub(c.CombatLevel, AttackRollSpread) + 1
	hi = common.SaturatingAdd(c.CombatLevel, 1)
	return lo, hi
}

// RollForAttack draws a uniform attack strength from AttackRange.
// It only consumes randomness; deciding the outcome is up to the caller.
func RollForAttack(c *City, rng *rand.Rand) int {
	lo, hi := AttackRange(c)
	return lo + rng.Intn(hi-lo+1)
}
