package core

import (
	"fmt"
	"strings"
)

// Difficulty selects the starting balance and terrain density of a map
type Difficulty int

const (
	Easy Difficulty = iota
	Standard
	Hard
	NotEvenRemotelyFair
)

// DefaultDifficulty is preselected in menus and used when nothing is configured
const DefaultDifficulty = Standard

// Difficulties lists every tier in menu order
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Standard, Hard, NotEvenRemotelyFair}
}

// WallProbability is the chance that any non-city cell starts blocked
func (d Difficulty) WallProbability() float64 {
	switch d {
	case Easy:
		return 0.05
	case Hard:
		return 0.25
	case NotEvenRemotelyFair:
		return 0.30
	default:
		return 0.10
	}
}

// StartingResources is the resource pool both starting cities receive
func (d Difficulty) StartingResources() int {
	switch d {
	case Easy:
		return 10
	case Standard:
		return 3
	default:
		return 0
	}
}

// StartingEnemyLevel seeds both levels of the computer's first city
func (d Difficulty) StartingEnemyLevel() int {
	switch d {
	case Hard:
		return 2
	case NotEvenRemotelyFair:
		return 5
	default:
		return 1
	}
}

// StartingPlayerLevel seeds both levels of the player's first city
func (d Difficulty) StartingPlayerLevel() int {
	if d == Easy {
		return 2
	}
	return 1
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Standard:
		return "standard"
	case Hard:
		return "hard"
	case NotEvenRemotelyFair:
		return "not-even-remotely-fair"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Label is the human readable menu text. The default tier is marked with (*).
func (d Difficulty) Label() string {
	switch d {
	case Easy:
		return "Easy"
	case Standard:
		return "Standard (*)"
	case Hard:
		return "Hard"
	case NotEvenRemotelyFair:
		return "Not Even Remotely Fair"
	default:
		return d.String()
	}
}

// ParseDifficulty accepts tier names regardless of case or separators,
// e.g. "Hard", "not_even_remotely_fair", "NotEvenRemotelyFair".
func ParseDifficulty(s string) (Difficulty, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "easy":
		return Easy, nil
	case "standard", "":
		return Standard, nil
	case "hard":
		return Hard, nil
	case "notevenremotelyfair", "unfair":
		return NotEvenRemotelyFair, nil
	default:
		return DefaultDifficulty, fmt.Errorf("unknown difficulty %q", s)
	}
}
