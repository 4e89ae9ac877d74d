package game

import "github.com/mitchelldurbincs/cellwars/internal/game/core"

// FactionStats summarizes one side's holdings on the board
type FactionStats struct {
	Cities    int
	Resources int
	// Power is the sum of every city's power
	Power int
	// Strongest is the highest single city power
	Strongest int
}

// Stats scans the board for owner's living cities. Ruins count for nobody.
func (s *Session) Stats(owner core.Ownership) FactionStats {
	return computeStats(s.Board, owner)
}

// Ruins counts destroyed cities still on the board
func (s *Session) Ruins() int {
	return s.Board.CountCities(core.Destroyed)
}

func computeStats(board *core.Board, owner core.Ownership) FactionStats {
	var st FactionStats
	if !owner.IsFaction() {
		return st
	}
	for i := range board.Cells {
		city := board.Cells[i].City
		if city == nil || city.Owner != owner {
			continue
		}
		power := city.Power()
		st.Cities++
		st.Resources += city.Resources
		st.Power += power
		if power > st.Strongest {
			st.Strongest = power
		}
	}
	return st
}
