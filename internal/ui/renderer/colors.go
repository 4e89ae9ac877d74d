package renderer

import "github.com/mitchelldurbincs/cellwars/internal/game/core"

// ANSI escape sequences used by the terminal renderer
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
	Bold        = "\033[1m"
	Reverse     = "\033[7m"

	ClearScreen = "\033[H\033[2J"
)

var ownerColors = map[core.Ownership]string{
	core.OwnedByPlayer:   ColorBlue,
	core.OwnedByComputer: ColorRed,
	core.Destroyed:       ColorYellow,
}

// ownerColor returns the color for a city owner
func ownerColor(o core.Ownership) string {
	if c, ok := ownerColors[o]; ok {
		return c
	}
	return ColorWhite
}
