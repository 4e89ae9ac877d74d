package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/mitchelldurbincs/cellwars/internal/game/rules"
)

// Cell symbols, three columns wide
const (
	WallSymbol     = " # "
	EmptySymbol    = " . "
	RuinSymbol     = " x "
	PlayerSymbol   = " P "
	ComputerSymbol = " C "
)

// lineEnd moves to the start of the next row in raw mode
const lineEnd = "\r\n"

// Mode says what the play loop is waiting for
type Mode int

const (
	ModeBrowse Mode = iota
	ModeMenu
	ModeTarget
	ModeGameOver
)

// View is everything the renderer reads for one frame
type View struct {
	Board      *core.Board
	Cursor     core.Position
	Turn       int
	Difficulty core.Difficulty
	// Phase is shown in the header, e.g. "player_turn"
	Phase  string
	Status string
	Mode   Mode
	Menu   []rules.ActionOption
	// Pending is the action waiting for a target in ModeTarget
	Pending core.ActionKind
	Targets []core.Position
}

// BoardRenderer draws a View as ANSI text
type BoardRenderer struct {
	ShowCoordinates bool
	ShowPower       bool
	// Color enables ANSI colors; Clear prefixes each frame with a screen reset
	Color bool
	Clear bool
}

// NewBoardRenderer returns a renderer with colors and screen clearing on
func NewBoardRenderer(showCoordinates, showPower bool) *BoardRenderer {
	return &BoardRenderer{
		ShowCoordinates: showCoordinates,
		ShowPower:       showPower,
		Color:           true,
		Clear:           true,
	}
}

// Draw renders one frame to w in a single write
func (br *BoardRenderer) Draw(w io.Writer, v View) error {
	if v.Board == nil {
		return fmt.Errorf("renderer: nil board")
	}

	var sb strings.Builder
	sb.Grow((v.Board.Size*3+8)*(v.Board.Size+12) + 256)

	if br.Clear {
		sb.WriteString(ClearScreen)
	}
	br.writeHeader(&sb, v)
	br.writeGrid(&sb, v)
	sb.WriteString(lineEnd)
	br.writeCellInfo(&sb, v)
	if v.Mode == ModeMenu {
		br.writeMenu(&sb, v.Menu)
	}
	if v.Status != "" {
		sb.WriteString(lineEnd)
		sb.WriteString(br.paint(Bold, v.Status))
		sb.WriteString(lineEnd)
	}
	sb.WriteString(lineEnd)
	sb.WriteString(br.paint(ColorGray, Instructions(v.Mode)))
	sb.WriteString(lineEnd)

	_, err := io.WriteString(w, sb.String())
	return err
}

// Instructions is the key help shown at the bottom of the screen
func Instructions(mode Mode) string {
	switch mode {
	case ModeMenu:
		return "1-9: choose action   Backspace: close menu   Q: quit"
	case ModeTarget:
		return "Arrows: move   Enter: confirm target   Backspace: cancel   Q: quit"
	case ModeGameOver:
		return "Press any key to leave the game"
	default:
		return "Arrows: move   Enter: inspect   S: end turn   Q: quit"
	}
}

func (br *BoardRenderer) writeHeader(sb *strings.Builder, v View) {
	header := fmt.Sprintf("Cell Wars   Turn %d   %s   %s", v.Turn, v.Difficulty.Label(), phaseLabel(v.Phase))
	sb.WriteString(br.paint(Bold, header))
	sb.WriteString(lineEnd)
	sb.WriteString(lineEnd)
}

func phaseLabel(phase string) string {
	switch phase {
	case "player_turn":
		return "Your turn"
	case "computer_turn":
		return "Computer's turn"
	case "player_won":
		return "You won"
	case "computer_won":
		return "You lost"
	case "stalemate":
		return "Stalemate"
	case "aborted":
		return "Game abandoned"
	default:
		return phase
	}
}

func (br *BoardRenderer) writeGrid(sb *strings.Builder, v View) {
	b := v.Board
	targets := make(map[core.Position]bool, len(v.Targets))
	if v.Mode == ModeTarget {
		for _, p := range v.Targets {
			targets[p] = true
		}
	}

	if br.ShowCoordinates {
		sb.WriteString("   ")
		for x := 0; x < b.Size; x++ {
			sb.WriteString(fmt.Sprintf("%3d", x))
		}
		sb.WriteString(lineEnd)
	}

	for y := 0; y < b.Size; y++ {
		if br.ShowCoordinates {
			sb.WriteString(fmt.Sprintf("%3d", y))
		}
		for x := 0; x < b.Size; x++ {
			p := core.Position{X: x, Y: y}
			cell := &b.Cells[b.Idx(p)]
			symbol, color := cellSymbol(cell)
			switch {
			case p == v.Cursor:
				symbol = "[" + symbol[1:2] + "]"
			case targets[p]:
				symbol = "(" + symbol[1:2] + ")"
			}
			sb.WriteString(br.paint(color, symbol))
		}
		sb.WriteString(lineEnd)
	}
}

// CellSymbol returns the three-column glyph for a cell
func CellSymbol(cell *core.Cell) string {
	symbol, _ := cellSymbol(cell)
	return symbol
}

func cellSymbol(cell *core.Cell) (string, string) {
	switch {
	case cell.Blocked:
		return WallSymbol, ColorGray
	case cell.City == nil:
		return EmptySymbol, ColorGray
	case cell.City.IsDestroyed():
		return RuinSymbol, ownerColor(core.Destroyed)
	case cell.City.Owner == core.OwnedByPlayer:
		return PlayerSymbol, ownerColor(core.OwnedByPlayer)
	default:
		return ComputerSymbol, ownerColor(core.OwnedByComputer)
	}
}

func (br *BoardRenderer) writeCellInfo(sb *strings.Builder, v View) {
	cell, err := v.Board.CellAt(v.Cursor)
	if err != nil {
		return
	}
	sb.WriteString(fmt.Sprintf("%s ", v.Cursor))
	sb.WriteString(br.CellInfo(cell))
	sb.WriteString(lineEnd)
	if v.Mode == ModeTarget {
		sb.WriteString(fmt.Sprintf("Choose a target for %s.", v.Pending.Label()))
		sb.WriteString(lineEnd)
	}
}

// CellInfo describes a cell. Only the player's own cities reveal their numbers.
func (br *BoardRenderer) CellInfo(cell *core.Cell) string {
	switch {
	case cell.Blocked:
		return "Wall"
	case cell.City == nil:
		return "Empty land"
	case cell.City.IsDestroyed():
		return "Ruined city"
	case cell.City.Owner == core.OwnedByComputer:
		return "Enemy city: statistics unknown"
	}

	c := cell.City
	info := fmt.Sprintf("Your city: production %d, combat %d, resources %d",
		c.ProductionLevel, c.CombatLevel, c.Resources)
	if br.ShowPower {
		info += fmt.Sprintf(", power %d", c.Power())
	}
	return info
}

func (br *BoardRenderer) writeMenu(sb *strings.Builder, menu []rules.ActionOption) {
	sb.WriteString(lineEnd)
	sb.WriteString("Actions:")
	sb.WriteString(lineEnd)
	for i, opt := range menu {
		line := fmt.Sprintf(" %d) %-32s %s", i+1, opt.Kind.Label(), costLabel(opt))
		if !opt.Available() {
			line = br.paint(ColorGray, line)
		}
		sb.WriteString(line)
		sb.WriteString(lineEnd)
	}
}

func costLabel(opt rules.ActionOption) string {
	label := "free"
	if opt.Cost > 0 {
		label = fmt.Sprintf("%d resources", opt.Cost)
	}
	switch {
	case !opt.Affordable:
		label += " (not enough)"
	case opt.Kind.NeedsTarget() && len(opt.Targets) == 0:
		label += " (no target)"
	}
	return label
}

func (br *BoardRenderer) paint(color, s string) string {
	if !br.Color || color == "" {
		return s
	}
	return color + s + ColorReset
}
