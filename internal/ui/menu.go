package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/cellwars/internal/game"
	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/mitchelldurbincs/cellwars/internal/ui/input"
	"github.com/mitchelldurbincs/cellwars/internal/ui/renderer"
)

// Choice is an entry of the main menu
type Choice int

const (
	ChoicePlay Choice = iota
	ChoiceHowToPlay
	ChoiceQuit
)

var mainMenu = []string{"Play", "How To Play", "Quit"}

// HowToPlay is the rules summary shown from the main menu
var HowToPlay = []string{
	"The goal of the game is to destroy your opponent's cities.",
	"You both start out with one city, and must gather resources.",
	"",
	"Move the cursor with the arrow keys and press Enter on one of your",
	"cities to open its actions. Produce resources, raise its levels,",
	"break down walls, clear ruins, found new cities or attack the enemy.",
	"Press S to end your turn.",
}

// SessionFactory starts a new game at the chosen difficulty
type SessionFactory func(ctx context.Context, difficulty core.Difficulty) (*game.Session, error)

// App runs the screens around a game: main menu, rules, difficulty prompt
// and the game itself.
type App struct {
	decoder    *input.Decoder
	out        io.Writer
	renderer   *renderer.BoardRenderer
	newSession SessionFactory
	base       zerolog.Logger
	logger     zerolog.Logger

	// Difficulty skips the prompt when set
	Difficulty *core.Difficulty
}

// NewApp creates an App reading keys from in and drawing to out
func NewApp(in io.Reader, out io.Writer, r *renderer.BoardRenderer, newSession SessionFactory, logger zerolog.Logger) *App {
	return &App{
		decoder:    input.NewDecoder(in),
		out:        out,
		renderer:   r,
		newSession: newSession,
		base:       logger,
		logger:     logger.With().Str("component", "App").Logger(),
	}
}

// Run shows the main menu and plays one game. It returns the finished
// session, or nil if the player left before a game started.
func (a *App) Run(ctx context.Context) (*game.Session, error) {
	for {
		choice, err := a.MainMenu()
		if err != nil {
			return nil, a.ignoreEOF(err)
		}

		switch choice {
		case ChoiceHowToPlay:
			if err := a.showRules(); err != nil {
				return nil, a.ignoreEOF(err)
			}
			continue
		case ChoiceQuit:
			return nil, nil
		}

		difficulty, ok, err := a.chooseDifficulty()
		if err != nil {
			return nil, a.ignoreEOF(err)
		}
		if !ok {
			continue
		}

		session, err := a.newSession(ctx, difficulty)
		if err != nil {
			return nil, fmt.Errorf("start game: %w", err)
		}
		a.logger.Info().Str("game_id", session.ID).Stringer("difficulty", difficulty).Msg("Game started")

		loop := newLoop(session, a.decoder, a.out, a.renderer, a.base)
		return session, loop.Run(ctx)
	}
}

// MainMenu waits for a main menu choice. Enter picks Play; the quit key
// picks Quit.
func (a *App) MainMenu() (Choice, error) {
	if err := a.drawList("Welcome to Cell Wars!", "Choose an option.", mainMenu); err != nil {
		return ChoiceQuit, err
	}
	for {
		cmd, err := a.decoder.Next()
		if err != nil {
			return ChoiceQuit, err
		}
		switch cmd.Kind {
		case input.Interact:
			return ChoicePlay, nil
		case input.Quit:
			return ChoiceQuit, nil
		case input.Select:
			if cmd.Index < len(mainMenu) {
				return Choice(cmd.Index), nil
			}
		}
	}
}

// chooseDifficulty returns the preset difficulty or prompts for one. ok is
// false when the player backs out.
func (a *App) chooseDifficulty() (core.Difficulty, bool, error) {
	if a.Difficulty != nil {
		return *a.Difficulty, true, nil
	}

	tiers := core.Difficulties()
	labels := make([]string, len(tiers))
	for i, d := range tiers {
		labels[i] = d.Label()
	}
	if err := a.drawList("Select difficulty", "(*) marks the default. Enter keeps it.", labels); err != nil {
		return core.DefaultDifficulty, false, err
	}

	for {
		cmd, err := a.decoder.Next()
		if err != nil {
			return core.DefaultDifficulty, false, err
		}
		switch cmd.Kind {
		case input.Interact:
			return core.DefaultDifficulty, true, nil
		case input.Cancel, input.Quit:
			return core.DefaultDifficulty, false, nil
		case input.Select:
			if cmd.Index < len(tiers) {
				return tiers[cmd.Index], true, nil
			}
		}
	}
}

func (a *App) showRules() error {
	var sb strings.Builder
	sb.WriteString(renderer.ClearScreen)
	sb.WriteString("How To Play\r\n\r\n")
	for _, line := range HowToPlay {
		sb.WriteString(line)
		sb.WriteString("\r\n")
	}
	sb.WriteString("\r\nPress any key to go back.\r\n")
	if _, err := io.WriteString(a.out, sb.String()); err != nil {
		return err
	}
	_, err := a.decoder.Next()
	return err
}

func (a *App) drawList(title, prompt string, entries []string) error {
	var sb strings.Builder
	sb.WriteString(renderer.ClearScreen)
	sb.WriteString(title)
	sb.WriteString("\r\n\r\n")
	sb.WriteString(prompt)
	sb.WriteString("\r\n")
	for i, e := range entries {
		fmt.Fprintf(&sb, " %d) %s\r\n", i+1, e)
	}
	_, err := io.WriteString(a.out, sb.String())
	return err
}

func (a *App) ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		a.logger.Info().Msg("Input closed at menu")
		return nil
	}
	return err
}
