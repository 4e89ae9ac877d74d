package ui

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/cellwars/internal/game"
	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/mitchelldurbincs/cellwars/internal/game/states"
	"github.com/mitchelldurbincs/cellwars/internal/ui/input"
	"github.com/mitchelldurbincs/cellwars/internal/ui/renderer"
)

// Loop drives one session from keyboard input. It moves between browsing the
// board, choosing from a city's action menu and picking a target cell.
type Loop struct {
	session    *game.Session
	controller *game.Controller
	decoder    *input.Decoder
	renderer   *renderer.BoardRenderer
	out        io.Writer
	logger     zerolog.Logger

	// targeting is set while an action waits for its target; the cursor then
	// roams freely and source remembers the acting city
	targeting bool
	pending   core.ActionKind
	source    core.Position
	targets   []core.Position

	drawErr error
}

// NewLoop wires a session to a terminal
func NewLoop(session *game.Session, in io.Reader, out io.Writer, r *renderer.BoardRenderer, logger zerolog.Logger) *Loop {
	return newLoop(session, input.NewDecoder(in), out, r, logger)
}

// newLoop shares a decoder with the menus so buffered keys are not lost
func newLoop(session *game.Session, decoder *input.Decoder, out io.Writer, r *renderer.BoardRenderer, logger zerolog.Logger) *Loop {
	l := &Loop{
		session:  session,
		decoder:  decoder,
		renderer: r,
		out:      out,
		logger:   logger.With().Str("component", "PlayLoop").Logger(),
	}
	l.controller = game.NewController(session, game.DrawerFunc(l.draw), logger)
	return l
}

// Run plays until the session ends or the player quits. Running out of input
// counts as quitting.
func (l *Loop) Run(ctx context.Context) error {
	l.controller.Redraw()

	for !l.session.IsOver() {
		if l.drawErr != nil {
			return l.drawErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, err := l.decoder.Next()
		if err != nil {
			return l.inputClosed(err)
		}
		l.logger.Debug().Stringer("command", cmd).Msg("Command received")

		switch {
		case l.targeting:
			err = l.handleTarget(cmd)
		case len(l.session.Menu) > 0:
			err = l.handleMenu(ctx, cmd)
		default:
			err = l.handleBrowse(ctx, cmd)
		}
		if err != nil {
			return err
		}
	}

	if l.session.Phase() == states.PhaseAborted {
		return l.drawErr
	}

	// Keep the final board on screen until a key is pressed
	l.controller.Redraw()
	if _, err := l.decoder.Next(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return l.drawErr
}

// handleBrowse routes a command while no menu or target is pending. Select
// only means something inside the action menu.
func (l *Loop) handleBrowse(ctx context.Context, cmd input.Command) error {
	if dir, ok := cmd.Direction(); ok {
		l.controller.MoveCursor(dir)
		return nil
	}
	switch cmd.Kind {
	case input.Interact:
		l.controller.Interact()
	case input.EndTurn:
		return l.endTurn(ctx)
	case input.Quit:
		return l.controller.Quit()
	case input.Cancel:
		l.controller.CloseMenu()
	}
	return nil
}

func (l *Loop) handleMenu(ctx context.Context, cmd input.Command) error {
	s := l.session
	if cmd.Kind != input.Select {
		return l.handleBrowse(ctx, cmd)
	}
	if cmd.Index >= len(s.Menu) {
		return nil
	}

	opt := s.Menu[cmd.Index]
	if !opt.Kind.NeedsTarget() {
		l.perform(opt.Kind, nil)
		return nil
	}

	switch {
	case !opt.Affordable:
		s.Status = game.StatusText(core.ErrNotEnoughResources)
	case len(opt.Targets) == 0:
		s.Status = "No valid target for " + opt.Kind.Label() + "."
	default:
		l.targeting = true
		l.pending = opt.Kind
		l.source = s.Cursor
		l.targets = opt.Targets
		s.Menu = nil
		s.Status = ""
	}
	l.controller.Redraw()
	return nil
}

func (l *Loop) handleTarget(cmd input.Command) error {
	if dir, ok := cmd.Direction(); ok {
		l.controller.MoveCursor(dir)
		return nil
	}

	switch cmd.Kind {
	case input.Interact:
		target := l.session.Cursor
		l.stopTargeting()
		l.perform(l.pending, &target)
	case input.Cancel:
		l.stopTargeting()
		l.session.Status = ""
		l.controller.Redraw()
	case input.Quit:
		l.stopTargeting()
		return l.controller.Quit()
	}
	return nil
}

// stopTargeting leaves target mode with the cursor back on the acting city
func (l *Loop) stopTargeting() {
	l.targeting = false
	l.targets = nil
	l.session.Cursor = l.source
}

// perform runs an action from the cursor. Rejections are already on the
// status line.
func (l *Loop) perform(kind core.ActionKind, target *core.Position) {
	if err := l.controller.Perform(kind, target); err != nil {
		l.logger.Debug().Err(err).Stringer("kind", kind).Msg("Action rejected")
	}
}

func (l *Loop) endTurn(ctx context.Context) error {
	err := l.controller.EndTurn(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	l.logger.Warn().Err(err).Msg("End turn failed")
	return nil
}

func (l *Loop) inputClosed(err error) error {
	if !errors.Is(err, io.EOF) {
		return err
	}
	l.logger.Info().Msg("Input closed, leaving game")
	if l.session.IsOver() {
		return nil
	}
	return l.controller.Quit()
}

// View builds the frame for the current state
func (l *Loop) View() renderer.View {
	s := l.session
	mode := renderer.ModeBrowse
	switch {
	case s.IsOver():
		mode = renderer.ModeGameOver
	case l.targeting:
		mode = renderer.ModeTarget
	case len(s.Menu) > 0:
		mode = renderer.ModeMenu
	}
	return renderer.View{
		Board:      s.Board,
		Cursor:     s.Cursor,
		Turn:       s.Turn(),
		Difficulty: s.Difficulty,
		Phase:      s.Phase().String(),
		Status:     s.Status,
		Mode:       mode,
		Menu:       s.Menu,
		Pending:    l.pending,
		Targets:    l.targets,
	}
}

func (l *Loop) draw(*game.Session) {
	if err := l.renderer.Draw(l.out, l.View()); err != nil && l.drawErr == nil {
		l.drawErr = err
	}
}
