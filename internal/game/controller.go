package game

import (
	"context"
	"errors"

	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/mitchelldurbincs/cellwars/internal/game/rules"
	"github.com/rs/zerolog"
)

// Drawer redraws the screen after the session changed
type Drawer interface {
	Draw(s *Session)
}

// DrawerFunc adapts a plain function to Drawer
type DrawerFunc func(s *Session)

func (f DrawerFunc) Draw(s *Session) { f(s) }

// Controller turns player commands into session operations. It keeps the
// cursor, status line and open menu of the session up to date.
type Controller struct {
	session *Session
	drawer  Drawer
	logger  zerolog.Logger
}

// NewController creates a controller. A nil drawer disables redraws.
func NewController(session *Session, drawer Drawer, logger zerolog.Logger) *Controller {
	if drawer == nil {
		drawer = DrawerFunc(func(*Session) {})
	}
	return &Controller{
		session: session,
		drawer:  drawer,
		logger:  logger.With().Str("component", "Controller").Logger(),
	}
}

// Session returns the controlled session
func (c *Controller) Session() *Session {
	return c.session
}

// Redraw draws the current state without changing it
func (c *Controller) Redraw() {
	c.drawer.Draw(c.session)
}

// MoveCursor steps the cursor one cell, stopping at the board edge
func (c *Controller) MoveCursor(dir core.Direction) {
	s := c.session
	s.Cursor = s.Cursor.Move(dir).Clamp(s.Board.Size)
	s.Status = ""
	s.Menu = nil
	c.drawer.Draw(s)
}

// Interact inspects the cell under the cursor. For one of the player's
// cities it opens and returns the action menu; otherwise it describes the
// cell in the status line and returns nil.
func (c *Controller) Interact() []rules.ActionOption {
	s := c.session
	defer c.drawer.Draw(s)

	s.Menu = nil
	cell := s.CursorCell()
	switch {
	case cell == nil:
		s.Status = "Nothing here."
	case cell.Blocked:
		s.Status = "That's just a wall."
	case cell.City == nil:
		s.Status = "Nothing here."
	case cell.City.IsDestroyed():
		s.Status = "A destroyed city."
	case cell.City.Owner == core.OwnedByComputer:
		s.Status = "An enemy city. Statistics unknown."
	default:
		options, err := s.Options(s.Cursor)
		if err != nil {
			s.Status = StatusText(err)
			return nil
		}
		s.Status = ""
		s.Menu = options
	}
	return s.Menu
}

// CloseMenu dismisses the action menu
func (c *Controller) CloseMenu() {
	c.session.Menu = nil
	c.drawer.Draw(c.session)
}

// Perform runs an action of kind from the city under the cursor. target is
// required for kinds that act on a second cell.
func (c *Controller) Perform(kind core.ActionKind, target *core.Position) error {
	s := c.session
	defer c.drawer.Draw(s)

	action, err := core.NewAction(kind, core.OwnedByPlayer, s.Cursor, target)
	if err == nil {
		err = s.Perform(action)
	}
	if err != nil {
		s.Status = StatusText(err)
		c.logger.Debug().Err(err).Stringer("kind", kind).Msg("Player action rejected")
		return err
	}

	s.Menu = nil
	s.Status = successText(s, kind, target)
	if s.IsOver() {
		s.Status = OutcomeText(s)
	}
	return nil
}

// EndTurn finishes the player's turn and lets the computer move
func (c *Controller) EndTurn(ctx context.Context) error {
	s := c.session
	defer c.drawer.Draw(s)

	s.Menu = nil
	if err := s.EndTurn(ctx); err != nil {
		s.Status = StatusText(err)
		return err
	}
	if s.IsOver() {
		s.Status = OutcomeText(s)
	} else {
		s.Status = ""
	}
	return nil
}

// Quit abandons the game
func (c *Controller) Quit() error {
	if err := c.session.Quit(); err != nil {
		return err
	}
	c.logger.Info().Int("turn", c.session.Turn()).Msg("Player quit")
	return nil
}

// StatusText turns an engine error into a message for the status line
func StatusText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, core.ErrNotEnoughResources):
		return "Not enough resources."
	case errors.Is(err, core.ErrTargetNotWall):
		return "That's not a wall."
	case errors.Is(err, core.ErrTargetNotEnemy):
		return "That's not an enemy city."
	case errors.Is(err, core.ErrTargetNotRuin):
		return "That's not a ruin."
	case errors.Is(err, core.ErrNoCityAtTarget):
		return "There's no city there."
	case errors.Is(err, core.ErrNoCityAtSource):
		return "There's no city here."
	case errors.Is(err, core.ErrTargetBlocked):
		return "That cell is walled off."
	case errors.Is(err, core.ErrTargetOccupied):
		return "That cell is already taken."
	case errors.Is(err, core.ErrTargetIsSource):
		return "Pick a different cell."
	case errors.Is(err, core.ErrNeedTargetPosition):
		return "Pick a target first."
	case errors.Is(err, core.ErrNotOwned):
		return "That isn't your city."
	case errors.Is(err, core.ErrInvalidPosition):
		return "That's off the map."
	case errors.Is(err, core.ErrGameOver):
		return "The game is over."
	case errors.Is(err, core.ErrNotPlayerTurn):
		return "Wait for your turn."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Interrupted."
	default:
		return err.Error()
	}
}

// OutcomeText is the final message for a finished session
func OutcomeText(s *Session) string {
	switch s.Outcome() {
	case rules.OutcomePlayerWon:
		return "Victory! Every enemy city has fallen."
	case rules.OutcomeComputerWon:
		return "Defeat. Your last city has fallen."
	case rules.OutcomeStalemate:
		return "Stalemate. " + s.Reason() + "."
	}
	if s.IsOver() {
		return "You left the game."
	}
	return ""
}

func successText(s *Session, kind core.ActionKind, target *core.Position) string {
	switch kind {
	case core.ActionProduce:
		return "Resources produced."
	case core.ActionUpgradeAttack:
		return "Combat readiness upgraded."
	case core.ActionUpgradeProduce:
		return "Production upgraded."
	case core.ActionDestroyWall:
		return "The wall is gone."
	case core.ActionGenerateCity:
		return "A new city was founded."
	case core.ActionClearRuin:
		return "The ruin was cleared."
	case core.ActionAttackCity:
		if target != nil {
			if city, err := s.Board.CityAt(*target); err == nil && city.IsDestroyed() {
				return "The enemy city was destroyed!"
			}
		}
		return "The attack was repelled."
	}
	return ""
}
