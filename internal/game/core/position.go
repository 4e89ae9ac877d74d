package core

import (
	"fmt"

	"github.com/mitchelldurbincs/cellwars/internal/common"
)

// Position represents a cell location on the grid
type Position struct {
	X, Y int
}

// NewPosition creates a new position with the given x and y values
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// FromIndex creates a position from a board array index using row-major ordering
func FromIndex(idx, width int) Position {
	return Position{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the position is within a size×size grid
func (p Position) IsValid(size int) bool {
	return common.IsValidCoordinate(p.X, p.Y, size, size)
}

// ToIndex converts the position to a board array index using row-major ordering
func (p Position) ToIndex(width int) int {
	return p.Y*width + p.X
}

// Move returns a new position moved one step in the given direction.
// The result may be out of bounds; callers clamp or validate.
func (p Position) Move(direction Direction) Position {
	if offset, ok := DirectionVectors[direction]; ok {
		return Position{X: p.X + offset.X, Y: p.Y + offset.Y}
	}
	return p
}

// Clamp returns the position limited to a size×size grid
func (p Position) Clamp(size int) Position {
	return Position{
		X: common.Clamp(p.X, 0, size-1),
		Y: common.Clamp(p.Y, 0, size-1),
	}
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction represents a cardinal direction
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// DirectionVectors provides position offsets for each direction
var DirectionVectors = map[Direction]Position{
	North: {X: 0, Y: -1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}
