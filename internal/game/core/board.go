package core

// DefaultGridSize is the width and height of the reference grid
const DefaultGridSize = 10

// Cell represents a single grid location.
// A blocked cell (wall) never holds a city and a city cell is never blocked.
type Cell struct {
	City    *City
	Blocked bool
}

func (c *Cell) HasCity() bool { return c.City != nil }
func (c *Cell) IsEmpty() bool { return !c.Blocked && c.City == nil }

// HasLivingCity reports whether the cell holds a city that is not a ruin
func (c *Cell) HasLivingCity() bool {
	return c.City != nil && !c.City.IsDestroyed()
}

// Board is a square grid of cells stored row-major
type Board struct {
	Size  int
	Cells []Cell // length = Size*Size
}

// NewBoard returns an all-empty, all-unblocked size×size board
func NewBoard(size int) *Board {
	if size < 0 {
		size = 0
	}
	return &Board{Size: size, Cells: make([]Cell, size*size)}
}

func (b *Board) Idx(p Position) int       { return p.ToIndex(b.Size) }
func (b *Board) Pos(idx int) Position     { return FromIndex(idx, b.Size) }
func (b *Board) InBounds(p Position) bool { return p.IsValid(b.Size) }

// CellAt returns the cell at p, or ErrInvalidPosition
func (b *Board) CellAt(p Position) (*Cell, error) {
	if !b.InBounds(p) {
		return nil, ErrInvalidPosition
	}
	return &b.Cells[b.Idx(p)], nil
}

// CityAt returns the city at p. A missing city is reported as ErrNoCityAtTarget;
// callers validating a source position remap it to ErrNoCityAtSource.
func (b *Board) CityAt(p Position) (*City, error) {
	cell, err := b.CellAt(p)
	if err != nil {
		return nil, err
	}
	if cell.City == nil {
		return nil, ErrNoCityAtTarget
	}
	return cell.City, nil
}

// PlaceCity puts city on an empty cell
func (b *Board) PlaceCity(p Position, city *City) error {
	cell, err := b.CellAt(p)
	if err != nil {
		return err
	}
	if cell.Blocked {
		return ErrTargetBlocked
	}
	if cell.City != nil {
		return ErrTargetOccupied
	}
	cell.City = city
	return nil
}

// SetBlocked raises or removes a wall. Walls cannot be raised on city cells.
func (b *Board) SetBlocked(p Position, blocked bool) error {
	cell, err := b.CellAt(p)
	if err != nil {
		return err
	}
	if blocked && cell.City != nil {
		return ErrTargetOccupied
	}
	cell.Blocked = blocked
	return nil
}

// ClearCell removes whatever wall or city occupies p
func (b *Board) ClearCell(p Position) error {
	cell, err := b.CellAt(p)
	if err != nil {
		return err
	}
	*cell = Cell{}
	return nil
}

// CityPositions returns the positions of all cities with the given ownership,
// in row-major order
func (b *Board) CityPositions(owner Ownership) []Position {
	var out []Position
	for i := range b.Cells {
		if c := b.Cells[i].City; c != nil && c.Owner == owner {
			out = append(out, b.Pos(i))
		}
	}
	return out
}

// CountCities returns how many cities have the given ownership
func (b *Board) CountCities(owner Ownership) int {
	n := 0
	for i := range b.Cells {
		if c := b.Cells[i].City; c != nil && c.Owner == owner {
			n++
		}
	}
	return n
}

// CountBlocked returns the number of walls on the board
func (b *Board) CountBlocked() int {
	n := 0
	for i := range b.Cells {
		if b.Cells[i].Blocked {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the board; cities are copied, not shared
func (b *Board) Clone() *Board {
	out := &Board{Size: b.Size, Cells: make([]Cell, len(b.Cells))}
	for i, cell := range b.Cells {
		out.Cells[i].Blocked = cell.Blocked
		if cell.City != nil {
			c := *cell.City
			out.Cells[i].City = &c
		}
	}
	return out
}
