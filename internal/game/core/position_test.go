package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_IndexRoundTrip(t *testing.T) {
	const size = 10
	for idx := 0; idx < size*size; idx++ {
		p := FromIndex(idx, size)
		assert.True(t, p.IsValid(size))
		assert.Equal(t, idx, p.ToIndex(size))
	}
}

func TestPosition_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		pos   Position
		valid bool
	}{
		{"origin", Position{0, 0}, true},
		{"far corner", Position{9, 9}, true},
		{"negative x", Position{-1, 0}, false},
		{"negative y", Position{0, -1}, false},
		{"x at size", Position{10, 0}, false},
		{"y at size", Position{0, 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.pos.IsValid(10))
		})
	}
}

func TestPosition_MoveAndClamp(t *testing.T) {
	tests := []struct {
		name     string
		start    Position
		dir      Direction
		expected Position
	}{
		{"north", Position{3, 3}, North, Position{3, 2}},
		{"east", Position{3, 3}, East, Position{4, 3}},
		{"south", Position{3, 3}, South, Position{3, 4}},
		{"west", Position{3, 3}, West, Position{2, 3}},
		{"north edge stays", Position{3, 0}, North, Position{3, 0}},
		{"east edge stays", Position{9, 3}, East, Position{9, 3}},
		{"south edge stays", Position{3, 9}, South, Position{3, 9}},
		{"west edge stays", Position{0, 3}, West, Position{0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.start.Move(tt.dir).Clamp(10))
		})
	}
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "(1,2)", Position{1, 2}.String())
	assert.Equal(t, "west", West.String())
}
