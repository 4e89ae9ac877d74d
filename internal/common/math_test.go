package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int
		expected int
	}{
		{"zero numerator", 0, 2, 0},
		{"exact division", 4, 2, 2},
		{"rounds up", 5, 2, 3},
		{"one over three", 1, 3, 1},
		{"eight over three", 8, 3, 3},
		{"nine over three", 9, 3, 3},
		{"negative numerator clamps", -4, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CeilDiv(tt.a, tt.b))
		})
	}
}

func TestSaturatingArithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		assert.Equal(t, 7, SaturatingAdd(3, 4))
		assert.Equal(t, math.MaxInt, SaturatingAdd(math.MaxInt, 1))
		assert.Equal(t, math.MaxInt, SaturatingAdd(math.MaxInt-2, 10))
	})

	t.Run("sub", func(t *testing.T) {
		assert.Equal(t, 2, SaturatingSub(5, 3))
		assert.Equal(t, 0, SaturatingSub(3, 3))
		assert.Equal(t, 0, SaturatingSub(3, 10))
	})

	t.Run("mul", func(t *testing.T) {
		assert.Equal(t, 15, SaturatingMul(3, 5))
		assert.Equal(t, 0, SaturatingMul(0, 5))
		assert.Equal(t, math.MaxInt, SaturatingMul(math.MaxInt/2, 5))
	})

	t.Run("never negative", func(t *testing.T) {
		for a := 0; a < 20; a++ {
			for b := 0; b < 20; b++ {
				assert.GreaterOrEqual(t, SaturatingSub(a, b), 0)
			}
		}
	})
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-1, 0, 9))
	assert.Equal(t, 9, Clamp(12, 0, 9))
	assert.Equal(t, 4, Clamp(4, 0, 9))
}
