package testutil

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// TestSeed is the seed every deterministic test RNG starts from
const TestSeed = 12345

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(TestSeed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}
