package terminal

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMode struct {
	raw        bool
	restored   int
	makeErr    error
	restoreErr error
}

func (m *fakeMode) MakeRaw() (func() error, error) {
	if m.makeErr != nil {
		return nil, m.makeErr
	}
	m.raw = true
	return func() error {
		m.raw = false
		m.restored++
		return m.restoreErr
	}, nil
}

func TestWithRawMode_RestoresOnReturn(t *testing.T) {
	mode := &fakeMode{}
	var out bytes.Buffer
	ran := false

	err := WithRawMode(mode, &out, func() error {
		ran = true
		assert.True(t, mode.raw, "fn runs in raw mode")
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, mode.raw)
	assert.Equal(t, 1, mode.restored)
	assert.Equal(t, EnterAltScreen+HideCursor+ShowCursor+ExitAltScreen, out.String())
}

func TestWithRawMode_RestoresOnError(t *testing.T) {
	mode := &fakeMode{}
	boom := errors.New("boom")

	err := WithRawMode(mode, &bytes.Buffer{}, func() error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, mode.restored)
}

func TestWithRawMode_RestoresOnPanic(t *testing.T) {
	mode := &fakeMode{}
	var out bytes.Buffer

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = WithRawMode(mode, &out, func() error { panic("kaboom") })
	})
	assert.Equal(t, 1, mode.restored)
	assert.False(t, mode.raw)
	assert.Contains(t, out.String(), ShowCursor+ExitAltScreen)
}

func TestWithRawMode_MakeRawFails(t *testing.T) {
	mode := &fakeMode{makeErr: errors.New("no tty")}
	var out bytes.Buffer
	called := false

	err := WithRawMode(mode, &out, func() error { called = true; return nil })

	assert.Error(t, err)
	assert.False(t, called)
	assert.Empty(t, out.String())
}

func TestWithRawMode_RestoreError(t *testing.T) {
	restoreErr := errors.New("stuck")
	mode := &fakeMode{restoreErr: restoreErr}

	err := WithRawMode(mode, &bytes.Buffer{}, func() error { return nil })
	assert.ErrorIs(t, err, restoreErr)

	fnErr := errors.New("first")
	err = WithRawMode(mode, &bytes.Buffer{}, func() error { return fnErr })
	assert.ErrorIs(t, err, fnErr, "the fn error wins over the restore error")
}

func TestFdMode_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notatty")
	require.NoError(t, err)
	defer f.Close()

	_, err = FdMode(f.Fd()).MakeRaw()
	assert.Error(t, err)
	assert.False(t, IsTerminal(int(f.Fd())))
}
