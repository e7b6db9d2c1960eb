package plstream

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerFake(t *testing.T, name string, lib Library) {
	t.Helper()
	Register(name, lib)
	t.Cleanup(func() { Unregister(name) })
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "mem", cfg.Device)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.True(t, cfg.Buffered)
	assert.NotNil(t, cfg.Colors.Foreground)
	assert.NotNil(t, cfg.Colors.Background)
}

func TestOpen(t *testing.T) {
	lib := newFakePlotter()
	registerFake(t, "fake", lib)

	cfg := NewConfig()
	cfg.Library = "fake"

	s, err := Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	var ops []string
	for _, ev := range without(lib.snapshot(), "create", "set") {
		ops = append(ops, ev.op)
	}

	assert.Equal(t, []string{
		"device", "page", "colormap", "colormap", "buffering", "init", "width",
	}, ops)
}

func TestOpenInitFailureCloses(t *testing.T) {
	lib := newFakePlotter()
	lib.initErr = errors.New("no such device")
	registerFake(t, "fake", lib)

	cfg := NewConfig()
	cfg.Library = "fake"

	s, err := Open(cfg)
	assert.Nil(t, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize device")

	assert.Equal(t, 1, lib.count("end"), "stream must be released")
}

func TestOpenUnknownLibrary(t *testing.T) {
	cfg := NewConfig()
	cfg.Library = "does-not-exist"

	_, err := Open(cfg)
	assert.True(t, errors.Is(err, ErrNoLibrary))
}

func TestOpenNotPlotter(t *testing.T) {
	lib := newFakeLibrary()
	registerFake(t, "bare", lib)

	cfg := NewConfig()
	cfg.Library = "bare"

	_, err := Open(cfg)
	assert.True(t, errors.Is(err, ErrNotPlotter))
	assert.Equal(t, 1, lib.count("end"))
}
