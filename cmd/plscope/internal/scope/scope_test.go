package scope

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/diamondburned/plstream"
	"github.com/diamondburned/plstream/software"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScope(t *testing.T, cfg Config) (*Scope, string) {
	t.Helper()

	output := t.Name()
	t.Cleanup(func() { software.ForgetPage(output) })

	s, err := newScope(nil, cfg, software.Memory, output)
	require.NoError(t, err)
	t.Cleanup(s.Stop)

	return s, output
}

func redPixels(img *image.RGBA) int {
	var n int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := img.RGBAAt(x, y); c.R > 200 && c.G < 50 {
				n++
			}
		}
	}
	return n
}

func fill(s *Scope, v float64) {
	for _, buf := range s.barBufs {
		for i := range buf {
			buf[i] = v
		}
	}
}

func TestBarHeight(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		scale float64
		clamp float64
		want  float64
	}{
		{"zero", 0, 1, 0, 0},
		{"full", 1, 1, 0, 1},
		{"over scale", 5, 2, 0, 1},
		{"half", 1, 2, 0, 0.5},
		{"clamped", 0.05, 1, 0.1, 0},
		{"rescaled", 0.55, 1, 0.1, 0.5},
		{"no scale", 1, 0, 0, 0},
		{"negative", -1, 1, 0, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.want, barHeight(test.value, test.scale, test.clamp), 1e-9)
		})
	}
}

func TestBars(t *testing.T) {
	cfg := NewConfig()
	cfg.BarWidth = 4
	cfg.SpaceWidth = 1

	s, _ := newTestScope(t, cfg)
	assert.Equal(t, 10, s.bars(60))
	assert.Equal(t, 11, s.bars(61))

	cfg.Symmetry = Horizontal
	s, _ = newTestScope(t, cfg)
	assert.Equal(t, 5, s.bars(60))
}

func TestRender(t *testing.T) {
	for _, symmetry := range []Symmetry{Vertical, Horizontal} {
		cfg := NewConfig()
		cfg.Symmetry = symmetry
		cfg.Title = "spectrum"

		s, output := newTestScope(t, cfg)

		require.NoError(t, s.Render(200, 100))
		require.NotZero(t, s.barCount)

		empty, ok := software.LastPage(output)
		require.True(t, ok)
		assert.Equal(t, image.Rect(0, 0, 200, 100), empty.Bounds())

		fill(s, 1)
		require.NoError(t, s.Render(200, 100))

		full, _ := software.LastPage(output)
		assert.Greater(t, redPixels(full), redPixels(empty), "symmetry %d", symmetry)
	}
}

func TestRenderResize(t *testing.T) {
	s, output := newTestScope(t, NewConfig())

	require.NoError(t, s.Render(200, 100))
	narrow := s.barCount

	require.NoError(t, s.Render(400, 50))
	assert.Greater(t, s.barCount, narrow)

	img, _ := software.LastPage(output)
	assert.Equal(t, image.Rect(0, 0, 400, 50), img.Bounds())

	assert.NoError(t, s.Render(0, 0), "empty allocations are ignored")
}

func TestSavePlot(t *testing.T) {
	s, output := newTestScope(t, NewConfig())
	fill(s, 1)
	require.NoError(t, s.Render(160, 120))

	file := filepath.Join(t.TempDir(), "plot.png")
	require.NoError(t, s.SavePlot(software.PNG, file))

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	saved, err := png.Decode(f)
	require.NoError(t, err)

	shown, _ := software.LastPage(output)
	assert.Equal(t, shown.Bounds(), saved.Bounds())
}

func TestSavePlotUnknownDevice(t *testing.T) {
	s, _ := newTestScope(t, NewConfig())
	assert.Error(t, s.SavePlot("no-such-device", "out"))
}

func TestStop(t *testing.T) {
	s, err := newScope(nil, NewConfig(), software.Memory, t.Name())
	require.NoError(t, err)

	s.Stop()
	s.Stop()

	err = s.Render(10, 10)
	assert.True(t, errors.Is(err, plstream.ErrUseAfterDispose))
}

func TestStartTwice(t *testing.T) {
	cfg := NewConfig()
	cfg.Backend = "no-such-backend"

	s, _ := newTestScope(t, cfg)
	assert.Error(t, s.Start())
	assert.Panics(t, func() { s.Start() })
}

func TestProcessPaused(t *testing.T) {
	s, _ := newTestScope(t, NewConfig())

	s.shared.writeBuf[0][0] = 0.5
	s.Process()
	assert.Equal(t, 0.5, s.shared.readBuf[0][0])
	assert.True(t, s.shared.reproc)

	s.SetPaused(true)
	s.Process()
	assert.Zero(t, s.shared.readBuf[0][0])
}

func TestNewScopeInvalid(t *testing.T) {
	cfg := NewConfig()
	cfg.SampleSize = 0

	_, err := newScope(nil, cfg, software.Memory, t.Name())
	assert.Error(t, err)
}
