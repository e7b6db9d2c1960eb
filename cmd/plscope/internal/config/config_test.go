package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diamondburned/plstream/cmd/plscope/internal/scope"
	"github.com/diamondburned/plstream/plcairo"
	"github.com/diamondburned/plstream/software"
	"github.com/noriah/catnip/dsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRead(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "plscope", name)

			cfg := NewConfig()
			cfg.Appearance.Title = "spectrum"
			cfg.Appearance.Symmetry = scope.Horizontal
			cfg.Appearance.ForegroundColor = &plcairo.Color{0, 1, 0, 1}
			cfg.Visualizer.WindowFn = Hann
			cfg.Output.Device = software.TIFF
			require.NoError(t, cfg.Save(path))

			got, err := ReadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, cfg.Appearance, got.Appearance)
			assert.Equal(t, cfg.Visualizer, got.Visualizer)
			assert.Equal(t, cfg.Output, got.Output)
		})
	}
}

func TestReadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("visualizer:\n  framerate: 30\n"), 0o644))

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, cfg.Visualizer.FrameRate)
	assert.Equal(t, NewVisualizer().SampleRate, cfg.Visualizer.SampleRate, "defaults are kept")
}

func TestReadConfigErrors(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err = ReadConfig(path)
	assert.Error(t, err)
}

func TestScope(t *testing.T) {
	cfg := NewConfig()
	cfg.Input.DualChannel = false
	cfg.Appearance.BarWidth = 7
	cfg.Appearance.BackgroundColor = &plcairo.Color{1, 1, 1, 1}
	cfg.Visualizer.SampleRate = 44100
	cfg.Visualizer.FrameRate = 30
	cfg.Visualizer.Distribution = DistributeEqual

	sc := cfg.Scope()
	assert.True(t, sc.Monophonic)
	assert.Equal(t, 7.0, sc.BarWidth)
	assert.Equal(t, 1470, sc.SampleSize)
	assert.Equal(t, 30.0, sc.FrameRate)
	assert.Equal(t, dsp.TypeEqual, sc.SpectrumType)
	assert.Equal(t, plcairo.Color{1, 1, 1, 1}, sc.Colors.Background)
	assert.Nil(t, sc.Colors.Foreground)
	assert.NotNil(t, sc.WindowFn)
}

func TestWindowFns(t *testing.T) {
	for _, wfn := range append(windowFns, "unknown") {
		fn := wfn.AsFunction()
		require.NotNil(t, fn, wfn)

		buf := []float64{1, 1, 1, 1, 1, 1, 1, 1}
		fn(buf)
		assert.Len(t, buf, 8)
	}
}

func TestOutputPath(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 5, 0, time.UTC)

	o := Output{Device: software.BMP, Directory: "/tmp"}
	assert.Equal(t, "/tmp/plscope-20240301-123005.bmp", o.Path(at))
	assert.Equal(t, software.BMP, o.SaveDevice())

	o.Device = "unknown"
	assert.Equal(t, "/tmp/plscope-20240301-123005.png", o.Path(at))
	assert.Equal(t, plcairo.Name, o.SaveDevice())
}
