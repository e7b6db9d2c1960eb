package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/diamondburned/handy"
	"github.com/diamondburned/plstream/cmd/plscope/internal/scope"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the plscope config. It is stored as YAML if the file name ends in
// .yaml or .yml, and as JSON otherwise.
type Config struct {
	Input      Input
	Appearance Appearance
	Visualizer Visualizer
	Output     Output
}

// NewConfig creates a new default config. The input is left empty if no input
// backend has any device.
func NewConfig() *Config {
	cfg := Config{
		Input:      NewInput(),
		Appearance: NewAppearance(),
		Visualizer: NewVisualizer(),
		Output:     NewOutput(),
	}

	return &cfg
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// ReadConfig reads the config at the given path over the defaults.
func ReadConfig(path string) (*Config, error) {
	c := NewConfig()

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config path")
	}
	defer f.Close()

	if err := c.decode(f, isYAML(path)); err != nil {
		return nil, err
	}

	return c, nil
}

func (cfg *Config) decode(r io.Reader, asYAML bool) error {
	if asYAML {
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
			return errors.Wrap(err, "failed to decode YAML")
		}
		return nil
	}

	if err := json.NewDecoder(r).Decode(cfg); err != nil {
		return errors.Wrap(err, "failed to decode JSON")
	}
	return nil
}

// Save writes the config to path, creating its directory.
func (cfg Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Wrap(err, "failed to mkdir -p")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}
	defer f.Close()

	if isYAML(path) {
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)

		if err := enc.Encode(cfg); err != nil {
			return errors.Wrap(err, "failed to encode YAML")
		}
		return errors.Wrap(enc.Close(), "failed to encode YAML")
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "\t")

	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}

	return nil
}

// PreferencesWindow creates the preferences window. apply is called after
// every change.
func (cfg *Config) PreferencesWindow(apply func()) *handy.PreferencesWindow {
	// Refresh the input devices.
	cfg.Input.Update()

	window := handy.PreferencesWindowNew()
	window.SetSearchEnabled(true)
	window.SetModal(true)

	for _, page := range []*handy.PreferencesPage{
		cfg.Input.Page(apply),
		cfg.Appearance.Page(apply),
		cfg.Visualizer.Page(apply),
		cfg.Output.Page(apply),
	} {
		page.Show()
		window.Add(page)
	}

	return window
}

// Scope converts the config into a scope config.
func (cfg *Config) Scope() scope.Config {
	scopeCfg := scope.NewConfig()
	scopeCfg.Backend = cfg.Input.Backend
	scopeCfg.Device = cfg.Input.Device
	scopeCfg.Monophonic = !cfg.Input.DualChannel

	scopeCfg.WindowFn = cfg.Visualizer.WindowFn.AsFunction()
	scopeCfg.SampleRate = cfg.Visualizer.SampleRate
	scopeCfg.SampleSize = cfg.Visualizer.SampleSize()
	scopeCfg.FrameRate = cfg.Visualizer.FrameRate
	scopeCfg.SmoothFactor = cfg.Visualizer.SmoothFactor
	scopeCfg.SpectrumType = cfg.Visualizer.Distribution.AsSpectrumType()
	scopeCfg.Scaling = scope.ScalingConfig{
		SlowWindow:     cfg.Visualizer.ScaleSlowWindow,
		FastWindow:     cfg.Visualizer.ScaleFastWindow,
		DumpPercent:    cfg.Visualizer.ScaleDumpPercent,
		ResetDeviation: cfg.Visualizer.ScaleResetDeviation,
	}

	scopeCfg.MinimumClamp = cfg.Appearance.MinimumClamp
	scopeCfg.Symmetry = cfg.Appearance.Symmetry
	scopeCfg.BarWidth = cfg.Appearance.BarWidth
	scopeCfg.SpaceWidth = cfg.Appearance.SpaceWidth
	scopeCfg.Title = cfg.Appearance.Title
	scopeCfg.Cairo.LineCap = cfg.Appearance.LineCap.AsLineCap()
	scopeCfg.Cairo.AntiAlias = cfg.Appearance.AntiAlias.AsAntialias()

	if c := cfg.Appearance.ForegroundColor; c != nil {
		scopeCfg.Colors.Foreground = *c
	}
	if c := cfg.Appearance.BackgroundColor; c != nil {
		scopeCfg.Colors.Background = *c
	}

	return scopeCfg
}
