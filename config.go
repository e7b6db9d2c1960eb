package plstream

import (
	"image/color"

	"github.com/pkg/errors"
)

// Config is the setup applied by Open.
type Config struct {
	// Library is the registered library name; empty means Default().
	Library string
	// Device is the output device name, e.g. "png" or "mem".
	Device string
	// Output is the output file. Devices that write several pages replace a
	// %d verb with the page number.
	Output string

	Width  int // pixels
	Height int // pixels

	Colors    Colors
	LineWidth float64

	// Buffered enables the plot buffer, so that the stream can later be
	// copied into another stream and replayed.
	Buffered bool
}

// Colors is the colour settings for a stream.
type Colors struct {
	Foreground color.Color // colour map entry 1; library default if nil
	Background color.Color // colour map entry 0; library default if nil
}

// NewConfig returns the default Config: an in-memory 800x600 page with the
// plot buffer enabled.
func NewConfig() Config {
	return Config{
		Library: "",
		Device:  "mem",

		Width:  800,
		Height: 600,

		Colors: Colors{
			Foreground: color.RGBA{0xFF, 0x00, 0x00, 0xFF},
			Background: color.RGBA{0x00, 0x00, 0x00, 0xFF},
		},
		LineWidth: 1,
		Buffered:  true,
	}
}

// Open creates a stream and applies cfg to it, then initializes the device.
// The stream is closed again if any step fails.
func Open(cfg Config) (*Stream, error) {
	lib := Default()
	if cfg.Library != "" {
		lib = Lookup(cfg.Library)
	}
	if lib == nil {
		return nil, errors.Wrapf(ErrNoLibrary, "library %q", cfg.Library)
	}

	s, err := NewWithLibrary(lib)
	if err != nil {
		return nil, err
	}

	err = s.Do(func(p Plotter) error {
		p.SetDevice(cfg.Device, cfg.Output)
		if cfg.Width > 0 && cfg.Height > 0 {
			p.SetPage(cfg.Width, cfg.Height)
		}
		if cfg.Colors.Background != nil {
			p.SetColorMap(0, cfg.Colors.Background)
		}
		if cfg.Colors.Foreground != nil {
			p.SetColorMap(1, cfg.Colors.Foreground)
		}
		p.SetBuffering(cfg.Buffered)

		if err := p.Init(); err != nil {
			return errors.Wrap(err, "failed to initialize device")
		}

		if cfg.LineWidth > 0 {
			p.Width(cfg.LineWidth)
		}
		return nil
	})

	if err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}
