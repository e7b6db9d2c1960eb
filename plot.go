package plstream

import (
	"image/color"
	"runtime"
)

// Do activates the stream and calls fn with its library, all while holding
// the library lock. Every call fn makes on the Plotter applies to s. fn must
// not call back into any Stream method.
func (s *Stream) Do(fn func(p Plotter) error) error {
	lockLibrary()
	defer unlockLibrary()
	defer runtime.KeepAlive(s)

	p, ok := s.st.lib.(Plotter)
	if !ok {
		return ErrNotPlotter
	}

	if err := s.st.activate(); err != nil {
		return err
	}

	return fn(p)
}

// SetDevice selects the output device and file. It must be called before
// Init.
func (s *Stream) SetDevice(name, output string) error {
	return s.Do(func(p Plotter) error {
		p.SetDevice(name, output)
		return nil
	})
}

// SetPage sets the page size in pixels. It must be called before Init.
func (s *Stream) SetPage(width, height int) error {
	return s.Do(func(p Plotter) error {
		p.SetPage(width, height)
		return nil
	})
}

// SetColorMap sets entry index of colour map 0. Entry 0 is the background.
func (s *Stream) SetColorMap(index int, c color.Color) error {
	if c == nil {
		return ErrNilColor
	}
	return s.Do(func(p Plotter) error {
		p.SetColorMap(index, c)
		return nil
	})
}

// SetBuffering turns the plot buffer on or off. A buffered stream can be
// copied into another stream and replayed there.
func (s *Stream) SetBuffering(on bool) error {
	return s.Do(func(p Plotter) error {
		p.SetBuffering(on)
		return nil
	})
}

// Init opens the output device.
func (s *Stream) Init() error {
	return s.Do(func(p Plotter) error { return p.Init() })
}

// BeginPage starts a new page and clears the plot buffer.
func (s *Stream) BeginPage() error {
	return s.Do(func(p Plotter) error {
		p.BeginPage()
		return nil
	})
}

// EndPage finishes the current page, writing it out on file devices.
func (s *Stream) EndPage() error {
	return s.Do(func(p Plotter) error { return p.EndPage() })
}

// Env sets the world coordinates of the viewport and draws its box.
func (s *Stream) Env(xmin, xmax, ymin, ymax float64) error {
	return s.Do(func(p Plotter) error {
		p.Env(xmin, xmax, ymin, ymax)
		return nil
	})
}

// Color selects the pen colour from colour map 0.
func (s *Stream) Color(index int) error {
	return s.Do(func(p Plotter) error {
		p.Color(index)
		return nil
	})
}

// Width sets the pen width.
func (s *Stream) Width(width float64) error {
	return s.Do(func(p Plotter) error {
		p.Width(width)
		return nil
	})
}

// Line draws a polyline through the given world coordinates.
func (s *Stream) Line(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return ErrLength
	}
	return s.Do(func(p Plotter) error {
		p.Line(xs, ys)
		return nil
	})
}

// Label writes the x axis label, the y axis label and the title.
func (s *Stream) Label(x, y, title string) error {
	return s.Do(func(p Plotter) error {
		p.Label(x, y, title)
		return nil
	})
}

// Replay starts a new page and redraws the plot buffer onto it.
func (s *Stream) Replay() error {
	return s.Do(func(p Plotter) error { return p.Replay() })
}
