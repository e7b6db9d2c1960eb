package main

import (
	"fmt"
	"html"
	"log/slog"
	"os"
	"time"

	"github.com/diamondburned/plstream"
	"github.com/diamondburned/plstream/cmd/plscope/internal/config"
	"github.com/diamondburned/plstream/cmd/plscope/internal/scope"
	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/pkg/errors"
)

// reloadDelay debounces reloads while preferences are being changed.
const reloadDelay = 150

// Session shows a scope, or the error that stopped it.
type Session struct {
	gtk.Stack

	Error *gtk.Label
	Area  *gtk.DrawingArea
	Scope *scope.Scope

	css       *gtk.CssProvider
	config    *config.Config
	reloading bool
}

// NewSession creates a session. Call Reload to start it.
func NewSession(cfg *config.Config) *Session {
	errLabel, _ := gtk.LabelNew("")
	errLabel.Show()

	area, _ := gtk.DrawingAreaNew()
	area.Show()

	stack, _ := gtk.StackNew()
	stack.AddNamed(area, "area")
	stack.AddNamed(errLabel, "error")
	stack.SetVisibleChildName("area")
	stack.Show()

	css, _ := gtk.CssProviderNew()

	session := &Session{
		Stack: *stack,
		Error: errLabel,
		Area:  area,

		config: cfg,
		css:    css,
	}

	stack.Connect("realize", func() {
		screen, _ := stack.GetScreen()
		gtk.AddProviderForScreen(
			screen, css,
			uint(gtk.STYLE_PROVIDER_PRIORITY_USER),
		)
	})

	// The area outlives every scope, so one handler serves all of them.
	area.Connect("draw", func(area *gtk.DrawingArea, cr *cairo.Context) {
		if session.Scope != nil {
			session.Scope.Draw(area, cr)
		}
	})

	return session
}

// Stop stops the current scope.
func (s *Session) Stop() {
	if s.Scope != nil {
		s.Scope.Stop()
		s.Scope = nil
	}
}

// Reload restarts the scope with the current config, at most once per
// reloadDelay.
func (s *Session) Reload() {
	if s.reloading {
		return
	}
	s.reloading = true

	glib.TimeoutAddPriority(reloadDelay, glib.PRIORITY_DEFAULT, func() bool {
		s.reloading = false
		s.reload()
		return false
	})
}

func (s *Session) reload() {
	if err := s.css.LoadFromData(s.config.Appearance.CustomCSS); err != nil {
		plstream.Logger().Warn("CSS error", slog.String("error", err.Error()))
	}

	s.Stop()

	sc, err := scope.New(s.Area, s.config.Scope())
	if err != nil {
		s.showError(err)
		return
	}

	sc.SetBackend(s.config.Input.InputBackend())
	sc.SetDevice(s.config.Input.InputDevice())

	s.Stack.SetVisibleChild(s.Area)
	s.Scope = sc

	go func() {
		if err := sc.Start(); err != nil {
			plstream.Logger().Error("failed to start scope", slog.String("error", err.Error()))
			glib.IdleAdd(func() {
				// Ensure this scope is still being displayed.
				if s.Scope == sc {
					s.showError(err)
				}
			})
		}
	}()
}

func (s *Session) showError(err error) {
	s.Error.SetMarkup(errorText(err))
	s.Stack.SetVisibleChild(s.Error)
}

// SavePlot saves the last frame of the scope as configured. It returns the
// file written.
func (s *Session) SavePlot() (string, error) {
	if s.Scope == nil {
		return "", errors.New("nothing to save")
	}

	if err := os.MkdirAll(s.config.Output.Directory, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "failed to create output directory")
	}

	path := s.config.Output.Path(time.Now())
	return path, s.Scope.SavePlot(s.config.Output.SaveDevice(), path)
}

func errorText(err error) string {
	return fmt.Sprintf(
		`<span color="red"><b>Error:</b> %s</span>`,
		html.EscapeString(err.Error()),
	)
}
