// Command plscope shows the live spectrum of an audio input, plotted through
// a plstream stream onto a GTK window. Right-click for preferences and to save
// the current plot.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/diamondburned/handy"
	"github.com/diamondburned/plstream"
	"github.com/diamondburned/plstream/cmd/plscope/internal/config"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Required.
	_ "github.com/noriah/catnip/input/ffmpeg"
	_ "github.com/noriah/catnip/input/parec"
	_ "github.com/noriah/catnip/input/portaudio"

	// Devices for saved plots.
	_ "github.com/diamondburned/plstream/software"
)

var (
	configPath  = flag.String("config", defaultConfigPath(), "config file; .yaml or .yml for YAML, JSON otherwise")
	metricsAddr = flag.String("metrics", "", "address to serve Prometheus metrics on, e.g. :9090")
	logLevel    = flag.String("log-level", "info", "log level: debug, info, warn or error")
)

func defaultConfigPath() string {
	return filepath.Join(glib.GetUserConfigDir(), "plscope", "config.json")
}

func init() {
	gtk.Init(&os.Args)
	handy.Init()
}

func main() {
	flag.Parse()

	logger := newLogger(*logLevel)
	plstream.SetLogger(logger)

	if *metricsAddr != "" {
		go serveMetrics(logger, *metricsAddr)
	}

	cfg, err := config.ReadConfig(*configPath)
	if err != nil {
		logger.Info("using default config", slog.String("reason", err.Error()))
		cfg = config.NewConfig()
	}

	session := NewSession(cfg)
	session.Reload()
	session.Show()

	evbox, _ := gtk.EventBoxNew()
	evbox.Add(session)
	evbox.Show()

	w := handy.WindowNew()
	w.Add(evbox)
	w.SetDefaultSize(1000, 300)
	w.Connect("destroy", func(w *handy.Window) {
		session.Stop()
		gtk.MainQuit()
	})
	w.Show()

	wstyle, _ := w.GetStyleContext()
	wstyle.AddClass("plscope")

	prefMenu, _ := gtk.MenuItemNewWithLabel("Preferences")
	prefMenu.Show()
	prefMenu.Connect("activate", func(prefMenu *gtk.MenuItem) {
		cfgw := cfg.PreferencesWindow(session.Reload)
		cfgw.Connect("destroy", func(*handy.PreferencesWindow) { save(logger, cfg) })
		cfgw.Show()
	})

	saveMenu, _ := gtk.MenuItemNewWithLabel("Save Plot")
	saveMenu.Show()
	saveMenu.Connect("activate", func(*gtk.MenuItem) {
		path, err := session.SavePlot()
		if err != nil {
			logger.Error("failed to save plot", slog.String("error", err.Error()))
			return
		}
		logger.Info("plot saved", slog.String("path", path))
	})

	aboutMenu, _ := gtk.MenuItemNewWithLabel("About")
	aboutMenu.Show()
	aboutMenu.Connect("activate", func(aboutMenu *gtk.MenuItem) {
		about := About()
		about.SetTransientFor(w)
		about.Show()
	})

	quitMenu, _ := gtk.MenuItemNewWithLabel("Quit")
	quitMenu.Show()
	quitMenu.Connect("activate", func(*gtk.MenuItem) { w.Destroy() })

	menu, _ := gtk.MenuNew()
	menu.Append(prefMenu)
	menu.Append(saveMenu)
	menu.Append(aboutMenu)
	menu.Append(quitMenu)

	evbox.Connect("button-press-event", func(evbox *gtk.EventBox, ev *gdk.Event) {
		if b := gdk.EventButtonNewFromEvent(ev); b.Button() == gdk.BUTTON_SECONDARY {
			menu.PopupAtPointer(ev)
		}
	})

	gtk.Main()
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func serveMetrics(logger *slog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info("serving metrics", slog.String("addr", addr))

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", slog.String("error", err.Error()))
	}
}

func save(logger *slog.Logger, cfg *config.Config) {
	if err := cfg.Save(*configPath); err != nil {
		logger.Error("failed to save config", slog.String("error", err.Error()))
	}
}
