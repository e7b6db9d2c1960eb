// Command pldemo plots a damped sine into a buffered in-memory stream, then
// saves it through every file device by copying the stream's state into a new
// stream and replaying it there.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/diamondburned/plstream"
	"github.com/diamondburned/plstream/plcairo"
	"github.com/diamondburned/plstream/software"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	// Only built with the plplot tag.
	_ "github.com/diamondburned/plstream/plplot"
)

var (
	ok   = color.New(color.FgGreen, color.Bold).SprintFunc()
	fail = color.New(color.FgRed, color.Bold).SprintFunc()
	dim  = color.New(color.Faint).SprintFunc()
)

func main() {
	var (
		library  = flag.String("library", plstream.LibraryBuiltin, "plotting library: "+strings.Join(plstream.Available(), ", "))
		devices  = flag.String("devices", strings.Join([]string{software.PNG, software.BMP, software.TIFF, plcairo.Name}, ","), "comma-separated file devices to save to")
		outDir   = flag.String("out", ".", "output directory")
		width    = flag.Int("width", 800, "page width")
		height   = flag.Int("height", 600, "page height")
		streams  = flag.Int("streams", 4, "streams plotting concurrently in the stress run")
		logLevel = flag.String("log-level", "warn", "log level: debug, info, warn or error")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelWarn
	}
	plstream.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := plstream.NewConfig()
	cfg.Library = *library
	cfg.Device = displayDevice(*library)
	cfg.Output = "pldemo"
	cfg.Width = *width
	cfg.Height = *height

	display, err := plstream.Open(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, fail("error:"), err)
		os.Exit(1)
	}
	defer display.Close()

	if err := plotSine(display); err != nil {
		fmt.Fprintln(os.Stderr, fail("error:"), err)
		os.Exit(1)
	}
	fmt.Println(ok("plotted"), display, dim(fmt.Sprintf("%dx%d", *width, *height)))

	failed := false

	for _, device := range strings.Split(*devices, ",") {
		device = strings.TrimSpace(device)
		if device == "" {
			continue
		}

		path := filepath.Join(*outDir, "sine-"+device+extension(device))

		if err := saveCopy(display, *library, device, path); err != nil {
			fmt.Println(fail("FAIL"), device, dim(err.Error()))
			failed = true
			continue
		}

		fmt.Println(ok("  OK"), device, dim(path))
	}

	if *streams > 0 {
		if err := stress(cfg, *streams); err != nil {
			fmt.Println(fail("FAIL"), "stress", dim(err.Error()))
			failed = true
		} else {
			fmt.Println(ok("  OK"), "stress", dim(fmt.Sprintf("%d concurrent streams", *streams)))
		}
	}

	if failed {
		os.Exit(1)
	}
}

// nullDevice is PLplot's device that draws nothing. Every PLplot build has it.
const nullDevice = "null"

// displayDevice returns an in-memory device the library provides. The mem
// device only exists in the builtin library; PLplot's own mem device needs a
// caller-supplied buffer.
func displayDevice(library string) string {
	if library == plstream.LibraryBuiltin {
		return software.Memory
	}
	return nullDevice
}

// plotSine draws one page with a damped sine.
func plotSine(s *plstream.Stream) error {
	const n = 200

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		x := 10 * float64(i) / (n - 1)
		xs[i] = x
		ys[i] = math.Exp(-x/4) * math.Sin(2*x)
	}

	steps := []func() error{
		s.BeginPage,
		func() error { return s.Env(0, 10, -1, 1) },
		func() error { return s.Color(3) },
		func() error { return s.Line(xs, ys) },
		func() error { return s.Color(1) },
		func() error { return s.Label("t", "amplitude", "damped sine") },
		s.EndPage,
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	return nil
}

// saveCopy replays the plot of src into a new stream on device.
func saveCopy(src *plstream.Stream, library, device, path string) error {
	cfg := plstream.NewConfig()
	cfg.Library = library
	cfg.Device = device
	cfg.Output = path
	cfg.Buffered = false

	dst, err := plstream.Open(cfg)
	if err != nil {
		return err
	}
	defer dst.Close()

	if err := dst.CopyState(src, false); err != nil {
		return errors.Wrap(err, "failed to copy state")
	}

	if err := dst.Replay(); err != nil {
		return errors.Wrap(err, "failed to replay")
	}

	return dst.EndPage()
}

// stress plots n streams at once to exercise the library lock.
func stress(cfg plstream.Config, n int) error {
	var (
		wg   sync.WaitGroup
		errs = make([]error, n)
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			c := cfg
			c.Output = fmt.Sprintf("pldemo-stress-%d", i)
			defer software.ForgetPage(c.Output)

			s, err := plstream.Open(c)
			if err != nil {
				errs[i] = err
				return
			}
			defer s.Close()

			for page := 0; page < 10; page++ {
				if err := plotSine(s); err != nil {
					errs[i] = errors.Wrapf(err, "stream %d", i)
					return
				}
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func extension(device string) string {
	switch device {
	case software.BMP:
		return ".bmp"
	case software.TIFF:
		return ".tiff"
	default:
		return ".png"
	}
}
