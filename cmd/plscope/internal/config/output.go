package config

import (
	"path/filepath"
	"time"

	"github.com/diamondburned/handy"
	"github.com/diamondburned/plstream/plcairo"
	"github.com/diamondburned/plstream/software"
	"github.com/gotk3/gotk3/glib"
)

// Output is where saved plots go.
type Output struct {
	Device    string
	Directory string
}

// Devices that can save plots, each with its file extension.
var saveDevices = map[string]string{
	software.PNG:  ".png",
	software.BMP:  ".bmp",
	software.TIFF: ".tiff",
	plcairo.Name:  ".png",
}

// NewOutput saves PNG files through cairo into the user's pictures
// directory.
func NewOutput() Output {
	return Output{
		Device:    plcairo.Name,
		Directory: filepath.Join(glib.GetHomeDir(), "Pictures"),
	}
}

// Path returns a new file name for a plot saved at t.
func (o Output) Path(t time.Time) string {
	ext, ok := saveDevices[o.Device]
	if !ok {
		ext = ".png"
	}

	return filepath.Join(o.Directory, "plscope-"+t.Format("20060102-150405")+ext)
}

// SaveDevice returns the device to save with, falling back to cairo.
func (o Output) SaveDevice() string {
	if _, ok := saveDevices[o.Device]; ok {
		return o.Device
	}
	return plcairo.Name
}

// Page creates the preferences page for saved plots.
func (o *Output) Page(apply func()) *handy.PreferencesPage {
	names := []string{plcairo.Name, software.PNG, software.BMP, software.TIFF}

	group := newGroup("Saved Plots",
		newRow("Format", "The device used to save plots.", newCombo(&o.Device, names, apply)),
		newRow("Directory", "The directory plots are saved into.", newEntry(&o.Directory, apply)),
	)

	return newPage("Output", "document-save-symbolic", group)
}
