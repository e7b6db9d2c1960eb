package config

import (
	"github.com/diamondburned/handy"
	"github.com/gotk3/gotk3/gtk"
	"github.com/noriah/catnip/input"
)

// Input selects the audio input.
type Input struct {
	Backend     string
	Device      string // empty for the default device
	DualChannel bool

	backends []input.NamedBackend
	devices  map[string][]input.Device // first is always default
}

// NewInput selects the first working backend and its default device.
func NewInput() Input {
	ic := Input{DualChannel: true}
	ic.Update()

	if len(ic.backends) > 0 {
		ic.Backend = ic.backends[0].Name
	}

	return ic
}

// Update updates the list of input devices.
func (ic *Input) Update() {
	ic.backends = ic.backends[:0]
	ic.devices = make(map[string][]input.Device, len(input.Backends))

	for _, backend := range input.Backends {
		devices, _ := backend.Devices()
		defdevc, _ := backend.DefaultDevice()

		// Skip broken backends.
		if len(devices) == 0 && defdevc == nil {
			continue
		}

		ic.backends = append(ic.backends, backend)

		// Fallback to the first device if there is no default.
		if defdevc == nil {
			defdevc = devices[0]
		}

		ic.devices[backend.Name] = append([]input.Device{defdevc}, devices...)
	}
}

// Page creates the preferences page for the input.
func (ic *Input) Page(apply func()) *handy.PreferencesPage {
	deviceCombo, _ := gtk.ComboBoxTextNew()
	deviceCombo.SetVAlign(gtk.ALIGN_CENTER)
	deviceCombo.Show()

	addDeviceCombo(deviceCombo, ic.devices[ic.Backend])
	if findDevice(ic.devices[ic.Backend], ic.Device) != nil {
		deviceCombo.SetActiveID("__" + ic.Device)
	} else {
		deviceCombo.SetActive(0)
		ic.Device = ""
	}

	deviceChanged := deviceCombo.Connect("changed", func(deviceCombo *gtk.ComboBoxText) {
		if ix := deviceCombo.GetActive(); ix > 0 {
			ic.Device = ic.devices[ic.Backend][ix].String()
		} else {
			ic.Device = "" // default
		}

		apply()
	})

	backendCombo, _ := gtk.ComboBoxTextNew()
	backendCombo.SetVAlign(gtk.ALIGN_CENTER)
	backendCombo.Show()

	for _, backend := range ic.backends {
		backendCombo.Append(backend.Name, backend.Name)
	}
	if findBackend(ic.backends, ic.Backend).Backend != nil {
		backendCombo.SetActiveID(ic.Backend)
	} else if len(ic.backends) > 0 {
		backendCombo.SetActive(0)
		ic.Backend = ic.backends[0].Name
	}

	backendCombo.Connect("changed", func(backendCombo *gtk.ComboBoxText) {
		ic.Backend = backendCombo.GetActiveText()
		ic.Device = ""

		deviceCombo.HandlerBlock(deviceChanged)
		defer deviceCombo.HandlerUnblock(deviceChanged)

		// Update the list of devices when we're changing backend.
		ic.Update()

		deviceCombo.RemoveAll()
		addDeviceCombo(deviceCombo, ic.devices[ic.Backend])
		deviceCombo.SetActive(0)

		apply()
	})

	group := newGroup("Input",
		newRow("Backend", "The backend to use for audio input.", backendCombo),
		newRow("Device", "The device to use for audio input.", deviceCombo),
		newRow("Dual Channels", "If enabled, will plot both channels mirrored instead of one.",
			newSwitch(&ic.DualChannel, apply)),
	)

	return newPage("Audio", "audio-card-symbolic", group)
}

func addDeviceCombo(deviceCombo *gtk.ComboBoxText, devices []input.Device) {
	for i, device := range devices {
		if i == 0 {
			deviceCombo.Append("default", "Default")
		} else {
			name := device.String()
			deviceCombo.Append("__"+name, name)
		}
	}
}

func findDevice(devices []input.Device, str string) input.Device {
	if str == "" {
		return nil
	}
	for _, device := range devices {
		if device.String() == str {
			return device
		}
	}
	return nil
}

func findBackend(backends []input.NamedBackend, str string) input.NamedBackend {
	for _, backend := range backends {
		if backend.Name == str {
			return backend
		}
	}
	return input.NamedBackend{}
}

// InputBackend returns the selected backend, or nil.
func (ic *Input) InputBackend() input.Backend {
	return findBackend(ic.backends, ic.Backend).Backend
}

// InputDevice returns the selected device, or nil for the default.
func (ic *Input) InputDevice() input.Device {
	return findDevice(ic.devices[ic.Backend], ic.Device)
}
