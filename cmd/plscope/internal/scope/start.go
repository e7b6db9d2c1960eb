package scope

import (
	"math"
	"sync/atomic"

	"github.com/gotk3/gotk3/glib"
	"github.com/noriah/catnip/dsp"
	"github.com/noriah/catnip/fft"
	"github.com/noriah/catnip/input"
	"github.com/pkg/errors"

	catniputil "github.com/noriah/catnip/util"
)

// allocate sets up the spectrum, the scaling windows and every buffer.
func (s *Scope) allocate() {
	s.spectrum = dsp.Spectrum{
		SampleRate: s.cfg.SampleRate,
		SampleSize: s.cfg.SampleSize,
		Bins:       make(dsp.BinBuf, s.cfg.SampleSize),
	}
	s.spectrum.SetSmoothing(s.cfg.SmoothFactor / 100)
	s.spectrum.SetType(s.cfg.SpectrumType)

	s.scale = s.cfg.Scaling.StaticScale
	if s.scale == 0 {
		s.scale = 1

		var (
			slowMax    = int(s.cfg.Scaling.SlowWindow*s.cfg.SampleRate) / s.cfg.SampleSize * 2
			fastMax    = int(s.cfg.Scaling.FastWindow*s.cfg.SampleRate) / s.cfg.SampleSize * 2
			windowData = make([]float64, slowMax+fastMax)
		)

		s.slowWindow = &catniputil.MovingWindow{
			Data:     windowData[0:slowMax],
			Capacity: slowMax,
		}

		s.fastWindow = &catniputil.MovingWindow{
			Data:     windowData[slowMax : slowMax+fastMax],
			Capacity: fastMax,
		}
	}

	s.inputCfg = input.SessionConfig{
		FrameSize:  s.channels,
		SampleSize: s.cfg.SampleSize,
		SampleRate: s.cfg.SampleRate,
	}

	s.barBufs = splitFloats(s.channels, s.cfg.SampleSize)
	s.fftBufs = splitComplex(s.channels, s.cfg.SampleSize/2+1)
	s.shared.readBuf = input.MakeBuffers(s.inputCfg)
	s.shared.writeBuf = input.MakeBuffers(s.inputCfg)

	s.fftPlans = make([]*fft.Plan, s.channels)
	for idx := range s.fftPlans {
		s.fftPlans[idx] = &fft.Plan{
			Input:  s.shared.readBuf[idx],
			Output: s.fftBufs[idx],
		}
	}
}

// Start starts reading the input. This function blocks until the input loop
// is dead, so it should be called inside a goroutine. It panics if called more
// than once.
func (s *Scope) Start() (err error) {
	if !atomic.CompareAndSwapUint32(&s.started, 0, 1) {
		panic("BUG: scope.Scope is already started.")
	}

	if s.backend == nil {
		s.backend, err = findBackend(s.cfg.Backend)
		if err != nil {
			return err
		}
	}
	defer s.backend.Close()

	if s.device == nil {
		s.device, err = findDevice(s.backend, s.cfg.Device)
		if err != nil {
			return err
		}
	}

	sessionConfig := s.inputCfg
	sessionConfig.Device = s.device

	session, err := s.backend.Start(sessionConfig)
	if err != nil {
		return errors.Wrap(err, "failed to start the input backend")
	}

	// Free up the device.
	s.device = nil

	// Periodically queue redraw. Note that this is never a perfect rounding:
	// inputting 60Hz will trigger a redraw every 16ms, which is 62.5Hz.
	ms := uint(1000 / s.cfg.FrameRate)
	timerHandle := glib.TimeoutAddPriority(ms, glib.PRIORITY_HIGH_IDLE, func() bool {
		// Only queue draw if we have a peak noticeable enough.
		if s.updateBars() && s.drawQ != nil {
			s.drawQ.QueueDraw()
		}

		return true
	})

	defer glib.SourceRemove(timerHandle)

	// Write to writeBuf, and we can copy from write to read (see Process).
	if err := session.Start(s.ctx, s.shared.writeBuf, s); err != nil {
		return errors.Wrap(err, "failed to start input session")
	}

	return nil
}

func findBackend(name string) (input.Backend, error) {
	for _, backend := range input.Backends {
		if backend.Name == name {
			return backend.Backend, nil
		}
	}
	return nil, errors.Errorf("input backend %q not found", name)
}

func findDevice(backend input.Backend, name string) (input.Device, error) {
	if name == "" {
		device, err := backend.DefaultDevice()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get the default device")
		}
		return device, nil
	}

	devices, err := backend.Devices()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list devices")
	}

	for _, device := range devices {
		if device.String() == name {
			return device, nil
		}
	}

	return nil, errors.Errorf("input device %q not found", name)
}

// updateBars updates the bar buffers and the scale. It returns true if a
// redraw is needed.
func (s *Scope) updateBars() bool {
	peak := 0.0

	s.shared.Lock()

	for idx, buf := range s.barBufs {
		// Lazily reprocess the buffers only when it's updated.
		if s.shared.reproc {
			s.cfg.WindowFn(s.shared.readBuf[idx])
			s.fftPlans[idx].Execute() // process into buf
		}

		s.spectrum.Process(buf, s.fftBufs[idx])

		for _, v := range buf[:s.barCount] {
			if peak < v {
				peak = v
			}
		}
	}

	s.shared.reproc = false
	s.shared.Unlock()

	draw := peak > 0

	// Only update the scale if we have an audible peak.
	if s.slowWindow != nil && draw {
		s.fastWindow.Update(peak)
		vMean, vSD := s.slowWindow.Update(peak)

		if length := s.slowWindow.Len(); length >= s.fastWindow.Cap() {
			if math.Abs(s.fastWindow.Mean()-vMean) > (s.cfg.Scaling.ResetDeviation * vSD) {
				count := int(float64(length) * s.cfg.Scaling.DumpPercent)
				vMean, vSD = s.slowWindow.Drop(count)
			}
		}

		if t := vMean + (1.5 * vSD); t > 1.0 {
			s.scale = t
		}
	}

	return draw
}

// Process copies the latest input into the read buffers. It is called by the
// input session.
func (s *Scope) Process() {
	s.shared.Lock()
	defer s.shared.Unlock()

	s.shared.reproc = true

	if s.shared.paused {
		writeZeroBuf(s.shared.readBuf)
		return
	}

	// Copy the audio over.
	input.CopyBuffers(s.shared.readBuf, s.shared.writeBuf)
}

func writeZeroBuf(buf [][]float64) {
	for i := range buf {
		for j := range buf[i] {
			buf[i][j] = 0
		}
	}
}

// splitFloats allocates one backing array and slices it into n views.
func splitFloats(n, each int) [][]float64 {
	full := make([]float64, n*each)
	bufs := make([][]float64, n)

	for idx := range bufs {
		bufs[idx] = full[idx*each : (idx+1)*each]
	}

	return bufs
}

func splitComplex(n, each int) [][]complex128 {
	full := make([]complex128, n*each)
	bufs := make([][]complex128, n)

	for idx := range bufs {
		bufs[idx] = full[idx*each : (idx+1)*each]
	}

	return bufs
}
