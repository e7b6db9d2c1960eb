package config

import (
	"github.com/diamondburned/handy"
	"github.com/diamondburned/plstream/cmd/plscope/internal/scope"
	"github.com/diamondburned/plstream/plcairo"
	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/gtk"
)

// Appearance is how the spectrum is plotted.
type Appearance struct {
	LineCap   LineCap
	AntiAlias AntiAlias

	ForegroundColor OptionalColor
	BackgroundColor OptionalColor

	BarWidth     float64 // pixels
	SpaceWidth   float64 // gap width in pixels
	MinimumClamp float64
	Symmetry     scope.Symmetry

	Title     string
	CustomCSS string
}

var symmetries = []string{"Vertical", "Horizontal"}

// NewAppearance returns the default appearance.
func NewAppearance() Appearance {
	return Appearance{
		LineCap:      CapButt,
		AntiAlias:    AntiAliasGood,
		BarWidth:     4,
		SpaceWidth:   1,
		MinimumClamp: 1,
	}
}

// Page creates the preferences page for the appearance.
func (ac *Appearance) Page(apply func()) *handy.PreferencesPage {
	lineCap := string(ac.LineCap)
	lineCapCombo := newCombo(&lineCap, []string{string(CapButt), string(CapRound)}, func() {
		ac.LineCap = LineCap(lineCap)
		apply()
	})

	antiAlias := string(ac.AntiAlias)
	aaCombo := newCombo(&antiAlias, antiAliasNames(), func() {
		ac.AntiAlias = AntiAlias(antiAlias)
		apply()
	})

	symmCombo, _ := gtk.ComboBoxTextNew()
	symmCombo.SetVAlign(gtk.ALIGN_CENTER)
	for _, name := range symmetries {
		symmCombo.AppendText(name)
	}
	symmCombo.SetActive(int(ac.Symmetry))
	symmCombo.Show()
	symmCombo.Connect("changed", func(symmCombo *gtk.ComboBoxText) {
		ac.Symmetry = scope.Symmetry(symmCombo.GetActive())
		apply()
	})

	barGroup := newGroup("Bars",
		newRow("Line Cap", "Whether to draw the bars squared or rounded.", lineCapCombo),
		newRow("Antialiasing", "The antialiasing mode for the display.", aaCombo),
		newRow("Bar Width", "The thickness of the bar in pixels.",
			newSpin(&ac.BarWidth, 1, 100, 1, 0, apply)),
		newRow("Gap Width", "The width of the gaps between bars in pixels.",
			newSpin(&ac.SpaceWidth, 0, 100, 1, 0, apply)),
		newRow("Clamp Height", "The height at which the bar should be clamped to 0.",
			newSpin(&ac.MinimumClamp, 0, 25, 1, 0, apply)),
		newRow("Symmetry", "Whether to mirror bars vertically or horizontally.", symmCombo),
	)

	fgRow := newColorRow(&ac.ForegroundColor, plcairo.Color{1, 0, 0, 1}, apply)
	fgRow.SetTitle("Foreground Color")
	fgRow.SetSubtitle("The color of the bars and the plot box.")
	fgRow.Show()

	bgRow := newColorRow(&ac.BackgroundColor, plcairo.Color{0, 0, 0, 1}, apply)
	bgRow.SetTitle("Background Color")
	bgRow.SetSubtitle("The color of the page.")
	bgRow.Show()

	plotGroup := newGroup("Plot",
		fgRow,
		bgRow,
		newRow("Title", "The title drawn above the plot.", newEntry(&ac.Title, apply)),
	)

	cssText, _ := gtk.TextViewNew()
	cssText.SetBorderWidth(5)
	cssText.SetMonospace(true)
	cssText.SetAcceptsTab(true)
	cssText.Show()

	cssBuf, _ := cssText.GetBuffer()
	cssBuf.SetText(ac.CustomCSS)
	cssBuf.Connect("changed", func() {
		start, end := cssBuf.GetBounds()
		ac.CustomCSS, _ = cssBuf.GetText(start, end, false)
		apply()
	})

	textScroll, _ := gtk.ScrolledWindowNew(nil, nil)
	textScroll.SetPolicy(gtk.POLICY_ALWAYS, gtk.POLICY_NEVER)
	textScroll.SetSizeRequest(-1, 300)
	textScroll.SetVExpand(true)
	textScroll.Add(cssText)
	textScroll.Show()

	cssGroup := newGroup("Custom CSS", textScroll)

	return newPage("Appearance", "applications-graphics-symbolic", barGroup, plotGroup, cssGroup)
}

// LineCap is the cap style of the bars.
type LineCap string

const (
	CapButt  LineCap = "Butt"
	CapRound LineCap = "Round"
)

// AsLineCap converts lc to cairo's. Unknown caps are butt.
func (lc LineCap) AsLineCap() cairo.LineCap {
	switch lc {
	case CapRound:
		return cairo.LINE_CAP_ROUND
	default:
		return cairo.LINE_CAP_BUTT
	}
}

// AntiAlias is the antialiasing mode of the display.
type AntiAlias string

const (
	AntiAliasNone      AntiAlias = "None"
	AntiAliasGrayscale AntiAlias = "Grayscale"
	AntiAliasSubpixel  AntiAlias = "Subpixel"
	AntiAliasFast      AntiAlias = "Fast"
	AntiAliasGood      AntiAlias = "Good"
	AntiAliasBest      AntiAlias = "Best"
)

func antiAliasNames() []string {
	return []string{
		string(AntiAliasNone),
		string(AntiAliasGrayscale),
		string(AntiAliasSubpixel),
		string(AntiAliasFast),
		string(AntiAliasGood),
		string(AntiAliasBest),
	}
}

// AsAntialias converts aa to cairo's. Unknown modes are good.
func (aa AntiAlias) AsAntialias() cairo.Antialias {
	switch aa {
	case AntiAliasNone:
		return cairo.ANTIALIAS_NONE
	case AntiAliasGrayscale:
		return cairo.ANTIALIAS_GRAY
	case AntiAliasSubpixel:
		return cairo.ANTIALIAS_SUBPIXEL
	case AntiAliasFast:
		return cairo.ANTIALIAS_FAST
	case AntiAliasBest:
		return cairo.ANTIALIAS_BEST
	default:
		return cairo.ANTIALIAS_GOOD
	}
}
