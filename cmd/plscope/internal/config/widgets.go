package config

import (
	"github.com/diamondburned/handy"
	"github.com/diamondburned/plstream/plcairo"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

// OptionalColor is a colour that falls back to a default when nil.
type OptionalColor = *plcairo.Color

func newRow(title, subtitle string, w gtk.IWidget) *handy.ActionRow {
	row := handy.ActionRowNew()
	row.Add(w)
	row.SetActivatableWidget(w)
	row.SetTitle(title)
	row.SetSubtitle(subtitle)
	row.Show()
	return row
}

func newGroup(title string, rows ...gtk.IWidget) *handy.PreferencesGroup {
	group := handy.PreferencesGroupNew()
	group.SetTitle(title)
	for _, row := range rows {
		group.Add(row)
	}
	group.Show()
	return group
}

func newPage(title, icon string, groups ...*handy.PreferencesGroup) *handy.PreferencesPage {
	page := handy.PreferencesPageNew()
	page.SetTitle(title)
	page.SetIconName(icon)
	for _, group := range groups {
		page.Add(group)
	}
	return page
}

// newSpin creates a spin button bound to v.
func newSpin(v *float64, min, max, step float64, digits int, apply func()) *gtk.SpinButton {
	spin, _ := gtk.SpinButtonNewWithRange(min, max, step)
	spin.SetVAlign(gtk.ALIGN_CENTER)
	spin.SetProperty("digits", digits)
	spin.SetValue(*v)
	spin.Show()
	spin.Connect("value-changed", func(spin *gtk.SpinButton) {
		*v = spin.GetValue()
		apply()
	})
	return spin
}

// newCombo creates a combo box listing ids and bound to v.
func newCombo(v *string, ids []string, apply func()) *gtk.ComboBoxText {
	combo, _ := gtk.ComboBoxTextNew()
	combo.SetVAlign(gtk.ALIGN_CENTER)
	for _, id := range ids {
		combo.Append(id, id)
	}
	combo.SetActiveID(*v)
	combo.Show()
	combo.Connect("changed", func(combo *gtk.ComboBoxText) {
		*v = combo.GetActiveID()
		apply()
	})
	return combo
}

// newSwitch creates a switch bound to v.
func newSwitch(v *bool, apply func()) *gtk.Switch {
	sw, _ := gtk.SwitchNew()
	sw.SetVAlign(gtk.ALIGN_CENTER)
	sw.SetActive(*v)
	sw.Show()
	sw.Connect("state-set", func(_ *gtk.Switch, state bool) {
		*v = state
		apply()
	})
	return sw
}

// newEntry creates a text entry bound to v.
func newEntry(v *string, apply func()) *gtk.Entry {
	entry, _ := gtk.EntryNew()
	entry.SetVAlign(gtk.ALIGN_CENTER)
	entry.SetText(*v)
	entry.Show()
	entry.Connect("changed", func(entry *gtk.Entry) {
		*v, _ = entry.GetText()
		apply()
	})
	return entry
}

func newColorRow(optc *OptionalColor, fallback plcairo.Color, apply func()) *handy.ActionRow {
	defaultRGBA := gdk.NewRGBA(fallback[0], fallback[1], fallback[2], fallback[3])

	color, _ := gtk.ColorButtonNew()
	color.SetVAlign(gtk.ALIGN_CENTER)
	color.SetUseAlpha(true)
	color.Show()
	color.Connect("color-set", func() {
		c := plcairo.ColorFromGDK(*color.GetRGBA())
		*optc = &c
		apply()
	})

	if c := *optc; c != nil {
		color.SetRGBA(gdk.NewRGBA(c[0], c[1], c[2], c[3]))
	} else {
		color.SetRGBA(defaultRGBA)
	}

	reset, _ := gtk.ButtonNewFromIconName("edit-undo-symbolic", gtk.ICON_SIZE_BUTTON)
	reset.SetRelief(gtk.RELIEF_NONE)
	reset.SetVAlign(gtk.ALIGN_CENTER)
	reset.SetTooltipText("Revert")
	reset.Show()
	reset.Connect("clicked", func() {
		*optc = nil
		color.SetRGBA(defaultRGBA)
		apply()
	})

	row := handy.ActionRowNew()
	row.AddPrefix(reset)
	row.Add(color)
	row.SetActivatableWidget(color)

	return row
}
