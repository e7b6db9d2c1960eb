package main

import (
	"github.com/gotk3/gotk3/gtk"
)

// Version is set by the linker.
var Version = "tip"

// About creates the about dialog.
func About() *gtk.AboutDialog {
	about, _ := gtk.AboutDialogNew()
	about.SetModal(true)
	about.SetProgramName("plscope")
	about.SetComments("Audio spectrum scope plotted through plstream.")
	about.SetVersion(Version)
	about.SetLicenseType(gtk.LICENSE_MIT_X11)
	about.SetAuthors([]string{
		"diamondburned",
	})

	return about
}
