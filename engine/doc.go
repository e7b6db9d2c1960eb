// Package engine is a pure Go stand-in for the native plotting library. It
// keeps a fixed table of streams, each with its own state parameters and plot
// buffer, and draws through the devices of package driver.
//
// Importing the package registers it as plstream.LibraryBuiltin:
//
//	import _ "github.com/diamondburned/plstream/engine"
package engine
