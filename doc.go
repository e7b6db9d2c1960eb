// Package plstream manages PLplot stream handles.
//
// The native library keeps a table of streams and one ambient "current
// stream" that every plotting call applies to. A Stream owns one entry of
// that table: it activates itself before each call, serializes all calls
// process-wide, and ends the native stream exactly once, either through
// Close or, as a fallback, when the Stream becomes unreachable.
//
// Libraries register themselves by name. Import package engine for the
// in-process builtin library, or package plplot (built with the plplot tag)
// for the cgo binding. Package software adds raster devices to the builtin
// library:
//
//	import _ "github.com/diamondburned/plstream/software"
//
//	s, err := plstream.Open(plstream.Config{
//		Library: plstream.LibraryBuiltin,
//		Device:  "png",
//		Output:  "plot-%d.png",
//	})
//	if err != nil {
//		return err
//	}
//	defer s.Close()
package plstream
