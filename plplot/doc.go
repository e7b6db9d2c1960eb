// Package plplot binds the native PLplot library through cgo and registers it
// as plstream.LibraryPLplot. It is only built with the plplot build tag:
//
//	go build -tags plplot ./...
//
// PLplot is found through pkg-config. Its stream calls are not thread-safe;
// use the library through package plstream, which serializes every call.
package plplot
