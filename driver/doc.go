// Package driver defines the output devices used by the builtin engine and
// a registry of them by name. Device packages register themselves on import:
//
//	import _ "github.com/diamondburned/plstream/software"
package driver
