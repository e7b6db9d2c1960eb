// Package software provides raster devices for the builtin engine. Lines are
// filled as quads with golang.org/x/image/vector and text is set in
// basicfont's 7x13 face.
//
// The package registers the "mem", "png", "bmp" and "tiff" devices on import.
package software
