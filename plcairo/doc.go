// Package plcairo is a cairo device for the builtin engine. It registers the
// "cairo" device, which writes PNG pages, and lets a GTK widget paint the
// pages of a stream through Device.Paint.
package plcairo
