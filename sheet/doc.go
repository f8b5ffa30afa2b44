// Package sheet lays out rectangular tag images on adhesive label sheets.
//
// All coordinates use the PDF convention: origin at the bottom-left corner of
// the page, x growing to the right, y growing up, and lengths expressed in
// points (1/72 inch). [MM] and [Inch] convert physical measurements.
//
// A sheet is described by a [Geometry] (page size, margins, label size, gaps
// and grid dimensions) and printed through a printer whose registration error
// is compensated by an [Offset]:
//
//	zone := sheet.ComputeZone(sheet.DECAdryDLW1736, sheet.Printers["hp-psc2355"])
//	rect, err := sheet.Place(zone, sheet.DECAdryDLW1736, sheet.Cell{Column: 1}, size)
//
// [Generate] drives the whole pipeline for a directory of images and emits
// drawing commands to a [Surface]. A [Recorder] captures those commands in
// memory; the PDF implementation lives in internal/canvas.
package sheet
