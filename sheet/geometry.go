package sheet

import (
	"fmt"
	"math"
)

// PointsPerInch is the resolution of the drawing coordinate system.
const PointsPerInch = 72.0

// DefaultResolution is the printer resolution, in dots per inch, assumed
// when converting image pixels into physical lengths.
const DefaultResolution = 1200.0

// DashLength is the on and off length of dashed guide lines, in points.
const DashLength = 4.0

// epsilon absorbs floating point noise when comparing lengths in points.
const epsilon = 1e-9

// MM converts millimetres to points.
func MM(v float64) float64 {
	return v * PointsPerInch / 25.4
}

// Inch converts inches to points.
func Inch(v float64) float64 {
	return v * PointsPerInch
}

// ToMM converts points to millimetres.
func ToMM(pt float64) float64 {
	return pt * 25.4 / PointsPerInch
}

// Point is a position on the page, in points.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle anchored at its lower-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Margins are the distances between the page edges and the printable zone.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// Geometry describes one label sheet. Lengths are in points.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margins    Margins

	LabelWidth  float64
	LabelHeight float64

	// HGap and VGap separate adjacent labels horizontally and vertically.
	HGap float64
	VGap float64

	Columns int
	Rows    int

	// Resolution is the dpi used to convert image pixels into points.
	// Zero means DefaultResolution.
	Resolution float64
}

// DECAdryDLW1736 is the DECAdry DLW1736 sheet: A4 paper carrying 48 labels
// in 4 columns and 12 rows.
var DECAdryDLW1736 = Geometry{
	PageWidth:  MM(210),
	PageHeight: MM(297),
	Margins: Margins{
		Top:    MM(20.7),
		Bottom: MM(21.9),
		Left:   MM(9.9),
		Right:  MM(10.1),
	},
	LabelWidth:  MM(45.7),
	LabelHeight: MM(21.2),
	HGap:        MM(2.4),
	VGap:        0,
	Columns:     4,
	Rows:        12,
	Resolution:  DefaultResolution,
}

// HPeriod is the horizontal distance between the left edges of two
// neighbouring labels.
func (g Geometry) HPeriod() float64 {
	return g.LabelWidth + g.HGap
}

// VPeriod is the vertical distance between the top edges of two
// neighbouring labels.
func (g Geometry) VPeriod() float64 {
	return g.LabelHeight + g.VGap
}

// Capacity returns the number of labels on one sheet.
func (g Geometry) Capacity() int {
	return g.Columns * g.Rows
}

// DPI returns the effective resolution.
func (g Geometry) DPI() float64 {
	if g.Resolution <= 0 {
		return DefaultResolution
	}
	return g.Resolution
}

// LineWidth is the thickness of one printer dot, in points.
func (g Geometry) LineWidth() float64 {
	return PointsPerInch / g.DPI()
}

// PixelsToPoints converts an image dimension into its printed length.
func (g Geometry) PixelsToPoints(px int) float64 {
	return float64(px) / g.DPI() * PointsPerInch
}

// Contains reports whether c addresses a label of the grid.
func (g Geometry) Contains(c Cell) bool {
	return c.Column >= 0 && c.Column < g.Columns && c.Row >= 0 && c.Row < g.Rows
}

// Index returns the row-major index of c.
func (g Geometry) Index(c Cell) int {
	return c.Row*g.Columns + c.Column
}

// CellAt is the inverse of Index.
func (g Geometry) CellAt(index int) Cell {
	return Cell{Column: index % g.Columns, Row: index / g.Columns}
}

// Validate checks that every dimension is positive and that the label grid
// fits between the margins.
func (g Geometry) Validate() error {
	switch {
	case g.PageWidth <= 0 || g.PageHeight <= 0:
		return fmt.Errorf("sheet: page size must be positive, got %gx%g", g.PageWidth, g.PageHeight)
	case g.LabelWidth <= 0 || g.LabelHeight <= 0:
		return fmt.Errorf("sheet: label size must be positive, got %gx%g", g.LabelWidth, g.LabelHeight)
	case g.Columns <= 0 || g.Rows <= 0:
		return fmt.Errorf("sheet: grid must have at least one cell, got %dx%d", g.Columns, g.Rows)
	case g.HGap < 0 || g.VGap < 0:
		return fmt.Errorf("sheet: gaps must not be negative, got %g/%g", g.HGap, g.VGap)
	case g.Margins.Top < 0 || g.Margins.Bottom < 0 || g.Margins.Left < 0 || g.Margins.Right < 0:
		return fmt.Errorf("sheet: margins must not be negative")
	case g.Resolution < 0:
		return fmt.Errorf("sheet: resolution must not be negative, got %g", g.Resolution)
	}

	usableW := g.PageWidth - g.Margins.Left - g.Margins.Right
	usableH := g.PageHeight - g.Margins.Top - g.Margins.Bottom
	gridW := float64(g.Columns)*g.LabelWidth + float64(g.Columns-1)*g.HGap
	gridH := float64(g.Rows)*g.LabelHeight + float64(g.Rows-1)*g.VGap
	if gridW > usableW+tolerance(usableW) {
		return fmt.Errorf("%w: %d columns need %.2fmm, %.2fmm available",
			ErrGeometryOverflow, g.Columns, ToMM(gridW), ToMM(usableW))
	}
	if gridH > usableH+tolerance(usableH) {
		return fmt.Errorf("%w: %d rows need %.2fmm, %.2fmm available",
			ErrGeometryOverflow, g.Rows, ToMM(gridH), ToMM(usableH))
	}
	return nil
}

// tolerance scales epsilon to the magnitude of v, since millimetre values
// converted to points rarely add up exactly.
func tolerance(v float64) float64 {
	return math.Max(epsilon, math.Abs(v)*1e-12)
}
