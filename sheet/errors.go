package sheet

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the package.
var (
	// ErrGeometryOverflow is returned when the label grid does not fit
	// between the margins of the page.
	ErrGeometryOverflow = errors.New("sheet: label grid exceeds the printable zone")

	// ErrUnknownPrinter is returned for a printer preset that is not registered.
	ErrUnknownPrinter = errors.New("sheet: unknown printer")
)

// ImageTooLargeError is returned when an image, printed at the sheet
// resolution, does not fit in one label.
type ImageTooLargeError struct {
	Width, Height       float64 // printed size, in points
	MaxWidth, MaxHeight float64 // label size, in points
	Resolution          float64
}

func (e *ImageTooLargeError) Error() string {
	return fmt.Sprintf("sheet: image of %.2fx%.2fmm is bigger than the %.2fx%.2fmm label at %g dpi",
		ToMM(e.Width), ToMM(e.Height), ToMM(e.MaxWidth), ToMM(e.MaxHeight), e.Resolution)
}

// CellOutOfBoundsError is returned when a cell lies outside the label grid.
type CellOutOfBoundsError struct {
	Cell          Cell
	Columns, Rows int
}

func (e *CellOutOfBoundsError) Error() string {
	return fmt.Sprintf("sheet: label position (column %d, row %d) is outside the %dx%d grid",
		e.Cell.Column, e.Cell.Row, e.Columns, e.Rows)
}

// GridOverrunError is returned by [Assign] under [OverflowReject] when more
// labels are requested than free cells remain on the sheet.
type GridOverrunError struct {
	Needed    int
	Available int
}

func (e *GridOverrunError) Error() string {
	return fmt.Sprintf("sheet: %d labels requested but only %d cells are free", e.Needed, e.Available)
}
