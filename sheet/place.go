package sheet

// Cell addresses one label of the grid. Both indices are zero-based; rows
// are counted from the top of the sheet.
type Cell struct {
	Column int
	Row    int
}

// ImageSize is the natural size of an image, in pixels.
type ImageSize struct {
	Width, Height int
}

// Place computes where an image of the given pixel size is drawn when it
// fills cell c: the image is centred in the label, and the returned Rect is
// anchored at its lower-left corner.
func Place(z Zone, g Geometry, c Cell, size ImageSize) (Rect, error) {
	w := g.PixelsToPoints(size.Width)
	h := g.PixelsToPoints(size.Height)

	if w > g.LabelWidth+epsilon || h > g.LabelHeight+epsilon {
		return Rect{}, &ImageTooLargeError{
			Width:      w,
			Height:     h,
			MaxWidth:   g.LabelWidth,
			MaxHeight:  g.LabelHeight,
			Resolution: g.DPI(),
		}
	}
	if !g.Contains(c) {
		return Rect{}, &CellOutOfBoundsError{Cell: c, Columns: g.Columns, Rows: g.Rows}
	}

	hPadding := g.LabelWidth - w
	vPadding := g.LabelHeight - h

	return Rect{
		X:      z.TopLeft.X + float64(c.Column)*g.HPeriod() + hPadding/2,
		Y:      z.TopLeft.Y - (float64(c.Row)*g.VPeriod() + vPadding/2 + h),
		Width:  w,
		Height: h,
	}, nil
}
