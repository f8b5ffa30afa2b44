package sheet

// Zone is the printable zone of a sheet: the rectangle between the margins,
// shifted by the printer offset. It is computed once per document.
type Zone struct {
	TopLeft     Point
	TopRight    Point
	BottomRight Point
	BottomLeft  Point
}

// ComputeZone derives the printable zone of g as seen by a printer with
// registration error off.
func ComputeZone(g Geometry, off Offset) Zone {
	left := g.Margins.Left - off.DX
	right := g.PageWidth - g.Margins.Right - off.DX
	top := g.PageHeight - g.Margins.Top - off.DY
	bottom := g.Margins.Bottom - off.DY

	return Zone{
		TopLeft:     Point{X: left, Y: top},
		TopRight:    Point{X: right, Y: top},
		BottomRight: Point{X: right, Y: bottom},
		BottomLeft:  Point{X: left, Y: bottom},
	}
}

// Corners returns the corners clockwise from the top-left one.
func (z Zone) Corners() [4]Point {
	return [4]Point{z.TopLeft, z.TopRight, z.BottomRight, z.BottomLeft}
}

// Contains reports whether p lies inside the zone, borders included.
func (z Zone) Contains(p Point) bool {
	return p.X >= z.TopLeft.X-epsilon && p.X <= z.TopRight.X+epsilon &&
		p.Y >= z.BottomLeft.Y-epsilon && p.Y <= z.TopLeft.Y+epsilon
}
