package sheet

// Segment is a straight line between two points.
type Segment struct {
	From, To Point
}

// Guides are the cut and registration lines of one sheet.
type Guides struct {
	// Outline follows the printable zone, drawn solid.
	Outline [4]Segment

	// Columns holds one group of vertical dashed lines per interior column
	// boundary. A group has two lines, one per edge of the gap band, when
	// the sheet has a horizontal gap.
	Columns [][]Segment

	// Rows is the horizontal counterpart of Columns.
	Rows [][]Segment
}

// ComputeGuides derives the guide lines of g inside z. Boundaries are
// measured from the top edge of the zone, like image placement.
func ComputeGuides(z Zone, g Geometry) Guides {
	var gd Guides

	corners := z.Corners()
	for i := range corners {
		gd.Outline[i] = Segment{From: corners[i], To: corners[(i+1)%len(corners)]}
	}

	vertical := func(x float64) Segment {
		return Segment{From: Point{X: x, Y: z.TopLeft.Y}, To: Point{X: x, Y: z.BottomLeft.Y}}
	}
	for col := 1; col < g.Columns; col++ {
		x := z.TopLeft.X + float64(col)*g.HPeriod()
		group := []Segment{vertical(x)}
		if g.HGap > 0 {
			group = append(group, vertical(x-g.HGap))
		}
		gd.Columns = append(gd.Columns, group)
	}

	horizontal := func(y float64) Segment {
		return Segment{From: Point{X: z.TopLeft.X, Y: y}, To: Point{X: z.TopRight.X, Y: y}}
	}
	for row := 1; row < g.Rows; row++ {
		y := z.TopLeft.Y - float64(row)*g.VPeriod()
		group := []Segment{horizontal(y)}
		if g.VGap > 0 {
			group = append(group, horizontal(y+g.VGap))
		}
		gd.Rows = append(gd.Rows, group)
	}

	return gd
}

// DrawGuides strokes the guides of g on s: the zone outline solid, then the
// cell separators dashed, all one printer dot thick.
func DrawGuides(s Surface, z Zone, g Geometry) {
	gd := ComputeGuides(z, g)
	line := func(seg Segment) {
		s.Line(seg.From.X, seg.From.Y, seg.To.X, seg.To.Y)
	}

	s.SaveState()
	s.SetLineWidth(g.LineWidth())
	for _, seg := range gd.Outline {
		line(seg)
	}
	s.RestoreState()

	s.SaveState()
	s.SetLineWidth(g.LineWidth())
	s.SetDash(DashLength, DashLength)
	for _, group := range gd.Rows {
		for _, seg := range group {
			line(seg)
		}
	}
	for _, group := range gd.Columns {
		for _, seg := range group {
			line(seg)
		}
	}
	s.RestoreState()
}
