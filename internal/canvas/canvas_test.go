package canvas

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/porticus-lab/tagsheet/pdf"
	"github.com/porticus-lab/tagsheet/sheet"
)

// pdfTolerance covers the two decimals gopdf writes coordinates with.
const pdfTolerance = 0.02

func near(a, b float64) bool {
	return math.Abs(a-b) <= pdfTolerance
}

func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func generate(t *testing.T, dir string, guides bool) (*sheet.Report, *pdf.Document) {
	t.Helper()
	g := sheet.DECAdryDLW1736
	c := New(g.PageWidth, g.PageHeight)
	report, err := sheet.Generate(context.Background(), c, sheet.Request{
		Dir:      dir,
		Geometry: g,
		Offset:   sheet.Printers["hp-psc2355"],
		Repeat:   2,
		Guides:   guides,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	doc, err := pdf.Load(buf.Bytes())
	if err != nil {
		t.Fatalf("reading generated PDF: %v", err)
	}
	return report, doc
}

func TestCanvas_ImagesLandWhereComputed(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "tag_1.png", 1000, 500)
	writePNG(t, dir, "tag_2.png", 600, 900)

	report, doc := generate(t, dir, false)

	pages, err := doc.Pages()
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	g := sheet.DECAdryDLW1736
	if !near(pages[0].Width(), g.PageWidth) || !near(pages[0].Height(), g.PageHeight) {
		t.Errorf("page = %.2fx%.2f, want A4", pages[0].Width(), pages[0].Height())
	}

	marks, err := doc.PageMarks(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(marks.Placements) != len(report.Placements) {
		t.Fatalf("PDF has %d images, report %d", len(marks.Placements), len(report.Placements))
	}
	for i, want := range report.Placements {
		got := marks.Placements[i]
		if !near(got.X, want.Rect.X) || !near(got.Y, want.Rect.Y) ||
			!near(got.Width, want.Rect.Width) || !near(got.Height, want.Rect.Height) {
			t.Errorf("image %d at %+v, want %+v", i, got, want.Rect)
		}
	}
	if len(marks.Strokes) != 0 {
		t.Errorf("got %d strokes without guides", len(marks.Strokes))
	}
}

func TestCanvas_Guides(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "tag_1.png", 1000, 500)

	report, doc := generate(t, dir, true)
	marks, err := doc.PageMarks(0)
	if err != nil {
		t.Fatal(err)
	}

	g := sheet.DECAdryDLW1736
	rec := sheet.NewRecorder()
	sheet.DrawGuides(rec, report.Zone, g)
	var wantSolid, wantDashed int
	for _, l := range rec.Lines() {
		if l.Dashed {
			wantDashed++
		} else {
			wantSolid++
		}
	}

	if got := len(marks.Solid()); got != wantSolid {
		t.Errorf("solid strokes = %d, want %d", got, wantSolid)
	}
	if got := len(marks.Dashed()); got != wantDashed {
		t.Errorf("dashed strokes = %d, want %d", got, wantDashed)
	}

	// The outline runs along the zone edges.
	tl := report.Zone.TopLeft
	found := false
	for _, s := range marks.Solid() {
		if s.Horizontal(pdfTolerance) && near(s.Y1, tl.Y) && (near(s.X1, tl.X) || near(s.X2, tl.X)) {
			found = true
		}
	}
	if !found {
		t.Errorf("no outline stroke along the top edge at y=%.2f", tl.Y)
	}
	for _, s := range marks.Dashed() {
		if !s.Horizontal(pdfTolerance) && !s.Vertical(pdfTolerance) {
			t.Errorf("guide %+v is not axis aligned", s)
		}
		if !near(s.Width, g.LineWidth()) {
			t.Errorf("guide width = %.3f, want %.3f", s.Width, g.LineWidth())
		}
	}
}

func TestCanvas_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.pdf")
	c := New(sheet.MM(100), sheet.MM(50), WithoutCompression())
	c.AddPage()
	c.AddPage()
	if c.Pages() != 2 {
		t.Errorf("Pages() = %d, want 2", c.Pages())
	}
	if err := c.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	doc, err := pdf.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	pages, err := doc.Pages()
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Errorf("got %d pages, want 2", len(pages))
	}
}

func pageMarks(t *testing.T, c *Canvas, page int) pdf.Marks {
	t.Helper()
	doc, err := pdf.Load(c.Bytes())
	if err != nil {
		t.Fatalf("reading PDF: %v", err)
	}
	marks, err := doc.PageMarks(page)
	if err != nil {
		t.Fatal(err)
	}
	return marks
}

func TestCanvas_RestoreState(t *testing.T) {
	c := New(200, 200)
	c.AddPage()
	c.SetLineWidth(0.5)
	c.Line(10, 10, 190, 10)

	c.SaveState()
	c.SetLineWidth(2)
	c.SetDash(4, 4)
	c.Line(10, 50, 190, 50)

	c.SaveState()
	c.SetLineWidth(3)
	c.Line(10, 90, 190, 90)
	c.RestoreState()
	c.Line(10, 130, 190, 130)

	c.RestoreState()
	c.Line(10, 170, 190, 170)

	marks := pageMarks(t, c, 0)
	want := []struct {
		y      float64
		width  float64
		dashed bool
	}{
		{10, 0.5, false},
		{50, 2, true},
		{90, 3, true},
		{130, 2, true},
		{170, 0.5, false},
	}
	if len(marks.Strokes) != len(want) {
		t.Fatalf("got %d strokes, want %d: %+v", len(marks.Strokes), len(want), marks.Strokes)
	}
	for i, w := range want {
		s := marks.Strokes[i]
		if !near(s.Y1, w.y) || !near(s.Width, w.width) || s.Dashed != w.dashed {
			t.Errorf("stroke %d = %+v, want y=%g width=%g dashed=%v", i, s, w.y, w.width, w.dashed)
		}
	}
	if got := len(marks.Solid()); got != 2 {
		t.Errorf("solid strokes = %d, want 2", got)
	}
}

func TestCanvas_RestoreStateUnmatched(t *testing.T) {
	c := New(100, 100)
	c.AddPage()
	c.SetLineWidth(1.5)
	c.RestoreState()
	c.Line(0, 20, 100, 20)

	marks := pageMarks(t, c, 0)
	if len(marks.Strokes) != 1 || !near(marks.Strokes[0].Width, 1.5) {
		t.Errorf("strokes = %+v, want one of width 1.5", marks.Strokes)
	}
}

func TestCanvas_StateCarriesToNextPage(t *testing.T) {
	c := New(100, 100)
	c.AddPage()
	c.SaveState()
	c.SetLineWidth(2)
	c.SetDash(4, 4)
	c.AddPage()
	c.Line(0, 20, 100, 20)
	c.RestoreState()
	c.Line(0, 40, 100, 40)

	marks := pageMarks(t, c, 1)
	if len(marks.Strokes) != 2 {
		t.Fatalf("got %d strokes, want 2", len(marks.Strokes))
	}
	if s := marks.Strokes[0]; !s.Dashed || !near(s.Width, 2) {
		t.Errorf("first stroke = %+v, want dashed width 2", s)
	}
	if s := marks.Strokes[1]; s.Dashed || !near(s.Width, 1) {
		t.Errorf("second stroke = %+v, want solid width 1", s)
	}
}
