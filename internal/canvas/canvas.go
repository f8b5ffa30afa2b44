// Package canvas renders label sheets into PDF documents with gopdf.
package canvas

import (
	"fmt"
	"io"

	"github.com/signintech/gopdf"
)

// Canvas is a sheet.Surface backed by a gopdf document. It takes bottom-left
// origin coordinates in points and converts them to gopdf's top-left space.
type Canvas struct {
	pdf    *gopdf.GoPdf
	width  float64
	height float64
	pages  int
	// state holds the stroke settings; the last entry is current and
	// SaveState pushes a copy of it.
	state []lineState
}

// lineState is the part of the graphics state a sheet changes. gopdf has no
// q/Q pair, so RestoreState re-emits the saved values instead.
type lineState struct {
	width float64
	dash  []float64
}

// Option configures a Canvas.
type Option func(*gopdf.GoPdf)

// WithoutCompression leaves content streams uncompressed, which makes the
// output readable in a text editor.
func WithoutCompression() Option {
	return func(p *gopdf.GoPdf) {
		p.SetNoCompression()
	}
}

// New starts an empty document whose pages measure width x height points.
func New(width, height float64, opts ...Option) *Canvas {
	p := &gopdf.GoPdf{}
	p.Start(gopdf.Config{
		PageSize: gopdf.Rect{W: width, H: height},
		Unit:     gopdf.UnitPT,
	})
	for _, o := range opts {
		o(p)
	}
	return &Canvas{pdf: p, width: width, height: height, state: []lineState{{width: 1}}}
}

// AddPage starts a new page. Stroke settings carry over from the previous
// page.
func (c *Canvas) AddPage() {
	c.pdf.AddPage()
	c.pages++
	if c.pages > 1 {
		c.apply()
	}
}

// Pages returns the number of pages added so far.
func (c *Canvas) Pages() int {
	return c.pages
}

func (c *Canvas) current() *lineState {
	return &c.state[len(c.state)-1]
}

func (c *Canvas) SetLineWidth(w float64) {
	c.current().width = w
	c.pdf.SetLineWidth(w)
}

func (c *Canvas) SetDash(on, off float64) {
	c.current().dash = []float64{on, off}
	c.pdf.SetCustomLineType([]float64{on, off}, 0)
}

func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, c.height-y1, x2, c.height-y2)
}

// DrawImage embeds the image at path with its lower-left corner at (x, y).
func (c *Canvas) DrawImage(path string, x, y, width, height float64) error {
	top := c.height - y - height
	if err := c.pdf.Image(path, x, top, &gopdf.Rect{W: width, H: height}); err != nil {
		return fmt.Errorf("embedding %s: %w", path, err)
	}
	return nil
}

func (c *Canvas) SaveState() {
	top := *c.current()
	top.dash = append([]float64(nil), top.dash...)
	c.state = append(c.state, top)
}

// RestoreState drops the settings made since the matching SaveState and
// writes the earlier width and dash back to the page. An unmatched call is
// ignored.
func (c *Canvas) RestoreState() {
	if len(c.state) < 2 {
		return
	}
	c.state = c.state[:len(c.state)-1]
	c.apply()
}

func (c *Canvas) apply() {
	st := c.current()
	c.pdf.SetLineWidth(st.width)
	if len(st.dash) == 0 {
		c.pdf.SetLineType("solid")
	} else {
		c.pdf.SetCustomLineType(st.dash, 0)
	}
}

// WriteFile writes the document to path.
func (c *Canvas) WriteFile(path string) error {
	if err := c.pdf.WritePdf(path); err != nil {
		return fmt.Errorf("canvas: writing %s: %w", path, err)
	}
	return nil
}

// Write encodes the document to w.
func (c *Canvas) Write(w io.Writer) error {
	return c.pdf.Write(w)
}

// Bytes returns the encoded document.
func (c *Canvas) Bytes() []byte {
	return c.pdf.GetBytesPdf()
}
