package pdf

import (
	"bytes"
	"math"
)

// Matrix is a PDF transformation matrix [a b c d e f].
type Matrix [6]float64

// Identity is the matrix that maps every point to itself.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Multiply returns the matrix applying m first, then n.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Placement is an XObject painted with Do. The rectangle is the bounding
// box of the unit square under the current transformation, in page space.
type Placement struct {
	Name   string
	X, Y   float64
	Width  float64
	Height float64
}

// Stroke is one straight segment of a stroked path, in page space.
type Stroke struct {
	X1, Y1 float64
	X2, Y2 float64
	Width  float64
	Dashed bool
}

// Horizontal reports whether the segment is horizontal within tol.
func (s Stroke) Horizontal(tol float64) bool {
	return math.Abs(s.Y1-s.Y2) <= tol
}

// Vertical reports whether the segment is vertical within tol.
func (s Stroke) Vertical(tol float64) bool {
	return math.Abs(s.X1-s.X2) <= tol
}

// Marks are the drawing operations of interest found on a page.
type Marks struct {
	Placements []Placement
	Strokes    []Stroke
}

// Dashed returns the strokes painted with a dash pattern.
func (m Marks) Dashed() []Stroke {
	return m.filter(true)
}

// Solid returns the strokes painted without a dash pattern.
func (m Marks) Solid() []Stroke {
	return m.filter(false)
}

func (m Marks) filter(dashed bool) []Stroke {
	var out []Stroke
	for _, s := range m.Strokes {
		if s.Dashed == dashed {
			out = append(out, s)
		}
	}
	return out
}

type gstate struct {
	ctm    Matrix
	width  float64
	dashed bool
}

type segment struct {
	x1, y1, x2, y2 float64
}

// Scan walks a decoded content stream. Unknown operators are skipped, so
// text, colour and clipping do not disturb the result.
func Scan(content []byte) Marks {
	var (
		marks    Marks
		state    = gstate{ctm: Identity, width: 1}
		stack    []gstate
		operands []*Object
		path     []segment
		curX     float64
		curY     float64
		startX   float64
		startY   float64
	)

	nums := func(n int) ([]float64, bool) {
		if len(operands) < n {
			return nil, false
		}
		out := make([]float64, n)
		for i, o := range operands[len(operands)-n:] {
			v, ok := o.Number()
			if !ok {
				return nil, false
			}
			out[i] = v
		}
		return out, true
	}
	lineTo := func(x, y float64) {
		x1, y1 := state.ctm.Apply(curX, curY)
		x2, y2 := state.ctm.Apply(x, y)
		path = append(path, segment{x1, y1, x2, y2})
		curX, curY = x, y
	}

	l := newLexer(content, 0)
	for {
		l.skipSpace()
		if l.eof() {
			break
		}
		if startsOperand(l.data[l.pos]) {
			o, err := l.object()
			if err != nil {
				break
			}
			operands = append(operands, o)
			continue
		}
		op := l.token()
		if op == "" {
			l.pos++
			continue
		}

		switch op {
		case "q":
			stack = append(stack, state)
		case "Q":
			if n := len(stack); n > 0 {
				state = stack[n-1]
				stack = stack[:n-1]
			}
		case "cm":
			if v, ok := nums(6); ok {
				state.ctm = Matrix{v[0], v[1], v[2], v[3], v[4], v[5]}.Multiply(state.ctm)
			}
		case "w":
			if v, ok := nums(1); ok {
				state.width = v[0]
			}
		case "d":
			if len(operands) >= 2 && operands[len(operands)-2].Kind == Array {
				state.dashed = len(operands[len(operands)-2].Array) > 0
			}
		case "m":
			if v, ok := nums(2); ok {
				curX, curY = v[0], v[1]
				startX, startY = curX, curY
			}
		case "l":
			if v, ok := nums(2); ok {
				lineTo(v[0], v[1])
			}
		case "h":
			lineTo(startX, startY)
		case "re":
			if v, ok := nums(4); ok {
				x, y, w, h := v[0], v[1], v[2], v[3]
				curX, curY = x, y
				startX, startY = x, y
				lineTo(x+w, y)
				lineTo(x+w, y+h)
				lineTo(x, y+h)
				lineTo(x, y)
			}
		case "S", "s":
			if op == "s" {
				lineTo(startX, startY)
			}
			for _, seg := range path {
				marks.Strokes = append(marks.Strokes, Stroke{
					X1: seg.x1, Y1: seg.y1, X2: seg.x2, Y2: seg.y2,
					Width:  state.width,
					Dashed: state.dashed,
				})
			}
			path = path[:0]
		case "n", "f", "F", "f*", "B", "B*", "b", "b*":
			path = path[:0]
		case "Do":
			if n := len(operands); n > 0 && operands[n-1].Kind == Name {
				marks.Placements = append(marks.Placements, place(operands[n-1].Name, state.ctm))
			}
		case "BI":
			// Inline image data is binary; skip to the end marker.
			if i := bytes.Index(l.data[l.pos:], []byte("EI")); i >= 0 {
				l.pos += i + 2
			} else {
				l.pos = len(l.data)
			}
		}
		operands = operands[:0]
	}
	return marks
}

func place(name string, ctm Matrix) Placement {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
		x, y := ctm.Apply(c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Placement{Name: name, X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
