package sheet

// Surface is the vector drawing target a sheet is rendered on. Coordinates
// are in points with the origin at the bottom-left corner of the page.
type Surface interface {
	// AddPage starts a new page; drawing calls apply to the last page added.
	AddPage()
	SetLineWidth(w float64)
	// SetDash switches stroking to a dash pattern of on/off lengths.
	SetDash(on, off float64)
	Line(x1, y1, x2, y2 float64)
	DrawImage(path string, x, y, width, height float64) error
	// SaveState and RestoreState bracket changes to the line width and dash.
	SaveState()
	RestoreState()
}

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpAddPage OpKind = iota
	OpLineWidth
	OpDash
	OpLine
	OpImage
	OpSave
	OpRestore
)

func (k OpKind) String() string {
	switch k {
	case OpAddPage:
		return "page"
	case OpLineWidth:
		return "line-width"
	case OpDash:
		return "dash"
	case OpLine:
		return "line"
	case OpImage:
		return "image"
	case OpSave:
		return "save"
	case OpRestore:
		return "restore"
	}
	return "unknown"
}

// Op is one recorded drawing operation. Fields not relevant to Kind are zero.
type Op struct {
	Kind OpKind
	Page int // zero-based page the operation applies to

	From, To Point   // OpLine
	Dashed   bool    // OpLine: dash pattern active when stroked
	Width    float64 // OpLineWidth, or the active line width for OpLine

	Path string // OpImage
	Rect Rect   // OpImage

	On, Off float64 // OpDash
}

type strokeState struct {
	width  float64
	dashed bool
}

// Recorder is a Surface that keeps every operation in memory. It backs dry
// runs and tests.
type Recorder struct {
	Ops []Op

	page  int
	state strokeState
	stack []strokeState
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{page: -1, state: strokeState{width: 1}}
}

func (r *Recorder) record(op Op) {
	op.Page = r.page
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) AddPage() {
	r.page++
	r.record(Op{Kind: OpAddPage})
}

func (r *Recorder) SetLineWidth(w float64) {
	r.state.width = w
	r.record(Op{Kind: OpLineWidth, Width: w})
}

func (r *Recorder) SetDash(on, off float64) {
	r.state.dashed = on > 0 && off > 0
	r.record(Op{Kind: OpDash, On: on, Off: off})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.record(Op{
		Kind:   OpLine,
		From:   Point{X: x1, Y: y1},
		To:     Point{X: x2, Y: y2},
		Dashed: r.state.dashed,
		Width:  r.state.width,
	})
}

func (r *Recorder) DrawImage(path string, x, y, width, height float64) error {
	r.record(Op{Kind: OpImage, Path: path, Rect: Rect{X: x, Y: y, Width: width, Height: height}})
	return nil
}

func (r *Recorder) SaveState() {
	r.stack = append(r.stack, r.state)
	r.record(Op{Kind: OpSave})
}

func (r *Recorder) RestoreState() {
	if n := len(r.stack); n > 0 {
		r.state = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.record(Op{Kind: OpRestore})
}

// Pages returns the number of pages added.
func (r *Recorder) Pages() int {
	return r.page + 1
}

// Filter returns the operations of the given kind, in order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Images returns the recorded image placements.
func (r *Recorder) Images() []Op {
	return r.Filter(OpImage)
}

// Lines returns the recorded line strokes.
func (r *Recorder) Lines() []Op {
	return r.Filter(OpLine)
}
