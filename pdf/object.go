// Package pdf reads back the documents produced by the sheet compositor.
//
// It understands classic cross-reference tables, indirect objects, Flate and
// ASCIIHex streams and the page tree, which is what gopdf emits. Higher
// level, [Scan] walks a page content stream and reports where images were
// painted and which line segments were stroked:
//
//	doc, err := pdf.Open("labels.pdf")
//	marks, err := doc.PageMarks(0)
//	for _, p := range marks.Placements {
//	    fmt.Println(p.Name, p.X, p.Y, p.Width, p.Height)
//	}
package pdf

// Kind identifies the type of a PDF object.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Real
	String
	Name
	Array
	Dictionary
	Stream
	Ref
)

// Object holds any PDF value.
type Object struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Real   float64
	Str    []byte
	Name   string
	Array  []*Object
	Dict   Dict
	Stream []byte // raw, still encoded
	Ref    Reference
}

// Number returns the numeric value of an Int or Real object.
func (o *Object) Number() (float64, bool) {
	if o == nil {
		return 0, false
	}
	switch o.Kind {
	case Int:
		return float64(o.Int), true
	case Real:
		return o.Real, true
	}
	return 0, false
}

// Reference is an indirect object reference "N G R".
type Reference struct {
	Number     int
	Generation int
}

// Dict is a PDF dictionary keyed by name.
type Dict map[string]*Object

// Int returns the integer stored under key.
func (d Dict) Int(key string) (int64, bool) {
	o, ok := d[key]
	if !ok {
		return 0, false
	}
	switch o.Kind {
	case Int:
		return o.Int, true
	case Real:
		return int64(o.Real), true
	}
	return 0, false
}

// Name returns the name stored under key.
func (d Dict) Name(key string) (string, bool) {
	o, ok := d[key]
	if !ok || o.Kind != Name {
		return "", false
	}
	return o.Name, true
}

var null = &Object{Kind: Null}
