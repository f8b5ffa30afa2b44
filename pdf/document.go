package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Document is a parsed PDF file.
type Document struct {
	data    []byte
	offsets map[int]int64 // object number -> byte offset
	trailer Dict
	cache   map[int]*Object
}

// Open reads and parses the PDF file at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return Load(data)
}

// Load parses a PDF held in memory.
func Load(data []byte) (*Document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("pdf: missing %%PDF- header")
	}
	doc := &Document{
		data:    data,
		offsets: make(map[int]int64),
		cache:   make(map[int]*Object),
	}
	start, err := doc.startXRef()
	if err != nil {
		return nil, err
	}
	if err := doc.readXRef(start, 0); err != nil {
		return nil, err
	}
	return doc, nil
}

// Version returns the version from the header, e.g. "1.4".
func (doc *Document) Version() string {
	line := doc.data[len("%PDF-"):]
	if i := bytes.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(string(line))
}

func (doc *Document) startXRef() (int64, error) {
	tail := doc.data
	if len(tail) > 1024 {
		tail = tail[len(tail)-1024:]
	}
	i := bytes.LastIndex(tail, []byte("startxref"))
	if i < 0 {
		return 0, fmt.Errorf("pdf: startxref not found")
	}
	l := newLexer(tail, i+len("startxref"))
	l.skipSpace()
	off, err := strconv.ParseInt(l.token(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("pdf: invalid startxref: %w", err)
	}
	return off, nil
}

// readXRef loads a classic cross-reference table and its trailer, then
// follows /Prev to older sections. Entries already known win, since newer
// sections are read first.
func (doc *Document) readXRef(off int64, hops int) error {
	if hops > 32 {
		return fmt.Errorf("pdf: /Prev chain too long")
	}
	if off < 0 || off >= int64(len(doc.data)) {
		return fmt.Errorf("pdf: xref offset %d out of range", off)
	}
	l := newLexer(doc.data, int(off))
	l.skipSpace()
	if !l.keyword("xref") {
		return fmt.Errorf("pdf: cross-reference streams are not supported")
	}

	for {
		l.skipSpace()
		if l.eof() || l.keyword("trailer") {
			break
		}
		first, err1 := strconv.Atoi(l.token())
		l.skipSpace()
		count, err2 := strconv.Atoi(l.token())
		if err1 != nil || err2 != nil {
			return fmt.Errorf("pdf: malformed xref subsection at %d", l.pos)
		}
		for i := 0; i < count; i++ {
			l.skipSpace()
			offset, err := strconv.ParseInt(l.token(), 10, 64)
			if err != nil {
				return fmt.Errorf("pdf: malformed xref entry %d", first+i)
			}
			l.skipSpace()
			l.token() // generation
			l.skipSpace()
			kind := l.token()
			if _, seen := doc.offsets[first+i]; !seen && kind == "n" {
				doc.offsets[first+i] = offset
			}
		}
	}

	t, err := l.object()
	if err != nil {
		return fmt.Errorf("pdf: trailer: %w", err)
	}
	if t.Kind != Dictionary {
		return fmt.Errorf("pdf: trailer is not a dictionary")
	}
	if doc.trailer == nil {
		doc.trailer = t.Dict
	}
	if prev, ok := t.Dict.Int("Prev"); ok {
		return doc.readXRef(prev, hops+1)
	}
	return nil
}

// Resolve follows o when it is a reference; other objects are returned as is.
// Missing objects resolve to null.
func (doc *Document) Resolve(o *Object) (*Object, error) {
	if o == nil {
		return null, nil
	}
	if o.Kind != Ref {
		return o, nil
	}
	num := o.Ref.Number
	if cached, ok := doc.cache[num]; ok {
		return cached, nil
	}
	off, ok := doc.offsets[num]
	if !ok {
		return null, nil
	}

	l := newLexer(doc.data, int(off))
	l.skipSpace()
	l.token()
	l.skipSpace()
	l.token()
	l.skipSpace()
	if !l.keyword("obj") {
		return nil, fmt.Errorf("pdf: object %d not found at offset %d", num, off)
	}
	obj, err := l.object()
	if err != nil {
		return nil, fmt.Errorf("pdf: object %d: %w", num, err)
	}

	// A stream whose /Length is indirect was cut at "endstream"; that is
	// good enough for the content this package reads.
	doc.cache[num] = obj
	return obj, nil
}

func (doc *Document) resolveDict(o *Object) (Dict, error) {
	r, err := doc.Resolve(o)
	if err != nil {
		return nil, err
	}
	if r.Kind != Dictionary && r.Kind != Stream {
		return nil, nil
	}
	return r.Dict, nil
}

// Page is a leaf of the page tree with its inherited attributes applied.
type Page struct {
	Dict     Dict
	MediaBox [4]float64
	Rotation int
}

// Width returns the page width in points.
func (p Page) Width() float64 {
	return p.MediaBox[2] - p.MediaBox[0]
}

// Height returns the page height in points.
func (p Page) Height() float64 {
	return p.MediaBox[3] - p.MediaBox[1]
}

// Pages returns the pages of the document in order.
func (doc *Document) Pages() ([]Page, error) {
	root, err := doc.resolveDict(doc.trailer["Root"])
	if err != nil || root == nil {
		return nil, fmt.Errorf("pdf: no document catalog")
	}
	tree, err := doc.resolveDict(root["Pages"])
	if err != nil || tree == nil {
		return nil, fmt.Errorf("pdf: no page tree")
	}
	var pages []Page
	if err := doc.walkPages(tree, Page{}, &pages, 0); err != nil {
		return nil, err
	}
	return pages, nil
}

func (doc *Document) walkPages(node Dict, inherited Page, pages *[]Page, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("pdf: page tree nested deeper than %d", maxDepth)
	}

	if box, err := doc.Resolve(node["MediaBox"]); err == nil && box.Kind == Array && len(box.Array) == 4 {
		for i, v := range box.Array {
			inherited.MediaBox[i], _ = v.Number()
		}
	}
	if rot, err := doc.Resolve(node["Rotate"]); err == nil && rot.Kind == Int {
		inherited.Rotation = int(rot.Int)
	}

	if kind, _ := node.Name("Type"); kind == "Page" {
		inherited.Dict = node
		*pages = append(*pages, inherited)
		return nil
	}

	kids, err := doc.Resolve(node["Kids"])
	if err != nil || kids.Kind != Array {
		return err
	}
	for _, kid := range kids.Array {
		d, err := doc.resolveDict(kid)
		if err != nil {
			return err
		}
		if d == nil {
			continue
		}
		if err := doc.walkPages(d, inherited, pages, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Contents returns the decoded content of a page, streams concatenated.
func (doc *Document) Contents(p Page) ([]byte, error) {
	c, err := doc.Resolve(p.Dict["Contents"])
	if err != nil {
		return nil, err
	}
	streams := []*Object{c}
	if c.Kind == Array {
		streams = c.Array
	}

	var out []byte
	for _, s := range streams {
		obj, err := doc.Resolve(s)
		if err != nil {
			return nil, err
		}
		if obj.Kind != Stream {
			continue
		}
		data, err := Decode(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, data...)
		out = append(out, '\n')
	}
	return out, nil
}

// PageMarks scans page i (zero-based).
func (doc *Document) PageMarks(i int) (Marks, error) {
	pages, err := doc.Pages()
	if err != nil {
		return Marks{}, err
	}
	if i < 0 || i >= len(pages) {
		return Marks{}, fmt.Errorf("pdf: page %d out of range (%d pages)", i+1, len(pages))
	}
	content, err := doc.Contents(pages[i])
	if err != nil {
		return Marks{}, err
	}
	return Scan(content), nil
}
