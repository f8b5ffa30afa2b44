package pdf

import (
	"bytes"
	"fmt"
	"strconv"
)

const maxDepth = 64

// lexer reads PDF objects out of a byte slice. It is used both for the file
// body and for content streams.
type lexer struct {
	data  []byte
	pos   int
	depth int
}

func newLexer(data []byte, pos int) *lexer {
	return &lexer{data: data, pos: pos}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.data)
}

// skipSpace skips whitespace and comments.
func (l *lexer) skipSpace() {
	for !l.eof() {
		switch c := l.data[l.pos]; {
		case c == '%':
			for !l.eof() && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		case isSpace(c):
			l.pos++
		default:
			return
		}
	}
}

// keyword consumes s when it comes next.
func (l *lexer) keyword(s string) bool {
	if !bytes.HasPrefix(l.data[l.pos:], []byte(s)) {
		return false
	}
	l.pos += len(s)
	return true
}

// token reads a run of regular characters.
func (l *lexer) token() string {
	start := l.pos
	for !l.eof() && !isSpace(l.data[l.pos]) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func startsOperand(c byte) bool {
	return c == '(' || c == '<' || c == '/' || c == '[' ||
		c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

// object parses the next object.
func (l *lexer) object() (*Object, error) {
	if l.depth > maxDepth {
		return nil, fmt.Errorf("pdf: objects nested deeper than %d", maxDepth)
	}
	l.depth++
	defer func() { l.depth-- }()

	l.skipSpace()
	if l.eof() {
		return null, nil
	}

	switch c := l.data[l.pos]; {
	case l.keyword("null"):
		return null, nil
	case l.keyword("true"):
		return &Object{Kind: Bool, Bool: true}, nil
	case l.keyword("false"):
		return &Object{Kind: Bool}, nil
	case c == '(':
		return l.literal(), nil
	case c == '<' && l.pos+1 < len(l.data) && l.data[l.pos+1] == '<':
		return l.dict()
	case c == '<':
		return l.hex(), nil
	case c == '/':
		return l.name(), nil
	case c == '[':
		return l.array()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return l.number(), nil
	}
	l.token()
	return null, nil
}

// literal reads a (string), keeping the common escapes.
func (l *lexer) literal() *Object {
	l.pos++
	var buf bytes.Buffer
	for depth := 1; !l.eof(); {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '\\':
			if l.eof() {
				continue
			}
			esc := l.data[l.pos]
			l.pos++
			switch esc {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case '\n', '\r':
			default:
				buf.WriteByte(esc)
			}
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return &Object{Kind: String, Str: buf.Bytes()}
			}
		}
		buf.WriteByte(c)
	}
	return &Object{Kind: String, Str: buf.Bytes()}
}

// hex reads a <hex string>.
func (l *lexer) hex() *Object {
	l.pos++
	end := bytes.IndexByte(l.data[l.pos:], '>')
	if end < 0 {
		end = len(l.data) - l.pos
	}
	raw := l.data[l.pos : l.pos+end]
	l.pos += end + 1
	decoded, _ := decodeHex(raw)
	return &Object{Kind: String, Str: decoded}
}

func (l *lexer) name() *Object {
	l.pos++
	return &Object{Kind: Name, Name: l.token()}
}

func (l *lexer) array() (*Object, error) {
	l.pos++
	arr := &Object{Kind: Array}
	for {
		l.skipSpace()
		if l.eof() {
			return arr, nil
		}
		if l.data[l.pos] == ']' {
			l.pos++
			return arr, nil
		}
		o, err := l.object()
		if err != nil {
			return nil, err
		}
		arr.Array = append(arr.Array, o)
	}
}

// dict reads << ... >> and the stream body that may follow it.
func (l *lexer) dict() (*Object, error) {
	l.pos += 2
	d := Dict{}
	for {
		l.skipSpace()
		if l.eof() {
			break
		}
		if l.keyword(">>") {
			break
		}
		if l.data[l.pos] != '/' {
			l.pos++
			continue
		}
		key := l.name().Name
		val, err := l.object()
		if err != nil {
			return nil, err
		}
		d[key] = val
	}

	l.skipSpace()
	if !l.keyword("stream") {
		return &Object{Kind: Dictionary, Dict: d}, nil
	}
	l.keyword("\r")
	l.keyword("\n")

	start := l.pos
	end := -1
	if n, ok := d.Int("Length"); ok && n >= 0 && start+int(n) <= len(l.data) {
		end = start + int(n)
	} else if i := bytes.Index(l.data[start:], []byte("endstream")); i >= 0 {
		end = start + i
	} else {
		end = len(l.data)
	}
	l.pos = end
	l.skipSpace()
	l.keyword("endstream")

	return &Object{Kind: Stream, Dict: d, Stream: l.data[start:end]}, nil
}

// number reads an integer, a real, or an "N G R" reference.
func (l *lexer) number() *Object {
	tok := l.token()
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return null
		}
		return &Object{Kind: Real, Real: f}
	}

	after := l.pos
	l.skipSpace()
	if g, err := strconv.Atoi(l.token()); err == nil {
		l.skipSpace()
		if !l.eof() && l.data[l.pos] == 'R' &&
			(l.pos+1 == len(l.data) || isSpace(l.data[l.pos+1]) || isDelimiter(l.data[l.pos+1])) {
			l.pos++
			return &Object{Kind: Ref, Ref: Reference{Number: int(n), Generation: g}}
		}
	}
	l.pos = after
	return &Object{Kind: Int, Int: n}
}
