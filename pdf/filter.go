package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// maxStreamSize bounds the memory a single decoded stream may take (64 MB).
const maxStreamSize = 64 << 20

// Decode returns the decoded body of a stream object. Only the filters
// written by PDF generators for plain content are supported.
func Decode(o *Object) ([]byte, error) {
	if o == nil || o.Kind != Stream {
		return nil, fmt.Errorf("pdf: not a stream")
	}

	var filters []string
	switch f := o.Dict["Filter"]; {
	case f == nil:
	case f.Kind == Name:
		filters = []string{f.Name}
	case f.Kind == Array:
		for _, item := range f.Array {
			if item.Kind == Name {
				filters = append(filters, item.Name)
			}
		}
	}

	data := o.Stream
	for _, name := range filters {
		var err error
		switch name {
		case "FlateDecode", "Fl":
			data, err = inflate(data)
		case "ASCIIHexDecode", "AHx":
			data, err = decodeHex(data)
		default:
			err = fmt.Errorf("unsupported filter %s", name)
		}
		if err != nil {
			return nil, fmt.Errorf("pdf: %s: %w", name, err)
		}
	}
	return data, nil
}

func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, maxStreamSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxStreamSize {
		return nil, fmt.Errorf("stream larger than %d bytes", maxStreamSize)
	}
	return out, nil
}

// decodeHex decodes hex digits, ignoring whitespace and stopping at '>'.
// An odd trailing digit is padded with zero.
func decodeHex(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data)/2)
	var hi byte
	odd := false
	for _, c := range data {
		if c == '>' {
			break
		}
		if isSpace(c) {
			continue
		}
		v, ok := hexDigit(c)
		if !ok {
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
		if odd {
			out = append(out, hi<<4|v)
		} else {
			hi = v
		}
		odd = !odd
	}
	if odd {
		out = append(out, hi<<4)
	}
	return out, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
