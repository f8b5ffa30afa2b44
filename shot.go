package tagsheet

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"
)

// Shot holds a captured PNG and provides helpers for common output forms.
// Its methods may be called any number of times; the data is never modified.
type Shot struct {
	data   []byte
	status int
}

// Bytes returns the raw PNG content.
func (s *Shot) Bytes() []byte {
	return s.data
}

// Base64 returns the PNG encoded as a standard base64 string (RFC 4648).
func (s *Shot) Base64() string {
	return base64.StdEncoding.EncodeToString(s.data)
}

// Reader returns an [*bytes.Reader] over the PNG content.
func (s *Shot) Reader() *bytes.Reader {
	return bytes.NewReader(s.data)
}

// WriteTo writes the full PNG content to w. It implements [io.WriterTo].
func (s *Shot) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.data)
	return int64(n), err
}

// WriteToFile writes the PNG to the file at path, creating it if needed.
func (s *Shot) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, s.data, perm)
}

// Len returns the size of the PNG in bytes.
func (s *Shot) Len() int {
	return len(s.data)
}

// Status returns the HTTP status of the captured document, or 0 when the
// page was not served over HTTP.
func (s *Shot) Status() int {
	return s.status
}

// Size returns the pixel dimensions of the image.
func (s *Shot) Size() (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(s.data))
	if err != nil {
		return 0, 0, fmt.Errorf("tagsheet: decoding shot: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
