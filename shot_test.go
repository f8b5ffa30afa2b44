package tagsheet

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

func newShot() (*Shot, []byte) {
	data := testPNG(8, 5)
	return &Shot{data: data, status: 200}, data
}

func TestShot_Bytes(t *testing.T) {
	s, data := newShot()
	if !bytes.Equal(s.Bytes(), data) {
		t.Error("Bytes() did not return original data")
	}
	if s.Len() != len(data) {
		t.Errorf("Len() = %d, want %d", s.Len(), len(data))
	}
}

func TestShot_Base64(t *testing.T) {
	s, data := newShot()
	if got, want := s.Base64(), base64.StdEncoding.EncodeToString(data); got != want {
		t.Errorf("Base64() = %q, want %q", got, want)
	}
}

func TestShot_ReaderAndWriteTo(t *testing.T) {
	s, data := newShot()
	if s.Reader().Len() != len(data) {
		t.Errorf("Reader().Len() = %d, want %d", s.Reader().Len(), len(data))
	}

	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(len(data)) || !bytes.Equal(buf.Bytes(), data) {
		t.Errorf("WriteTo wrote %d bytes, want %d", n, len(data))
	}
}

func TestShot_WriteToFile(t *testing.T) {
	s, data := newShot()
	path := filepath.Join(t.TempDir(), "tag_1.png")
	if err := s.WriteToFile(path, 0o644); err != nil {
		t.Fatalf("WriteToFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Error("file content differs")
	}
}

func TestShot_Size(t *testing.T) {
	s, _ := newShot()
	w, h, err := s.Size()
	if err != nil {
		t.Fatal(err)
	}
	if w != 8 || h != 5 {
		t.Errorf("Size() = %dx%d, want 8x5", w, h)
	}

	bad := &Shot{data: []byte("not an image")}
	if _, _, err := bad.Size(); err == nil {
		t.Error("expected an error for undecodable data")
	}
}
