package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Overflow decides what happens when more labels are requested than cells
// remain on the sheet.
type Overflow int

const (
	// OverflowNewPage continues on a fresh sheet, starting at its first cell.
	OverflowNewPage Overflow = iota
	// OverflowReject fails with a *GridOverrunError.
	OverflowReject
)

// ParseOverflow maps the command line spelling of a policy to its value.
func ParseOverflow(s string) (Overflow, error) {
	switch strings.ToLower(s) {
	case "", "page", "new-page":
		return OverflowNewPage, nil
	case "error", "reject":
		return OverflowReject, nil
	}
	return 0, fmt.Errorf("sheet: unknown overflow policy %q (want page or error)", s)
}

func (o Overflow) String() string {
	if o == OverflowReject {
		return "error"
	}
	return "page"
}

// Assignment binds one copy of an image to a label.
type Assignment struct {
	Path string
	Page int // zero-based sheet number
	Cell Cell
}

// Assign expands files so that each one appears repeat times in a row, then
// hands out consecutive cells in row-major order starting at first.
func Assign(files []string, repeat int, first Cell, g Geometry, policy Overflow) ([]Assignment, error) {
	if repeat < 1 {
		return nil, fmt.Errorf("sheet: repeat count must be at least 1, got %d", repeat)
	}
	if !g.Contains(first) {
		return nil, &CellOutOfBoundsError{Cell: first, Columns: g.Columns, Rows: g.Rows}
	}

	capacity := g.Capacity()
	start := g.Index(first)
	total := len(files) * repeat
	if policy == OverflowReject && start+total > capacity {
		return nil, &GridOverrunError{Needed: total, Available: capacity - start}
	}

	out := make([]Assignment, 0, total)
	idx := start
	for _, f := range files {
		for i := 0; i < repeat; i++ {
			out = append(out, Assignment{
				Path: f,
				Page: idx / capacity,
				Cell: g.CellAt(idx % capacity),
			})
			idx++
		}
	}
	return out, nil
}

// ListImages returns the regular files of dir whose extension is ext,
// compared case-insensitively, sorted by file name.
func ListImages(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("sheet: listing images: %w", err)
	}

	want := "." + strings.TrimPrefix(ext, ".")
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), want) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}
