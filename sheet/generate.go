package sheet

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// ImageSizer reports the natural pixel size of an image file.
type ImageSizer interface {
	Size(path string) (ImageSize, error)
}

// ImageSizerFunc adapts a function to ImageSizer.
type ImageSizerFunc func(path string) (ImageSize, error)

func (f ImageSizerFunc) Size(path string) (ImageSize, error) { return f(path) }

// DecodeSize reads the image header of path. PNG and JPEG are supported,
// the formats the PDF surface can embed.
func DecodeSize(path string) (ImageSize, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageSize{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return ImageSize{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return ImageSize{Width: cfg.Width, Height: cfg.Height}, nil
}

// Request describes one sheet generation run.
type Request struct {
	// Dir holds the source images.
	Dir string
	// Ext selects the images of Dir. Defaults to "png".
	Ext string

	Geometry Geometry
	Offset   Offset

	// First is the first free label of the sheet.
	First Cell
	// Repeat is the number of copies of each image. Zero means 1.
	Repeat int

	// Guides adds the zone outline and dashed cell separators to every page.
	Guides bool

	Overflow Overflow

	// Sizer reads image dimensions. Nil means DecodeSize.
	Sizer ImageSizer
}

// Placement is an assignment resolved to page coordinates.
type Placement struct {
	Assignment
	Rect Rect
}

// Report summarises a generation run.
type Report struct {
	Files      []string
	Placements []Placement
	Pages      int
	Zone       Zone
}

// Generate renders the images of req.Dir onto s. The print zone is computed
// once, every copy is placed in its cell, and guides are drawn last. The
// first error aborts the run; no partial report is returned.
func Generate(ctx context.Context, s Surface, req Request) (*Report, error) {
	g := req.Geometry
	if err := g.Validate(); err != nil {
		return nil, err
	}
	ext := req.Ext
	if ext == "" {
		ext = "png"
	}
	repeat := req.Repeat
	if repeat == 0 {
		repeat = 1
	}
	sizer := req.Sizer
	if sizer == nil {
		sizer = ImageSizerFunc(DecodeSize)
	}

	files, err := ListImages(req.Dir, ext)
	if err != nil {
		return nil, err
	}
	assignments, err := Assign(files, repeat, req.First, g, req.Overflow)
	if err != nil {
		return nil, err
	}

	zone := ComputeZone(g, req.Offset)
	pages := 1
	if n := len(assignments); n > 0 {
		pages = assignments[n-1].Page + 1
	}

	report := &Report{Files: files, Pages: pages, Zone: zone}
	sizes := make(map[string]ImageSize, len(files))
	next := 0
	for page := 0; page < pages; page++ {
		s.AddPage()
		for ; next < len(assignments) && assignments[next].Page == page; next++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			a := assignments[next]

			size, ok := sizes[a.Path]
			if !ok {
				size, err = sizer.Size(a.Path)
				if err != nil {
					return nil, fmt.Errorf("sheet: %w", err)
				}
				sizes[a.Path] = size
			}

			rect, err := Place(zone, g, a.Cell, size)
			if err != nil {
				return nil, fmt.Errorf("placing %s: %w", a.Path, err)
			}
			if err := s.DrawImage(a.Path, rect.X, rect.Y, rect.Width, rect.Height); err != nil {
				return nil, fmt.Errorf("sheet: drawing %s: %w", a.Path, err)
			}
			report.Placements = append(report.Placements, Placement{Assignment: a, Rect: rect})
		}
		if req.Guides {
			DrawGuides(s, zone, g)
		}
	}
	return report, nil
}
