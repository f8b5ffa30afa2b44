package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/porticus-lab/tagsheet/sheet"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDefaultMatchesBuiltinSheet(t *testing.T) {
	p := Default()
	g := p.Geometry()
	want := sheet.DECAdryDLW1736

	for _, c := range []struct {
		name      string
		got, want float64
	}{
		{"page width", g.PageWidth, want.PageWidth},
		{"page height", g.PageHeight, want.PageHeight},
		{"top margin", g.Margins.Top, want.Margins.Top},
		{"left margin", g.Margins.Left, want.Margins.Left},
		{"label width", g.LabelWidth, want.LabelWidth},
		{"label height", g.LabelHeight, want.LabelHeight},
		{"hgap", g.HGap, want.HGap},
	} {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if g.Columns != 4 || g.Rows != 12 || g.Resolution != 1200 {
		t.Errorf("grid = %dx%d at %v dpi", g.Columns, g.Rows, g.Resolution)
	}

	off := p.Offsets()["hp-psc2355"]
	if !almostEqual(off.DX, sheet.MM(0.6)) || !almostEqual(off.DY, sheet.MM(-1)) {
		t.Errorf("hp-psc2355 offset = %+v", off)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default profile invalid: %v", err)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avery.toml")
	data := `
[sheet]
label_width_mm = 38.1
label_height_mm = 21.2
hgap_mm = 2.5
columns = 5
rows = 13
margin_top_mm = 10.5
margin_bottom_mm = 10.5
margin_left_mm = 4.7
margin_right_mm = 4.7

[printers.office]
dx_mm = 0.4
dy_mm = -0.8

[render]
engine = "rod"
timeout = "45s"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Sheet.Columns != 5 || p.Sheet.Rows != 13 {
		t.Errorf("grid = %dx%d, want 5x13", p.Sheet.Columns, p.Sheet.Rows)
	}
	// Keys not in the file keep their defaults.
	if p.Sheet.PageWidthMM != Default().Sheet.PageWidthMM || p.Sheet.Resolution != 1200 {
		t.Errorf("defaults lost: %+v", p.Sheet)
	}
	if _, ok := p.Printers["ideal"]; !ok {
		t.Error("built-in printers lost")
	}
	if pr := p.Printers["office"]; pr.DXMM != 0.4 || pr.DYMM != -0.8 {
		t.Errorf("office printer = %+v", pr)
	}
	if p.Render.Engine != "rod" || p.Render.Timeout != 45*time.Second {
		t.Errorf("render = %+v", p.Render)
	}
	if p.Render.Width != 1280 {
		t.Errorf("viewport width = %d, want default 1280", p.Render.Width)
	}
}

func TestParsePartialPrinter(t *testing.T) {
	p, err := Parse([]byte("[printers.hp-psc2355]\ndx_mm = 0.8\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	builtin := Default().Printers["hp-psc2355"]
	got := p.Printers["hp-psc2355"]
	if got.DXMM != 0.8 {
		t.Errorf("dx_mm = %g, want 0.8", got.DXMM)
	}
	if !almostEqual(got.DYMM, builtin.DYMM) || builtin.DYMM == 0 {
		t.Errorf("dy_mm = %g, want built-in %g", got.DYMM, builtin.DYMM)
	}
	if off := p.Offsets()["hp-psc2355"]; !almostEqual(off.DY, sheet.Printers["hp-psc2355"].DY) {
		t.Errorf("offset dy = %g, want %g", off.DY, sheet.Printers["hp-psc2355"].DY)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if p.Sheet.Columns != 4 {
		t.Errorf("columns = %d, want 4", p.Sheet.Columns)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		is   error
	}{
		{"syntax", "[sheet\ncolumns = 4", nil},
		{"unknown key", "[sheet]\ncolums = 4", nil},
		{"grid overflow", "[sheet]\ncolumns = 5", sheet.ErrGeometryOverflow},
		{"zero resolution", "[sheet]\nresolution = 0", nil},
		{"negative gap", "[sheet]\nvgap_mm = -1", nil},
		{"negative viewport", "[render]\nviewport_width = -1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("err = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
