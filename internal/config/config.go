// Package config loads sheet profiles: the label stock geometry, the printer
// presets and the renderer settings, written in TOML with lengths in
// millimetres.
//
//	[sheet]
//	label_width_mm = 45.7
//	label_height_mm = 21.2
//	columns = 4
//	rows = 12
//
//	[printers.office]
//	dx_mm = 0.4
//	dy_mm = -0.8
//
//	[render]
//	engine = "rod"
//	timeout = "45s"
//
// Keys left out keep the values of the DECAdry DLW1736 stock and the
// built-in printers.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/porticus-lab/tagsheet/sheet"
)

// Sheet describes the label stock.
type Sheet struct {
	PageWidthMM    float64 `toml:"page_width_mm"`
	PageHeightMM   float64 `toml:"page_height_mm"`
	MarginTopMM    float64 `toml:"margin_top_mm"`
	MarginBottomMM float64 `toml:"margin_bottom_mm"`
	MarginLeftMM   float64 `toml:"margin_left_mm"`
	MarginRightMM  float64 `toml:"margin_right_mm"`
	LabelWidthMM   float64 `toml:"label_width_mm"`
	LabelHeightMM  float64 `toml:"label_height_mm"`
	HGapMM         float64 `toml:"hgap_mm"`
	VGapMM         float64 `toml:"vgap_mm"`
	Columns        int     `toml:"columns"`
	Rows           int     `toml:"rows"`
	Resolution     float64 `toml:"resolution"`
}

// Printer is a printer registration offset.
type Printer struct {
	DXMM float64 `toml:"dx_mm"`
	DYMM float64 `toml:"dy_mm"`
}

// Render holds the tag renderer settings.
type Render struct {
	Engine    string        `toml:"engine"`
	Chrome    string        `toml:"chrome"`
	Timeout   time.Duration `toml:"timeout"`
	NoSandbox bool          `toml:"no_sandbox"`
	Width     int           `toml:"viewport_width"`
	Height    int           `toml:"viewport_height"`
}

// Profile is a complete sheet profile.
type Profile struct {
	Sheet    Sheet              `toml:"sheet"`
	Printers map[string]Printer `toml:"printers"`
	Render   Render             `toml:"render"`
}

// Default returns the built-in profile.
func Default() *Profile {
	g := sheet.DECAdryDLW1736
	p := &Profile{
		Sheet: Sheet{
			PageWidthMM:    sheet.ToMM(g.PageWidth),
			PageHeightMM:   sheet.ToMM(g.PageHeight),
			MarginTopMM:    sheet.ToMM(g.Margins.Top),
			MarginBottomMM: sheet.ToMM(g.Margins.Bottom),
			MarginLeftMM:   sheet.ToMM(g.Margins.Left),
			MarginRightMM:  sheet.ToMM(g.Margins.Right),
			LabelWidthMM:   sheet.ToMM(g.LabelWidth),
			LabelHeightMM:  sheet.ToMM(g.LabelHeight),
			HGapMM:         sheet.ToMM(g.HGap),
			VGapMM:         sheet.ToMM(g.VGap),
			Columns:        g.Columns,
			Rows:           g.Rows,
			Resolution:     g.Resolution,
		},
		Printers: make(map[string]Printer, len(sheet.Printers)),
		Render: Render{
			Engine:  "chromedp",
			Timeout: 30 * time.Second,
			Width:   1280,
			Height:  1024,
		},
	}
	for name, off := range sheet.Printers {
		p.Printers[name] = Printer{DXMM: sheet.ToMM(off.DX), DYMM: sheet.ToMM(off.DY)}
	}
	return p
}

// Load reads the profile at path over the defaults and validates it. An
// empty path returns the defaults.
func Load(path string) (*Profile, error) {
	p := Default()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading profile: %w", err)
	}
	if err := p.overlay(data); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return p, nil
}

// Parse reads a profile from TOML text over the defaults and validates it.
func Parse(data []byte) (*Profile, error) {
	p := Default()
	if err := p.overlay(data); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return p, nil
}

// profileFile is the decoding target for a profile file. Printer tables use
// pointers so a table that lists only dx_mm keeps the preset's dy_mm.
type profileFile struct {
	Sheet    Sheet                     `toml:"sheet"`
	Printers map[string]printerOverlay `toml:"printers"`
	Render   Render                    `toml:"render"`
}

type printerOverlay struct {
	DXMM *float64 `toml:"dx_mm"`
	DYMM *float64 `toml:"dy_mm"`
}

func (p *Profile) overlay(data []byte) error {
	file := profileFile{Sheet: p.Sheet, Render: p.Render}

	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	p.Sheet = file.Sheet
	p.Render = file.Render
	for name, o := range file.Printers {
		pr := p.Printers[name]
		if o.DXMM != nil {
			pr.DXMM = *o.DXMM
		}
		if o.DYMM != nil {
			pr.DYMM = *o.DYMM
		}
		p.Printers[name] = pr
	}
	return nil
}

// Validate checks the profile for values the layout engine cannot use.
func (p *Profile) Validate() error {
	if p.Sheet.Resolution <= 0 {
		return errors.New("sheet.resolution must be positive")
	}
	if err := p.Geometry().Validate(); err != nil {
		return err
	}
	if p.Render.Width < 0 || p.Render.Height < 0 {
		return errors.New("render viewport must not be negative")
	}
	return nil
}

// Geometry converts the sheet section to points.
func (p *Profile) Geometry() sheet.Geometry {
	s := p.Sheet
	return sheet.Geometry{
		PageWidth:  sheet.MM(s.PageWidthMM),
		PageHeight: sheet.MM(s.PageHeightMM),
		Margins: sheet.Margins{
			Top:    sheet.MM(s.MarginTopMM),
			Bottom: sheet.MM(s.MarginBottomMM),
			Left:   sheet.MM(s.MarginLeftMM),
			Right:  sheet.MM(s.MarginRightMM),
		},
		LabelWidth:  sheet.MM(s.LabelWidthMM),
		LabelHeight: sheet.MM(s.LabelHeightMM),
		HGap:        sheet.MM(s.HGapMM),
		VGap:        sheet.MM(s.VGapMM),
		Columns:     s.Columns,
		Rows:        s.Rows,
		Resolution:  s.Resolution,
	}
}

// Offsets returns the printer presets in points.
func (p *Profile) Offsets() map[string]sheet.Offset {
	out := make(map[string]sheet.Offset, len(p.Printers))
	for name, pr := range p.Printers {
		out[name] = sheet.Offset{DX: sheet.MM(pr.DXMM), DY: sheet.MM(pr.DYMM)}
	}
	return out
}
