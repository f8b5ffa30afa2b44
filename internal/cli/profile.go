package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/tagsheet/internal/config"
	"github.com/porticus-lab/tagsheet/sheet"
)

func newProfileCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the effective sheet geometry and printer presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := config.Load(path)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), prof)
			return nil
		},
	}
	addProfileFlag(cmd, &path)
	return cmd
}

func printProfile(w io.Writer, p *config.Profile) {
	s := p.Sheet
	g := p.Geometry()

	printTitle(w, "Sheet")
	printKeyValue(w, "page", "%s x %s", mm(s.PageWidthMM), mm(s.PageHeightMM))
	printKeyValue(w, "margins", "top %s  bottom %s  left %s  right %s",
		mm(s.MarginTopMM), mm(s.MarginBottomMM), mm(s.MarginLeftMM), mm(s.MarginRightMM))
	printKeyValue(w, "label", "%s x %s", mm(s.LabelWidthMM), mm(s.LabelHeightMM))
	printKeyValue(w, "gaps", "%s horizontal  %s vertical", mm(s.HGapMM), mm(s.VGapMM))
	printKeyValue(w, "grid", "%d x %d (%d labels)", s.Columns, s.Rows, g.Capacity())
	printKeyValue(w, "resolution", "%g dpi", g.DPI())

	printTitle(w, "Printers")
	offsets := p.Offsets()
	for _, name := range sheet.PrinterNames(offsets) {
		pr := p.Printers[name]
		printKeyValue(w, name, "dx %s  dy %s", mm(pr.DXMM), mm(pr.DYMM))
	}

	printTitle(w, "Renderer")
	printKeyValue(w, "engine", "%s", p.Render.Engine)
	printKeyValue(w, "timeout", "%s", p.Render.Timeout)
	printKeyValue(w, "viewport", "%d x %d", p.Render.Width, p.Render.Height)
}
