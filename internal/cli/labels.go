package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/tagsheet/internal/canvas"
	"github.com/porticus-lab/tagsheet/internal/config"
	"github.com/porticus-lab/tagsheet/sheet"
)

const defaultOutput = "labels.pdf"

// labelsOpts holds the flags of the labels command.
type labelsOpts struct {
	col      int    // first free column
	row      int    // first free row
	repeat   int    // copies of each image
	guides   bool   // draw the zone outline and cut lines
	ext      string // image extension to pick up
	output   string // PDF path; defaults to labels.pdf inside the directory
	profile  string // TOML sheet profile
	overflow string // "page" or "error"
	dryRun   bool   // lay out without writing a PDF
}

func newLabelsCmd() *cobra.Command {
	opts := labelsOpts{repeat: 2, ext: "png"}

	cmd := &cobra.Command{
		Use:   "labels DIRECTORY PRINTER",
		Short: "Lay out the images of a directory on a label sheet PDF",
		Long: `Places every image of DIRECTORY, in file name order and repeated --repeat times,
into consecutive labels starting at --col/--row. Images are printed at the sheet
resolution (1200 dpi by default) and centred in their label. The print zone is
shifted by the registration offset of PRINTER.`,
		Example: `  tagsheet labels ./tags hp-psc2355
  tagsheet labels ./tags ideal --col 2 --row 5 --repeat 1 --print-guides`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLabels(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.col, "col", 0, "column of the first free label")
	f.IntVar(&opts.row, "row", 0, "row of the first free label")
	f.IntVar(&opts.repeat, "repeat", opts.repeat, "copies of each image")
	f.BoolVar(&opts.guides, "print-guides", false, "draw the print zone outline and dashed cut lines")
	f.StringVar(&opts.ext, "ext", opts.ext, "extension of the images to place")
	f.StringVarP(&opts.output, "output", "o", "", "output PDF (default: DIRECTORY/"+defaultOutput+")")
	f.StringVar(&opts.overflow, "overflow", "page", "when labels run out: page (continue on a new sheet) or error")
	f.BoolVar(&opts.dryRun, "dry-run", false, "compute the layout and print it without writing a PDF")
	addProfileFlag(cmd, &opts.profile)

	return cmd
}

func runLabels(ctx context.Context, out io.Writer, dir, printer string, opts labelsOpts) error {
	logger := loggerFromContext(ctx)

	prof, err := config.Load(opts.profile)
	if err != nil {
		return err
	}
	offset, err := sheet.LookupPrinter(prof.Offsets(), printer)
	if err != nil {
		return err
	}
	policy, err := sheet.ParseOverflow(opts.overflow)
	if err != nil {
		return err
	}
	if opts.repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1, got %d", opts.repeat)
	}

	g := prof.Geometry()
	req := sheet.Request{
		Dir:      dir,
		Ext:      strings.TrimPrefix(opts.ext, "."),
		Geometry: g,
		Offset:   offset,
		First:    sheet.Cell{Column: opts.col, Row: opts.row},
		Repeat:   opts.repeat,
		Guides:   opts.guides,
		Overflow: policy,
	}
	logger.Debug("sheet", "columns", g.Columns, "rows", g.Rows, "dpi", g.DPI(), "printer", printer,
		"dx_mm", sheet.ToMM(offset.DX), "dy_mm", sheet.ToMM(offset.DY))

	prog := newProgress(logger)
	if opts.dryRun {
		report, err := sheet.Generate(ctx, sheet.NewRecorder(), req)
		if err != nil {
			return err
		}
		prog.done("Laid out labels", "images", len(report.Files), "labels", len(report.Placements))
		printLayout(out, report)
		return nil
	}

	c := canvas.New(g.PageWidth, g.PageHeight)
	report, err := sheet.Generate(ctx, c, req)
	if err != nil {
		return err
	}
	if len(report.Files) == 0 {
		logger.Warn("no images found", "dir", dir, "ext", req.Ext)
	}

	output := opts.output
	if output == "" {
		output = filepath.Join(dir, defaultOutput)
	}
	if err := c.WriteFile(output); err != nil {
		return err
	}
	prog.done("Wrote label sheet", "labels", len(report.Placements), "pages", report.Pages)

	printSuccess(out, "%d labels on %d page(s)", len(report.Placements), report.Pages)
	printFile(out, output)
	return nil
}

// printLayout lists every placement of a dry run.
func printLayout(w io.Writer, r *sheet.Report) {
	printTitle(w, "Layout")
	for _, p := range r.Placements {
		fmt.Fprintf(w, "  %s %s %s %s x %s at (%s, %s)\n",
			styleNumber.Render(fmt.Sprintf("p%d", p.Page+1)),
			styleNumber.Render(fmt.Sprintf("c%d r%d", p.Cell.Column, p.Cell.Row)),
			styleValue.Render(filepath.Base(p.Path)),
			mm(sheet.ToMM(p.Rect.Width)), mm(sheet.ToMM(p.Rect.Height)),
			mm(sheet.ToMM(p.Rect.X)), mm(sheet.ToMM(p.Rect.Y)))
	}
	printStats(w,
		fmt.Sprintf("%d images", len(r.Files)),
		fmt.Sprintf("%d labels", len(r.Placements)),
		fmt.Sprintf("%d page(s)", r.Pages))
}
