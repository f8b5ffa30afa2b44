package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/tagsheet/pdf"
	"github.com/porticus-lab/tagsheet/sheet"
)

func newInspectCmd() *cobra.Command {
	var marks bool

	cmd := &cobra.Command{
		Use:   "inspect FILE.pdf",
		Short: "List the images and cut guides of a label sheet PDF",
		Long: `Reads a PDF written by the labels command and reports, page by page, where
each image was painted and how many solid and dashed lines were stroked. Use it
to check a sheet against the physical stock before printing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], marks)
		},
	}
	cmd.Flags().BoolVar(&marks, "marks", false, "list every image placement")
	return cmd
}

func runInspect(ctx context.Context, out io.Writer, path string, listMarks bool) error {
	logger := loggerFromContext(ctx)

	doc, err := pdf.Open(path)
	if err != nil {
		return err
	}
	pages, err := doc.Pages()
	if err != nil {
		return err
	}
	logger.Debug("opened", "path", path, "version", doc.Version(), "pages", len(pages))

	printTitle(out, "%s", path)
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := doc.PageMarks(i)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		printKeyValue(out, fmt.Sprintf("page %d", i+1), "%s x %s",
			mm(sheet.ToMM(p.Width())), mm(sheet.ToMM(p.Height())))
		printStats(out,
			fmt.Sprintf("%d images", len(m.Placements)),
			fmt.Sprintf("%d solid lines", len(m.Solid())),
			fmt.Sprintf("%d dashed lines", len(m.Dashed())))
		if !listMarks {
			continue
		}
		for _, pl := range m.Placements {
			fmt.Fprintf(out, "    %s %s x %s at (%s, %s)\n",
				styleValue.Render(pl.Name),
				mm(sheet.ToMM(pl.Width)), mm(sheet.ToMM(pl.Height)),
				mm(sheet.ToMM(pl.X)), mm(sheet.ToMM(pl.Y)))
		}
	}
	return nil
}
