package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/tagsheet"
	"github.com/porticus-lab/tagsheet/internal/config"
)

// renderOpts holds the flags of the render command. Zero values fall back
// to the [render] section of the profile.
type renderOpts struct {
	until        int
	engine       string
	chrome       string
	autoDownload bool
	noSandbox    bool
	timeout      time.Duration
	profile      string
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render ORIGIN DESTINATION OCCURRENCE_ID",
		Short: "Capture occurrence tags as PNG images",
		Long: `Fetches ORIGIN/media/advideogame/occurrences/<id>/tags/v2.html for every id from
OCCURRENCE_ID through --until and saves a full-page screenshot as
DESTINATION/tag_<id>.png. Pages answering with an error status are skipped.`,
		Example: `  tagsheet render http://localhost:8000/ ./tags 120 --until 140
  tagsheet render https://museum.example/ ./tags 7 --engine rod --auto-download`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid occurrence id %q", args[2])
			}
			flags := cmd.Flags()
			prof, err := config.Load(opts.profile)
			if err != nil {
				return err
			}
			if !flags.Changed("engine") {
				opts.engine = prof.Render.Engine
			}
			if !flags.Changed("chrome") {
				opts.chrome = prof.Render.Chrome
			}
			if !flags.Changed("timeout") {
				opts.timeout = prof.Render.Timeout
			}
			if !flags.Changed("no-sandbox") {
				opts.noSandbox = prof.Render.NoSandbox
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], id, opts, prof.Render)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.until, "until", 0, "last occurrence id to capture (default: OCCURRENCE_ID only)")
	f.StringVar(&opts.engine, "engine", "chromedp", "browser library: chromedp or rod")
	f.StringVar(&opts.chrome, "chrome", "", "path to the Chrome or Chromium executable")
	f.BoolVar(&opts.autoDownload, "auto-download", false, "download a Chromium build when none is installed")
	f.BoolVar(&opts.noSandbox, "no-sandbox", false, "disable the Chrome sandbox (needed as root in containers)")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "maximum time per tag")
	addProfileFlag(cmd, &opts.profile)

	return cmd
}

func runRender(ctx context.Context, out io.Writer, origin, dest string, id int, opts renderOpts, rc config.Render) error {
	logger := loggerFromContext(ctx)

	engine, err := tagsheet.ParseEngine(opts.engine)
	if err != nil {
		return err
	}
	// Reject bad input before a browser is started.
	if _, err := tagsheet.TagURL(origin, id); err != nil {
		return err
	}
	until := opts.until
	if until == 0 {
		until = id
	}
	if until < id {
		return fmt.Errorf("--until %d is before occurrence %d", until, id)
	}

	ropts := []tagsheet.Option{
		tagsheet.WithEngine(engine),
		tagsheet.WithTimeout(opts.timeout),
		tagsheet.WithViewport(rc.Width, rc.Height),
		tagsheet.WithProgress(func(o tagsheet.Outcome) {
			if o.Skipped {
				logger.Warn("skipped", "id", o.ID, "status", o.Status, "url", o.URL)
				return
			}
			logger.Debug("captured", "id", o.ID, "path", o.Path)
		}),
	}
	if opts.chrome != "" {
		ropts = append(ropts, tagsheet.WithChromePath(opts.chrome))
	}
	if opts.autoDownload {
		ropts = append(ropts, tagsheet.WithAutoDownload())
	}
	if opts.noSandbox {
		ropts = append(ropts, tagsheet.WithNoSandbox())
	}

	prog := newProgress(logger)
	r, err := tagsheet.NewRenderer(ropts...)
	if err != nil {
		return err
	}
	defer r.Close()
	logger.Debug("browser started", "engine", engine)

	outcomes, err := r.RenderRange(ctx, origin, dest, id, until)
	if err != nil {
		return err
	}

	var written, skipped int
	for _, o := range outcomes {
		if o.Skipped {
			skipped++
		} else {
			written++
		}
	}
	prog.done("Captured tags", "written", written, "skipped", skipped)

	printSuccess(out, "%d tag(s) written to %s", written, dest)
	if skipped > 0 {
		printWarning(out, "%d tag(s) skipped", skipped)
	}
	return nil
}
