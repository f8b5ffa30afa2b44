// Package tagsheet captures occurrence tags as PNG images and is the entry
// point of the label tooling.
//
// A [Renderer] drives a headless Chromium, through chromedp by default or
// go-rod with [WithEngine], and is reused across captures:
//
//	r, err := tagsheet.NewRenderer(tagsheet.WithNoSandbox())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	outcomes, err := r.RenderRange(ctx, "https://museum.example/", "tags", 120, 140)
//
// Each tag is fetched from the URL built by [TagURL] and saved as
// tag_<id>.png. Pages answering with a non-2xx status are skipped and
// reported in the [Outcome]; any other failure stops the run.
//
// A single page can be captured directly. The returned [Shot] exposes the
// PNG in several forms:
//
//	shot, err := r.Capture(ctx, url)
//	shot.Bytes()                        // []byte
//	shot.Base64()                       // base64 string (RFC 4648)
//	shot.WriteToFile("tag.png", 0o644)  // write to disk
//	w, h, err := shot.Size()            // pixel dimensions
//
// The captured images are laid out on label sheets by package sheet and
// written to PDF by the tagsheet command.
package tagsheet
