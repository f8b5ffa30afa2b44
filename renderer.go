package tagsheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// engine is a browser able to capture one page at a time.
type engine interface {
	// capture navigates to url and returns a full-page PNG together with the
	// status of the document response. The image is nil when the status is
	// not OK.
	capture(ctx context.Context, url string, vp Viewport) ([]byte, int, error)
	close()
}

// statusOK accepts 2xx answers and documents that were not served over
// HTTP at all.
func statusOK(status int) bool {
	return status == 0 || (status >= 200 && status < 300)
}

// Renderer captures tag pages as PNG images.
//
// A Renderer manages a headless browser instance that is reused across
// captures. It is safe for concurrent use; captures are serialized.
//
// Call [Renderer.Close] when the Renderer is no longer needed to release
// browser resources.
type Renderer struct {
	cfg rendererConfig
	eng engine

	mu     sync.Mutex
	closed bool
}

// NewRenderer starts a headless browser with the given options. The caller
// must call [Renderer.Close] when finished.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	path, err := browserPath(cfg)
	if err != nil {
		return nil, err
	}
	cfg.chromePath = path

	var eng engine
	switch cfg.engine {
	case EngineChromedp:
		eng, err = newChromedpEngine(cfg)
	case EngineRod:
		eng, err = newRodEngine(cfg)
	default:
		err = fmt.Errorf("tagsheet: unknown engine %v", cfg.engine)
	}
	if err != nil {
		return nil, err
	}
	return &Renderer{cfg: cfg, eng: eng}, nil
}

// Engine reports the browser library in use.
func (r *Renderer) Engine() Engine {
	return r.cfg.engine
}

// Close releases all resources held by the Renderer, including the
// browser process. Close is idempotent.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.eng.close()
	return nil
}

// Capture takes a full-page screenshot of the page at rawURL. A document
// answered with a non-2xx status yields an [*HTTPStatusError].
func (r *Renderer) Capture(ctx context.Context, rawURL string) (*Shot, error) {
	if _, err := parseOrigin(rawURL); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}

	if r.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.timeout)
		defer cancel()
	}

	data, status, err := r.eng.capture(ctx, rawURL, r.cfg.viewport)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, fmt.Errorf("tagsheet: capturing %s: %w", rawURL, err)
	}
	if !statusOK(status) {
		return nil, &HTTPStatusError{URL: rawURL, Status: status}
	}
	return &Shot{data: data, status: status}, nil
}

// Outcome is the result of one id of [Renderer.RenderRange].
type Outcome struct {
	ID     int
	URL    string
	Status int
	// Path is the written image, empty when the id was skipped.
	Path    string
	Skipped bool
}

// RenderRange captures the tags first through last, inclusive, into dest
// as tag_<id>.png. A last of zero renders first alone. Ids whose page
// answers with a non-2xx status are skipped; any other error stops the run
// and is returned together with the outcomes gathered so far.
func (r *Renderer) RenderRange(ctx context.Context, origin, dest string, first, last int) ([]Outcome, error) {
	if last == 0 {
		last = first
	}
	if last < first {
		return nil, fmt.Errorf("tagsheet: range %d..%d is empty", first, last)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("tagsheet: %w", err)
	}

	outcomes := make([]Outcome, 0, last-first+1)
	for id := first; id <= last; id++ {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		u, err := TagURL(origin, id)
		if err != nil {
			return outcomes, err
		}
		o := Outcome{ID: id, URL: u}

		shot, err := r.Capture(ctx, u)
		var statusErr *HTTPStatusError
		switch {
		case errors.As(err, &statusErr):
			o.Status = statusErr.Status
			o.Skipped = true
		case err != nil:
			return outcomes, err
		default:
			o.Status = shot.Status()
			o.Path = filepath.Join(dest, TagFile(id))
			if err := shot.WriteToFile(o.Path, 0o644); err != nil {
				return outcomes, fmt.Errorf("tagsheet: saving tag %d: %w", id, err)
			}
		}

		outcomes = append(outcomes, o)
		if r.cfg.progress != nil {
			r.cfg.progress(o)
		}
	}
	return outcomes, nil
}
