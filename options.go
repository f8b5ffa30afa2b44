package tagsheet

import (
	"fmt"
	"strings"
	"time"
)

// Engine selects the browser automation library.
type Engine int

const (
	// EngineChromedp drives the browser with chromedp.
	EngineChromedp Engine = iota
	// EngineRod drives the browser with go-rod.
	EngineRod
)

func (e Engine) String() string {
	switch e {
	case EngineChromedp:
		return "chromedp"
	case EngineRod:
		return "rod"
	}
	return fmt.Sprintf("Engine(%d)", int(e))
}

// ParseEngine returns the engine named s. The empty string selects chromedp.
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "chromedp":
		return EngineChromedp, nil
	case "rod", "go-rod":
		return EngineRod, nil
	}
	return 0, fmt.Errorf("tagsheet: unknown engine %q (want chromedp or rod)", s)
}

// Viewport is the browser window used for captures, in CSS pixels.
// Zero fields take the defaults of [DefaultViewport].
type Viewport struct {
	Width  int
	Height int
	// Scale is the device scale factor. Values above 1 produce sharper
	// tags with more pixels.
	Scale float64
}

// DefaultViewport returns the viewport used when none is configured.
func DefaultViewport() Viewport {
	return Viewport{Width: 1280, Height: 1024, Scale: 1}
}

func (v Viewport) resolved() Viewport {
	d := DefaultViewport()
	if v.Width > 0 {
		d.Width = v.Width
	}
	if v.Height > 0 {
		d.Height = v.Height
	}
	if v.Scale > 0 {
		d.Scale = v.Scale
	}
	return d
}

// rendererConfig holds internal configuration for a Renderer.
type rendererConfig struct {
	engine       Engine
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	autoDownload bool
	headless     string
	viewport     Viewport
	progress     func(Outcome)
}

func defaultConfig() rendererConfig {
	return rendererConfig{
		engine:   EngineChromedp,
		timeout:  30 * time.Second,
		headless: "new",
		viewport: DefaultViewport(),
	}
}

// Option configures a [Renderer].
type Option func(*rendererConfig)

// WithEngine selects the browser automation library. Defaults to chromedp.
func WithEngine(e Engine) Option {
	return func(c *rendererConfig) {
		c.engine = e
	}
}

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default standard locations are searched.
func WithChromePath(path string) Option {
	return func(c *rendererConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration of a single capture.
// Defaults to 30 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *rendererConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *rendererConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload fetches a compatible Chromium build on first use when no
// executable was given with [WithChromePath]. The download is cached.
func WithAutoDownload() Option {
	return func(c *rendererConfig) {
		c.autoDownload = true
	}
}

// WithViewport sets the browser window size in CSS pixels.
func WithViewport(width, height int) Option {
	return func(c *rendererConfig) {
		c.viewport.Width = width
		c.viewport.Height = height
		c.viewport = c.viewport.resolved()
	}
}

// WithProgress registers fn to be called after each id of
// [Renderer.RenderRange], skipped ones included.
func WithProgress(fn func(Outcome)) Option {
	return func(c *rendererConfig) {
		c.progress = fn
	}
}
