package tagsheet

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// rodEngine is the go-rod counterpart of chromedpEngine.
type rodEngine struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// newRodLauncher mirrors the chromedp allocator flags.
func newRodLauncher(cfg rendererConfig) *launcher.Launcher {
	l := launcher.New().
		Set("headless", cfg.headless).
		NoSandbox(cfg.noSandbox).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("hide-scrollbars")
	if cfg.chromePath != "" {
		l = l.Bin(cfg.chromePath)
	}
	return l
}

func newRodEngine(cfg rendererConfig) (*rodEngine, error) {
	l := newRodLauncher(cfg)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("tagsheet: starting browser: %w", err)
	}
	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("tagsheet: connecting to browser: %w", err)
	}
	return &rodEngine{launcher: l, browser: b}, nil
}

func (e *rodEngine) capture(ctx context.Context, url string, vp Viewport) ([]byte, int, error) {
	page, err := e.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, 0, err
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: vp.Scale,
	}); err != nil {
		return nil, 0, err
	}

	// Record the status of the first document response, then wait for load.
	status := 0
	wait := page.EachEvent(
		func(ev *proto.NetworkResponseReceived) {
			if status == 0 && ev.Type == proto.NetworkResourceTypeDocument {
				status = ev.Response.Status
			}
		},
		func(*proto.PageLoadEventFired) bool { return true },
	)
	if err := page.Navigate(url); err != nil {
		return nil, 0, err
	}
	wait()
	if err := ctx.Err(); err != nil {
		return nil, status, err
	}
	if !statusOK(status) {
		return nil, status, nil
	}

	data, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, status, err
	}
	return data, status, nil
}

func (e *rodEngine) close() {
	_ = e.browser.Close()
	e.launcher.Kill()
	e.launcher.Cleanup()
}
