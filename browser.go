package tagsheet

import (
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
)

// browserPath picks the executable to launch. An explicit path wins; then a
// browser installed on the system; with auto-download enabled, a Chromium
// build is fetched into the rod cache (~/.cache/rod/browser on Unix,
// %APPDATA%\rod\browser on Windows). An empty result lets the engine search
// on its own.
func browserPath(cfg rendererConfig) (string, error) {
	if cfg.chromePath != "" {
		return cfg.chromePath, nil
	}
	if path, ok := launcher.LookPath(); ok {
		return path, nil
	}
	if !cfg.autoDownload {
		return "", nil
	}
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("tagsheet: downloading browser: %w", err)
	}
	return path, nil
}
