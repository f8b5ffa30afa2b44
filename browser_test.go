package tagsheet_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/porticus-lab/tagsheet"
)

// chromeAvailable reports whether a Chrome/Chromium executable is in PATH.
func chromeAvailable() bool {
	for _, name := range []string{
		"chromium-browser", "chromium", "google-chrome",
		"google-chrome-stable", "chrome",
	} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func skipIfNoChrome(t *testing.T) {
	t.Helper()
	if !chromeAvailable() {
		t.Skip("skipping: Chrome/Chromium not found in PATH")
	}
}

func newTestRenderer(t *testing.T, engine tagsheet.Engine) *tagsheet.Renderer {
	t.Helper()
	skipIfNoChrome(t)
	r, err := tagsheet.NewRenderer(
		tagsheet.WithEngine(engine),
		tagsheet.WithNoSandbox(),
		tagsheet.WithViewport(400, 300),
	)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

// tagServer serves tag pages for ids 1 and 3 and a 404 for anything else.
func tagServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for _, id := range []int{1, 3} {
		mux.HandleFunc(fmt.Sprintf("/media/advideogame/occurrences/%d/tags/v2.html", id),
			func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprintf(w, `<html><body style="margin:0"><div style="width:200px;height:100px">Occurrence %d</div></body></html>`, id)
			})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// isPNG checks whether data starts with the PNG signature.
func isPNG(data []byte) bool {
	return len(data) > 8 && string(data[1:4]) == "PNG"
}

func TestRenderer_RenderRange(t *testing.T) {
	for _, engine := range []tagsheet.Engine{tagsheet.EngineChromedp, tagsheet.EngineRod} {
		t.Run(engine.String(), func(t *testing.T) {
			r := newTestRenderer(t, engine)
			srv := tagServer(t)
			dest := t.TempDir()

			outcomes, err := r.RenderRange(context.Background(), srv.URL+"/", dest, 1, 3)
			if err != nil {
				t.Fatalf("RenderRange: %v", err)
			}
			if len(outcomes) != 3 {
				t.Fatalf("got %d outcomes, want 3", len(outcomes))
			}
			if !outcomes[1].Skipped || outcomes[1].Status != http.StatusNotFound {
				t.Errorf("outcome for id 2 = %+v, want skipped 404", outcomes[1])
			}
			for _, id := range []int{1, 3} {
				data, err := os.ReadFile(filepath.Join(dest, tagsheet.TagFile(id)))
				if err != nil {
					t.Fatalf("tag %d: %v", id, err)
				}
				if !isPNG(data) {
					t.Errorf("tag %d is not a PNG", id)
				}
			}
		})
	}
}

func TestRenderer_Capture(t *testing.T) {
	r := newTestRenderer(t, tagsheet.EngineChromedp)
	srv := tagServer(t)

	u, err := tagsheet.TagURL(srv.URL, 1)
	if err != nil {
		t.Fatal(err)
	}
	shot, err := r.Capture(context.Background(), u)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if shot.Status() != http.StatusOK {
		t.Errorf("Status() = %d, want 200", shot.Status())
	}
	w, _, err := shot.Size()
	if err != nil {
		t.Fatal(err)
	}
	if w == 0 {
		t.Error("shot has zero width")
	}

	if _, err := r.Capture(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected an error for a 404 page")
	} else {
		var statusErr *tagsheet.HTTPStatusError
		if !errors.As(err, &statusErr) {
			t.Errorf("err = %v, want *HTTPStatusError", err)
		}
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	r := newTestRenderer(t, tagsheet.EngineChromedp)
	srv := tagServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Capture(ctx, srv.URL+"/"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
