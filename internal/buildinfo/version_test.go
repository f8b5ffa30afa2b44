package buildinfo

import (
	"strings"
	"testing"
)

func TestVersionUnstamped(t *testing.T) {
	if got := Version(); got != "dev" {
		t.Errorf("Version() = %q, want dev", got)
	}
}

func TestVersionStamped(t *testing.T) {
	old := version
	t.Cleanup(func() { version = old })
	version = "v0.3.0"
	if got := Version(); got != "v0.3.0" {
		t.Errorf("Version() = %q, want v0.3.0", got)
	}
}

func TestTemplate(t *testing.T) {
	oldCommit, oldDate := commit, date
	t.Cleanup(func() { commit, date = oldCommit, oldDate })
	commit, date = "0123456789abcdef", "2026-10-01T12:00:00Z"

	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version {{.Version}}\n") {
		t.Errorf("template = %q", tmpl)
	}
	if !strings.Contains(tmpl, "commit 0123456789ab") {
		t.Errorf("template %q lacks the short commit", tmpl)
	}
	if !strings.Contains(tmpl, "built 2026-10-01T12:00:00Z") {
		t.Errorf("template %q lacks the build date", tmpl)
	}
}
