// Package buildinfo reports which tagsheet build is running.
//
// Release builds stamp the values with
//
//	-ldflags "-X github.com/porticus-lab/tagsheet/internal/buildinfo.version=v0.3.0"
//
// (and likewise commit and date). Binaries built with go install fall back to
// the module version and VCS stamp the toolchain records.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

var (
	version = "dev"
	commit  string
	date    string
)

// Version returns the release tag, or "dev" for an unstamped build.
func Version() string {
	if version != "dev" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return version
}

// revision returns the commit and build time, from ldflags or the VCS
// settings embedded by the go command. Either may be empty.
func revision() (rev, at string) {
	rev, at = commit, date
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return rev, at
	}
	dirty := false
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if rev == "" {
				rev = s.Value
			}
		case "vcs.time":
			if at == "" {
				at = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if dirty && rev != "" {
		rev += "+dirty"
	}
	return rev, at
}

// Template is the cobra version template: the version line, then the commit
// and build time when known.
func Template() string {
	var b strings.Builder
	b.WriteString("{{.Name}} version {{.Version}}\n")
	rev, at := revision()
	if rev != "" {
		b.WriteString("commit " + rev + "\n")
	}
	if at != "" {
		b.WriteString("built " + at + "\n")
	}
	return b.String()
}
