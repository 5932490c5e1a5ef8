package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetStamped(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02"

	info := Get()
	want := Info{Version: "v1.2.3", Commit: "abc123", Date: "2026-01-02", GoVersion: runtime.Version()}
	if info != want {
		t.Errorf("Get() = %+v, want %+v", info, want)
	}
	if !strings.HasPrefix(info.String(), "version: v1.2.3\ncommit: abc123\n") {
		t.Errorf("String() = %q", info.String())
	}
	if !strings.HasPrefix(Template(), "{{.Name}} v1.2.3\n") {
		t.Errorf("Template() = %q", Template())
	}
}

func TestGetUnstamped(t *testing.T) {
	info := Get()
	if info.Version == "" || info.Commit == "" || info.GoVersion == "" {
		t.Errorf("Get() left fields empty: %+v", info)
	}
}
