package version

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	defer func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	}()

	Version = "1.2.0"
	Commit = "abc123def456"
	Date = "2026-03-01T12:00:00Z"

	info := GetInfo()

	if info.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", info.Version)
	}
	if info.Commit != "abc123def456" {
		t.Errorf("Commit = %q, want abc123def456", info.Commit)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if want := runtime.GOOS + "/" + runtime.GOARCH; info.Platform != want {
		t.Errorf("Platform = %q, want %q", info.Platform, want)
	}
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "1.2.0",
		Commit:    "abc123def456",
		Date:      "2026-03-01",
		GoVersion: "go1.24.6",
		Platform:  "linux/amd64",
	}

	got := info.String()
	for _, substr := range []string{"cqnu", "1.2.0", "abc123de", "2026-03-01", "go1.24.6", "linux/amd64"} {
		if !strings.Contains(got, substr) {
			t.Errorf("Info.String() = %q, missing %q", got, substr)
		}
	}
	if strings.Contains(got, "abc123def") {
		t.Errorf("Info.String() = %q, commit not truncated to 8 chars", got)
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("abc123"); got != "abc123" {
		t.Errorf("shortCommit(abc123) = %q", got)
	}
	if got := shortCommit("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortCommit long = %q, want 01234567", got)
	}
}

func TestInfoJSON(t *testing.T) {
	data, err := json.Marshal(GetInfo())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"version"`, `"commit"`, `"date"`, `"go_version"`, `"platform"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON output %s missing key %s", data, key)
		}
	}
}

func TestInfoShort(t *testing.T) {
	if got := (Info{Version: "1.2.0-rc1"}).Short(); got != "1.2.0-rc1" {
		t.Errorf("Short() = %q, want 1.2.0-rc1", got)
	}
}
