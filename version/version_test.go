package version

import (
	"strings"
	"testing"
)

func TestInfoShort(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.2.0", GitCommit: "abc1234"}, "1.2.0-abc1234"},
		{Info{Version: "1.2.0", GitCommit: "abc1234", Dirty: true}, "1.2.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		if got := tt.info.Short(); got != tt.want {
			t.Errorf("Short() = %q, want %q", got, tt.want)
		}
	}
}

func TestInfoIsRelease(t *testing.T) {
	tests := []struct {
		info Info
		want bool
	}{
		{Info{Version: "dev"}, false},
		{Info{Version: "1.0.0"}, true},
		{Info{Version: "1.0.0", Dirty: true}, false},
		{Info{Version: "1.0.0-dirty"}, false},
	}
	for _, tt := range tests {
		if got := tt.info.IsRelease(); got != tt.want {
			t.Errorf("%+v.IsRelease() = %v, want %v", tt.info, got, tt.want)
		}
	}
}

func TestInfoString(t *testing.T) {
	s := Info{Version: "1.0.0", BuildTime: "2026-01-15T10:30:00Z", GoVersion: "go1.26.0"}.String()
	if s != "1.0.0 (built 2026-01-15T10:30:00Z) go1.26.0" {
		t.Errorf("String() = %q", s)
	}
}

func TestGet(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()
	Version = "9.9.9"

	info := Get()
	if info.Version != "9.9.9" {
		t.Errorf("Version = %q", info.Version)
	}
	if len(info.GitCommit) > 7 {
		t.Errorf("GitCommit not shortened: %q", info.GitCommit)
	}
	if info.GoVersion != "" && !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
}
