package version

import (
	"runtime/debug"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.24.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name      string
		in        Info
		wantBuild string
	}{
		{"vcs time fills build time", Info{Version: "1.2.0"}, "2026-01-02T03:04:05Z"},
		{"ldflags build time wins", Info{Version: "1.2.0", BuildTime: "2026-05-05T00:00:00Z"}, "2026-05-05T00:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fromBuildInfo(tt.in, bi)
			if got.GitCommit != "0123456" {
				t.Errorf("commit = %q", got.GitCommit)
			}
			if !got.Dirty || got.GoVersion != "go1.24.0" {
				t.Errorf("unexpected info %+v", got)
			}
			if got.BuildTime != tt.wantBuild {
				t.Errorf("build time = %q, want %q", got.BuildTime, tt.wantBuild)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info        Info
		want        string
		wantRelease bool
	}{
		{Info{Version: "dev"}, "dev", false},
		{Info{Version: "1.2.0", GitCommit: "abc1234"}, "1.2.0-abc1234", true},
		{Info{Version: "1.2.0", GitCommit: "abc1234", Dirty: true}, "1.2.0-abc1234-dirty", false},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if got := tt.info.IsRelease(); got != tt.wantRelease {
			t.Errorf("%q IsRelease() = %v, want %v", tt.want, got, tt.wantRelease)
		}
	}
}

func TestGetUsesLinkedVersion(t *testing.T) {
	orig := Version
	Version = "9.9.9"
	defer func() { Version = orig }()

	if got := Get().Version; got != "9.9.9" {
		t.Errorf("Version = %q", got)
	}
}
