package config

import "testing"

func TestVersionDefaults(t *testing.T) {
	if GetVersion() != "dev" {
		t.Errorf("expected default version dev, got %s", GetVersion())
	}
	if GetBuild() != "unknown" {
		t.Errorf("expected default build unknown, got %s", GetBuild())
	}
	if GetGitCommit() != "unknown" {
		t.Errorf("expected default commit unknown, got %s", GetGitCommit())
	}
}

func TestGetFullVersion(t *testing.T) {
	want := "dev (build: unknown, commit: unknown)"
	if got := GetFullVersion(); got != want {
		t.Errorf("expected full version %q, got %q", want, got)
	}
}
