package app

import "testing"

func TestBuildVersion_ShortensCommit(t *testing.T) {
	oldVersion, oldCommit, oldBuilt := Version, Commit, BuildTime
	t.Cleanup(func() { Version, Commit, BuildTime = oldVersion, oldCommit, oldBuilt })

	Version, Commit, BuildTime = "1.4.0", "0123456789abcdef", "2024-05-01T10:00:00Z"

	want := "1.4.0 (commit: 0123456, built: 2024-05-01T10:00:00Z)"
	if got := BuildVersion(); got != want {
		t.Errorf("BuildVersion() = %q, want %q", got, want)
	}
}

func TestBuildVersion_Defaults(t *testing.T) {
	if got := BuildVersion(); got != "dev (commit: unknown, built: unknown)" {
		t.Errorf("BuildVersion() = %q", got)
	}
}
