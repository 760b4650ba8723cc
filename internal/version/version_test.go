package version

import "testing"

func TestString(t *testing.T) {
	origVersion, origCommit, origBuild := Version, Commit, BuildTime
	t.Cleanup(func() {
		Version, Commit, BuildTime = origVersion, origCommit, origBuild
	})

	Version, Commit, BuildTime = "1.2.3", "abc1234", "2025-01-01T00:00:00Z"

	if got, want := String(), "1.2.3 (abc1234) built 2025-01-01T00:00:00Z"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := UserAgent(), "software-oracle/1.2.3 (abc1234)"; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}

func TestDefaults(t *testing.T) {
	if Version == "" || Commit == "" || BuildTime == "" {
		t.Error("build variables should never be empty")
	}
}
