package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionString(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		buildDate string
		commit    string
		expected  string
	}{
		{name: "Development build", version: "DEV", expected: "runlog DEV, Go Version: go1.24.2"},
		{name: "Release build", version: "1.2.3", buildDate: "2024-03-09", commit: "abc1234", expected: "runlog 1.2.3 (2024-03-09), commit abc1234, Go Version: go1.24.2"},
		{name: "Date without commit", version: "1.2.3", buildDate: "2024-03-09", expected: "runlog 1.2.3 (2024-03-09), Go Version: go1.24.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, versionString(tt.version, tt.buildDate, tt.commit, "go1.24.2"))
		})
	}
}

func TestVersionInfo_UsesInjectedValues(t *testing.T) {
	origVersion, origDate, origCommit := Version, BuildDate, CommitHash
	t.Cleanup(func() {
		Version, BuildDate, CommitHash = origVersion, origDate, origCommit
	})

	Version, BuildDate, CommitHash = "1.2.3", "2024-03-09", "abc1234"
	assert.Equal(t, "runlog 1.2.3 (2024-03-09), commit abc1234, Go Version: "+runtime.Version(), VersionInfo())
}
