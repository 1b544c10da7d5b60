package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetVersionVars(t *testing.T) {
	t.Helper()
	origVersion, origBuild, origCommit := Version, Build, GitCommit
	t.Cleanup(func() {
		Version, Build, GitCommit = origVersion, origBuild, origCommit
	})
	Version, Build, GitCommit = "dev", "unknown", "unknown"
}

func TestApplyVersionFile(t *testing.T) {
	resetVersionVars(t)

	applyVersionFile(strings.NewReader(`# release metadata
version: 1.4.0
build: 2026-08-01
commit: ab12cd3

not-a-kv-line
unknown-key: ignored
`))

	assert.Equal(t, "1.4.0", Version)
	assert.Equal(t, "2026-08-01", Build)
	assert.Equal(t, "ab12cd3", GitCommit)
	assert.Equal(t, "1.4.0 (build: 2026-08-01, commit: ab12cd3)", GetFullVersion())
}

func TestApplyVersionFile_LdflagsTakePrecedence(t *testing.T) {
	resetVersionVars(t)
	Version = "2.0.0"
	GitCommit = "ffee001"

	applyVersionFile(strings.NewReader("version: 1.4.0\nbuild: 2026-08-01\ncommit: ab12cd3\n"))

	assert.Equal(t, "2.0.0", Version)
	assert.Equal(t, "2026-08-01", Build)
	assert.Equal(t, "ffee001", GitCommit)
}

func TestApplyVersionFile_EmptyValuesIgnored(t *testing.T) {
	resetVersionVars(t)

	applyVersionFile(strings.NewReader("version:\nbuild:   \n"))

	assert.Equal(t, "dev", Version)
	assert.Equal(t, "unknown", Build)
}
