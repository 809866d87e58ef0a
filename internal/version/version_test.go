package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString_UsesLdflagValues(t *testing.T) {
	oldV, oldC, oldT := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldV, oldC, oldT })

	Version, GitCommit, BuildTime = "v1.2.3", "abcdef1", "2026-01-02"
	require.Equal(t, "nmcr v1.2.3 (commit abcdef1, built 2026-01-02)", String())
}

func TestString_Defaults(t *testing.T) {
	require.Contains(t, String(), "nmcr ")
	require.NotEmpty(t, BuildTime)
}
