package remover

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkspaceOutputPath(t *testing.T) {
	ws := &Workspace{Dir: t.TempDir()}

	a, err := ws.OutputPath("processed", "png")
	require.NoError(t, err)
	b, err := ws.OutputPath("processed", ".png")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.Equal(t, ws.Dir, filepath.Dir(a))
	require.True(t, strings.HasPrefix(filepath.Base(a), "processed_"))
	require.Equal(t, ".png", filepath.Ext(a))
	require.Equal(t, ".png", filepath.Ext(b))
}

func TestWorkspaceCleanup(t *testing.T) {
	ws := &Workspace{Dir: t.TempDir()}
	path, err := ws.OutputPath("processed", "png")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, ws.Cleanup())

	entries, err := os.ReadDir(ws.Dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestWorkspaceCleanupMissingDir(t *testing.T) {
	ws := &Workspace{Dir: filepath.Join(t.TempDir(), "never-created")}
	require.NoError(t, ws.Cleanup())
}
