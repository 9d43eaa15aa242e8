package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsPrefabChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "scripts"), 0o755))

	w, err := NewWatcher(root)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "frog_views.yaml"), []byte("name: x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "scripts", "wander.tengo"), []byte("x := 1\n"), 0o644))

	seen := map[Change]bool{}
	timeout := time.After(3 * time.Second)
	for len(seen) < 2 {
		select {
		case change := <-w.Events:
			seen[change] = true
		case <-timeout:
			t.Fatalf("timed out, saw %v", seen)
		}
	}

	assert.True(t, seen[Change{Name: "frog_views.yaml", Kind: ChangeManifest}])
	assert.True(t, seen[Change{Name: "scripts/wander.tengo", Kind: ChangeScript}])
	assert.NoError(t, w.Close())
}
