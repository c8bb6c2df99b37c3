package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "order.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(location, []byte("id: order"), 0o644))

	watcher, err := New(location)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(other, []byte("id: other"), 0o644))
	select {
	case changed := <-watcher.Changes:
		t.Fatalf("unexpected change: %v", changed)
	case <-time.After(3 * Debounce):
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(location, []byte("id: order\nname: v2"), 0o644))
	}
	select {
	case changed := <-watcher.Changes:
		assert.Equal(t, watcher.File, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("change not reported")
	}
	select {
	case changed := <-watcher.Changes:
		t.Fatalf("writes were not coalesced: %v", changed)
	case <-time.After(3 * Debounce):
	}
}

func TestWatcher_StopClosesChanges(t *testing.T) {
	location := filepath.Join(t.TempDir(), "order.yaml")
	require.NoError(t, os.WriteFile(location, []byte("id: order"), 0o644))
	watcher, err := New(location)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	watcher.Stop()
	watcher.Stop()
	_, ok := <-watcher.Changes
	assert.False(t, ok)
}
