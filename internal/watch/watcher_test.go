package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"storebrowse/internal/errors"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan Change, path string, op fsnotify.Op) Change {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case change, ok := <-ch:
			require.True(t, ok, "change channel closed unexpectedly")
			if change.Path == path && change.Op.Has(op) {
				return change
			}
		case <-timeout:
			t.Fatalf("timeout waiting for %s on %s", op, path)
		}
	}
}

func TestWatcherReportsListingChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))
	require.NoError(t, w.Start())
	defer w.Stop()

	// Allow a brief moment for fsnotify to initialize watches
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "new.gpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	change := waitFor(t, w.Changes(), path, fsnotify.Create)
	assert.False(t, change.Timestamp.IsZero())

	require.NoError(t, os.Remove(path))
	waitFor(t, w.Changes(), path, fsnotify.Remove)
}

func TestWatcherFollowsNewDirectory(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Watch(first))
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, w.Watch(second))
	assert.Equal(t, second, w.Dir())
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(second, "moved-here")
	require.NoError(t, os.Mkdir(path, 0o755))
	waitFor(t, w.Changes(), path, fsnotify.Create)
}

func TestWatchRejectsNonDirectories(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.IsFileNotFound(err), "got %v", err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	err = w.Watch(file)
	assert.True(t, errors.IsInvalidPath(err), "got %v", err)
	assert.Equal(t, "", w.Dir())
}

func TestFailedWatchKeepsPreviousDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("Skipping test when running as root")
	}
	first := t.TempDir()
	locked := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Watch(first))
	require.NoError(t, w.Start())
	defer w.Stop()

	require.Error(t, w.Watch(locked))
	assert.Equal(t, first, w.Dir())
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(first, "still-watched")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	waitFor(t, w.Changes(), path, fsnotify.Create)
}

func TestWatcherStopClosesChannel(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Watch(t.TempDir()))
	require.NoError(t, w.Start())
	assert.Error(t, w.Start(), "second start must fail")

	w.Stop()
	w.Stop()

	select {
	case _, ok := <-w.Changes():
		assert.False(t, ok, "channel should be closed after stop")
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel to close")
	}
	assert.Error(t, w.Start(), "restart after stop must fail")
}
