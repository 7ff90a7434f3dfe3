package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	w := &Watcher{target: "tagtime.db"}

	assert.True(t, w.relevant(fsnotify.Event{Name: "/x/tagtime.db", Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/x/tagtime.db-journal", Op: fsnotify.Remove}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/x/tagtime.db", Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/x/other.db", Op: fsnotify.Write}))
}

func TestWatcherNotifiesOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagtime.db")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	changed := make(chan struct{}, 10)
	w, err := New(path, 20*time.Millisecond, func() { changed <- struct{}{} }, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("b"), 0644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagtime.db")
	w, err := New(path, DefaultDebounce, func() {}, nil)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
