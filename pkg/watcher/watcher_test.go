package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsChangedFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "wall.yaml")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(script, []byte("steps: []\n"), 0o644))

	w, err := New(20*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(script))
	assert.Len(t, w.Files(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan []string, 1)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(changed []string) {
			got <- changed
			cancel()
		})
	}()

	// Give the watcher loop a moment before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(script, []byte("steps:\n  - undo: true\n"), 0o644))

	select {
	case changed := <-got:
		abs, _ := filepath.Abs(script)
		assert.Equal(t, []string{abs}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestAddMissingDirectory(t *testing.T) {
	w, err := New(0, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Add(filepath.Join(t.TempDir(), "missing", "model.stl")))
}

func TestAppendUnique(t *testing.T) {
	list := appendUnique(nil, "a")
	list = appendUnique(list, "b")
	list = appendUnique(list, "a")
	assert.Equal(t, []string{"a", "b"}, list)
}
