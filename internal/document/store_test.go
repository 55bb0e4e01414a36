package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/rebase-edit/internal/edit"
)

func newTestStore(t *testing.T, content string) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "git-rebase-todo")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	store, err := NewStore(path)
	require.NoError(t, err)
	return store, path
}

func TestApplyNotifies(t *testing.T) {
	store, _ := newTestStore(t, "pick abc123 first\n")
	store.Apply([]edit.TextEdit{{Range: edit.Range{Start: 0, End: 4}, NewText: "drop"}})
	assert.Equal(t, "drop abc123 first\n", store.Text())
	select {
	case <-store.Changes():
	default:
		t.Fatal("expected a change notification")
	}
}

func TestApplyEmptyBatchIsSilent(t *testing.T) {
	store, _ := newTestStore(t, "pick abc123 first\n")
	store.Apply(nil)
	select {
	case <-store.Changes():
		t.Fatal("unexpected change notification")
	default:
	}
}

func TestApplyBatchUsesSnapshotOffsets(t *testing.T) {
	// A move: delete line two and reinsert it before line one. Both ranges
	// address the pre-edit text.
	store, _ := newTestStore(t, "pick abc123 first\npick def456 second\n")
	store.Apply([]edit.TextEdit{
		{Range: edit.Range{Start: 18, End: 37}},
		{Range: edit.Range{Start: 0, End: 0}, NewText: "pick def456 second\n"},
	})
	assert.Equal(t, "pick def456 second\npick abc123 first\n", store.Text())
}

func TestSaveAndReload(t *testing.T) {
	store, path := newTestStore(t, "pick abc123 first\n")
	store.Apply([]edit.TextEdit{{Range: edit.Range{Start: 0, End: 18}}})
	require.NoError(t, store.Save())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, string(content))

	// Reloading what we just wrote must not announce a change.
	<-store.Changes()
	store.Reload()
	select {
	case <-store.Changes():
		t.Fatal("reload of identical content must be silent")
	default:
	}
}

func TestWatchPicksUpExternalEdits(t *testing.T) {
	store, path := newTestStore(t, "pick abc123 first\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, store.Watch(ctx))

	require.NoError(t, os.WriteFile(path, []byte("drop abc123 first\n"), 0o644))

	select {
	case <-store.Changes():
		assert.Equal(t, "drop abc123 first\n", store.Text())
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the watcher")
	}
}
