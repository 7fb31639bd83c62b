package seed

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"docspace/internal/repository/memory"
	"docspace/internal/service/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReloader(t *testing.T) (*Reloader, *memory.CollectionRepository, *events.Broker) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	collections := memory.NewCollectionRepository()
	broker := events.NewBroker(16, logger)
	return NewReloader(collections, memory.NewMemberRepository(), broker, logger), collections, broker
}

func TestReloadPublishesReset(t *testing.T) {
	r, collections, broker := newReloader(t)
	sub := broker.Subscribe()
	defer sub.Close()

	f, err := Default()
	require.NoError(t, err)
	require.NoError(t, r.Reload(context.Background(), f))

	e := <-sub.C
	assert.Equal(t, events.TypeCollectionReset, e.Type)
	data, ok := e.Data.(events.CollectionUpdated)
	require.True(t, ok)
	assert.Equal(t, "default", data.WorkspaceID)

	_, err = collections.Load(context.Background(), "default")
	assert.NoError(t, err)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	r, collections, broker := newReloader(t)
	sub := broker.Subscribe()
	defer sub.Close()

	path := filepath.Join(t.TempDir(), "workspace.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workspace: w\nroot: {id: r, name: home}"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Watch(ctx, path, 20*time.Millisecond) }()

	// Keep writing until the watcher is registered and picks a change up
	updated := []byte("workspace: w\nroot: {id: r, name: home}\nfolders:\n  r:\n    - {id: a, name: notes, type: markdown}")
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

wait:
	for {
		select {
		case e := <-sub.C:
			assert.Equal(t, events.TypeCollectionReset, e.Type)
			break wait
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, updated, 0o600))
		case <-deadline:
			t.Fatal("fixture change was not picked up")
		}
	}

	c, err := collections.Load(context.Background(), "w")
	require.NoError(t, err)
	item, ok := c.Item("a")
	require.True(t, ok)
	assert.Equal(t, "notes", item.Name)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	r, _, _ := newReloader(t)
	err := r.Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "ws.yaml"), 0)
	assert.Error(t, err)
}
