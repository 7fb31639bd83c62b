package seed

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	wsRepo "docspace/internal/domain/repositories/workspace"
	"docspace/internal/service/events"

	"github.com/fsnotify/fsnotify"
)

// Reloader re-applies a fixture and tells subscribers to refetch everything
type Reloader struct {
	collections wsRepo.CollectionRepository
	members     wsRepo.MemberRepository
	broker      *events.Broker
	logger      *slog.Logger
}

// NewReloader creates a reloader over the given repositories
func NewReloader(
	collections wsRepo.CollectionRepository,
	members wsRepo.MemberRepository,
	broker *events.Broker,
	logger *slog.Logger,
) *Reloader {
	return &Reloader{
		collections: collections,
		members:     members,
		broker:      broker,
		logger:      logger,
	}
}

// Reload applies f and publishes a collection.reset event
func (r *Reloader) Reload(ctx context.Context, f *Fixture) error {
	c, err := Apply(ctx, f, r.collections, r.members)
	if err != nil {
		return err
	}
	r.broker.Publish(events.Event{
		Type: events.TypeCollectionReset,
		Data: events.CollectionUpdated{
			WorkspaceID: c.WorkspaceID,
			Version:     c.Version,
			Touched:     []string{},
		},
	})
	r.logger.Info("fixture reloaded",
		"workspace_id", c.WorkspaceID,
		"version", c.Version,
		"items", c.ItemCount(),
	)
	return nil
}

// Watch reloads the fixture at path after it changes, once writes have been
// quiet for debounce. The parent directory is watched so editors that
// replace the file by rename are still seen. Blocks until ctx is done.
func (r *Reloader) Watch(ctx context.Context, path string, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve fixture path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	r.logger.Info("watching fixture", "path", target)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("fixture watcher error", "error", err)

		case <-timer.C:
			f, err := LoadFile(target)
			if err != nil {
				r.logger.Warn("fixture reload skipped", "path", target, "error", err)
				continue
			}
			if err := r.Reload(ctx, f); err != nil {
				r.logger.Warn("fixture reload failed", "path", target, "error", err)
			}
		}
	}
}
