// Package memory keeps workspace state in process. It is the default store
// and the one tests run against.
package memory

import (
	"context"
	"fmt"
	"sync"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
	wsRepo "docspace/internal/domain/repositories/workspace"
)

// CollectionRepository holds one published snapshot per workspace
type CollectionRepository struct {
	mu        sync.Mutex
	snapshots map[string]*models.Collection
}

// NewCollectionRepository creates an empty in-memory collection store
func NewCollectionRepository() *CollectionRepository {
	return &CollectionRepository{snapshots: make(map[string]*models.Collection)}
}

var _ wsRepo.CollectionRepository = (*CollectionRepository)(nil)

// Load returns the current snapshot
func (r *CollectionRepository) Load(ctx context.Context, workspaceID string) (*models.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.snapshots[workspaceID]
	if !ok {
		return nil, fmt.Errorf("workspace %s: %w", workspaceID, domain.ErrNotFound)
	}
	return current, nil
}

// Update runs fn under the store lock and publishes its result
func (r *CollectionRepository) Update(ctx context.Context, workspaceID string, fn wsRepo.MutateFn) (*models.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.snapshots[workspaceID]
	if !ok {
		return nil, fmt.Errorf("workspace %s: %w", workspaceID, domain.ErrNotFound)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if next == current {
		return nil, fmt.Errorf("mutation returned the published snapshot")
	}
	next.Version = current.Version + 1
	r.snapshots[workspaceID] = next
	return next, nil
}

// Replace publishes a whole collection. The version continues from the
// previous snapshot so subscribers never see it go backwards.
func (r *CollectionRepository) Replace(ctx context.Context, collection *models.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.snapshots[collection.WorkspaceID]; ok && collection.Version <= prev.Version {
		collection.Version = prev.Version + 1
	}
	r.snapshots[collection.WorkspaceID] = collection
	return nil
}
