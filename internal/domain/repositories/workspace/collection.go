package workspace

import (
	"context"

	"docspace/internal/domain/models/workspace"
)

// MutateFn derives the next snapshot from the current one. It must not modify
// current; return current.Clone() with changes applied, or an error to leave
// the stored snapshot untouched.
type MutateFn func(current *workspace.Collection) (*workspace.Collection, error)

// CollectionRepository stores the folder collection of a workspace
type CollectionRepository interface {
	// Load returns the current snapshot. Callers must treat it as read-only.
	Load(ctx context.Context, workspaceID string) (*workspace.Collection, error)

	// Update applies fn and swaps the result in as one atomic replacement.
	// The stored version is incremented; the new snapshot is returned.
	Update(ctx context.Context, workspaceID string, fn MutateFn) (*workspace.Collection, error)

	// Replace overwrites the whole workspace (seeding, fixture reload)
	Replace(ctx context.Context, collection *workspace.Collection) error
}
