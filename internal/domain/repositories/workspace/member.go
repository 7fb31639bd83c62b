package workspace

import (
	"context"

	"docspace/internal/domain/models/workspace"
)

// MemberRepository defines data access operations for folder members
type MemberRepository interface {
	// List returns members of a folder in join order
	List(ctx context.Context, folderID string) ([]workspace.Member, error)

	// Get returns one member; domain.ErrNotFound when absent
	Get(ctx context.Context, folderID, userID string) (*workspace.Member, error)

	// Create adds a member; domain.ErrConflict when the user is already a member
	Create(ctx context.Context, member *workspace.Member) error

	// UpdateRole changes a member's role
	UpdateRole(ctx context.Context, folderID, userID string, role workspace.Role) error

	// Delete removes a member
	Delete(ctx context.Context, folderID, userID string) error

	// GetPermission returns the folder's sharing mode (private when never set)
	GetPermission(ctx context.Context, folderID string) (workspace.Permission, error)

	// SetPermission stores the folder's sharing mode
	SetPermission(ctx context.Context, folderID string, permission workspace.Permission) error
}
