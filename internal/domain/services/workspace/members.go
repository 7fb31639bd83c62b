package workspace

import (
	"context"

	"docspace/internal/domain/models/workspace"
)

// MemberService manages who can see a folder
type MemberService interface {
	List(ctx context.Context, folderID string) ([]workspace.Member, error)
	Add(ctx context.Context, req *AddMemberRequest) (*workspace.Member, error)
	SetRole(ctx context.Context, folderID, userID string, role workspace.Role) (*workspace.Member, error)
	Remove(ctx context.Context, folderID, userID string) error
	Permission(ctx context.Context, folderID string) (workspace.Permission, error)
	SetPermission(ctx context.Context, folderID string, permission workspace.Permission) error
}

// AddMemberRequest adds a user to a folder
type AddMemberRequest struct {
	FolderID string         `json:"-"`
	UserID   string         `json:"user_id"`
	UserName string         `json:"user_name"`
	Avatar   *string        `json:"avatar,omitempty"`
	Role     workspace.Role `json:"role"`
}
