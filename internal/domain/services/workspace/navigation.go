package workspace

import (
	"context"

	"docspace/internal/domain/models/workspace"
)

// NavigationService holds each user's position in the tree
type NavigationService interface {
	View(ctx context.Context, userID string) (*NavigationView, error)
	Open(ctx context.Context, userID, folderID string) (*NavigationView, error)
	Up(ctx context.Context, userID string) (*NavigationView, error)
	Reset(ctx context.Context, userID string) (*NavigationView, error)
	Toggle(ctx context.Context, userID, folderID string) (*NavigationView, error)
	Expand(ctx context.Context, userID, folderID string) (*NavigationView, error)
	Collapse(ctx context.Context, userID, folderID string) (*NavigationView, error)
}

// NavigationView is what the client renders for the current location
type NavigationView struct {
	Folder      workspace.Crumb        `json:"folder"`
	Breadcrumb  []workspace.Crumb      `json:"breadcrumb"`
	Expanded    []string               `json:"expanded"`
	Rows        []workspace.VisibleRow `json:"rows"`
	FileCount   int                    `json:"file_count"`
	FolderCount int                    `json:"folder_count"`
	Version     int64                  `json:"version"`
}
