package workspace

import (
	"context"

	"docspace/internal/domain/models/workspace"
)

// WorkspaceService handles the folder collection of a workspace
type WorkspaceService interface {
	// Tree returns the nested tree below the root folder
	Tree(ctx context.Context) (*workspace.TreeNode, error)

	// Folder returns one folder's contents and counts
	Folder(ctx context.Context, folderID string) (*workspace.FolderData, error)

	// Item returns an item and the ID of the folder containing it
	Item(ctx context.Context, itemID string) (*ItemDetail, error)

	// CreateItem appends a new file or folder to a folder
	CreateItem(ctx context.Context, req *CreateItemRequest) (*workspace.FileItem, error)

	// Move applies one validated drop: item lands before/after/inside target
	Move(ctx context.Context, req *MoveRequest) (*MoveResult, error)

	// Snapshot returns the current collection (read-only)
	Snapshot(ctx context.Context) (*workspace.Collection, error)
}

// CreateItemRequest represents the "add file / add folder" dialog submission
type CreateItemRequest struct {
	FolderID string             `json:"-"`
	Name     string             `json:"name"`
	Type     workspace.FileType `json:"type"`
	Size     *int64             `json:"size,omitempty"`
	Owner    workspace.User     `json:"-"`
}

// MoveRequest is the onDrop contract: item, target, position
type MoveRequest struct {
	ItemID   string                 `json:"-"`
	TargetID string                 `json:"target_id"`
	Position workspace.DropPosition `json:"position"`
}

// MoveResult reports an applied move
type MoveResult struct {
	Item          workspace.FileItem `json:"item"`
	SourceID      string             `json:"source_folder_id"`
	DestinationID string             `json:"destination_folder_id"`
	Index         int                `json:"index"`
	Touched       []string           `json:"touched_folder_ids"`
	Version       int64              `json:"version"`
}

// ItemDetail is an item plus its location
type ItemDetail struct {
	Item     workspace.FileItem `json:"item"`
	FolderID string             `json:"folder_id,omitempty"` // Empty for the root
	Path     []workspace.Crumb  `json:"path"`
}
