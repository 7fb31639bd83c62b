package workspace

import (
	"context"

	"docspace/internal/domain/models/workspace"
	"docspace/internal/httputil"
)

// UIStateService holds the per-user client flags
type UIStateService interface {
	Get(ctx context.Context, userID string) (*workspace.UIState, error)
	Patch(ctx context.Context, userID string, req *PatchUIRequest) (*workspace.UIState, error)
	SetSelection(ctx context.Context, userID string, ids []string) (*workspace.UIState, error)
	ToggleSelection(ctx context.Context, userID, itemID string) (*workspace.UIState, error)
	ClearSelection(ctx context.Context, userID string) (*workspace.UIState, error)
}

// PatchUIRequest has JSON merge-patch semantics: absent fields are left as is
type PatchUIRequest struct {
	ActiveModal      httputil.Optional[workspace.ModalType] `json:"active_modal"`
	PinnedMode       *bool                                  `json:"pinned_mode,omitempty"`
	TreeVisible      *bool                                  `json:"tree_visible,omitempty"`
	SidebarCollapsed *bool                                  `json:"sidebar_collapsed,omitempty"`
}
