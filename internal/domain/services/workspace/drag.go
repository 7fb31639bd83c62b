package workspace

import (
	"context"

	"docspace/internal/domain/models/workspace"
)

// DragService tracks drag gestures and turns completed drops into moves
type DragService interface {
	// Start begins a session for an item and returns the serialized payload
	Start(ctx context.Context, req *StartDragRequest) (*DragSession, error)

	// Hover reports the pointer over a target row
	Hover(ctx context.Context, req *HoverRequest) (*DragState, error)

	// Leave reports the pointer leaving the hovered row
	Leave(ctx context.Context, req *LeaveRequest) (*DragState, error)

	// Drop completes the gesture. Rejected drops are reported in DropResult,
	// not as errors; the session is reset either way.
	Drop(ctx context.Context, req *DropRequest) (*DropResult, error)

	// End abandons the gesture without touching the collection
	End(ctx context.Context, sessionID string) error

	// Classify exposes the drop-zone classifier
	Classify(row workspace.RowBox, pointerY float64, targetType workspace.FileType) workspace.DropPosition
}

// StartDragRequest starts dragging ItemID
type StartDragRequest struct {
	ItemID string         `json:"item_id"`
	User   workspace.User `json:"-"`
}

// DragSession is returned by Start
type DragSession struct {
	SessionID string    `json:"session_id"`
	Payload   string    `json:"payload"`
	State     DragState `json:"state"`
}

// DragState mirrors the tracker triple
type DragState struct {
	SessionID     string                 `json:"session_id"`
	DraggedItem   *workspace.FileItem    `json:"dragged_item"`
	HoverTargetID *string                `json:"hover_target_id"`
	HoverPosition workspace.DropPosition `json:"hover_position"`
	Changed       bool                   `json:"changed"`
}

// HoverRequest carries the row geometry and pointer position
type HoverRequest struct {
	SessionID string           `json:"-"`
	TargetID  string           `json:"target_id"`
	Row       workspace.RowBox `json:"row"`
	PointerY  float64          `json:"pointer_y"`
}

// LeaveRequest reports a dragleave; IntoDescendant is true when the pointer
// moved onto a child element of the same row
type LeaveRequest struct {
	SessionID      string `json:"-"`
	IntoDescendant bool   `json:"into_descendant"`
}

// DropRequest completes a gesture. Payload, when present, wins over the
// session's in-memory item. Row and PointerY, when present, reclassify.
type DropRequest struct {
	SessionID string            `json:"-"`
	TargetID  string            `json:"target_id"`
	Payload   *string           `json:"payload,omitempty"`
	Row       *workspace.RowBox `json:"row,omitempty"`
	PointerY  *float64          `json:"pointer_y,omitempty"`
}

// DropResult reports what a drop did
type DropResult struct {
	Applied  bool                   `json:"applied"`
	Reason   string                 `json:"reason,omitempty"`
	Message  string                 `json:"message,omitempty"`
	Position workspace.DropPosition `json:"position"`
	Move     *MoveResult            `json:"move,omitempty"`
}
