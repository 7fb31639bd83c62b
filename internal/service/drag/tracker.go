package drag

import (
	models "docspace/internal/domain/models/workspace"
	"docspace/internal/service/workspace"
)

// Tracker holds one drag gesture: the dragged item and the hovered drop
// target with its position. The zero value is an idle tracker.
type Tracker struct {
	classifier    workspace.Classifier
	dragged       *models.FileItem
	hoverTargetID string
	hoverPosition models.DropPosition
}

// NewTracker creates an idle tracker
func NewTracker(classifier workspace.Classifier) *Tracker {
	return &Tracker{classifier: classifier}
}

// Start begins dragging item and clears any stale hover
func (t *Tracker) Start(item models.FileItem) {
	t.dragged = &item
	t.hoverTargetID = ""
	t.hoverPosition = models.DropNone
}

// Hover reclassifies the pointer over target. Hovering the dragged item
// itself clears the hover. It reports whether the hover state changed.
func (t *Tracker) Hover(target models.FileItem, row models.RowBox, pointerY float64) bool {
	if t.dragged != nil && t.dragged.ID == target.ID {
		return t.clearHover()
	}

	position := t.classifier.Classify(row, pointerY, target.Type)
	if position == models.DropNone {
		return t.clearHover()
	}
	if t.hoverTargetID == target.ID && t.hoverPosition == position {
		return false
	}
	t.hoverTargetID = target.ID
	t.hoverPosition = position
	return true
}

// Leave clears the hover unless the pointer moved into a descendant element
// of the hovered row
func (t *Tracker) Leave(intoDescendant bool) bool {
	if intoDescendant {
		return false
	}
	return t.clearHover()
}

// PositionFor returns the hovered position when targetID is the hovered row
func (t *Tracker) PositionFor(targetID string) models.DropPosition {
	if t.hoverTargetID != "" && t.hoverTargetID == targetID {
		return t.hoverPosition
	}
	return models.DropNone
}

// Dragged returns the in-memory dragged item, if any
func (t *Tracker) Dragged() (models.FileItem, bool) {
	if t.dragged == nil {
		return models.FileItem{}, false
	}
	return *t.dragged, true
}

// Reset returns the tracker to the empty triple
func (t *Tracker) Reset() {
	t.dragged = nil
	t.hoverTargetID = ""
	t.hoverPosition = models.DropNone
}

// Active reports whether a drag is in progress
func (t *Tracker) Active() bool {
	return t.dragged != nil
}

// Snapshot copies the current triple
func (t *Tracker) Snapshot() (dragged *models.FileItem, hoverTargetID *string, position models.DropPosition) {
	if t.dragged != nil {
		item := *t.dragged
		dragged = &item
	}
	if t.hoverTargetID != "" {
		id := t.hoverTargetID
		hoverTargetID = &id
	}
	return dragged, hoverTargetID, t.hoverPosition
}

func (t *Tracker) clearHover() bool {
	if t.hoverTargetID == "" && t.hoverPosition == models.DropNone {
		return false
	}
	t.hoverTargetID = ""
	t.hoverPosition = models.DropNone
	return true
}
