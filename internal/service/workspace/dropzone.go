package workspace

import (
	models "docspace/internal/domain/models/workspace"
)

// DefaultEdgeThreshold is the height in pixels of the before/after bands at
// the top and bottom of a row
const DefaultEdgeThreshold = 8.0

// Classifier decides where a drop lands from the pointer's vertical position
// within a target row
type Classifier struct {
	EdgeThreshold float64
}

// NewClassifier creates a classifier; a non-positive threshold falls back to
// DefaultEdgeThreshold
func NewClassifier(edgeThreshold float64) Classifier {
	if edgeThreshold <= 0 {
		edgeThreshold = DefaultEdgeThreshold
	}
	return Classifier{EdgeThreshold: edgeThreshold}
}

// Classify maps a pointer position to a drop position.
//
// Edge bands are checked before "inside" so folders stay reorderable among
// their siblings. In the middle band folders accept "inside"; other rows split
// at the midpoint, with the exact midpoint resolving to "after".
func (c Classifier) Classify(row models.RowBox, pointerY float64, targetType models.FileType) models.DropPosition {
	if row.Height <= 0 {
		return models.DropNone
	}
	relativeY := pointerY - row.Top
	if relativeY < 0 || relativeY > row.Height {
		return models.DropNone
	}

	if relativeY < c.EdgeThreshold {
		return models.DropBefore
	}
	if relativeY > row.Height-c.EdgeThreshold {
		return models.DropAfter
	}
	if targetType == models.FileTypeFolder {
		return models.DropInside
	}
	if relativeY < row.Height/2 {
		return models.DropBefore
	}
	return models.DropAfter
}
