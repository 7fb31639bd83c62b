package workspace

import (
	"fmt"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
)

// Placement describes where Move put the item
type Placement struct {
	Item          models.FileItem
	SourceID      string
	DestinationID string
	Index         int
}

// Move applies (item, target, position) to a clone of current and returns
// the clone. current is never modified, so a rejected or failed move leaves
// the published snapshot exactly as it was.
//
// Preconditions, checked in order:
//  1. position is set and the target exists
//  2. item != target
//  3. "inside" requires a folder target
//  4. the destination list is not the item's own subtree
func Move(current *models.Collection, itemID, targetID string, position models.DropPosition) (*models.Collection, *Placement, error) {
	if position == models.DropNone {
		return nil, nil, domain.Reject(domain.ReasonNoPosition, "drop has no position")
	}
	if targetID == "" {
		return nil, nil, domain.Reject(domain.ReasonNoTarget, "drop has no target")
	}
	if itemID == targetID {
		return nil, nil, domain.Reject(domain.ReasonSelfDrop, "cannot drop an item onto itself")
	}

	target, ok := current.Item(targetID)
	if !ok {
		return nil, nil, domain.Reject(domain.ReasonTargetNotFound, fmt.Sprintf("target %s not found", targetID))
	}
	if position == models.DropInside && !target.IsFolder() {
		return nil, nil, domain.Reject(domain.ReasonTargetNotFolder,
			fmt.Sprintf("%q is not a folder", target.Name))
	}

	sourceID, ok := current.ContainingFolder(itemID)
	if !ok {
		return nil, nil, domain.Reject(domain.ReasonSourceNotFound, fmt.Sprintf("item %s not found", itemID))
	}

	// Resolve the destination list before touching anything
	var destID string
	if position == models.DropInside {
		destID = target.ID
	} else {
		destID, ok = current.ContainingFolder(target.ID)
		if !ok {
			return nil, nil, domain.Reject(domain.ReasonTargetNotFound,
				fmt.Sprintf("target %s is not in any folder", targetID))
		}
	}
	if current.IsWithin(destID, itemID) {
		return nil, nil, domain.Reject(domain.ReasonCycle, "cannot move a folder into itself or its descendants")
	}

	next := current.Clone()

	source := next.Touch(sourceID, "")
	dragIndex := source.IndexOf(itemID)
	if dragIndex < 0 {
		return nil, nil, domain.Reject(domain.ReasonSourceNotFound, fmt.Sprintf("item %s not found", itemID))
	}
	item := source.Files[dragIndex]
	source.Files = append(source.Files[:dragIndex], source.Files[dragIndex+1:]...)

	dest := next.Touch(destID, target.Name)
	var insertAt int
	if position == models.DropInside {
		insertAt = len(dest.Files)
	} else {
		// Evaluated after removal: matters when source and destination are the
		// same list and the item came before the target
		targetIndex := dest.IndexOf(target.ID)
		if targetIndex < 0 {
			return nil, nil, domain.Reject(domain.ReasonTargetNotFound, fmt.Sprintf("target %s not found", targetID))
		}
		insertAt = targetIndex
		if position == models.DropAfter {
			insertAt++
		}
	}
	dest.Files = append(dest.Files, models.FileItem{})
	copy(dest.Files[insertAt+1:], dest.Files[insertAt:])
	dest.Files[insertAt] = item

	next.SetContainingFolder(item.ID, destID)
	source.Recount()
	dest.Recount()

	return next, &Placement{
		Item:          item,
		SourceID:      sourceID,
		DestinationID: destID,
		Index:         insertAt,
	}, nil
}

// Insert appends a new item to the end of a folder in a clone of current.
// Folder items get an empty content entry.
func Insert(current *models.Collection, folderID string, item models.FileItem) (*models.Collection, error) {
	if _, ok := current.Folders[folderID]; !ok {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}
	if _, exists := current.Item(item.ID); exists {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("item %s already exists", item.ID),
			ResourceType: "item",
			ResourceID:   item.ID,
		}
	}

	next := current.Clone()
	folder := next.Touch(folderID, "")
	folder.Files = append(folder.Files, item)
	folder.Recount()
	next.SetContainingFolder(item.ID, folderID)

	if item.IsFolder() {
		next.Touch(item.ID, item.Name)
	}
	return next, nil
}
