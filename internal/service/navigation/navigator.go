// Package navigation keeps each user's position in the workspace tree.
//
// One state machine covers both the breadcrumb and the inline expansion
// views: the breadcrumb is derived from the current folder's ancestry, so a
// folder opened from an expanded row lands on the same path as one reached
// by clicking through.
package navigation

import (
	"fmt"
	"sort"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
	wsSvc "docspace/internal/domain/services/workspace"
	"docspace/internal/service/workspace"
)

// Navigator is one user's navigation state
type Navigator struct {
	currentID string // Empty means the root
	expanded  map[string]bool
}

// NewNavigator starts at the root with nothing expanded
func NewNavigator() *Navigator {
	return &Navigator{expanded: make(map[string]bool)}
}

// Open makes folderID the current folder
func (n *Navigator) Open(c *models.Collection, folderID string) error {
	if err := requireFolder(c, folderID); err != nil {
		return err
	}
	n.currentID = folderID
	return nil
}

// Up moves to the parent folder; at the root it does nothing
func (n *Navigator) Up(c *models.Collection) {
	current := n.current(c)
	if parent, ok := c.ContainingFolder(current); ok {
		n.currentID = parent
	}
}

// Reset returns to the root
func (n *Navigator) Reset() {
	n.currentID = ""
}

// Toggle flips the inline expansion of folderID. Expansion is independent
// per folder.
func (n *Navigator) Toggle(c *models.Collection, folderID string) error {
	return n.SetExpanded(c, folderID, !n.expanded[folderID])
}

// SetExpanded expands or collapses folderID; repeating either is harmless
func (n *Navigator) SetExpanded(c *models.Collection, folderID string, expanded bool) error {
	if err := requireFolder(c, folderID); err != nil {
		return err
	}
	if expanded {
		n.expanded[folderID] = true
	} else {
		delete(n.expanded, folderID)
	}
	return nil
}

// View renders the state against a snapshot. Ids that no longer resolve are
// dropped: a vanished current folder falls back to the root.
func (n *Navigator) View(c *models.Collection) *wsSvc.NavigationView {
	current := n.current(c)
	chain, ok := c.Ancestry(current)
	if !ok {
		n.currentID = ""
		current = c.Root.ID
		chain = []string{current}
	}

	for id := range n.expanded {
		if item, ok := c.Item(id); !ok || !item.IsFolder() {
			delete(n.expanded, id)
		}
	}

	breadcrumb := workspace.Breadcrumb(c, chain)
	view := &wsSvc.NavigationView{
		Folder:     breadcrumb[len(breadcrumb)-1],
		Breadcrumb: breadcrumb,
		Expanded:   n.expandedIDs(),
		Rows:       []models.VisibleRow{},
		Version:    c.Version,
	}
	if folder, ok := c.Folders[current]; ok {
		view.FileCount = folder.FileCount
		view.FolderCount = folder.FolderCount
		visited := map[string]bool{current: true}
		view.Rows = n.appendRows(view.Rows, c, folder, 0, visited)
	}
	return view
}

func (n *Navigator) appendRows(rows []models.VisibleRow, c *models.Collection, folder *models.FolderData, depth int, visited map[string]bool) []models.VisibleRow {
	for _, item := range folder.Files {
		row := models.VisibleRow{Item: item, Depth: depth}
		var children *models.FolderData
		if item.IsFolder() {
			children = c.Folders[item.ID]
			row.HasChildren = children != nil && len(children.Files) > 0
			row.Expanded = n.expanded[item.ID]
		}
		rows = append(rows, row)

		// An expanded folder without a contents entry renders nothing
		if row.Expanded && children != nil && !visited[item.ID] {
			visited[item.ID] = true
			rows = n.appendRows(rows, c, children, depth+1, visited)
		}
	}
	return rows
}

func (n *Navigator) current(c *models.Collection) string {
	if n.currentID == "" {
		return c.Root.ID
	}
	return n.currentID
}

func (n *Navigator) expandedIDs() []string {
	ids := make([]string, 0, len(n.expanded))
	for id := range n.expanded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func requireFolder(c *models.Collection, folderID string) error {
	item, ok := c.Item(folderID)
	if !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folderID)}
	}
	if !item.IsFolder() {
		return fmt.Errorf("%w: %q is not a folder", domain.ErrValidation, item.Name)
	}
	return nil
}
