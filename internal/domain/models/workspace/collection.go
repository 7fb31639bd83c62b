package workspace

import (
	"fmt"
	"sort"
)

// Collection is the folder-keyed content store of one workspace.
//
// Folders is authoritative. parentOf is a back-reference index
// (item ID -> containing folder ID) kept in sync by every mutation so the
// containing folder of an item is found without scanning.
//
// A Collection is treated as immutable once published; mutations go through
// Clone and Touch so that readers holding the previous snapshot never see a
// half-applied move.
type Collection struct {
	WorkspaceID string
	Root        FileItem
	Version     int64
	Folders     map[string]*FolderData

	parentOf map[string]string
	touched  map[string]bool
}

// NewCollection builds a collection from a root folder item and its folder
// contents. Missing entries for folder items are created empty.
func NewCollection(workspaceID string, root FileItem, folders map[string]*FolderData) (*Collection, error) {
	if !root.IsFolder() {
		return nil, fmt.Errorf("root %q is not a folder", root.ID)
	}
	if folders == nil {
		folders = make(map[string]*FolderData)
	}
	c := &Collection{
		WorkspaceID: workspaceID,
		Root:        root,
		Folders:     folders,
	}
	if _, ok := c.Folders[root.ID]; !ok {
		c.Folders[root.ID] = &FolderData{ID: root.ID, Name: root.Name, Files: []FileItem{}}
	}
	if err := c.Reindex(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reindex rebuilds the back-reference index, ensures every folder item has an
// entry, and recomputes all counters. It fails when an item appears in two
// lists.
func (c *Collection) Reindex() error {
	c.parentOf = make(map[string]string)
	// Deterministic order so duplicate detection reports the same pair each time
	ids := make([]string, 0, len(c.Folders))
	for id := range c.Folders {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, folderID := range ids {
		folder := c.Folders[folderID]
		for _, item := range folder.Files {
			if prev, dup := c.parentOf[item.ID]; dup {
				return fmt.Errorf("item %q listed in both %q and %q", item.ID, prev, folderID)
			}
			c.parentOf[item.ID] = folderID
		}
	}
	for _, folderID := range ids {
		for _, item := range c.Folders[folderID].Files {
			if item.IsFolder() {
				if _, ok := c.Folders[item.ID]; !ok {
					c.Folders[item.ID] = &FolderData{ID: item.ID, Name: item.Name, Files: []FileItem{}}
				}
			}
		}
	}
	for _, folder := range c.Folders {
		folder.Recount()
	}
	return nil
}

// Clone returns a shallow copy sharing folder lists with c. Lists are copied
// lazily by Touch before they are modified.
func (c *Collection) Clone() *Collection {
	folders := make(map[string]*FolderData, len(c.Folders))
	for id, f := range c.Folders {
		folders[id] = f
	}
	parentOf := make(map[string]string, len(c.parentOf))
	for id, p := range c.parentOf {
		parentOf[id] = p
	}
	return &Collection{
		WorkspaceID: c.WorkspaceID,
		Root:        c.Root,
		Version:     c.Version,
		Folders:     folders,
		parentOf:    parentOf,
		touched:     make(map[string]bool),
	}
}

// Touch returns a private, writable copy of the folder's contents for this
// clone, creating an empty entry when none exists.
func (c *Collection) Touch(folderID, name string) *FolderData {
	if c.touched == nil {
		c.touched = make(map[string]bool)
	}
	if c.touched[folderID] {
		return c.Folders[folderID]
	}
	var folder *FolderData
	if existing, ok := c.Folders[folderID]; ok {
		folder = existing.clone()
	} else {
		folder = &FolderData{ID: folderID, Name: name, Files: []FileItem{}}
	}
	c.Folders[folderID] = folder
	c.touched[folderID] = true
	return folder
}

// Touched returns the IDs of folders modified since Clone, sorted
func (c *Collection) Touched() []string {
	ids := make([]string, 0, len(c.touched))
	for id := range c.touched {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ContainingFolder returns the ID of the folder whose list holds itemID
func (c *Collection) ContainingFolder(itemID string) (string, bool) {
	folderID, ok := c.parentOf[itemID]
	return folderID, ok
}

// SetContainingFolder records a move in the back-reference index
func (c *Collection) SetContainingFolder(itemID, folderID string) {
	c.parentOf[itemID] = folderID
}

// Item looks up an item by ID. The root folder is returned as well.
func (c *Collection) Item(itemID string) (FileItem, bool) {
	if itemID == c.Root.ID {
		return c.Root, true
	}
	folderID, ok := c.parentOf[itemID]
	if !ok {
		return FileItem{}, false
	}
	folder := c.Folders[folderID]
	if idx := folder.IndexOf(itemID); idx >= 0 {
		return folder.Files[idx], true
	}
	return FileItem{}, false
}

// Ancestry returns the chain of folder IDs from the root down to folderID
// (inclusive). ok is false when folderID is not reachable from the root.
func (c *Collection) Ancestry(folderID string) ([]string, bool) {
	var chain []string
	current := folderID
	for steps := 0; steps <= len(c.parentOf)+1; steps++ {
		chain = append(chain, current)
		if current == c.Root.ID {
			for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
				chain[i], chain[j] = chain[j], chain[i]
			}
			return chain, true
		}
		parent, ok := c.parentOf[current]
		if !ok {
			return nil, false
		}
		current = parent
	}
	return nil, false
}

// IsWithin reports whether folderID is ancestorID itself or lies in its subtree
func (c *Collection) IsWithin(folderID, ancestorID string) bool {
	current := folderID
	for steps := 0; steps <= len(c.parentOf)+1; steps++ {
		if current == ancestorID {
			return true
		}
		parent, ok := c.parentOf[current]
		if !ok {
			return false
		}
		current = parent
	}
	return false
}

// ItemCount returns the number of items below the root
func (c *Collection) ItemCount() int {
	return len(c.parentOf)
}
