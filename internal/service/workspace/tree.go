package workspace

import (
	models "docspace/internal/domain/models/workspace"
)

// BuildTree nests every folder's contents below its folder item, starting at
// the root. Folders reached twice are not expanded again.
func BuildTree(c *models.Collection) *models.TreeNode {
	visited := make(map[string]bool)
	return buildNode(c, c.Root, visited)
}

func buildNode(c *models.Collection, item models.FileItem, visited map[string]bool) *models.TreeNode {
	node := &models.TreeNode{FileItem: item}
	if !item.IsFolder() || visited[item.ID] {
		return node
	}
	visited[item.ID] = true

	folder, ok := c.Folders[item.ID]
	if !ok {
		return node
	}
	node.FileCount = folder.FileCount
	node.FolderCount = folder.FolderCount
	node.Children = make([]*models.TreeNode, 0, len(folder.Files))
	for _, child := range folder.Files {
		node.Children = append(node.Children, buildNode(c, child, visited))
	}
	return node
}

// Breadcrumb turns an ancestry chain into display crumbs
func Breadcrumb(c *models.Collection, chain []string) []models.Crumb {
	crumbs := make([]models.Crumb, 0, len(chain))
	for _, id := range chain {
		name := id
		if item, ok := c.Item(id); ok {
			name = item.Name
		}
		crumbs = append(crumbs, models.Crumb{ID: id, Name: name})
	}
	return crumbs
}
