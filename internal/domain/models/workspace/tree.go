package workspace

// TreeNode is one item in the nested workspace tree
type TreeNode struct {
	FileItem
	FileCount   int         `json:"file_count,omitempty"`
	FolderCount int         `json:"folder_count,omitempty"`
	Children    []*TreeNode `json:"children,omitempty"`
}

// VisibleRow is one rendered row of the navigation view. Depth is 0 for the
// current folder's own entries and grows by one per inline expansion.
type VisibleRow struct {
	Item        FileItem `json:"item"`
	Depth       int      `json:"depth"`
	Expanded    bool     `json:"expanded"`
	HasChildren bool     `json:"has_children"`
}

// Crumb is one breadcrumb segment
type Crumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
