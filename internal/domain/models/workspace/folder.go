package workspace

// FolderData is one folder's ordered contents plus derived counters.
// Keyed by the folder item's ID; Name is display only.
type FolderData struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Files       []FileItem `json:"files"`
	FileCount   int        `json:"file_count"`
	FolderCount int        `json:"folder_count"`
}

// Recount recomputes FileCount and FolderCount from Files
func (f *FolderData) Recount() {
	f.FileCount, f.FolderCount = 0, 0
	for _, item := range f.Files {
		if item.IsFolder() {
			f.FolderCount++
		} else {
			f.FileCount++
		}
	}
}

// IndexOf returns the position of itemID in Files, or -1
func (f *FolderData) IndexOf(itemID string) int {
	for i, item := range f.Files {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (f *FolderData) clone() *FolderData {
	files := make([]FileItem, len(f.Files))
	copy(files, f.Files)
	return &FolderData{
		ID:          f.ID,
		Name:        f.Name,
		Files:       files,
		FileCount:   f.FileCount,
		FolderCount: f.FolderCount,
	}
}
