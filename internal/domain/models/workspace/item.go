package workspace

import "fmt"

// FileType distinguishes folders from the various document kinds
type FileType string

const (
	FileTypeFolder   FileType = "folder"
	FileTypeDocument FileType = "document"
	FileTypeMarkdown FileType = "markdown"
	FileTypeImage    FileType = "image"
	FileTypeVideo    FileType = "video"
	FileTypeAudio    FileType = "audio"
	FileTypeArchive  FileType = "archive"
	FileTypeMeeting  FileType = "meeting"
	FileTypeOther    FileType = "other"
)

// FileTypes lists every known file type, folder first
var FileTypes = []FileType{
	FileTypeFolder,
	FileTypeDocument,
	FileTypeMarkdown,
	FileTypeImage,
	FileTypeVideo,
	FileTypeAudio,
	FileTypeArchive,
	FileTypeMeeting,
	FileTypeOther,
}

// ParseFileType validates a wire value
func ParseFileType(s string) (FileType, error) {
	for _, t := range FileTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown file type %q", s)
}

// FileItem is a file or folder row in the workspace
type FileItem struct {
	ID           string   `json:"id" yaml:"id" db:"id"`
	Name         string   `json:"name" yaml:"name" db:"name"`
	Type         FileType `json:"type" yaml:"type" db:"type"`
	Owner        string   `json:"owner" yaml:"owner" db:"owner"`
	OwnerID      string   `json:"owner_id" yaml:"owner_id" db:"owner_id"`
	LastModified string   `json:"last_modified" yaml:"last_modified" db:"last_modified"` // Display string, e.g. "14:21"
	Size         *int64   `json:"size,omitempty" yaml:"size,omitempty" db:"size"`
}

// IsFolder reports whether the item owns a content list
func (f FileItem) IsFolder() bool {
	return f.Type == FileTypeFolder
}
