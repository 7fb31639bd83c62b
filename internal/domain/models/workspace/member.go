package workspace

import "time"

// Role is a member's role on a folder
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Permission is the folder-wide sharing mode
type Permission string

const (
	PermissionPrivate   Permission = "private"
	PermissionSpecified Permission = "specified"
	PermissionViewable  Permission = "viewable"
	PermissionEditable  Permission = "editable"
)

// Member is a user with access to a folder
type Member struct {
	ID       string    `json:"id" yaml:"id" db:"id"`
	FolderID string    `json:"folder_id" yaml:"-" db:"folder_id"`
	UserID   string    `json:"user_id" yaml:"user_id" db:"user_id"`
	UserName string    `json:"user_name" yaml:"user_name" db:"user_name"`
	Avatar   *string   `json:"avatar,omitempty" yaml:"avatar,omitempty" db:"avatar"`
	Role     Role      `json:"role" yaml:"role" db:"role"`
	JoinedAt time.Time `json:"joined_at" yaml:"-" db:"joined_at"`
}

// User identifies the caller of a request
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
