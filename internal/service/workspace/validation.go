package workspace

import (
	"regexp"
	"strings"

	"docspace/internal/config"
	models "docspace/internal/domain/models/workspace"
	wsSvc "docspace/internal/domain/services/workspace"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var noSlashes = validation.Match(regexp.MustCompile(`^[^/]+$`)).Error("name cannot contain slashes")

func fileTypeValues() []interface{} {
	values := make([]interface{}, len(models.FileTypes))
	for i, t := range models.FileTypes {
		values[i] = t
	}
	return values
}

// validateCreateItemRequest validates the add-file dialog submission
func validateCreateItemRequest(req *wsSvc.CreateItemRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	return validation.ValidateStruct(req,
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.RuneLength(1, config.MaxItemNameLength),
			noSlashes,
		),
		validation.Field(&req.Type, validation.Required, validation.In(fileTypeValues()...)),
		validation.Field(&req.Size, validation.Min(int64(0))),
	)
}

// validateMoveRequest checks the shape of a move; semantic preconditions are
// enforced by Move itself
func validateMoveRequest(req *wsSvc.MoveRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ItemID, validation.Required),
		validation.Field(&req.Position,
			validation.In(models.DropBefore, models.DropAfter, models.DropInside, models.DropNone),
		),
	)
}

// validateAddMemberRequest validates a member addition
func validateAddMemberRequest(req *wsSvc.AddMemberRequest) error {
	req.UserName = strings.TrimSpace(req.UserName)
	return validation.ValidateStruct(req,
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.UserID, validation.Required, validation.RuneLength(1, config.MaxUserIDLength)),
		validation.Field(&req.UserName, validation.Required, validation.RuneLength(1, config.MaxUserNameLength)),
		validation.Field(&req.Role, validation.Required, validation.In(models.RoleOwner, models.RoleEditor, models.RoleViewer)),
	)
}

func validateRole(role models.Role) error {
	return validation.Validate(role, validation.Required, validation.In(models.RoleOwner, models.RoleEditor, models.RoleViewer))
}

func validatePermission(p models.Permission) error {
	return validation.Validate(p,
		validation.Required,
		validation.In(models.PermissionPrivate, models.PermissionSpecified, models.PermissionViewable, models.PermissionEditable),
	)
}
