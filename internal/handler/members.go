package handler

import (
	"log/slog"
	"net/http"

	models "docspace/internal/domain/models/workspace"
	wsSvc "docspace/internal/domain/services/workspace"
	"docspace/internal/httputil"
)

// MemberHandler serves folder members and the sharing mode
type MemberHandler struct {
	members wsSvc.MemberService
	logger  *slog.Logger
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(members wsSvc.MemberService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		members: members,
		logger:  logger,
	}
}

// ListMembers returns a folder's members in join order
// GET /api/folders/{id}/members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	folderID, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	members, err := h.members.List(r.Context(), folderID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, members)
}

// AddMember adds a user to a folder
// POST /api/folders/{id}/members
func (h *MemberHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	folderID, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	var req wsSvc.AddMemberRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.FolderID = folderID

	member, err := h.members.Add(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, member)
}

type roleRequest struct {
	Role models.Role `json:"role"`
}

// UpdateMember changes a member's role
// PATCH /api/folders/{id}/members/{userId}
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	folderID, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}
	userID, ok := PathParam(w, r, "userId", "User ID")
	if !ok {
		return
	}

	var req roleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.members.SetRole(r.Context(), folderID, userID, req.Role)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, member)
}

// RemoveMember removes a user from a folder
// DELETE /api/folders/{id}/members/{userId}
func (h *MemberHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	folderID, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}
	userID, ok := PathParam(w, r, "userId", "User ID")
	if !ok {
		return
	}

	if err := h.members.Remove(r.Context(), folderID, userID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type permissionBody struct {
	Permission models.Permission `json:"permission"`
}

// GetPermission returns the folder's sharing mode
// GET /api/folders/{id}/permission
func (h *MemberHandler) GetPermission(w http.ResponseWriter, r *http.Request) {
	folderID, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	permission, err := h.members.Permission(r.Context(), folderID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, permissionBody{Permission: permission})
}

// SetPermission changes the folder's sharing mode
// PUT /api/folders/{id}/permission
func (h *MemberHandler) SetPermission(w http.ResponseWriter, r *http.Request) {
	folderID, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	var req permissionBody
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.members.SetPermission(r.Context(), folderID, req.Permission); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, req)
}
