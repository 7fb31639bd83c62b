package handler

import (
	"net/http"

	models "docspace/internal/domain/models/workspace"
	wsSvc "docspace/internal/domain/services/workspace"
	"docspace/internal/httputil"
)

// GetFolder returns one folder's contents and counts
// GET /api/folders/{id}
func (h *WorkspaceHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	folderID, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	folder, err := h.workspaces.Folder(r.Context(), folderID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// CreateItem adds a file or folder to a folder
// POST /api/folders/{id}/items
// Returns 201 if created, 409 with the existing item if a sibling has the same name and type
func (h *WorkspaceHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	folderID, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	var req wsSvc.CreateItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.FolderID = folderID
	req.Owner = currentUser(r)

	item, err := h.workspaces.CreateItem(r.Context(), &req)
	if err != nil {
		HandleCreateConflict(w, h.logger, err, func(id string) (*models.FileItem, error) {
			detail, err := h.workspaces.Item(r.Context(), id)
			if err != nil {
				return nil, err
			}
			return &detail.Item, nil
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}

// GetItem returns an item with its containing folder and path
// GET /api/items/{id}
func (h *WorkspaceHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := PathParam(w, r, "id", "Item ID")
	if !ok {
		return
	}

	detail, err := h.workspaces.Item(r.Context(), itemID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, detail)
}

// MoveItem applies a move without a drag session.
// POST /api/items/{id}/move
// A refused move is a 400 or 404 problem carrying the rejection reason.
func (h *WorkspaceHandler) MoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := PathParam(w, r, "id", "Item ID")
	if !ok {
		return
	}

	var req wsSvc.MoveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ItemID = itemID

	result, err := h.workspaces.Move(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
