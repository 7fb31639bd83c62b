package handler

import (
	"log/slog"
	"net/http"

	wsSvc "docspace/internal/domain/services/workspace"
	"docspace/internal/httputil"
)

// WorkspaceHandler serves the folder collection
type WorkspaceHandler struct {
	workspaces wsSvc.WorkspaceService
	logger     *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaces wsSvc.WorkspaceService, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaces: workspaces,
		logger:     logger,
	}
}

// GetTree returns the nested tree below the root folder
// GET /api/tree
func (h *WorkspaceHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.workspaces.Tree(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}
