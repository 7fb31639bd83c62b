package handler

import (
	"context"
	"log/slog"
	"net/http"

	wsSvc "docspace/internal/domain/services/workspace"
	"docspace/internal/httputil"
)

// NavigationHandler serves each user's position in the tree
type NavigationHandler struct {
	navigation wsSvc.NavigationService
	logger     *slog.Logger
}

// NewNavigationHandler creates a new navigation handler
func NewNavigationHandler(navigation wsSvc.NavigationService, logger *slog.Logger) *NavigationHandler {
	return &NavigationHandler{
		navigation: navigation,
		logger:     logger,
	}
}

type folderRequest struct {
	FolderID string `json:"folder_id"`
}

// GetView returns the current folder, breadcrumb and visible rows
// GET /api/navigation
func (h *NavigationHandler) GetView(w http.ResponseWriter, r *http.Request) {
	view, err := h.navigation.View(r.Context(), httputil.GetUserID(r))
	h.respond(w, view, err)
}

// Open enters a folder
// POST /api/navigation/open
func (h *NavigationHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FolderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder_id is required")
		return
	}

	view, err := h.navigation.Open(r.Context(), httputil.GetUserID(r), req.FolderID)
	h.respond(w, view, err)
}

// Up goes to the parent folder; a no-op at the root
// POST /api/navigation/up
func (h *NavigationHandler) Up(w http.ResponseWriter, r *http.Request) {
	view, err := h.navigation.Up(r.Context(), httputil.GetUserID(r))
	h.respond(w, view, err)
}

// Reset returns to the root folder
// POST /api/navigation/reset
func (h *NavigationHandler) Reset(w http.ResponseWriter, r *http.Request) {
	view, err := h.navigation.Reset(r.Context(), httputil.GetUserID(r))
	h.respond(w, view, err)
}

// Toggle expands or collapses a folder row
// POST /api/navigation/toggle
func (h *NavigationHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.withFolder(w, r, h.navigation.Toggle)
}

// Expand shows a folder's children inline
// POST /api/navigation/expand
func (h *NavigationHandler) Expand(w http.ResponseWriter, r *http.Request) {
	h.withFolder(w, r, h.navigation.Expand)
}

// Collapse hides a folder's inline children
// POST /api/navigation/collapse
func (h *NavigationHandler) Collapse(w http.ResponseWriter, r *http.Request) {
	h.withFolder(w, r, h.navigation.Collapse)
}

type folderOp func(ctx context.Context, userID, folderID string) (*wsSvc.NavigationView, error)

func (h *NavigationHandler) withFolder(w http.ResponseWriter, r *http.Request, op folderOp) {
	var req folderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FolderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder_id is required")
		return
	}

	view, err := op(r.Context(), httputil.GetUserID(r), req.FolderID)
	h.respond(w, view, err)
}

func (h *NavigationHandler) respond(w http.ResponseWriter, view *wsSvc.NavigationView, err error) {
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, view)
}
