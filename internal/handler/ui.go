package handler

import (
	"log/slog"
	"net/http"

	models "docspace/internal/domain/models/workspace"
	wsSvc "docspace/internal/domain/services/workspace"
	"docspace/internal/httputil"
)

// UIHandler serves the per-user interface flags and selection
type UIHandler struct {
	ui     wsSvc.UIStateService
	logger *slog.Logger
}

// NewUIHandler creates a new UI state handler
func NewUIHandler(ui wsSvc.UIStateService, logger *slog.Logger) *UIHandler {
	return &UIHandler{
		ui:     ui,
		logger: logger,
	}
}

// GetState returns the caller's UI state
// GET /api/ui
func (h *UIHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.ui.Get(r.Context(), httputil.GetUserID(r))
	h.respond(w, state, err)
}

// PatchState updates modal and layout flags (merge-patch)
// PATCH /api/ui
func (h *UIHandler) PatchState(w http.ResponseWriter, r *http.Request) {
	var req wsSvc.PatchUIRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	state, err := h.ui.Patch(r.Context(), httputil.GetUserID(r), &req)
	h.respond(w, state, err)
}

type selectionRequest struct {
	IDs []string `json:"ids"`
}

// SetSelection replaces the selected item ids
// PUT /api/ui/selection
func (h *UIHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	state, err := h.ui.SetSelection(r.Context(), httputil.GetUserID(r), req.IDs)
	h.respond(w, state, err)
}

type toggleSelectionRequest struct {
	ItemID string `json:"item_id"`
}

// ToggleSelection adds or removes one item from the selection
// POST /api/ui/selection/toggle
func (h *UIHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	var req toggleSelectionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ItemID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "item_id is required")
		return
	}

	state, err := h.ui.ToggleSelection(r.Context(), httputil.GetUserID(r), req.ItemID)
	h.respond(w, state, err)
}

// ClearSelection empties the selection
// DELETE /api/ui/selection
func (h *UIHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	state, err := h.ui.ClearSelection(r.Context(), httputil.GetUserID(r))
	h.respond(w, state, err)
}

func (h *UIHandler) respond(w http.ResponseWriter, state *models.UIState, err error) {
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, state)
}
