package handler

import (
	"log/slog"
	"net/http"

	models "docspace/internal/domain/models/workspace"
	wsSvc "docspace/internal/domain/services/workspace"
	"docspace/internal/httputil"
)

// DragHandler drives drag sessions and drops
type DragHandler struct {
	drag       wsSvc.DragService
	workspaces wsSvc.WorkspaceService
	logger     *slog.Logger
}

// NewDragHandler creates a new drag handler
func NewDragHandler(drag wsSvc.DragService, workspaces wsSvc.WorkspaceService, logger *slog.Logger) *DragHandler {
	return &DragHandler{
		drag:       drag,
		workspaces: workspaces,
		logger:     logger,
	}
}

// ClassifyRequest asks where a pointer over a row would drop
type ClassifyRequest struct {
	TargetID   string          `json:"target_id,omitempty"`
	TargetType models.FileType `json:"target_type,omitempty"`
	Row        models.RowBox   `json:"row"`
	PointerY   float64         `json:"pointer_y"`
}

// ClassifyResponse carries the drop position for a pointer
type ClassifyResponse struct {
	Position models.DropPosition `json:"position"`
}

// Classify maps pointer geometry to a drop position. The target type comes
// from target_id when given, else from target_type.
// POST /api/drop/classify
func (h *DragHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	targetType := req.TargetType
	if req.TargetID != "" {
		detail, err := h.workspaces.Item(r.Context(), req.TargetID)
		if err != nil {
			handleError(w, h.logger, err)
			return
		}
		targetType = detail.Item.Type
	}
	if _, err := models.ParseFileType(string(targetType)); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "target_id or a valid target_type is required")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ClassifyResponse{
		Position: h.drag.Classify(req.Row, req.PointerY, targetType),
	})
}

// StartSession begins dragging an item
// POST /api/drag-sessions
func (h *DragHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req wsSvc.StartDragRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.User = currentUser(r)

	session, err := h.drag.Start(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, session)
}

// Hover reports the pointer over a target row
// PUT /api/drag-sessions/{id}/hover
func (h *DragHandler) Hover(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := PathParam(w, r, "id", "Session ID")
	if !ok {
		return
	}

	var req wsSvc.HoverRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.SessionID = sessionID

	state, err := h.drag.Hover(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, state)
}

// Leave reports the pointer leaving the hovered row
// POST /api/drag-sessions/{id}/leave
func (h *DragHandler) Leave(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := PathParam(w, r, "id", "Session ID")
	if !ok {
		return
	}

	var req wsSvc.LeaveRequest
	if err := httputil.ParseOptionalJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.SessionID = sessionID

	state, err := h.drag.Leave(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, state)
}

// Drop completes a session. A refused drop is still a 200 with
// applied=false and the reason.
// POST /api/drag-sessions/{id}/drop
func (h *DragHandler) Drop(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := PathParam(w, r, "id", "Session ID")
	if !ok {
		return
	}
	h.drop(w, r, sessionID)
}

// DropWithoutSession applies a drop that carries its own payload, e.g. one
// started in another tab
// POST /api/drop
func (h *DragHandler) DropWithoutSession(w http.ResponseWriter, r *http.Request) {
	h.drop(w, r, "")
}

func (h *DragHandler) drop(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req wsSvc.DropRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if sessionID == "" && req.Payload == nil {
		httputil.RespondError(w, http.StatusBadRequest, "payload is required without a drag session")
		return
	}
	req.SessionID = sessionID

	result, err := h.drag.Drop(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// EndSession abandons a drag without dropping
// DELETE /api/drag-sessions/{id}
func (h *DragHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := PathParam(w, r, "id", "Session ID")
	if !ok {
		return
	}

	if err := h.drag.End(r.Context(), sessionID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
