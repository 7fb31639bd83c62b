package handler

import "net/http"

// Handlers groups every HTTP handler of the server
type Handlers struct {
	Workspace  *WorkspaceHandler
	Drag       *DragHandler
	Navigation *NavigationHandler
	UI         *UIHandler
	Members    *MemberHandler
	Events     *EventsHandler
}

// Register mounts all routes on mux
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", HealthCheck)

	// Collection
	mux.HandleFunc("GET /api/tree", h.Workspace.GetTree)
	mux.HandleFunc("GET /api/folders/{id}", h.Workspace.GetFolder)
	mux.HandleFunc("POST /api/folders/{id}/items", h.Workspace.CreateItem)
	mux.HandleFunc("GET /api/items/{id}", h.Workspace.GetItem)
	mux.HandleFunc("POST /api/items/{id}/move", h.Workspace.MoveItem)

	// Drag and drop
	mux.HandleFunc("POST /api/drop/classify", h.Drag.Classify)
	mux.HandleFunc("POST /api/drop", h.Drag.DropWithoutSession)
	mux.HandleFunc("POST /api/drag-sessions", h.Drag.StartSession)
	mux.HandleFunc("PUT /api/drag-sessions/{id}/hover", h.Drag.Hover)
	mux.HandleFunc("POST /api/drag-sessions/{id}/leave", h.Drag.Leave)
	mux.HandleFunc("POST /api/drag-sessions/{id}/drop", h.Drag.Drop)
	mux.HandleFunc("DELETE /api/drag-sessions/{id}", h.Drag.EndSession)

	// Navigation
	mux.HandleFunc("GET /api/navigation", h.Navigation.GetView)
	mux.HandleFunc("POST /api/navigation/open", h.Navigation.Open)
	mux.HandleFunc("POST /api/navigation/up", h.Navigation.Up)
	mux.HandleFunc("POST /api/navigation/reset", h.Navigation.Reset)
	mux.HandleFunc("POST /api/navigation/toggle", h.Navigation.Toggle)
	mux.HandleFunc("POST /api/navigation/expand", h.Navigation.Expand)
	mux.HandleFunc("POST /api/navigation/collapse", h.Navigation.Collapse)

	// UI state
	mux.HandleFunc("GET /api/ui", h.UI.GetState)
	mux.HandleFunc("PATCH /api/ui", h.UI.PatchState)
	mux.HandleFunc("PUT /api/ui/selection", h.UI.SetSelection)
	mux.HandleFunc("DELETE /api/ui/selection", h.UI.ClearSelection)
	mux.HandleFunc("POST /api/ui/selection/toggle", h.UI.ToggleSelection)

	// Members
	mux.HandleFunc("GET /api/folders/{id}/members", h.Members.ListMembers)
	mux.HandleFunc("POST /api/folders/{id}/members", h.Members.AddMember)
	mux.HandleFunc("PATCH /api/folders/{id}/members/{userId}", h.Members.UpdateMember)
	mux.HandleFunc("DELETE /api/folders/{id}/members/{userId}", h.Members.RemoveMember)
	mux.HandleFunc("GET /api/folders/{id}/permission", h.Members.GetPermission)
	mux.HandleFunc("PUT /api/folders/{id}/permission", h.Members.SetPermission)

	// Push
	mux.HandleFunc("GET /api/events", h.Events.Stream)
}
