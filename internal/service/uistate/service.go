// Package uistate holds the cross-cutting client flags of each user: the open
// dialog, the checkbox selection, and panel toggles. Changes are announced
// on the event broker instead of being read from shared globals.
package uistate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
	wsSvc "docspace/internal/domain/services/workspace"
	"docspace/internal/service/events"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type uiStateService struct {
	workspaces wsSvc.WorkspaceService
	broker     *events.Broker
	logger     *slog.Logger

	mu     sync.Mutex
	byUser map[string]*models.UIState
}

// NewUIStateService creates a new UI state service
func NewUIStateService(workspaces wsSvc.WorkspaceService, broker *events.Broker, logger *slog.Logger) wsSvc.UIStateService {
	return &uiStateService{
		workspaces: workspaces,
		broker:     broker,
		logger:     logger,
		byUser:     make(map[string]*models.UIState),
	}
}

func (s *uiStateService) Get(ctx context.Context, userID string) (*models.UIState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.stateLocked(userID)), nil
}

// Patch applies merge-patch semantics; an explicit null closes the dialog
func (s *uiStateService) Patch(ctx context.Context, userID string, req *wsSvc.PatchUIRequest) (*models.UIState, error) {
	if req.ActiveModal.Assigns() {
		err := validation.Validate(req.ActiveModal.Value,
			validation.In(models.ModalAddFile, models.ModalShare, models.ModalMemberManage),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: active_modal: %v", domain.ErrValidation, err)
		}
	}

	s.mu.Lock()
	state := s.stateLocked(userID)
	switch {
	case req.ActiveModal.Clears():
		state.ActiveModal = nil
	case req.ActiveModal.Set:
		modal := req.ActiveModal.Value
		state.ActiveModal = &modal
	}
	if req.PinnedMode != nil {
		state.PinnedMode = *req.PinnedMode
	}
	if req.TreeVisible != nil {
		state.TreeVisible = *req.TreeVisible
	}
	if req.SidebarCollapsed != nil {
		state.SidebarCollapsed = *req.SidebarCollapsed
	}
	out := copyState(state)
	s.mu.Unlock()

	s.publish(userID)
	return out, nil
}

// SetSelection replaces the selection. Unknown ids are rejected; duplicates
// collapse since the selection is a set.
func (s *uiStateService) SetSelection(ctx context.Context, userID string, ids []string) (*models.UIState, error) {
	c, err := s.workspaces.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(ids))
	selection := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := c.Item(id); !ok {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("item %s not found", id)}
		}
		if !seen[id] {
			seen[id] = true
			selection = append(selection, id)
		}
	}

	s.mu.Lock()
	state := s.stateLocked(userID)
	state.SelectedIDs = selection
	out := copyState(state)
	s.mu.Unlock()

	s.publish(userID)
	return out, nil
}

// ToggleSelection adds or removes one id
func (s *uiStateService) ToggleSelection(ctx context.Context, userID, itemID string) (*models.UIState, error) {
	c, err := s.workspaces.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := c.Item(itemID); !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("item %s not found", itemID)}
	}

	s.mu.Lock()
	state := s.stateLocked(userID)
	removed := false
	for i, id := range state.SelectedIDs {
		if id == itemID {
			state.SelectedIDs = append(state.SelectedIDs[:i], state.SelectedIDs[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		state.SelectedIDs = append(state.SelectedIDs, itemID)
	}
	out := copyState(state)
	s.mu.Unlock()

	s.publish(userID)
	return out, nil
}

func (s *uiStateService) ClearSelection(ctx context.Context, userID string) (*models.UIState, error) {
	s.mu.Lock()
	state := s.stateLocked(userID)
	state.SelectedIDs = []string{}
	out := copyState(state)
	s.mu.Unlock()

	s.publish(userID)
	return out, nil
}

func (s *uiStateService) stateLocked(userID string) *models.UIState {
	state, ok := s.byUser[userID]
	if !ok {
		state = &models.UIState{SelectedIDs: []string{}}
		s.byUser[userID] = state
	}
	return state
}

func (s *uiStateService) publish(userID string) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(events.Event{Type: events.TypeUIUpdated, Data: events.UIUpdated{UserID: userID}})
}

func copyState(state *models.UIState) *models.UIState {
	out := *state
	out.SelectedIDs = append([]string{}, state.SelectedIDs...)
	if state.ActiveModal != nil {
		modal := *state.ActiveModal
		out.ActiveModal = &modal
	}
	return &out
}
