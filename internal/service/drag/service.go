package drag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
	wsSvc "docspace/internal/domain/services/workspace"
	"docspace/internal/service/workspace"

	"github.com/google/uuid"
)

type session struct {
	tracker  *Tracker
	userID   string
	lastSeen time.Time
}

type dragService struct {
	workspaces wsSvc.WorkspaceService
	classifier workspace.Classifier
	codec      *PayloadCodec
	ttl        time.Duration
	now        func() time.Time
	logger     *slog.Logger

	// One lock for all sessions: handlers for a gesture run to completion in
	// order, and a drop holds it across the move
	mu       sync.Mutex
	sessions map[string]*session
}

// Config holds drag service settings
type Config struct {
	Classifier workspace.Classifier
	Codec      *PayloadCodec
	SessionTTL time.Duration
}

// NewDragService creates a new drag service
func NewDragService(workspaces wsSvc.WorkspaceService, cfg Config, logger *slog.Logger) wsSvc.DragService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 5 * time.Minute
	}
	return &dragService{
		workspaces: workspaces,
		classifier: cfg.Classifier,
		codec:      cfg.Codec,
		ttl:        cfg.SessionTTL,
		now:        time.Now,
		logger:     logger,
		sessions:   make(map[string]*session),
	}
}

// Classify exposes the drop-zone classifier
func (s *dragService) Classify(row models.RowBox, pointerY float64, targetType models.FileType) models.DropPosition {
	return s.classifier.Classify(row, pointerY, targetType)
}

// Start begins a drag of req.ItemID
func (s *dragService) Start(ctx context.Context, req *wsSvc.StartDragRequest) (*wsSvc.DragSession, error) {
	if req.ItemID == "" {
		return nil, fmt.Errorf("%w: item_id is required", domain.ErrValidation)
	}
	detail, err := s.workspaces.Item(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if detail.FolderID == "" {
		return nil, fmt.Errorf("%w: the root folder cannot be dragged", domain.ErrValidation)
	}

	id := uuid.NewString()
	payload, err := s.codec.Encode(id, detail.Item)
	if err != nil {
		return nil, err
	}

	tracker := NewTracker(s.classifier)
	tracker.Start(detail.Item)

	s.mu.Lock()
	s.sweepLocked()
	s.sessions[id] = &session{tracker: tracker, userID: req.User.ID, lastSeen: s.now()}
	state := stateOf(id, tracker, true)
	s.mu.Unlock()

	s.logger.Debug("drag started", "session_id", id, "item_id", detail.Item.ID, "user_id", req.User.ID)

	return &wsSvc.DragSession{SessionID: id, Payload: payload, State: state}, nil
}

// Hover reclassifies the pointer over a target row
func (s *dragService) Hover(ctx context.Context, req *wsSvc.HoverRequest) (*wsSvc.DragState, error) {
	detail, err := s.workspaces.Item(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupLocked(req.SessionID)
	if err != nil {
		return nil, err
	}
	changed := sess.tracker.Hover(detail.Item, req.Row, req.PointerY)
	state := stateOf(req.SessionID, sess.tracker, changed)
	return &state, nil
}

// Leave clears the hover unless the pointer moved into a child element
func (s *dragService) Leave(ctx context.Context, req *wsSvc.LeaveRequest) (*wsSvc.DragState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupLocked(req.SessionID)
	if err != nil {
		return nil, err
	}
	changed := sess.tracker.Leave(req.IntoDescendant)
	state := stateOf(req.SessionID, sess.tracker, changed)
	return &state, nil
}

// Drop completes a gesture. The session, if any, is reset whatever happens.
func (s *dragService) Drop(ctx context.Context, req *wsSvc.DropRequest) (*wsSvc.DropResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tracker *Tracker
	if req.SessionID != "" {
		sess, err := s.lookupLocked(req.SessionID)
		if err != nil {
			return s.reject(req, domain.ReasonUnknownSession, err.Error(), models.DropNone), nil
		}
		tracker = sess.tracker
		defer func() {
			tracker.Reset()
			delete(s.sessions, req.SessionID)
		}()
	}

	// Prefer the serialized payload over the in-memory item
	var item models.FileItem
	switch {
	case req.Payload != nil:
		decoded, _, err := s.codec.Decode(*req.Payload)
		if err != nil {
			return s.reject(req, domain.ReasonInvalidPayload, err.Error(), models.DropNone), nil
		}
		item = decoded
	case tracker != nil && tracker.Active():
		item, _ = tracker.Dragged()
	default:
		return s.reject(req, domain.ReasonNoItem, "no dragged item", models.DropNone), nil
	}

	if req.TargetID == "" {
		return s.reject(req, domain.ReasonNoTarget, "drop has no target", models.DropNone), nil
	}
	target, err := s.workspaces.Item(ctx, req.TargetID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.reject(req, domain.ReasonTargetNotFound, err.Error(), models.DropNone), nil
		}
		return nil, err
	}

	position := models.DropNone
	switch {
	case req.Row != nil && req.PointerY != nil:
		position = s.classifier.Classify(*req.Row, *req.PointerY, target.Item.Type)
	case tracker != nil:
		position = tracker.PositionFor(req.TargetID)
	}

	if item.ID == target.Item.ID {
		return s.reject(req, domain.ReasonSelfDrop, "cannot drop an item onto itself", position), nil
	}
	if position == models.DropNone {
		return s.reject(req, domain.ReasonNoPosition, "drop has no position", position), nil
	}

	move, err := s.workspaces.Move(ctx, &wsSvc.MoveRequest{
		ItemID:   item.ID,
		TargetID: target.Item.ID,
		Position: position,
	})
	if err != nil {
		var rejection *domain.RejectionError
		if errors.As(err, &rejection) {
			return s.reject(req, rejection.Reason, rejection.Message, position), nil
		}
		return nil, err
	}

	return &wsSvc.DropResult{Applied: true, Position: position, Move: move}, nil
}

// End abandons a gesture. The collection is never touched.
func (s *dragService) End(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	sess.tracker.Reset()
	delete(s.sessions, sessionID)
	s.logger.Debug("drag ended without drop", "session_id", sessionID)
	return nil
}

func (s *dragService) reject(req *wsSvc.DropRequest, reason domain.RejectionReason, message string, position models.DropPosition) *wsSvc.DropResult {
	s.logger.Info("drop rejected",
		"session_id", req.SessionID,
		"target_id", req.TargetID,
		"reason", reason,
		"detail", message,
	)
	return &wsSvc.DropResult{
		Applied:  false,
		Reason:   string(reason),
		Message:  message,
		Position: position,
	}
}

func (s *dragService) lookupLocked(id string) (*session, error) {
	sess, ok := s.sessions[id]
	if !ok || s.now().Sub(sess.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("drag session %s not found", id)}
	}
	sess.lastSeen = s.now()
	return sess, nil
}

func (s *dragService) sweepLocked() {
	now := s.now()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

func stateOf(id string, t *Tracker, changed bool) wsSvc.DragState {
	dragged, target, position := t.Snapshot()
	return wsSvc.DragState{
		SessionID:     id,
		DraggedItem:   dragged,
		HoverTargetID: target,
		HoverPosition: position,
		Changed:       changed,
	}
}
