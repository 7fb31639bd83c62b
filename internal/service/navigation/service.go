package navigation

import (
	"context"
	"log/slog"
	"sync"

	models "docspace/internal/domain/models/workspace"
	wsSvc "docspace/internal/domain/services/workspace"
)

type navigationService struct {
	workspaces wsSvc.WorkspaceService
	logger     *slog.Logger

	mu     sync.Mutex
	byUser map[string]*Navigator
}

// NewNavigationService creates a new navigation service
func NewNavigationService(workspaces wsSvc.WorkspaceService, logger *slog.Logger) wsSvc.NavigationService {
	return &navigationService{
		workspaces: workspaces,
		logger:     logger,
		byUser:     make(map[string]*Navigator),
	}
}

func (s *navigationService) View(ctx context.Context, userID string) (*wsSvc.NavigationView, error) {
	return s.apply(ctx, userID, nil)
}

func (s *navigationService) Open(ctx context.Context, userID, folderID string) (*wsSvc.NavigationView, error) {
	return s.apply(ctx, userID, func(n *Navigator, c *models.Collection) error {
		return n.Open(c, folderID)
	})
}

func (s *navigationService) Up(ctx context.Context, userID string) (*wsSvc.NavigationView, error) {
	return s.apply(ctx, userID, func(n *Navigator, c *models.Collection) error {
		n.Up(c)
		return nil
	})
}

func (s *navigationService) Reset(ctx context.Context, userID string) (*wsSvc.NavigationView, error) {
	return s.apply(ctx, userID, func(n *Navigator, _ *models.Collection) error {
		n.Reset()
		return nil
	})
}

func (s *navigationService) Toggle(ctx context.Context, userID, folderID string) (*wsSvc.NavigationView, error) {
	return s.apply(ctx, userID, func(n *Navigator, c *models.Collection) error {
		return n.Toggle(c, folderID)
	})
}

func (s *navigationService) Expand(ctx context.Context, userID, folderID string) (*wsSvc.NavigationView, error) {
	return s.apply(ctx, userID, func(n *Navigator, c *models.Collection) error {
		return n.SetExpanded(c, folderID, true)
	})
}

func (s *navigationService) Collapse(ctx context.Context, userID, folderID string) (*wsSvc.NavigationView, error) {
	return s.apply(ctx, userID, func(n *Navigator, c *models.Collection) error {
		return n.SetExpanded(c, folderID, false)
	})
}

func (s *navigationService) apply(ctx context.Context, userID string, fn func(*Navigator, *models.Collection) error) (*wsSvc.NavigationView, error) {
	c, err := s.workspaces.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	nav, ok := s.byUser[userID]
	if !ok {
		nav = NewNavigator()
		s.byUser[userID] = nav
	}
	if fn != nil {
		if err := fn(nav, c); err != nil {
			return nil, err
		}
	}
	view := nav.View(c)

	s.logger.Debug("navigation view",
		"user_id", userID,
		"folder_id", view.Folder.ID,
		"rows", len(view.Rows),
	)
	return view, nil
}
