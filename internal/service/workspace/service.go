package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
	wsRepo "docspace/internal/domain/repositories/workspace"
	wsSvc "docspace/internal/domain/services/workspace"
	"docspace/internal/service/events"

	"github.com/google/uuid"
)

// Clock formats the display modification time of new items
type Clock func() time.Time

type workspaceService struct {
	workspaceID string
	repo        wsRepo.CollectionRepository
	broker      *events.Broker
	clock       Clock
	logger      *slog.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	workspaceID string,
	repo wsRepo.CollectionRepository,
	broker *events.Broker,
	logger *slog.Logger,
) wsSvc.WorkspaceService {
	return &workspaceService{
		workspaceID: workspaceID,
		repo:        repo,
		broker:      broker,
		clock:       time.Now,
		logger:      logger,
	}
}

// Snapshot returns the current collection
func (s *workspaceService) Snapshot(ctx context.Context) (*models.Collection, error) {
	return s.repo.Load(ctx, s.workspaceID)
}

// Tree returns the nested tree below the root folder
func (s *workspaceService) Tree(ctx context.Context) (*models.TreeNode, error) {
	c, err := s.repo.Load(ctx, s.workspaceID)
	if err != nil {
		return nil, err
	}
	tree := BuildTree(c)

	s.logger.Debug("workspace tree built",
		"workspace_id", s.workspaceID,
		"item_count", c.ItemCount(),
		"version", c.Version,
	)
	return tree, nil
}

// Folder returns one folder's contents
func (s *workspaceService) Folder(ctx context.Context, folderID string) (*models.FolderData, error) {
	c, err := s.repo.Load(ctx, s.workspaceID)
	if err != nil {
		return nil, err
	}
	folder, ok := c.Folders[folderID]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folderID)}
	}
	// Hand out a copy; the snapshot is shared
	out := *folder
	out.Files = append([]models.FileItem(nil), folder.Files...)
	return &out, nil
}

// Item returns an item and its location
func (s *workspaceService) Item(ctx context.Context, itemID string) (*wsSvc.ItemDetail, error) {
	c, err := s.repo.Load(ctx, s.workspaceID)
	if err != nil {
		return nil, err
	}
	item, ok := c.Item(itemID)
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("item %s not found", itemID)}
	}

	detail := &wsSvc.ItemDetail{Item: item}
	folderID, ok := c.ContainingFolder(itemID)
	if ok {
		detail.FolderID = folderID
		if chain, ok := c.Ancestry(folderID); ok {
			detail.Path = Breadcrumb(c, chain)
		}
	}
	return detail, nil
}

// CreateItem appends a new file or folder to a folder
func (s *workspaceService) CreateItem(ctx context.Context, req *wsSvc.CreateItemRequest) (*models.FileItem, error) {
	if err := validateCreateItemRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	item := models.FileItem{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Type:         req.Type,
		Owner:        req.Owner.Name,
		OwnerID:      req.Owner.ID,
		LastModified: s.clock().Format("15:04"),
		Size:         req.Size,
	}

	next, err := s.repo.Update(ctx, s.workspaceID, func(current *models.Collection) (*models.Collection, error) {
		folder, ok := current.Folders[req.FolderID]
		if !ok {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", req.FolderID)}
		}
		for _, sibling := range folder.Files {
			if sibling.Name == item.Name && sibling.Type == item.Type {
				return nil, &domain.ConflictError{
					Message:      fmt.Sprintf("%s named %q already exists in this folder", item.Type, item.Name),
					ResourceType: "item",
					ResourceID:   sibling.ID,
				}
			}
		}
		return Insert(current, req.FolderID, item)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		"id", item.ID,
		"name", item.Name,
		"type", item.Type,
		"folder_id", req.FolderID,
		"version", next.Version,
	)
	s.publish(next, []string{req.FolderID})

	return &item, nil
}

// Move applies a drop. Rejections are logged and returned untouched so the
// caller decides how to surface them.
func (s *workspaceService) Move(ctx context.Context, req *wsSvc.MoveRequest) (*wsSvc.MoveResult, error) {
	if err := validateMoveRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var placement *Placement
	var touched []string
	next, err := s.repo.Update(ctx, s.workspaceID, func(current *models.Collection) (*models.Collection, error) {
		moved, p, err := Move(current, req.ItemID, req.TargetID, req.Position)
		if err != nil {
			return nil, err
		}
		placement = p
		touched = moved.Touched()
		return moved, nil
	})
	if err != nil {
		var rejection *domain.RejectionError
		if errors.As(err, &rejection) {
			s.logger.Info("drop rejected",
				"item_id", req.ItemID,
				"target_id", req.TargetID,
				"position", req.Position,
				"reason", rejection.Reason,
			)
		}
		return nil, err
	}

	s.logger.Info("item moved",
		"id", placement.Item.ID,
		"name", placement.Item.Name,
		"from_folder_id", placement.SourceID,
		"to_folder_id", placement.DestinationID,
		"index", placement.Index,
		"position", req.Position,
		"version", next.Version,
	)
	s.publish(next, touched)

	return &wsSvc.MoveResult{
		Item:          placement.Item,
		SourceID:      placement.SourceID,
		DestinationID: placement.DestinationID,
		Index:         placement.Index,
		Touched:       touched,
		Version:       next.Version,
	}, nil
}

func (s *workspaceService) publish(c *models.Collection, touched []string) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(events.Event{
		Type: events.TypeCollectionUpdated,
		Data: events.CollectionUpdated{
			WorkspaceID: c.WorkspaceID,
			Version:     c.Version,
			Touched:     touched,
		},
	})
}
