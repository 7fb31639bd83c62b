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

type memberService struct {
	members    wsRepo.MemberRepository
	workspaces wsSvc.WorkspaceService
	broker     *events.Broker
	logger     *slog.Logger
}

// NewMemberService creates a new member service
func NewMemberService(
	members wsRepo.MemberRepository,
	workspaces wsSvc.WorkspaceService,
	broker *events.Broker,
	logger *slog.Logger,
) wsSvc.MemberService {
	return &memberService{
		members:    members,
		workspaces: workspaces,
		broker:     broker,
		logger:     logger,
	}
}

// List returns the members of a folder
func (s *memberService) List(ctx context.Context, folderID string) ([]models.Member, error) {
	if err := s.requireFolder(ctx, folderID); err != nil {
		return nil, err
	}
	return s.members.List(ctx, folderID)
}

// Add adds a user to a folder
func (s *memberService) Add(ctx context.Context, req *wsSvc.AddMemberRequest) (*models.Member, error) {
	if err := validateAddMemberRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.requireFolder(ctx, req.FolderID); err != nil {
		return nil, err
	}

	existing, err := s.members.Get(ctx, req.FolderID, req.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("%s is already a member of this folder", existing.UserName),
			ResourceType: "member",
			ResourceID:   existing.ID,
		}
	}

	member := &models.Member{
		ID:       uuid.NewString(),
		FolderID: req.FolderID,
		UserID:   req.UserID,
		UserName: req.UserName,
		Avatar:   req.Avatar,
		Role:     req.Role,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member added",
		"folder_id", member.FolderID,
		"user_id", member.UserID,
		"role", member.Role,
	)
	s.publish(member.FolderID)
	return member, nil
}

// SetRole changes a member's role. The last owner cannot be demoted.
func (s *memberService) SetRole(ctx context.Context, folderID, userID string, role models.Role) (*models.Member, error) {
	if err := validateRole(role); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	member, err := s.members.Get(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}
	if member.Role == models.RoleOwner && role != models.RoleOwner {
		if err := s.requireAnotherOwner(ctx, folderID, userID); err != nil {
			return nil, err
		}
	}

	if err := s.members.UpdateRole(ctx, folderID, userID, role); err != nil {
		return nil, err
	}
	member.Role = role

	s.logger.Info("member role changed", "folder_id", folderID, "user_id", userID, "role", role)
	s.publish(folderID)
	return member, nil
}

// Remove removes a member; the last owner cannot be removed
func (s *memberService) Remove(ctx context.Context, folderID, userID string) error {
	member, err := s.members.Get(ctx, folderID, userID)
	if err != nil {
		return err
	}
	if member.Role == models.RoleOwner {
		if err := s.requireAnotherOwner(ctx, folderID, userID); err != nil {
			return err
		}
	}
	if err := s.members.Delete(ctx, folderID, userID); err != nil {
		return err
	}

	s.logger.Info("member removed", "folder_id", folderID, "user_id", userID)
	s.publish(folderID)
	return nil
}

// Permission returns the folder's sharing mode
func (s *memberService) Permission(ctx context.Context, folderID string) (models.Permission, error) {
	if err := s.requireFolder(ctx, folderID); err != nil {
		return "", err
	}
	return s.members.GetPermission(ctx, folderID)
}

// SetPermission changes the folder's sharing mode
func (s *memberService) SetPermission(ctx context.Context, folderID string, permission models.Permission) error {
	if err := validatePermission(permission); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.requireFolder(ctx, folderID); err != nil {
		return err
	}
	if err := s.members.SetPermission(ctx, folderID, permission); err != nil {
		return err
	}

	s.logger.Info("folder permission changed", "folder_id", folderID, "permission", permission)
	s.publish(folderID)
	return nil
}

func (s *memberService) requireFolder(ctx context.Context, folderID string) error {
	_, err := s.workspaces.Folder(ctx, folderID)
	return err
}

func (s *memberService) requireAnotherOwner(ctx context.Context, folderID, userID string) error {
	all, err := s.members.List(ctx, folderID)
	if err != nil {
		return err
	}
	for _, m := range all {
		if m.UserID != userID && m.Role == models.RoleOwner {
			return nil
		}
	}
	return fmt.Errorf("%w: a folder must keep at least one owner", domain.ErrValidation)
}

func (s *memberService) publish(folderID string) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(events.Event{
		Type: events.TypeMembersUpdated,
		Data: events.MembersUpdated{FolderID: folderID},
	})
}
