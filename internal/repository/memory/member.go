package memory

import (
	"context"
	"fmt"
	"sync"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
	wsRepo "docspace/internal/domain/repositories/workspace"
)

// MemberRepository stores folder members and permissions in process
type MemberRepository struct {
	mu          sync.RWMutex
	members     map[string][]models.Member
	permissions map[string]models.Permission
}

// NewMemberRepository creates an empty in-memory member store
func NewMemberRepository() *MemberRepository {
	return &MemberRepository{
		members:     make(map[string][]models.Member),
		permissions: make(map[string]models.Permission),
	}
}

var _ wsRepo.MemberRepository = (*MemberRepository)(nil)

func (r *MemberRepository) List(ctx context.Context, folderID string) ([]models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]models.Member, len(r.members[folderID]))
	copy(members, r.members[folderID])
	return members, nil
}

func (r *MemberRepository) Get(ctx context.Context, folderID, userID string) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexLocked(folderID, userID)
	if idx < 0 {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("member %s not found", userID)}
	}
	member := r.members[folderID][idx]
	return &member, nil
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(member.FolderID, member.UserID) >= 0 {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("user '%s' is already a member", member.UserID),
			ResourceType: "member",
			ResourceID:   member.UserID,
		}
	}
	r.members[member.FolderID] = append(r.members[member.FolderID], *member)
	return nil
}

func (r *MemberRepository) UpdateRole(ctx context.Context, folderID, userID string, role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(folderID, userID)
	if idx < 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("member %s not found", userID)}
	}
	r.members[folderID][idx].Role = role
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, folderID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(folderID, userID)
	if idx < 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("member %s not found", userID)}
	}
	list := r.members[folderID]
	next := make([]models.Member, 0, len(list)-1)
	next = append(next, list[:idx]...)
	r.members[folderID] = append(next, list[idx+1:]...)
	return nil
}

func (r *MemberRepository) GetPermission(ctx context.Context, folderID string) (models.Permission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.permissions[folderID]; ok {
		return p, nil
	}
	return models.PermissionPrivate, nil
}

func (r *MemberRepository) SetPermission(ctx context.Context, folderID string, permission models.Permission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.permissions[folderID] = permission
	return nil
}

func (r *MemberRepository) indexLocked(folderID, userID string) int {
	for i, m := range r.members[folderID] {
		if m.UserID == userID {
			return i
		}
	}
	return -1
}
