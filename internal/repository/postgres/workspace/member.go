package workspace

import (
	"context"
	"fmt"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
	wsRepo "docspace/internal/domain/repositories/workspace"
	"docspace/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMemberRepository implements the MemberRepository interface
type PostgresMemberRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(config *postgres.RepositoryConfig) wsRepo.MemberRepository {
	return &PostgresMemberRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// List returns members of a folder in join order
func (r *PostgresMemberRepository) List(ctx context.Context, folderID string) ([]models.Member, error) {
	query := fmt.Sprintf(`
		SELECT id, folder_id, user_id, user_name, avatar, role, joined_at
		FROM %s
		WHERE folder_id = $1
		ORDER BY joined_at, id
	`, r.tables.Members)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		var role string
		if err := rows.Scan(&m.ID, &m.FolderID, &m.UserID, &m.UserName, &m.Avatar, &role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		m.Role = models.Role(role)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

// Get retrieves one member
func (r *PostgresMemberRepository) Get(ctx context.Context, folderID, userID string) (*models.Member, error) {
	query := fmt.Sprintf(`
		SELECT id, folder_id, user_id, user_name, avatar, role, joined_at
		FROM %s
		WHERE folder_id = $1 AND user_id = $2
	`, r.tables.Members)

	var m models.Member
	var role string
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, folderID, userID).Scan(
		&m.ID, &m.FolderID, &m.UserID, &m.UserName, &m.Avatar, &role, &m.JoinedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("member %s not found", userID)}
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	m.Role = models.Role(role)
	return &m, nil
}

// Create inserts a member
func (r *PostgresMemberRepository) Create(ctx context.Context, member *models.Member) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, folder_id, user_id, user_name, avatar, role, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Members)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		member.ID,
		member.FolderID,
		member.UserID,
		member.UserName,
		member.Avatar,
		string(member.Role),
		member.JoinedAt,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("user '%s' is already a member", member.UserID),
				ResourceType: "member",
				ResourceID:   member.UserID,
			}
		}
		return postgres.WrapWriteError("create member", err)
	}
	return nil
}

// UpdateRole changes a member's role
func (r *PostgresMemberRepository) UpdateRole(ctx context.Context, folderID, userID string, role models.Role) error {
	query := fmt.Sprintf(`UPDATE %s SET role = $3 WHERE folder_id = $1 AND user_id = $2`, r.tables.Members)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, folderID, userID, string(role))
	if err != nil {
		return postgres.WrapWriteError("update member role", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("member %s not found", userID)}
	}
	return nil
}

// Delete removes a member
func (r *PostgresMemberRepository) Delete(ctx context.Context, folderID, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE folder_id = $1 AND user_id = $2`, r.tables.Members)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, folderID, userID)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("member %s not found", userID)}
	}
	return nil
}

// GetPermission returns the folder's sharing mode, private when unset
func (r *PostgresMemberRepository) GetPermission(ctx context.Context, folderID string) (models.Permission, error) {
	query := fmt.Sprintf(`SELECT permission FROM %s WHERE folder_id = $1`, r.tables.Permissions)

	var permission string
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, folderID).Scan(&permission); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return models.PermissionPrivate, nil
		}
		return "", fmt.Errorf("get permission: %w", err)
	}
	return models.Permission(permission), nil
}

// SetPermission upserts the folder's sharing mode
func (r *PostgresMemberRepository) SetPermission(ctx context.Context, folderID string, permission models.Permission) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (folder_id, permission) VALUES ($1, $2)
		ON CONFLICT (folder_id) DO UPDATE SET permission = EXCLUDED.permission
	`, r.tables.Permissions)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, folderID, string(permission)); err != nil {
		return postgres.WrapWriteError("set permission", err)
	}
	return nil
}
