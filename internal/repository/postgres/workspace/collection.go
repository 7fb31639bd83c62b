package workspace

import (
	"context"
	"fmt"
	"log/slog"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
	"docspace/internal/domain/repositories"
	wsRepo "docspace/internal/domain/repositories/workspace"
	"docspace/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCollectionRepository stores a workspace as one row per item with
// its containing folder and position. Updates lock the workspace row, so
// concurrent moves serialize the same way the in-memory store does.
type PostgresCollectionRepository struct {
	pool      *pgxpool.Pool
	tables    *postgres.TableNames
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(config *postgres.RepositoryConfig, txManager repositories.TransactionManager) wsRepo.CollectionRepository {
	return &PostgresCollectionRepository{
		pool:      config.Pool,
		tables:    config.Tables,
		txManager: txManager,
		logger:    config.Logger,
	}
}

// Load reads the whole workspace
func (r *PostgresCollectionRepository) Load(ctx context.Context, workspaceID string) (*models.Collection, error) {
	return r.load(ctx, postgres.GetExecutor(ctx, r.pool), workspaceID, false)
}

// Update applies fn inside a transaction and writes back touched folders
func (r *PostgresCollectionRepository) Update(ctx context.Context, workspaceID string, fn wsRepo.MutateFn) (*models.Collection, error) {
	var next *models.Collection

	err := r.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		executor := postgres.GetExecutor(txCtx, r.pool)

		current, err := r.load(txCtx, executor, workspaceID, true)
		if err != nil {
			return err
		}

		next, err = fn(current)
		if err != nil {
			return err
		}

		for _, folderID := range next.Touched() {
			folder, ok := next.Folders[folderID]
			if !ok {
				continue
			}
			if err := r.writeFolder(txCtx, executor, workspaceID, folder); err != nil {
				return err
			}
		}

		query := fmt.Sprintf(`
			UPDATE %s SET version = version + 1, updated_at = NOW()
			WHERE id = $1
			RETURNING version
		`, r.tables.Workspaces)
		return executor.QueryRow(txCtx, query, workspaceID).Scan(&next.Version)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("collection updated",
		"workspace_id", workspaceID,
		"version", next.Version,
		"touched", next.Touched(),
	)
	return next, nil
}

// Replace rewrites every row of the workspace
func (r *PostgresCollectionRepository) Replace(ctx context.Context, collection *models.Collection) error {
	return r.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		executor := postgres.GetExecutor(txCtx, r.pool)

		upsert := fmt.Sprintf(`
			INSERT INTO %s (id, root_id, version, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (id) DO UPDATE
			SET root_id = EXCLUDED.root_id,
			    version = GREATEST(%s.version + 1, EXCLUDED.version),
			    updated_at = NOW()
			RETURNING version
		`, r.tables.Workspaces, r.tables.Workspaces)
		if err := executor.QueryRow(txCtx, upsert,
			collection.WorkspaceID,
			collection.Root.ID,
			collection.Version,
		).Scan(&collection.Version); err != nil {
			return fmt.Errorf("upsert workspace: %w", err)
		}

		deleteItems := fmt.Sprintf(`DELETE FROM %s WHERE workspace_id = $1`, r.tables.Items)
		if _, err := executor.Exec(txCtx, deleteItems, collection.WorkspaceID); err != nil {
			return fmt.Errorf("clear items: %w", err)
		}

		if err := r.writeItem(txCtx, executor, collection.WorkspaceID, nil, 0, collection.Root); err != nil {
			return err
		}
		for _, folder := range collection.Folders {
			if err := r.writeFolder(txCtx, executor, collection.WorkspaceID, folder); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresCollectionRepository) load(ctx context.Context, executor repositories.DBTX, workspaceID string, forUpdate bool) (*models.Collection, error) {
	lock := ""
	if forUpdate {
		lock = "FOR UPDATE"
	}
	query := fmt.Sprintf(`SELECT root_id, version FROM %s WHERE id = $1 %s`, r.tables.Workspaces, lock)

	var rootID string
	var version int64
	if err := executor.QueryRow(ctx, query, workspaceID).Scan(&rootID, &version); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("workspace %s not found", workspaceID)}
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	rows, err := executor.Query(ctx, fmt.Sprintf(`
		SELECT id, folder_id, name, type, owner, owner_id, last_modified, size
		FROM %s
		WHERE workspace_id = $1
		ORDER BY folder_id NULLS FIRST, position
	`, r.tables.Items), workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var root *models.FileItem
	folders := make(map[string]*models.FolderData)
	names := make(map[string]string)

	for rows.Next() {
		var item models.FileItem
		var folderID *string
		var itemType string
		if err := rows.Scan(
			&item.ID,
			&folderID,
			&item.Name,
			&itemType,
			&item.Owner,
			&item.OwnerID,
			&item.LastModified,
			&item.Size,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.Type = models.FileType(itemType)
		names[item.ID] = item.Name

		if folderID == nil {
			if item.ID == rootID {
				root = &item
			}
			continue
		}
		folder, ok := folders[*folderID]
		if !ok {
			folder = &models.FolderData{ID: *folderID, Files: []models.FileItem{}}
			folders[*folderID] = folder
		}
		folder.Files = append(folder.Files, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("workspace %s has no root item", workspaceID)
	}

	for id, folder := range folders {
		folder.Name = names[id]
	}

	collection, err := models.NewCollection(workspaceID, *root, folders)
	if err != nil {
		return nil, fmt.Errorf("load workspace %s: %w", workspaceID, err)
	}
	collection.Version = version
	return collection, nil
}

// writeFolder stores the folder's list order. Items that left the folder are
// rewritten by the folder that now holds them.
func (r *PostgresCollectionRepository) writeFolder(ctx context.Context, executor repositories.DBTX, workspaceID string, folder *models.FolderData) error {
	folderID := folder.ID
	for i, item := range folder.Files {
		if err := r.writeItem(ctx, executor, workspaceID, &folderID, i, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresCollectionRepository) writeItem(ctx context.Context, executor repositories.DBTX, workspaceID string, folderID *string, position int, item models.FileItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (workspace_id, id, folder_id, position, name, type, owner, owner_id, last_modified, size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (workspace_id, id) DO UPDATE
		SET folder_id = EXCLUDED.folder_id,
		    position = EXCLUDED.position,
		    name = EXCLUDED.name,
		    type = EXCLUDED.type,
		    owner = EXCLUDED.owner,
		    owner_id = EXCLUDED.owner_id,
		    last_modified = EXCLUDED.last_modified,
		    size = EXCLUDED.size
	`, r.tables.Items)

	_, err := executor.Exec(ctx, query,
		workspaceID,
		item.ID,
		folderID,
		position,
		item.Name,
		string(item.Type),
		item.Owner,
		item.OwnerID,
		item.LastModified,
		item.Size,
	)
	if err != nil {
		return postgres.WrapWriteError("write item "+item.ID, err)
	}
	return nil
}
