package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the workspace tables when missing
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, tablePrefix string) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Workspaces + ` (
			id TEXT PRIMARY KEY,
			root_id TEXT NOT NULL,
			version BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// folder_id is NULL only for the root folder item
		`CREATE TABLE IF NOT EXISTS ` + tables.Items + ` (
			workspace_id TEXT NOT NULL REFERENCES ` + tables.Workspaces + `(id) ON DELETE CASCADE,
			id TEXT NOT NULL,
			folder_id TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			name VARCHAR(255) NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('folder', 'document', 'markdown', 'image', 'video', 'audio', 'archive', 'meeting', 'other')),
			owner TEXT NOT NULL DEFAULT '',
			owner_id TEXT NOT NULL DEFAULT '',
			last_modified TEXT NOT NULL DEFAULT '',
			size BIGINT,
			PRIMARY KEY (workspace_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Members + ` (
			id TEXT PRIMARY KEY,
			folder_id TEXT NOT NULL,
			user_id VARCHAR(64) NOT NULL,
			user_name VARCHAR(100) NOT NULL,
			avatar TEXT,
			role TEXT NOT NULL CHECK (role IN ('owner', 'editor', 'viewer')),
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (folder_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Permissions + ` (
			folder_id TEXT PRIMARY KEY,
			permission TEXT NOT NULL CHECK (permission IN ('private', 'specified', 'viewable', 'editable'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `items_folder_position ON ` + tables.Items + `(workspace_id, folder_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `members_folder ON ` + tables.Members + `(folder_id, joined_at)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("run schema: %w", err)
		}
	}
	return nil
}

// DropTables removes every workspace table
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range tables.All() {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// ClearData empties the tables but keeps the schema
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range tables.All() {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
