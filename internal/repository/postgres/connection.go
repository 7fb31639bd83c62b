package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"docspace/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Workspaces  string
	Items       string
	Members     string
	Permissions string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Workspaces:  fmt.Sprintf("%sworkspaces", prefix),
		Items:       fmt.Sprintf("%sitems", prefix),
		Members:     fmt.Sprintf("%sfolder_members", prefix),
		Permissions: fmt.Sprintf("%sfolder_permissions", prefix),
	}
}

// All returns every table, children first (drop order)
func (t *TableNames) All() []string {
	return []string{t.Permissions, t.Members, t.Items, t.Workspaces}
}

// CreateConnectionPool creates a pgx pool and pings it.
//
// PgBouncer in transaction pooling mode (port 6543) cannot hold prepared
// statements, so that port switches to QueryExecModeCacheDescribe unless the
// connection string sets default_query_exec_mode itself. Table prefixes are
// interpolated before statements are sent, so each environment caches its own.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the ctx transaction when ExecTx opened one, else the pool
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx, ok := repositories.TxFrom(ctx); ok {
		return tx
	}
	return pool
}
