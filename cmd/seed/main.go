package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"docspace/internal/config"
	"docspace/internal/repository/postgres"
	postgresWs "docspace/internal/repository/postgres/workspace"
	"docspace/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't load the fixture")
	clearData := flag.Bool("clear-data", false, "Delete all rows (keep schema)")
	fixturePath := flag.String("fixture", "", "Fixture file (defaults to FIXTURE_PATH, then the embedded fixture)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	// Destructive flags are refused in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("Refusing --drop-tables / --clear-data in production")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		if err := postgres.DropTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		logger.Info("tables dropped", "prefix", cfg.TablePrefix)
	}

	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	logger.Info("schema ready", "prefix", cfg.TablePrefix)

	if *schemaOnly {
		return
	}

	if *clearData {
		if err := postgres.ClearData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		logger.Info("data cleared")
		return
	}

	path := *fixturePath
	if path == "" {
		path = cfg.FixturePath
	}
	fixture, err := seed.LoadFile(path)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	txManager := postgres.NewTransactionManager(pool, logger)
	collections := postgresWs.NewCollectionRepository(repoConfig, txManager)
	members := postgresWs.NewMemberRepository(repoConfig)

	c, err := seed.Apply(ctx, fixture, collections, members)
	if err != nil {
		log.Fatalf("Failed to seed workspace: %v", err)
	}

	logger.Info("seeding complete",
		"workspace_id", c.WorkspaceID,
		"items", c.ItemCount(),
		"folders", len(c.Folders),
		"version", c.Version,
	)
}
