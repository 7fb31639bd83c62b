package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"docspace/internal/config"
	wsRepo "docspace/internal/domain/repositories/workspace"
	"docspace/internal/handler"
	"docspace/internal/handler/sse"
	"docspace/internal/httputil"
	"docspace/internal/middleware"
	"docspace/internal/repository/memory"
	"docspace/internal/repository/postgres"
	postgresWs "docspace/internal/repository/postgres/workspace"
	"docspace/internal/seed"
	"docspace/internal/service/drag"
	"docspace/internal/service/events"
	"docspace/internal/service/navigation"
	"docspace/internal/service/uistate"
	serviceWs "docspace/internal/service/workspace"

	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.OpenLogFile(cfg.LogDir, time.Now())
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := config.NewLogger(cfg.Environment, logOutput)
	slog.SetDefault(logger)

	if cfg.LogDir != "" {
		if removed, err := config.PruneLogs(cfg.LogDir, cfg.LogMaxFiles); err != nil {
			logger.Warn("failed to prune old log files", "error", err)
		} else if len(removed) > 0 {
			logger.Debug("pruned old log files", "count", len(removed))
		}
	}

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage", cfg.Storage,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	var collections wsRepo.CollectionRepository
	var members wsRepo.MemberRepository

	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		logger.Info("database connected", "table_prefix", cfg.TablePrefix)

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		}
		txManager := postgres.NewTransactionManager(pool, logger)
		collections = postgresWs.NewCollectionRepository(repoConfig, txManager)
		members = postgresWs.NewMemberRepository(repoConfig)
	case config.StorageMemory:
		collections = memory.NewCollectionRepository()
		members = memory.NewMemberRepository()
	default:
		log.Fatalf("Unknown STORAGE %q (want memory or postgres)", cfg.Storage)
	}

	broker := events.NewBroker(64, logger)

	// Seed: memory always starts from the fixture; postgres only when empty
	fixture, err := seed.LoadFile(cfg.FixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}
	reloader := seed.NewReloader(collections, members, broker, logger)
	if _, err := collections.Load(ctx, fixture.Workspace); err != nil {
		if err := reloader.Reload(ctx, fixture); err != nil {
			log.Fatalf("Failed to seed workspace: %v", err)
		}
	}
	if cfg.WatchFixture && cfg.FixturePath != "" {
		go func() {
			if err := reloader.Watch(ctx, cfg.FixturePath, 0); err != nil {
				logger.Error("fixture watcher stopped", "error", err)
			}
		}()
	}

	// Services
	codec, err := drag.NewPayloadCodec(cfg.DragPayloadSecret, cfg.DragPayloadTTL)
	if err != nil {
		log.Fatalf("Failed to create drag payload codec: %v", err)
	}

	workspaceService := serviceWs.NewWorkspaceService(fixture.Workspace, collections, broker, logger)
	memberService := serviceWs.NewMemberService(members, workspaceService, broker, logger)
	dragService := drag.NewDragService(workspaceService, drag.Config{
		Classifier: serviceWs.NewClassifier(cfg.DropEdgeThreshold),
		Codec:      codec,
		SessionTTL: cfg.DragSessionTTL,
	}, logger)
	navigationService := navigation.NewNavigationService(workspaceService, logger)
	uiService := uistate.NewUIStateService(workspaceService, broker, logger)

	// Handlers
	handlers := &handler.Handlers{
		Workspace:  handler.NewWorkspaceHandler(workspaceService, logger),
		Drag:       handler.NewDragHandler(dragService, workspaceService, logger),
		Navigation: handler.NewNavigationHandler(navigationService, logger),
		UI:         handler.NewUIHandler(uiService, logger),
		Members:    handler.NewMemberHandler(memberService, logger),
		Events:     handler.NewEventsHandler(broker, sse.DefaultConfig(), logger),
	}

	mux := http.NewServeMux()
	handlers.Register(mux)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Rate limit → Recovery → User → Routes
	var h http.Handler = mux
	h = middleware.CurrentUser(cfg.DefaultUserID, cfg.DefaultUserName)(h)
	h = middleware.Recovery(logger)(h)
	h = httprate.Limit(cfg.RateLimitPerMin, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httputil.RespondError(w, http.StatusTooManyRequests, "rate limit exceeded")
		}),
	)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", middleware.HeaderUserID, middleware.HeaderUserName, "Last-Event-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
