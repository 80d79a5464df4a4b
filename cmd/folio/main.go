// Package main is the entry point for the folio API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/internal/auth"
	"folio/internal/cache"
	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/handlers"
	"folio/internal/router"
	"folio/internal/storage"
	"folio/internal/store"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (optional — public responses are just not cached
	// without it).
	var respCache *cache.ResponseCache
	if cfg.ValkeyEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		respCache = cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)
		slog.Info("valkey response cache enabled", "host", cfg.ValkeyHost)
	} else {
		slog.Warn("valkey not configured — response caching disabled")
	}

	// Connect to S3-compatible object storage (optional — app works
	// without it, with media uploads disabled).
	var storageClient *storage.Client
	if cfg.S3Enabled() {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", cfg.S3Bucket,
		)
	} else {
		slog.Warn("s3 storage not configured — media uploads disabled")
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	projectStore := store.NewProjectStore(db)
	commentStore := store.NewCommentStore(db)
	categoryStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	technologyStore := store.NewTechnologyStore(db)
	mediaStore := store.NewMediaStore(db)

	// Token service for the stateless API auth.
	tokens := auth.NewTokenService(cfg.JWTSecret, auth.DefaultTTL)

	// Create handler groups with their dependencies.
	h := router.Handlers{
		Auth:     handlers.NewAuth(tokens, userStore, "folio"),
		Posts:    handlers.NewPosts(postStore, commentStore, tagStore, respCache),
		Projects: handlers.NewProjects(projectStore, technologyStore, respCache),
		Comments: handlers.NewComments(commentStore, postStore, respCache),
		Taxonomy: handlers.NewTaxonomy(categoryStore, tagStore, technologyStore, respCache),
		Media:    handlers.NewMedia(mediaStore, storageClient),
		Stats:    handlers.NewStats(postStore, projectStore, commentStore),
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(tokens, h)

	// Create the HTTP server with sensible timeouts. Media uploads are the
	// slowest requests, so the write timeout leaves room for them.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
