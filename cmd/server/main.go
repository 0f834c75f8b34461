package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/wamuzi-news/internal/api"
	"github.com/wamuzi-news/internal/config"
	"github.com/wamuzi-news/internal/database"
	"github.com/wamuzi-news/internal/repository"
	"github.com/wamuzi-news/internal/service"
	"github.com/wamuzi-news/internal/summary"
	"github.com/wamuzi-news/internal/wordpress"
	"github.com/wamuzi-news/pkg/logger"
)

func main() {
	rollback := flag.Bool("rollback", false, "roll back the latest migration and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// the configured logger is not available yet
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Wamuzi News server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if *rollback {
		if err := db.MigrateDown(cfg.Server.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to roll back migration")
		}
		return
	}

	// Run migrations
	if err := db.RunMigrations(cfg.Server.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Summary cache: Redis when configured, otherwise process memory
	var store summary.Store = summary.NewMemoryStore()
	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis unreachable, caching summaries in memory")
		} else {
			store = summary.NewRedisStore(rdb)
			log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Caching summaries in Redis")
		}
	}
	if cfg.Summary.APIKey == "" {
		log.Warn().Msg("API_KEY not set, article summaries are disabled")
	}

	// Initialize services
	services := service.NewServices(service.Deps{
		Repos:      repos,
		Source:     wordpress.NewClient(cfg.WordPress.BaseURL, cfg.WordPress.Timeout, log),
		Summarizer: summary.NewClient(cfg.Summary),
		Store:      store,
	}, cfg, log)

	// Initial content load; pages show an error banner until one succeeds
	if err := services.Content.Refresh(context.Background()); err != nil {
		log.Error().Err(err).Msg("Initial content load failed, will retry on schedule")
	}

	// Start background processor
	go services.Scheduler.StartProcessor(context.Background())

	// Initialize router
	gin.SetMode(gin.ReleaseMode)
	router, err := api.NewRouter(services, cfg, db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build router")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop background processor
	services.Scheduler.StopProcessor()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
