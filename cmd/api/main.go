package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/studytube/backend/docs"
	"github.com/studytube/backend/internal/auth"
	"github.com/studytube/backend/internal/config"
	"github.com/studytube/backend/internal/events"
	"github.com/studytube/backend/internal/handlers"
	"github.com/studytube/backend/internal/logger"
	"github.com/studytube/backend/internal/middleware"
	"github.com/studytube/backend/internal/repositories"
	"github.com/studytube/backend/internal/services"
	"github.com/studytube/backend/internal/youtube"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title StudyTube API
// @version 1.0
// @description API for importing YouTube playlists as courses and tracking study progress

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting StudyTube API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Playlist fetcher; imports report a configuration error without a key
	var fetcher services.PlaylistFetcher
	if cfg.YouTube.APIKey == "" {
		logger.Logger.Warn("YOUTUBE_API_KEY is not set, playlist imports are disabled")
	} else {
		ytCfg := youtube.DefaultConfig()
		ytCfg.RequestsPerSecond = cfg.YouTube.RequestsPerSecond
		ytCfg.Burst = max(1, int(cfg.YouTube.RequestsPerSecond))
		ytCfg.Timeout = cfg.YouTube.Timeout

		client, err := youtube.NewClient(context.Background(), cfg.YouTube.APIKey, ytCfg, logger.Logger)
		if err != nil {
			logger.Logger.Fatal("Failed to create YouTube client", zap.Error(err))
		}
		fetcher = client
	}

	// Event bus
	bus := events.NewBus(logger.Logger)
	bus.Subscribe(events.LogHandler(logger.Logger))

	// Initialize repositories
	courseRepo := repositories.NewCourseRepository(db)
	videoRepo := repositories.NewVideoRepository(db)
	progressRepo := repositories.NewProgressRepository(db)
	checkpointRepo := repositories.NewCheckpointRepository(db)
	streakRepo := repositories.NewStreakRepository(db)
	profileRepo := repositories.NewProfileRepository(db)

	// Initialize services
	importService := services.NewImportService(fetcher, courseRepo, videoRepo, bus, cfg.Import.MaxCoursesPerOwner, logger.Logger)
	quotaService := services.NewQuotaService(courseRepo, cfg.Import.MaxCoursesPerOwner, logger.Logger)
	courseService := services.NewCourseService(courseRepo, videoRepo, bus, logger.Logger)
	progressService := services.NewProgressService(progressRepo, checkpointRepo, videoRepo, bus, logger.Logger)
	statsService := services.NewStatsService(courseRepo, progressRepo, streakRepo, logger.Logger)
	profileService := services.NewProfileService(profileRepo, logger.Logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, logger.Logger)
	importHandler := handlers.NewImportHandler(importService, quotaService, logger.Logger)
	courseHandler := handlers.NewCourseHandler(courseService, logger.Logger)
	progressHandler := handlers.NewProgressHandler(progressService, logger.Logger)
	statsHandler := handlers.NewStatsHandler(statsService, profileService, logger.Logger)

	// Initialize auth middleware
	authMiddleware := middleware.AuthMiddleware(auth.NewTokenValidator(cfg.JWT.Secret, cfg.JWT.Issuer))

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB

	r.Get("/health", healthHandler.Health)

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Group(func(r chi.Router) {
			// imports hit the YouTube API, keep them well below its quota
			r.Use(httprate.LimitByIP(10, time.Minute))
			importHandler.RegisterRoutes(r)
		})
		courseHandler.RegisterRoutes(r)
		progressHandler.RegisterRoutes(r)
		statsHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.YouTube.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "studytube_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// running from cmd/api
		if _, err := os.Stat("../../migrations"); err == nil {
			migrationPath = "file://../../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
