package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/geofare/internal/api"
	"github.com/alexivanou/geofare/internal/config"
	"github.com/alexivanou/geofare/internal/database"
	"github.com/alexivanou/geofare/internal/repository"
	"github.com/alexivanou/geofare/internal/routecache"
	"github.com/alexivanou/geofare/internal/routing"
	"github.com/alexivanou/geofare/internal/seeder"
	"github.com/alexivanou/geofare/internal/service"
	"github.com/alexivanou/geofare/internal/stats"
	"go.uber.org/zap"
)

const migrationsDir = "migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	repos := repository.NewRepositories(db, cfg.DB.Type)

	ctx := context.Background()
	if err := database.Migrate(db, cfg.DB, migrationsDir); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	isEmpty, err := repository.IsDatabaseEmpty(ctx, db)
	if err != nil {
		logger.Warn("Failed to check if database is empty", zap.Error(err))
	} else if isEmpty {
		logger.Info("Database is empty, auto-seeding data...")
		if err := autoSeedDatabase(ctx, repos, logger); err != nil {
			logger.Fatal("Failed to auto-seed database", zap.Error(err))
		}
		logger.Info("Database seeded successfully")
	}

	opts := service.Options{
		Routing: cfg.Routing,
		Fare:    cfg.Fare,
		Logger:  logger,
	}

	if cfg.Routing.GoogleMapsAPIKey != "" {
		provider, err := routing.NewMapsProvider(cfg.Routing.GoogleMapsAPIKey)
		if err != nil {
			logger.Fatal("Failed to create route provider", zap.Error(err))
		}
		opts.Provider = provider
		logger.Info("Routing with Google Maps Directions")
	} else {
		logger.Info("No maps API key, driving legs are estimated",
			zap.Float64("road_factor", cfg.Routing.RoadFactor),
			zap.Float64("average_speed_kmh", cfg.Routing.AverageSpeedKmh),
		)
	}

	if cfg.Redis.Enabled() {
		rdb := routecache.NewClient(cfg.Redis.Addr)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unavailable, route cache disabled", zap.Error(err))
		} else {
			opts.Cache = routecache.New(rdb, cfg.Redis.RouteTTL)
			logger.Info("Route cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
	}

	svc := service.NewService(repos.City, repos.CabType, opts)
	statsCollector := stats.NewCollector(db, cfg.DB)
	router := api.NewRouter(svc, statsCollector, cfg.Server.APIToken, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func autoSeedDatabase(ctx context.Context, repos *repository.Container, logger *zap.Logger) error {
	ds, err := seeder.NewParser().Embedded()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	return seeder.Seed(ctx, repos, ds, logger)
}
