package main

import (
	"context"
	"flag"
	"log"

	"github.com/alexivanou/geofare/internal/config"
	"github.com/alexivanou/geofare/internal/database"
	"github.com/alexivanou/geofare/internal/repository"
	"github.com/alexivanou/geofare/internal/seeder"
	"go.uber.org/zap"
)

func main() {
	var (
		file     = flag.String("file", "", "JSON dataset to load; the embedded dataset when empty")
		truncate = flag.Bool("truncate", false, "Delete existing cities and cab types first")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	if err := database.Migrate(db, cfg.DB, "migrations"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	parser := seeder.NewParser()
	var ds *seeder.Dataset
	if *file != "" {
		logger.Info("Parsing dataset...", zap.String("file", *file))
		ds, err = parser.ParseFile(*file)
	} else {
		ds, err = parser.Embedded()
	}
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}

	if *truncate {
		if _, err := db.ExecContext(ctx, "DELETE FROM cities"); err != nil {
			logger.Fatal("Failed to clear cities", zap.Error(err))
		}
		if _, err := db.ExecContext(ctx, "DELETE FROM cab_types"); err != nil {
			logger.Fatal("Failed to clear cab types", zap.Error(err))
		}
	}

	repos := repository.NewRepositories(db, cfg.DB.Type)
	if err := seeder.Seed(ctx, repos, ds, logger); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}

	logger.Info("Data import completed successfully!",
		zap.Int("cities", len(ds.Cities)),
		zap.Int("cab_types", len(ds.CabTypes)),
	)
}
