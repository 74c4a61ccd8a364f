// Package seeder loads city and cab-type datasets into storage.
package seeder

import (
	"context"
	"fmt"

	"github.com/alexivanou/geofare/internal/repository"
	"go.uber.org/zap"
)

// Seed inserts every city and cab type of the dataset
func Seed(ctx context.Context, repos *repository.Container, ds *Dataset, logger *zap.Logger) error {
	logger.Info("Inserting cities...", zap.Int("count", len(ds.Cities)))
	if err := repos.City.BulkInsertCities(ctx, ds.Cities); err != nil {
		return fmt.Errorf("failed to insert cities: %w", err)
	}

	logger.Info("Inserting cab types...", zap.Int("count", len(ds.CabTypes)))
	if err := repos.CabType.BulkInsertCabTypes(ctx, ds.CabTypes); err != nil {
		return fmt.Errorf("failed to insert cab types: %w", err)
	}

	logger.Info("Dataset loaded", zap.String("version", ds.Version))
	return nil
}
