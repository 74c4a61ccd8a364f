package repository

import (
	"context"

	"github.com/alexivanou/geofare/internal/config"
	"github.com/alexivanou/geofare/internal/model"
	"github.com/jmoiron/sqlx"
)

// CityRepository defines operations for cities
type CityRepository interface {
	// ListCities returns active cities ordered by name
	ListCities(ctx context.Context, popularOnly bool) ([]model.City, error)
	// GetCityByName matches case-insensitively; nil when not found
	GetCityByName(ctx context.Context, name string) (*model.City, error)
	BulkInsertCities(ctx context.Context, cities []model.City) error
}

// CabTypeRepository defines operations for cab types
type CabTypeRepository interface {
	ListCabTypes(ctx context.Context) ([]model.CabType, error)
	// GetCabType returns nil when the id is unknown
	GetCabType(ctx context.Context, id string) (*model.CabType, error)
	BulkInsertCabTypes(ctx context.Context, cabTypes []model.CabType) error
}

// Container holds all repositories
type Container struct {
	City    CityRepository
	CabType CabTypeRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{
			City:    &pgCityRepository{db: db},
			CabType: &pgCabTypeRepository{db: db},
		}
	}

	// Default to SQLite
	return &Container{
		City:    &sqliteCityRepository{db: db},
		CabType: &sqliteCabTypeRepository{db: db},
	}
}

// IsDatabaseEmpty reports whether no cities have been loaded yet
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM cities"); err != nil {
		// Missing table counts as empty
		return true, nil
	}
	return count == 0, nil
}

const insertCityQuery = `
	INSERT INTO cities (id, name, state, country, latitude, longitude, is_popular, is_active, timezone)
	VALUES (:id, :name, :state, :country, :latitude, :longitude, :is_popular, :is_active, :timezone)`

const insertCabTypeQuery = `
	INSERT INTO cab_types (id, name, per_km_rate, base_price, capacity)
	VALUES (:id, :name, :per_km_rate, :base_price, :capacity)`

func bulkInsert[T any](ctx context.Context, db *sqlx.DB, query string, rows []T, chunkSize int) error {
	for i := 0; i < len(rows); i += chunkSize {
		end := i + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		if _, err := db.NamedExecContext(ctx, query, rows[i:end]); err != nil {
			return err
		}
	}
	return nil
}
