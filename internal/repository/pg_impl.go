package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexivanou/geofare/internal/model"
	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

// Well below the 65535 parameter limit
const pgChunkSize = 2000

type pgCityRepository struct {
	db *sqlx.DB
}

func (r *pgCityRepository) ListCities(ctx context.Context, popularOnly bool) ([]model.City, error) {
	q := `
		SELECT id, name, state, country, latitude, longitude, is_popular, is_active, timezone
		FROM cities
		WHERE COALESCE(is_active, TRUE)
		  AND (NOT $1 OR is_popular)
		ORDER BY name
	`
	cities := []model.City{}
	if err := r.db.SelectContext(ctx, &cities, q, popularOnly); err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *pgCityRepository) GetCityByName(ctx context.Context, name string) (*model.City, error) {
	q := `
		SELECT id, name, state, country, latitude, longitude, is_popular, is_active, timezone
		FROM cities
		WHERE LOWER(name) = LOWER($1)
		LIMIT 1
	`
	var city model.City
	if err := r.db.GetContext(ctx, &city, q, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

func (r *pgCityRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	return bulkInsert(ctx, r.db, insertCityQuery, cities, pgChunkSize)
}

type pgCabTypeRepository struct {
	db *sqlx.DB
}

func (r *pgCabTypeRepository) ListCabTypes(ctx context.Context) ([]model.CabType, error) {
	cabTypes := []model.CabType{}
	if err := r.db.SelectContext(ctx, &cabTypes, "SELECT * FROM cab_types ORDER BY base_price"); err != nil {
		return nil, err
	}
	return cabTypes, nil
}

func (r *pgCabTypeRepository) GetCabType(ctx context.Context, id string) (*model.CabType, error) {
	var cabType model.CabType
	if err := r.db.GetContext(ctx, &cabType, "SELECT * FROM cab_types WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cabType, nil
}

func (r *pgCabTypeRepository) BulkInsertCabTypes(ctx context.Context, cabTypes []model.CabType) error {
	return bulkInsert(ctx, r.db, insertCabTypeQuery, cabTypes, pgChunkSize)
}
