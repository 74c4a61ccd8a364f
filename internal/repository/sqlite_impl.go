package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexivanou/geofare/internal/model"
	"github.com/jmoiron/sqlx"
)

// SQLite variable limit: 100 rows * 9 params stays well under 999
const sqliteChunkSize = 100

type sqliteCityRepository struct {
	db *sqlx.DB
}

func (r *sqliteCityRepository) ListCities(ctx context.Context, popularOnly bool) ([]model.City, error) {
	q := `
		SELECT id, name, state, country, latitude, longitude, is_popular, is_active, timezone
		FROM cities
		WHERE COALESCE(is_active, 1) = 1
		  AND (? = 0 OR is_popular = 1)
		ORDER BY name
	`
	cities := []model.City{}
	if err := r.db.SelectContext(ctx, &cities, q, popularOnly); err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *sqliteCityRepository) GetCityByName(ctx context.Context, name string) (*model.City, error) {
	q := `
		SELECT id, name, state, country, latitude, longitude, is_popular, is_active, timezone
		FROM cities
		WHERE name = ? COLLATE NOCASE
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

func (r *sqliteCityRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	return bulkInsert(ctx, r.db, insertCityQuery, cities, sqliteChunkSize)
}

type sqliteCabTypeRepository struct {
	db *sqlx.DB
}

func (r *sqliteCabTypeRepository) ListCabTypes(ctx context.Context) ([]model.CabType, error) {
	cabTypes := []model.CabType{}
	if err := r.db.SelectContext(ctx, &cabTypes, "SELECT * FROM cab_types ORDER BY base_price"); err != nil {
		return nil, err
	}
	return cabTypes, nil
}

func (r *sqliteCabTypeRepository) GetCabType(ctx context.Context, id string) (*model.CabType, error) {
	var cabType model.CabType
	if err := r.db.GetContext(ctx, &cabType, "SELECT * FROM cab_types WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cabType, nil
}

func (r *sqliteCabTypeRepository) BulkInsertCabTypes(ctx context.Context, cabTypes []model.CabType) error {
	return bulkInsert(ctx, r.db, insertCabTypeQuery, cabTypes, sqliteChunkSize)
}
