package geoclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexivanou/geofare/internal/citydata"
	"github.com/alexivanou/geofare/internal/config"
	"github.com/alexivanou/geofare/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheTTL       = 5 * time.Minute
	DefaultRequestTimeout = 5 * time.Second

	citiesFlightKey = "cities"
)

// CitySource lists serviceable cities
type CitySource interface {
	ListCities(ctx context.Context, popularOnly bool) ([]model.City, error)
}

// CityDirectory serves the city list from a TTL cache in front of a CitySource.
//
// FetchCities never fails: when the source is unreachable or returns a
// malformed payload the embedded fallback dataset is served and the cache
// is left as it was, so the next call retries. Concurrent misses share one
// in-flight request.
type CityDirectory struct {
	source   CitySource
	ttl      time.Duration
	timeout  time.Duration
	fallback []model.City
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time

	flight singleflight.Group

	mu        sync.RWMutex
	cached    []model.City
	fetchedAt time.Time
}

// NewCityDirectory creates a directory backed by source
func NewCityDirectory(source CitySource, cfg config.ClientConfig, logger *zap.Logger) *CityDirectory {
	ttl := cfg.CityCacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CityDirectory{
		source:   source,
		ttl:      ttl,
		timeout:  timeout,
		fallback: citydata.Cities(),
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// FetchCities returns the serviceable cities, only popular ones when
// popularOnly is set. The popular subset is always derived from the full list.
func (d *CityDirectory) FetchCities(ctx context.Context, popularOnly bool) []model.City {
	if cities, ok := d.fromCache(); ok {
		return selectCities(cities, popularOnly)
	}

	v, err, shared := d.flight.Do(citiesFlightKey, func() (interface{}, error) {
		// A waiter that lost the race may find the cache already filled.
		if cities, ok := d.fromCache(); ok {
			return cities, nil
		}
		return d.refresh(ctx)
	})
	if err != nil {
		d.logger.Warn("City directory unavailable, serving fallback",
			zap.Error(err),
			zap.Bool("shared", shared),
			zap.String("fallback_version", citydata.Version()),
		)
		return selectCities(d.fallback, popularOnly)
	}

	return selectCities(v.([]model.City), popularOnly)
}

// Reset drops the cached list
func (d *CityDirectory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cached = nil
	d.fetchedAt = time.Time{}
}

func (d *CityDirectory) fromCache() ([]model.City, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.fetchedAt.IsZero() || d.now().Sub(d.fetchedAt) >= d.ttl {
		return nil, false
	}
	return d.cached, true
}

func (d *CityDirectory) refresh(ctx context.Context) ([]model.City, error) {
	// The request is shared by every waiter, so it must not die with the
	// first caller's context.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	cities, err := d.listWithTimeout(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.validate.Struct(model.CityList{Cities: cities}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if cities == nil {
		cities = []model.City{}
	}
	cities = model.CloneCities(cities)

	d.mu.Lock()
	d.cached = cities
	d.fetchedAt = d.now()
	d.mu.Unlock()

	d.logger.Debug("City directory refreshed", zap.Int("cities", len(cities)))
	return cities, nil
}

// listWithTimeout races the source against the context deadline so a source
// that ignores cancellation cannot hold up every waiter.
func (d *CityDirectory) listWithTimeout(ctx context.Context) ([]model.City, error) {
	type result struct {
		cities []model.City
		err    error
	}
	done := make(chan result, 1)
	go func() {
		cities, err := d.source.ListCities(ctx, false)
		done <- result{cities: cities, err: err}
	}()

	select {
	case r := <-done:
		return r.cities, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("list cities: %w", ctx.Err())
	}
}

func selectCities(cities []model.City, popularOnly bool) []model.City {
	if popularOnly {
		return model.FilterPopular(cities)
	}
	return model.CloneCities(cities)
}
