package service

import (
	"reflect"
	"strings"

	"github.com/alexivanou/geofare/internal/config"
	"github.com/alexivanou/geofare/internal/repository"
	"github.com/alexivanou/geofare/internal/routing"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Options holds the optional collaborators of the service
type Options struct {
	// Provider computes driving legs; the road-factor estimator when nil.
	Provider routing.Provider
	// Cache stores resolved routes; disabled when nil.
	Cache   RouteCache
	Routing config.RoutingConfig
	Fare    config.FareConfig
	Logger  *zap.Logger
}

// Service provides business logic for the API
type Service struct {
	cityRepo    repository.CityRepository
	cabTypeRepo repository.CabTypeRepository
	provider    routing.Provider
	estimator   *routing.Estimator
	cache       RouteCache
	routing     config.RoutingConfig
	fare        config.FareConfig
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewService creates a new service instance
func NewService(
	cityRepo repository.CityRepository,
	cabTypeRepo repository.CabTypeRepository,
	opts Options,
) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	estimator := routing.NewEstimator(opts.Routing)
	provider := opts.Provider
	if provider == nil {
		provider = estimator
	}

	return &Service{
		cityRepo:    cityRepo,
		cabTypeRepo: cabTypeRepo,
		provider:    provider,
		estimator:   estimator,
		cache:       opts.Cache,
		routing:     opts.Routing,
		fare:        opts.Fare,
		validate:    newValidator(),
		logger:      logger,
	}
}

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
