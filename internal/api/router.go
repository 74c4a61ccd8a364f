package api

import (
	"github.com/alexivanou/geofare/internal/service"
	"github.com/alexivanou/geofare/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router.
// apiToken, when non-empty, is required as a bearer token on /api routes.
func NewRouter(service service.ServiceInterface, statsCollector *stats.Collector, apiToken string, logger *zap.Logger) *mux.Router {
	handler := NewHandler(service, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()
	router.Use(requestLogger(logger))

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.Use(bearerAuth(apiToken))
	v1.HandleFunc("/cities/", handler.ListCities).Methods("GET")
	v1.HandleFunc("/cities", handler.ListCities).Methods("GET")
	v1.HandleFunc("/cities/route-info", handler.GetRouteInfo).Methods("POST")
	v1.HandleFunc("/bookings/calculate-fare", handler.CalculateFare).Methods("POST")
	v1.HandleFunc("/cab-types", handler.ListCabTypes).Methods("GET")
	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	return router
}
