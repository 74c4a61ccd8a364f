package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexivanou/geofare/internal/model"
	"github.com/alexivanou/geofare/internal/service"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// ListCities handles GET /api/v1/cities/
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	popularOnly := false
	if v := r.URL.Query().Get("popular_only"); v != "" {
		var err error
		popularOnly, err = strconv.ParseBool(v)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid popular_only parameter", nil)
			return
		}
	}

	cities, err := h.service.ListCities(r.Context(), popularOnly)
	if err != nil {
		h.handleServiceError(w, "Error listing cities", err)
		return
	}

	h.writeJSON(w, http.StatusOK, model.CityListResponse{Cities: &cities})
}

// GetRouteInfo handles POST /api/v1/cities/route-info
func (h *Handler) GetRouteInfo(w http.ResponseWriter, r *http.Request) {
	var req model.RouteInfoRequest
	if !h.decode(w, r, &req) {
		return
	}

	info, err := h.service.GetRouteInfo(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, "Error resolving route", err)
		return
	}

	h.writeJSON(w, http.StatusOK, info)
}

// CalculateFare handles POST /api/v1/bookings/calculate-fare
func (h *Handler) CalculateFare(w http.ResponseWriter, r *http.Request) {
	var req model.FareCalculationRequest
	if !h.decode(w, r, &req) {
		return
	}

	fare, err := h.service.CalculateFare(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, "Error calculating fare", err)
		return
	}

	h.writeJSON(w, http.StatusOK, fare)
}

// ListCabTypes handles GET /api/v1/cab-types
func (h *Handler) ListCabTypes(w http.ResponseWriter, r *http.Request) {
	cabTypes, err := h.service.ListCabTypes(r.Context())
	if err != nil {
		h.handleServiceError(w, "Error listing cab types", err)
		return
	}

	h.writeJSON(w, http.StatusOK, model.CabTypeListResponse{CabTypes: &cabTypes})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	return true
}

// handleServiceError maps service errors to status codes
func (h *Handler) handleServiceError(w http.ResponseWriter, msg string, err error) {
	var details []model.ErrorDetail
	var fe *service.FieldError
	if errors.As(err, &fe) {
		details = fe.Details
	}

	switch {
	case errors.Is(err, service.ErrCityNotFound):
		h.writeError(w, http.StatusNotFound, "city not found", details)
	case errors.Is(err, service.ErrUnknownCabType):
		h.writeError(w, http.StatusBadRequest, "unknown cab type", details)
	case errors.Is(err, service.ErrInvalidInput):
		h.writeError(w, http.StatusUnprocessableEntity, "validation failed", details)
	default:
		h.logger.Error(msg, zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	if err := writeJSON(w, status, v); err != nil {
		h.logger.Error("Error encoding response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, details []model.ErrorDetail) {
	h.writeJSON(w, status, model.ErrorResponse{Message: message, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
