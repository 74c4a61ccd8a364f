package geoclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexivanou/geofare/internal/config"
	"github.com/alexivanou/geofare/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.ClientConfig{BaseURL: srv.URL, Token: "secret", Timeout: time.Second})
}

func TestClient_ListCities(t *testing.T) {
	tests := []struct {
		name          string
		popularOnly   bool
		status        int
		body          string
		expectedQuery string
		expectedCount int
		expectedErr   error
	}{
		{
			name:          "full list",
			status:        http.StatusOK,
			body:          `{"cities":[{"id":"mumbai","name":"Mumbai","latitude":19.07,"longitude":72.87,"is_popular":true}]}`,
			expectedCount: 1,
		},
		{
			name:          "popular only query",
			popularOnly:   true,
			status:        http.StatusOK,
			body:          `{"cities":[]}`,
			expectedQuery: "popular_only=true",
			expectedCount: 0,
		},
		{
			name:        "missing cities field",
			status:      http.StatusOK,
			body:        `{"items":[]}`,
			expectedErr: ErrMalformedResponse,
		},
		{
			name:        "null cities field",
			status:      http.StatusOK,
			body:        `{"cities":null}`,
			expectedErr: ErrMalformedResponse,
		},
		{
			name:        "not json",
			status:      http.StatusOK,
			body:        `<html>gateway</html>`,
			expectedErr: ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/v1/cities/", r.URL.Path)
				assert.Equal(t, tt.expectedQuery, r.URL.RawQuery)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			cities, err := client.ListCities(context.Background(), tt.popularOnly)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, cities)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, cities)
			assert.Len(t, cities, tt.expectedCount)
		})
	}
}

func TestClient_Headers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = io.WriteString(w, `{"origin_city":"A","destination_city":"B"}`)
	})

	_, err := client.GetRouteInfo(context.Background(), "A", "B")
	require.NoError(t, err)
}

func TestClient_GetRouteInfo_UnicodePassthrough(t *testing.T) {
	var received model.RouteInfoRequest
	var raw []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/cities/route-info", r.URL.Path)
		raw, _ = io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &received))
		_ = json.NewEncoder(w).Encode(model.RouteInfo{
			OriginCity:        received.OriginCity,
			DestinationCity:   received.DestinationCity,
			DrivingDistanceKm: 17500,
		})
	})

	info, err := client.GetRouteInfo(context.Background(), "São Paulo", "北京")
	require.NoError(t, err)

	assert.Equal(t, "São Paulo", received.OriginCity)
	assert.Equal(t, "北京", received.DestinationCity)
	assert.Contains(t, string(raw), "São Paulo")
	assert.Contains(t, string(raw), "北京")
	assert.Equal(t, "São Paulo", info.OriginCity)
	assert.Equal(t, "北京", info.DestinationCity)
}

func TestClient_APIError(t *testing.T) {
	t.Run("json body with details", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(model.ErrorResponse{
				Message: "unknown cab type",
				Details: []model.ErrorDetail{{Field: "cab_type", Message: "limo is not offered"}},
			})
		})

		fare, err := client.CalculateFare(context.Background(), model.FareCalculationRequest{CabType: "limo"})
		assert.Nil(t, fare)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "unknown cab type", apiErr.Message)
		require.Len(t, apiErr.Details(), 1)
		assert.Equal(t, "cab_type", apiErr.Details()[0].Field)

		status, ok := StatusCode(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("plain text body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		})

		_, err := client.GetRouteInfo(context.Background(), "Pune", "Goa")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Equal(t, "upstream down", apiErr.Message)
		assert.Nil(t, apiErr.Data)
	})

	t.Run("empty body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.ListCities(context.Background(), false)
		assert.EqualError(t, err, "api error 503: Service Unavailable")
	})
}

func TestClient_Timeout(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := NewClient(config.ClientConfig{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})

	_, err := client.ListCities(context.Background(), false)
	assert.Error(t, err)
	_, isAPIError := StatusCode(err)
	assert.False(t, isAPIError)
}

func TestClient_CalculateFare(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bookings/calculate-fare", r.URL.Path)

		var req model.FareCalculationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sedan", req.CabType)
		assert.Equal(t, "round_trip", req.TripType)

		_ = json.NewEncoder(w).Encode(model.FareBreakdown{
			CabType:         req.CabType,
			TripType:        model.TripTypeRoundTrip,
			BaseFare:        600,
			DistanceFare:    3900,
			SurgeMultiplier: 1,
			TotalFare:       4500,
			Currency:        "INR",
		})
	})

	fare, err := client.CalculateFare(context.Background(), model.FareCalculationRequest{
		PickupLat: 19.07, PickupLng: 72.87, DropLat: 18.52, DropLng: 73.85,
		CabType: "sedan", TripType: "round_trip", PickupCity: "Mumbai", DropCity: "Pune",
	})
	require.NoError(t, err)
	assert.Equal(t, 4500.0, fare.TotalFare)
	assert.Equal(t, model.TripTypeRoundTrip, fare.TripType)
}

func TestClient_ListCabTypes(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedCount int
		expectedErr   error
	}{
		{
			name:          "cab types",
			body:          `{"cab_types":[{"id":"sedan","name":"Sedan","per_km_rate":13,"base_price":300,"capacity":4}]}`,
			expectedCount: 1,
		},
		{
			name: "empty list",
			body: `{"cab_types":[]}`,
		},
		{
			name:        "missing cab_types field",
			body:        `{"vehicles":[]}`,
			expectedErr: ErrMalformedResponse,
		},
		{
			name:        "null cab_types field",
			body:        `{"cab_types":null}`,
			expectedErr: ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/cab-types", r.URL.Path)
				_, _ = io.WriteString(w, tt.body)
			})

			cabTypes, err := client.ListCabTypes(context.Background())
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, cabTypes)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, cabTypes)
			assert.Len(t, cabTypes, tt.expectedCount)
		})
	}
}
