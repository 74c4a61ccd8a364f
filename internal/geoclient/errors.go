package geoclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alexivanou/geofare/internal/model"
)

// ErrMalformedResponse is returned when a successful response does not match
// the expected schema.
var ErrMalformedResponse = errors.New("malformed response")

// APIError is a non-2xx response from the API
type APIError struct {
	Status  int
	Message string
	// Data is the decoded error body, nil when the body was not JSON.
	Data *model.ErrorResponse
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Details returns the validation details carried by the error, if any
func (e *APIError) Details() []model.ErrorDetail {
	if e.Data == nil {
		return nil
	}
	return e.Data.Details
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var data model.ErrorResponse
	if err := json.Unmarshal(body, &data); err == nil && (data.Message != "" || len(data.Details) > 0) {
		apiErr.Data = &data
		apiErr.Message = data.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// StatusCode extracts the HTTP status from an *APIError anywhere in err's chain
func StatusCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	return 0, false
}
