package model

// ErrorResponse is the JSON error body returned by the API
type ErrorResponse struct {
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail describes a single field validation failure
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
