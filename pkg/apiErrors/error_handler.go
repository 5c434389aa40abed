package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Error codes returned to the client.
const (
	// Authentication (AUTH_*)
	ErrInvalidCredentials = "AUTH_001"
	ErrInvalidToken       = "AUTH_002"

	// Validation (VAL_*)
	ErrInvalidRequest      = "VAL_001"
	ErrMissingRequiredData = "VAL_002"
	ErrInvalidFormat       = "VAL_003"

	// Ingestion & analysis (DATA_*)
	ErrNoData           = "DATA_001" // no usable records in any source
	ErrDatasetNotFound  = "DATA_002" // unknown or expired dataset ID
	ErrMissingBrandData = "DATA_003" // no brand-identifying column

	// Server (SRV_*)
	ErrInternalServer = "SRV_001"
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrNoData:              http.StatusUnprocessableEntity,
	ErrDatasetNotFound:     http.StatusNotFound,
	ErrMissingBrandData:    http.StatusUnprocessableEntity,
	ErrInternalServer:      http.StatusInternalServerError,
}

// APIError is the standardized error payload.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError writes the standardized error payload with the mapped status.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
