package dto

import "net/http"

// Error codes
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_SERVER_ERROR"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:        http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_PERIOD":         http.StatusBadRequest,
	"INVALID_AMOUNT":         http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_TENANT":         http.StatusBadRequest,
	"INVALID_PROPERTY":       http.StatusBadRequest,
	"INVALID_SERVICE":        http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	"INVALID_OCCUPANCY_DATE": http.StatusBadRequest,
	"INVALID_VACATE_DATE":    http.StatusBadRequest,
	"INVALID_REASON":         http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	"ALREADY_EXISTS":         http.StatusConflict,
	"CONCURRENCY_CONFLICT":   http.StatusConflict,
	"OPTIMISTIC_LOCK_ERROR":  http.StatusConflict,
	"DUPLICATE_REQUEST":      http.StatusConflict,
	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"NOTHING_TO_APPLY":       http.StatusUnprocessableEntity,
	"DATA_INTEGRITY":         http.StatusInternalServerError,
	ErrCodeInternal:          http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code,
// defaulting to 500 for unknown codes.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
