package dto

import (
	"net/http"
	"strings"
)

// Error codes emitted directly by the HTTP layer. Domain errors carry
// their own codes and are mapped to a status by GetHTTPStatus.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeMaintenance  = "MAINTENANCE_MODE"
)

// errorCodeHTTPStatus maps known error codes to HTTP status codes.
// Codes not listed fall through to the suffix/prefix heuristics in
// GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeMaintenance:  http.StatusServiceUnavailable,

	"ALREADY_EXISTS":         http.StatusConflict,
	"COMPANY_ALREADY_EXISTS": http.StatusConflict,
	"CONCURRENCY_CONFLICT":   http.StatusConflict,
	"SCAN_REQUIRED":          http.StatusConflict,

	"CONFIRMATION_FAILED": http.StatusBadRequest,
	"DUPLICATE_FEATURE":   http.StatusBadRequest,
	"UNKNOWN_FEATURE":     http.StatusBadRequest,
	"WEAK_PASSWORD":       http.StatusBadRequest,

	"ALREADY_ACTIVE":    http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":  http.StatusUnprocessableEntity,
	"ALREADY_SUSPENDED": http.StatusUnprocessableEntity,

	"STORE_UNAVAILABLE": http.StatusServiceUnavailable,
	"BACKUP_FAILED":     http.StatusInternalServerError,
	"EXPORT_FAILED":     http.StatusInternalServerError,
	"HASH_FAILED":       http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unlisted codes are classified by shape: *_NOT_FOUND maps to 404,
// INVALID_* to 400, everything else to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
