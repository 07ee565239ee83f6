package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"listed code", "STORE_UNAVAILABLE", http.StatusServiceUnavailable},
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"conflict", "COMPANY_ALREADY_EXISTS", http.StatusConflict},
		{"maintenance", ErrCodeMaintenance, http.StatusServiceUnavailable},
		{"not found suffix", "TEMPLATE_NOT_FOUND", http.StatusNotFound},
		{"invalid prefix", "INVALID_EMAIL", http.StatusBadRequest},
		{"unknown code", "SOMETHING_ODD", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeBadRequest, "bad input", "req-1")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "bad input", resp.Error.Message)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}
