package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/edutrack/schoolms/internal/app/models/dto"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		check  HealthCheck
		status int
		body   string
	}{
		{"no check", nil, http.StatusOK, `"status":"ok"`},
		{"healthy", func(context.Context) error { return nil }, http.StatusOK, `"status":"ok"`},
		{"database down", func(context.Context) error { return errors.New("connection refused") },
			http.StatusServiceUnavailable, string(dto.ErrorCodeDatabaseError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", healthHandler(tt.check))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}
