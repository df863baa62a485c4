package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticHealth struct {
	err error
}

func (s staticHealth) HealthCheck(ctx context.Context) error {
	return s.err
}

func TestHealthReflectsDatabaseState(t *testing.T) {
	tests := []struct {
		name     string
		health   HealthChecker
		wantCode int
	}{
		{"database reachable", staticHealth{}, http.StatusOK},
		{"database down", staticHealth{err: errors.New("connection refused")}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(Services{}, nil, tt.health)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
