package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	testCases := []struct {
		scenario string
		fn       func(t *testing.T)
	}{
		{
			scenario: "all checks pass",
			fn: func(t *testing.T) {
				h := CreateHealth()
				h.AddReadinessCheck("database", func(ctx context.Context) error { return nil })
				h.AddReadinessCheck("redis", func(ctx context.Context) error { return nil })

				w := httptest.NewRecorder()
				h.ReadyHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
				assert.Equal(t, http.StatusOK, w.Code)
			},
		},
		{
			scenario: "failed check",
			fn: func(t *testing.T) {
				h := CreateHealth()
				h.AddReadinessCheck("database", func(ctx context.Context) error { return nil })
				h.AddReadinessCheck("redis", func(ctx context.Context) error { return errors.New("connection refused") })

				w := httptest.NewRecorder()
				h.ReadyHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health?full=1", nil))
				assert.Equal(t, http.StatusServiceUnavailable, w.Code)
				assert.Contains(t, w.Body.String(), "connection refused")
			},
		},
		{
			scenario: "liveness ignores readiness checks",
			fn: func(t *testing.T) {
				h := CreateHealth()
				h.AddReadinessCheck("redis", func(ctx context.Context) error { return errors.New("connection refused") })

				w := httptest.NewRecorder()
				h.LiveHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
				assert.Equal(t, http.StatusOK, w.Code)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.scenario, testCase.fn)
	}
}
