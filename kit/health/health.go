package health

import (
	"context"
	"net/http"
	"time"

	"github.com/heptiolabs/healthcheck"
)

const defaultCheckTimeout = 3 * time.Second

type PingFunc func(ctx context.Context) error

type Health struct {
	handler healthcheck.Handler
	timeout time.Duration
}

type Option func(*Health)

func SetCheckTimeout(timeout time.Duration) Option {
	return func(h *Health) {
		h.timeout = timeout
	}
}

func CreateHealth(options ...Option) *Health {
	h := &Health{
		handler: healthcheck.NewHandler(),
		timeout: defaultCheckTimeout,
	}
	for _, option := range options {
		option(h)
	}
	return h
}

// AddReadinessCheck registers ping under name. A failing ping marks the
// service not ready.
func (h *Health) AddReadinessCheck(name string, ping PingFunc) {
	timeout := h.timeout
	h.handler.AddReadinessCheck(name, healthcheck.Timeout(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ping(ctx)
	}, timeout))
}

// ReadyHandler answers 200 when every check passes and 503 otherwise.
// Append ?full=1 for per check results.
func (h *Health) ReadyHandler() http.Handler {
	return http.HandlerFunc(h.handler.ReadyEndpoint)
}

func (h *Health) LiveHandler() http.Handler {
	return http.HandlerFunc(h.handler.LiveEndpoint)
}
