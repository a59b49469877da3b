package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/MrKriegler/insurance-premium/internal/platform/logging"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.Mount(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLive(t *testing.T) {
	rec := serve(New(logging.Discard(), nil, time.Second), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestReady(t *testing.T) {
	up := pingerFunc(func(context.Context) error { return nil })
	rec := serve(New(logging.Discard(), up, time.Second), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", rec.Body.String())

	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })
	rec = serve(New(logging.Discard(), down, time.Second), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReady_PingHasDeadline(t *testing.T) {
	var hadDeadline bool
	p := pingerFunc(func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	})

	serve(New(logging.Discard(), p, 50*time.Millisecond), "/readyz")
	assert.True(t, hadDeadline)
}
