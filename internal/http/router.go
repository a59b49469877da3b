package transporthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/MrKriegler/insurance-premium/internal/http/handlers"
	"github.com/MrKriegler/insurance-premium/internal/middleware"
	"github.com/MrKriegler/insurance-premium/internal/platform/metrics"
)

// Deps bundles feature handlers that implement handlers.Mountable plus the
// cross-cutting pieces the router wires around them.
type Deps struct {
	Mounts         []handlers.Mountable
	Health         handlers.Mountable
	Metrics        *metrics.Metrics
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string
	// RequestLog enables chi's request logger; off in tests.
	RequestLog bool
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if d.RequestLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(d.Metrics.Middleware)
	if d.RequestTimeout > 0 {
		r.Use(chimw.Timeout(d.RequestTimeout))
	}
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(d.AllowedOrigins))

	if d.Health != nil {
		d.Health.Mount(r)
	}
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SetJSONContentType)
		r.Use(middleware.LimitRequestBody(d.MaxBodyBytes))

		// Mount each feature's routes into this router.
		for _, m := range d.Mounts {
			m.Mount(r)
		}
	})

	return r
}
