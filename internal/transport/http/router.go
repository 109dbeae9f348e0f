package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"flims/internal/platform/metrics"
	"flims/internal/platform/middleware"
	"flims/pkg/platform/httputil"
)

// Messages for requests no route answers.
const (
	NotFoundMessage         = "No such endpoint existed"
	MethodNotAllowedMessage = "Method Not Allowed"
)

// Registrar is implemented by every handler that owns routes.
type Registrar interface {
	Register(r chi.Router)
}

// Config controls the shared middleware chain.
type Config struct {
	PrettyJSON     bool
	RequestTimeout time.Duration
	// MetricsHandler is served on GET /metrics when non-nil.
	MetricsHandler http.Handler
}

// NewRouter wires the shared middleware chain, the fallback handlers and
// every registrar's routes.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, cfg Config, registrars ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.StripSlashes)
	r.Use(chimw.GetHead)
	r.Use(middleware.PrettyJSON(cfg.PrettyJSON))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.LatencyMiddleware(m))

	// Set before registrars mount subrouters so they inherit these.
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}
	for _, reg := range registrars {
		reg.Register(r)
	}
	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{Err: NotFoundMessage})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{Err: MethodNotAllowedMessage})
}
