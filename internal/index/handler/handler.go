package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"flims/internal/platform/middleware"
	"flims/pkg/platform/httputil"
)

// HelloResponse is the body of GET /.
type HelloResponse struct {
	Msg string `json:"msg"`
}

// Handler serves the root greeting and echo endpoints, which double as a
// liveness check.
type Handler struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleHello)
	r.Post("/", h.handleEcho)
}

func (h *Handler) handleHello(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HelloResponse{Msg: "Hello world!"})
}

// handleEcho returns the JSON body unchanged. An empty body echoes {}.
func (h *Handler) handleEcho(w http.ResponseWriter, r *http.Request) {
	var body any = map[string]any{}
	if err := httputil.DecodeJSON(w, r, &body); err != nil {
		h.logger.WarnContext(r.Context(), "invalid echo body",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, body)
}
