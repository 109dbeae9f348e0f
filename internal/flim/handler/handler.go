package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	flimmetrics "flims/internal/flim/metrics"
	"flims/internal/flim/models"
	"flims/internal/platform/middleware"
	dErrors "flims/pkg/domain-errors"
	"flims/pkg/platform/httputil"
	"flims/pkg/platform/validation"
)

// Service defines the flim operations the handlers need.
type Service interface {
	List(ctx context.Context) ([]models.Flim, error)
	Create(ctx context.Context, req models.CreateFlimRequest) ([]models.Flim, error)
	Update(ctx context.Context, req models.UpdateFlimRequest) ([]models.Flim, error)
	Exists(ctx context.Context, id int) error
}

// Handler serves the /flims endpoints. Every write goes through
// validation first; a rejected request never reaches the service.
type Handler struct {
	logger          *slog.Logger
	flims           Service
	metrics         *flimmetrics.Metrics
	enforceTitleMax bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithTitleMaxEnforced also rejects titles longer than TitleMaxLength.
func WithTitleMaxEnforced(enforce bool) Option {
	return func(h *Handler) { h.enforceTitleMax = enforce }
}

// New creates a flim Handler. metrics may be nil.
func New(flims Service, logger *slog.Logger, metrics *flimmetrics.Metrics, opts ...Option) *Handler {
	h := &Handler{
		logger:  logger,
		flims:   flims,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the flim routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/flims", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Put("/", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flims, err := h.flims.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list flims",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, flims)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	if !h.validate(w, r, body, h.titleRule()) {
		return
	}

	flims, err := h.flims.Create(ctx, models.NewCreateFlimRequest(body))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create flim",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, flims)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	if !h.validate(w, r, body, h.idExistsRule(), h.titleRule()) {
		return
	}

	flims, err := h.flims.Update(ctx, models.NewUpdateFlimRequest(body))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update flim",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, flims)
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request) (validation.Body, bool) {
	body := validation.Body{}
	if err := httputil.DecodeJSON(w, r, &body); err != nil {
		h.logger.WarnContext(r.Context(), "invalid flim request body",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return nil, false
	}
	return body, true
}

// validate runs every rule and writes the 422 response when any fails.
func (h *Handler) validate(w http.ResponseWriter, r *http.Request, body validation.Body, rules ...validation.Validator) bool {
	ctx := r.Context()
	errs, err := validation.Run(ctx, body, rules...)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeTimeout, "request timed out"))
		return false
	}
	if !errs.HasErrors() {
		return true
	}
	for _, f := range errs {
		h.metrics.IncrementValidationFailure(f.Field)
	}
	h.logger.WarnContext(ctx, "flim request rejected",
		"request_id", middleware.GetRequestID(ctx),
		"path", r.URL.Path,
		"errors", errs.Error(),
	)
	httputil.WriteValidationErrors(w, errs.Mapped())
	return false
}
