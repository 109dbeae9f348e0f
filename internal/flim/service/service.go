package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	flimmetrics "flims/internal/flim/metrics"
	"flims/internal/flim/models"
	dErrors "flims/pkg/domain-errors"
	"flims/pkg/platform/sentinel"
	"flims/pkg/requestcontext"
)

const tracerName = "flims/internal/flim/service"

// Store is the record store the service orchestrates.
type Store interface {
	List(ctx context.Context) ([]models.Flim, error)
	Append(ctx context.Context, title, description string) ([]models.Flim, error)
	FindByID(ctx context.Context, id int) (models.Flim, error)
	UpdateFields(ctx context.Context, id int, fields map[string]any) (bool, error)
	Len(ctx context.Context) int
}

// Service keeps store access, metrics and tracing out of the handlers.
type Service struct {
	store   Store
	metrics *flimmetrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

func WithMetrics(m *flimmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

// New builds a Service. The store is required.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("flim store is required")
	}
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	s.metrics.SetStoreSize(store.Len(context.Background()))
	return s, nil
}

// List returns every flim in insertion order.
func (s *Service) List(ctx context.Context) ([]models.Flim, error) {
	ctx, span := s.tracer.Start(ctx, "flim.List")
	defer span.End()

	flims, err := s.store.List(ctx)
	if err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list flims"))
	}
	span.SetAttributes(attribute.Int("flim.count", len(flims)))
	return flims, nil
}

// Create appends a flim and returns the full updated sequence.
func (s *Service) Create(ctx context.Context, req models.CreateFlimRequest) ([]models.Flim, error) {
	ctx, span := s.tracer.Start(ctx, "flim.Create")
	defer span.End()

	flims, err := s.store.Append(ctx, req.Title, req.Description)
	if err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create flim"))
	}
	created := flims[len(flims)-1]
	span.SetAttributes(attribute.Int("flim.id", created.ID))

	s.metrics.IncrementCreated()
	s.metrics.SetStoreSize(len(flims))
	s.logger.InfoContext(ctx, "flim created",
		"flim_id", created.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return flims, nil
}

// Update overwrites title and description on the flim with req.ID and
// returns the full sequence. An id that vanished after validation is not an
// error: the store ignores it and the unchanged sequence is returned.
func (s *Service) Update(ctx context.Context, req models.UpdateFlimRequest) ([]models.Flim, error) {
	ctx, span := s.tracer.Start(ctx, "flim.Update", trace.WithAttributes(attribute.Int("flim.id", req.ID)))
	defer span.End()

	matched, err := s.store.UpdateFields(ctx, req.ID, req.Fields())
	if err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update flim"))
	}
	flims, err := s.store.List(ctx)
	if err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list flims"))
	}
	if !matched {
		span.SetAttributes(attribute.Bool("flim.matched", false))
		return flims, nil
	}

	s.metrics.IncrementUpdated()
	s.logger.InfoContext(ctx, "flim updated",
		"flim_id", req.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return flims, nil
}

// Exists reports whether a flim with id is stored.
func (s *Service) Exists(ctx context.Context, id int) error {
	ctx, span := s.tracer.Start(ctx, "flim.Exists", trace.WithAttributes(attribute.Int("flim.id", id)))
	defer span.End()

	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "flim not found")
		}
		return s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up flim"))
	}
	return nil
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
