package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"flims/internal/flim/handler/mocks"
	flimmetrics "flims/internal/flim/metrics"
	"flims/internal/flim/models"
	"flims/internal/flim/service"
	"flims/internal/flim/store"
	dErrors "flims/pkg/domain-errors"
	"flims/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/service_mock.go -package=mocks Service

// HandlerSuite drives the flim routes through a real service and store.
type HandlerSuite struct {
	suite.Suite
	store   *store.InMemory
	metrics *flimmetrics.Metrics
	router  http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.store = store.NewSeeded()
	s.metrics = flimmetrics.New(prometheus.NewRegistry())
	s.router = s.newRouter()
}

func (s *HandlerSuite) newRouter(opts ...Option) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.New(s.store, service.WithLogger(logger))
	s.Require().NoError(err)

	r := chi.NewRouter()
	New(svc, logger, s.metrics, opts...).Register(r)
	return r
}

func (s *HandlerSuite) list() []models.Flim {
	flims, err := s.store.List(context.Background())
	s.Require().NoError(err)
	return flims
}

func (s *HandlerSuite) TestList() {
	s.Run("returns seeded flims in order", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/flims"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Equal(store.SeedFlims, testutil.UnmarshalResponse[[]models.Flim](s.T(), rr))
	})

	s.Run("is idempotent", func() {
		first := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/flims"))
		second := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/flims"))
		s.Equal(first.Body.String(), second.Body.String())
		s.Equal(store.SeedFlims, s.list())
	})
}

func (s *HandlerSuite) TestCreate() {
	s.Run("valid title appends and returns full sequence", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/flims", map[string]any{"title": "new", "description": "y"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		flims := testutil.UnmarshalResponse[[]models.Flim](s.T(), rr)
		s.Require().Len(flims, 4)
		s.Equal(models.Flim{ID: 4, Title: "new", Description: "y"}, flims[3])
	})

	s.Run("short title is rejected with its length", func() {
		before := s.list()
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/flims", map[string]any{"title": "ab", "description": "x"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
		s.Equal(map[string]string{
			"title": "The title must be between 3 and 20 characters long but received length 2",
		}, testutil.FieldErrors(s.T(), rr))
		s.Equal(before, s.list())
		s.InDelta(1, promtestutil.ToFloat64(s.metrics.ValidationFailures.WithLabelValues("title")), 0)
	})

	s.Run("missing title counts as length zero", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/flims", map[string]any{"description": "x"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
		s.Contains(testutil.FieldErrors(s.T(), rr)["title"], "received length 0")
	})

	s.Run("long title accepted unless maximum enforced", func() {
		long := strings.Repeat("a", TitleMaxLength+1)
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/flims", map[string]any{"title": long}))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		strict := s.newRouter(WithTitleMaxEnforced(true))
		rr = testutil.DoRequest(strict, testutil.NewJSONRequest(s.T(), http.MethodPost, "/flims", map[string]any{"title": long}))
		testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
		s.Contains(testutil.FieldErrors(s.T(), rr)["title"], "received length 21")
	})

	s.Run("object description is stored as its json text", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/flims", `{"title":"new","description":{"a":1}}`)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		flims := testutil.UnmarshalResponse[[]models.Flim](s.T(), rr)
		s.Equal(`{"a":1}`, flims[len(flims)-1].Description)
	})

	s.Run("array title is measured and stored as its json text", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/flims", `{"title":["abc"],"description":"x"}`)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		flims := testutil.UnmarshalResponse[[]models.Flim](s.T(), rr)
		s.Equal(`["abc"]`, flims[len(flims)-1].Title)
	})

	s.Run("form encoded body is a bad request", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/flims", "title=formy&description=y")
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid request body")
	})

	s.Run("malformed json is a bad request", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/flims", "{not json"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid request body")
	})
}

func (s *HandlerSuite) TestUpdate() {
	s.Run("unknown id is rejected and store unchanged", func() {
		before := s.list()
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/flims", map[string]any{"id": 99, "title": "ok"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
		errs := testutil.FieldErrors(s.T(), rr)
		s.Equal("The id of 99 is not exists", errs["id"])
		s.Equal("The title must be between 3 and 20 characters long but received length 2", errs["title"])
		s.Equal(before, s.list())
	})

	s.Run("unknown id with valid title reports only the id", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/flims", map[string]any{"id": 42, "title": "fine"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
		s.Equal(map[string]string{"id": "The id of 42 is not exists"}, testutil.FieldErrors(s.T(), rr))
	})

	s.Run("missing id renders as undefined", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/flims", map[string]any{"title": "fine"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
		s.Equal("The id of undefined is not exists", testutil.FieldErrors(s.T(), rr)["id"])
	})

	s.Run("valid update overwrites only the matching record", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/flims", map[string]any{"id": 2, "title": "renamed", "description": "changed"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		flims := testutil.UnmarshalResponse[[]models.Flim](s.T(), rr)
		s.Require().Len(flims, 3)
		s.Equal(models.Flim{ID: 2, Title: "renamed", Description: "changed"}, flims[1])
		s.Equal(store.SeedFlims[0], flims[0])
		s.Equal(store.SeedFlims[2], flims[2])
	})

	s.Run("numeric string id matches loosely", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/flims", map[string]any{"id": "3", "title": "by string"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		flims := testutil.UnmarshalResponse[[]models.Flim](s.T(), rr)
		s.Equal("by string", flims[2].Title)
	})
}

// HandlerErrorSuite covers service failures, which the real store never
// produces.
type HandlerErrorSuite struct {
	suite.Suite
	service *mocks.MockService
	router  http.Handler
}

func TestHandlerErrorSuite(t *testing.T) {
	suite.Run(t, new(HandlerErrorSuite))
}

func (s *HandlerErrorSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	r := chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)), nil).Register(r)
	s.router = r
}

func (s *HandlerErrorSuite) TestListFailure() {
	s.service.EXPECT().List(gomock.Any()).
		Return(nil, dErrors.Wrap(errors.New("boom"), dErrors.CodeInternal, "failed to list flims"))

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/flims"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "failed to list flims")
}

func (s *HandlerErrorSuite) TestCreateFailure() {
	s.service.EXPECT().Create(gomock.Any(), models.CreateFlimRequest{Title: "new", Description: "y"}).
		Return(nil, dErrors.New(dErrors.CodeInternal, "failed to create flim"))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/flims", map[string]any{"title": "new", "description": "y"})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "failed to create flim")
}

func (s *HandlerErrorSuite) TestRejectedCreateNeverReachesService() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/flims", map[string]any{"title": "x"})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
}

func (s *HandlerErrorSuite) TestUpdateChecksExistenceThenUpdates() {
	gomock.InOrder(
		s.service.EXPECT().Exists(gomock.Any(), 1).Return(nil),
		s.service.EXPECT().Update(gomock.Any(), models.UpdateFlimRequest{ID: 1, Title: "renamed"}).
			Return([]models.Flim{{ID: 1, Title: "renamed"}}, nil),
	)

	req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/flims", map[string]any{"id": 1, "title": "renamed"})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Equal([]models.Flim{{ID: 1, Title: "renamed"}}, testutil.UnmarshalResponse[[]models.Flim](s.T(), rr))
}
