package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/superj80820/url2short/analytics/usecase/mocks"
	"github.com/superj80820/url2short/domain"
	httpKit "github.com/superj80820/url2short/kit/http"
	"github.com/superj80820/url2short/kit/http/middleware"
	traceKit "github.com/superj80820/url2short/kit/trace"
)

func createRouter(svc domain.AnalyticsUseCase) *mux.Router {
	r := mux.NewRouter()
	r.Methods(http.MethodGet).Path("/aliases/{code}/analytics").Handler(httptransport.NewServer(
		endpoint.Chain(middleware.CreateRequireUserMiddleware())(MakeGetSummaryEndpoint(svc)),
		DecodeGetSummaryRequest,
		EncodeGetSummaryResponse,
		httptransport.ServerBefore(httpKit.CustomBeforeCtx(traceKit.CreateNoOpTracer())),
		httptransport.ServerErrorEncoder(httpKit.EncodeHTTPErrorResponse()),
	))
	return r
}

func get(r http.Handler, path, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != "" {
		req.Header.Set(httpKit.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetSummary(t *testing.T) {
	testCases := []struct {
		scenario string
		fn       func(t *testing.T)
	}{
		{
			scenario: "default query",
			fn: func(t *testing.T) {
				svc := mocks.NewAnalyticsUseCase(t)
				svc.On("GetSummary", mock.Anything, "user-1", &domain.AnalyticsQuery{Code: "abc123", Interval: time.Hour}).
					Return(&domain.AnalyticsSummary{TotalClicks: 3}, nil).Once()

				w := get(createRouter(svc), "/aliases/abc123/analytics", "user-1")
				assert.Equal(t, http.StatusOK, w.Code)
				assert.Contains(t, w.Body.String(), `"total_clicks":3`)
			},
		},
		{
			scenario: "explicit range and interval",
			fn: func(t *testing.T) {
				start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
				end := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
				svc := mocks.NewAnalyticsUseCase(t)
				svc.On("GetSummary", mock.Anything, "user-1", mock.MatchedBy(func(query *domain.AnalyticsQuery) bool {
					return query.Code == "abc123" && query.Start.Equal(start) && query.End.Equal(end) && query.Interval == 24*time.Hour
				})).Return(&domain.AnalyticsSummary{}, nil).Once()

				w := get(createRouter(svc), "/aliases/abc123/analytics?start=2024-01-01T00:00:00Z&end=2024-01-08T00:00:00Z&interval=day", "user-1")
				assert.Equal(t, http.StatusOK, w.Code)
			},
		},
		{
			scenario: "invalid query",
			fn: func(t *testing.T) {
				r := createRouter(mocks.NewAnalyticsUseCase(t))

				w := get(r, "/aliases/abc123/analytics?start=yesterday", "user-1")
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), `"code":10`)

				w = get(r, "/aliases/abc123/analytics?interval=week", "user-1")
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), `"code":11`)

				w = get(r, "/aliases/abc-123/analytics", "user-1")
				assert.Equal(t, http.StatusBadRequest, w.Code)
			},
		},
		{
			scenario: "inverted range",
			fn: func(t *testing.T) {
				svc := mocks.NewAnalyticsUseCase(t)
				svc.On("GetSummary", mock.Anything, "user-1", mock.Anything).Return(nil, domain.ErrInvalidTimeRange).Once()

				w := get(createRouter(svc), "/aliases/abc123/analytics?start=2024-01-08T00:00:00Z&end=2024-01-01T00:00:00Z", "user-1")
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), `"code":10`)
			},
		},
		{
			scenario: "not owned",
			fn: func(t *testing.T) {
				svc := mocks.NewAnalyticsUseCase(t)
				svc.On("GetSummary", mock.Anything, "user-2", mock.Anything).Return(nil, domain.ErrNotFound).Once()

				w := get(createRouter(svc), "/aliases/abc123/analytics", "user-2")
				assert.Equal(t, http.StatusNotFound, w.Code)
				assert.JSONEq(t, `{"code":9,"error":"alias not found or authorization failed"}`, w.Body.String())
			},
		},
		{
			scenario: "missing user",
			fn: func(t *testing.T) {
				w := get(createRouter(mocks.NewAnalyticsUseCase(t)), "/aliases/abc123/analytics", "")
				assert.Equal(t, http.StatusUnauthorized, w.Code)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.scenario, testCase.fn)
	}
}
