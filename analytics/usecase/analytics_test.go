package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	mqRepo "github.com/superj80820/url2short/alias/repository/mq"
	aliasOrmRepo "github.com/superj80820/url2short/alias/repository/orm"
	aliasMocks "github.com/superj80820/url2short/alias/usecase/mocks"
	analyticsOrmRepo "github.com/superj80820/url2short/analytics/repository/orm"
	"github.com/superj80820/url2short/analytics/usecase/mocks"
	"github.com/superj80820/url2short/domain"
	loggerKit "github.com/superj80820/url2short/kit/logger"
	"github.com/superj80820/url2short/kit/mq/async"
	memoryMQKit "github.com/superj80820/url2short/kit/mq/memory"
	ormKit "github.com/superj80820/url2short/kit/orm"
)

const chromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func createCommitCounter() (func() error, *atomic.Int64) {
	var counter atomic.Int64
	return func() error {
		counter.Add(1)
		return nil
	}, &counter
}

func TestAnalyticsUseCase(t *testing.T) {
	ctx := context.Background()
	logger := loggerKit.CreateNoOpLogger()
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	setNow := SetNow(func() time.Time { return now })

	testCases := []struct {
		scenario string
		fn       func(t *testing.T)
	}{
		{
			scenario: "flush when batch is full and commit after insert",
			fn: func(t *testing.T) {
				analyticsRepo := mocks.NewAnalyticsRepo(t)
				geoRepo := mocks.NewGeoRepo(t)
				geoRepo.On("Lookup", "203.0.113.7").Return("Germany", "Land Berlin")
				analyticsRepo.On("InsertBatch", ctx, mock.MatchedBy(func(events []*domain.AnalyticsEvent) bool {
					if len(events) != 2 {
						return false
					}
					event := events[0]
					return event.Code == "abc123" &&
						event.Browser == "chrome" &&
						event.OS == "windows" &&
						event.Device == "desktop" &&
						event.Country == "germany" &&
						event.State == "land berlin" &&
						event.Referer == "https://news.example.com/" &&
						event.CreatedAt.Equal(now)
				})).Return(nil).Once()

				analytics, err := CreateAnalyticsUseCase(analyticsRepo, aliasMocks.NewAnalyticsEventRepo(t), aliasMocks.NewAliasRepo(t), geoRepo, logger,
					SetBatch(2, time.Hour), setNow)
				require.NoError(t, err)

				commitFn, commits := createCommitCounter()
				message := []byte(`{"code":" abc123 ","ip":"203.0.113.7","userAgent":"` + chromeUserAgent + `","referer":"https://News.example.com/a"}`)
				require.NoError(t, analytics.HandleEvent(ctx, message, commitFn))
				assert.Zero(t, commits.Load())
				require.NoError(t, analytics.HandleEvent(ctx, message, commitFn))
				assert.Equal(t, int64(2), commits.Load())
			},
		},
		{
			scenario: "malformed event is committed with the next batch",
			fn: func(t *testing.T) {
				analyticsRepo := mocks.NewAnalyticsRepo(t)
				analyticsRepo.On("InsertBatch", ctx, mock.MatchedBy(func(events []*domain.AnalyticsEvent) bool {
					return len(events) == 0
				})).Return(nil).Once()

				analytics, err := CreateAnalyticsUseCase(analyticsRepo, aliasMocks.NewAnalyticsEventRepo(t), aliasMocks.NewAliasRepo(t), mocks.NewGeoRepo(t), logger,
					SetBatch(10, time.Hour))
				require.NoError(t, err)

				commitFn, commits := createCommitCounter()
				require.NoError(t, analytics.HandleEvent(ctx, []byte(`not json`), commitFn))
				require.NoError(t, analytics.HandleEvent(ctx, []byte(`{"ip":"1.1.1.1"}`), commitFn))
				require.NoError(t, analytics.Flush(ctx))
				assert.Equal(t, int64(2), commits.Load())
			},
		},
		{
			scenario: "failed flush keeps the batch for retry",
			fn: func(t *testing.T) {
				analyticsRepo := mocks.NewAnalyticsRepo(t)
				geoRepo := mocks.NewGeoRepo(t)
				geoRepo.On("Lookup", "127.0.0.1").Return("internal", "internal")
				analyticsRepo.On("InsertBatch", ctx, mock.Anything).Return(errors.New("connection refused")).Once()
				analyticsRepo.On("InsertBatch", ctx, mock.MatchedBy(func(events []*domain.AnalyticsEvent) bool {
					return len(events) == 1
				})).Return(nil).Once()

				analytics, err := CreateAnalyticsUseCase(analyticsRepo, aliasMocks.NewAnalyticsEventRepo(t), aliasMocks.NewAliasRepo(t), geoRepo, logger,
					SetBatch(1, time.Hour), SetFlushBackoff(time.Millisecond))
				require.NoError(t, err)

				commitFn, commits := createCommitCounter()
				require.NoError(t, analytics.HandleEvent(ctx, []byte(`{"code":"abc123","ip":"127.0.0.1","userAgent":""}`), commitFn))
				assert.Equal(t, int64(1), commits.Load())
			},
		},
		{
			scenario: "canceled while retrying does not commit",
			fn: func(t *testing.T) {
				analyticsRepo := mocks.NewAnalyticsRepo(t)
				geoRepo := mocks.NewGeoRepo(t)
				geoRepo.On("Lookup", "127.0.0.1").Return("internal", "internal")
				analyticsRepo.On("InsertBatch", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

				analytics, err := CreateAnalyticsUseCase(analyticsRepo, aliasMocks.NewAnalyticsEventRepo(t), aliasMocks.NewAliasRepo(t), geoRepo, logger,
					SetBatch(1, time.Hour), SetFlushBackoff(5*time.Millisecond))
				require.NoError(t, err)

				cancelCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
				defer cancel()
				commitFn, commits := createCommitCounter()
				assert.Error(t, analytics.HandleEvent(cancelCtx, []byte(`{"code":"abc123","ip":"127.0.0.1"}`), commitFn))
				assert.Zero(t, commits.Load())
			},
		},
		{
			scenario: "summary requires ownership",
			fn: func(t *testing.T) {
				aliasRepo := aliasMocks.NewAliasRepo(t)
				aliasRepo.On("GetByCodeAndUserID", ctx, "abc123", "user-2").Return(nil, domain.ErrNotFound).Once()

				analytics, err := CreateAnalyticsUseCase(mocks.NewAnalyticsRepo(t), aliasMocks.NewAnalyticsEventRepo(t), aliasRepo, mocks.NewGeoRepo(t), logger)
				require.NoError(t, err)

				_, err = analytics.GetSummary(ctx, "user-2", &domain.AnalyticsQuery{Code: "abc123"})
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
		{
			scenario: "summary defaults to the last day by hour",
			fn: func(t *testing.T) {
				aliasRepo := aliasMocks.NewAliasRepo(t)
				analyticsRepo := mocks.NewAnalyticsRepo(t)
				aliasRepo.On("GetByCodeAndUserID", ctx, "abc123", "user-1").Return(&domain.Alias{Code: "abc123", UserID: "user-1"}, nil).Once()
				analyticsRepo.On("GetSummary", ctx, &domain.AnalyticsQuery{
					Code:     "abc123",
					Start:    now.Add(-24 * time.Hour),
					End:      now,
					Interval: time.Hour,
				}).Return(&domain.AnalyticsSummary{TotalClicks: 7}, nil).Once()

				analytics, err := CreateAnalyticsUseCase(analyticsRepo, aliasMocks.NewAnalyticsEventRepo(t), aliasRepo, mocks.NewGeoRepo(t), logger, setNow)
				require.NoError(t, err)

				summary, err := analytics.GetSummary(ctx, "user-1", &domain.AnalyticsQuery{Code: "abc123"})
				require.NoError(t, err)
				assert.Equal(t, int64(7), summary.TotalClicks)
			},
		},
		{
			scenario: "summary rejects inverted range",
			fn: func(t *testing.T) {
				aliasRepo := aliasMocks.NewAliasRepo(t)
				aliasRepo.On("GetByCodeAndUserID", ctx, "abc123", "user-1").Return(&domain.Alias{Code: "abc123", UserID: "user-1"}, nil).Once()

				analytics, err := CreateAnalyticsUseCase(mocks.NewAnalyticsRepo(t), aliasMocks.NewAnalyticsEventRepo(t), aliasRepo, mocks.NewGeoRepo(t), logger)
				require.NoError(t, err)

				_, err = analytics.GetSummary(ctx, "user-1", &domain.AnalyticsQuery{Code: "abc123", Start: now, End: now.Add(-time.Hour)})
				assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.scenario, testCase.fn)
	}
}

func TestConsumeEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := loggerKit.CreateNoOpLogger()

	db, err := ormKit.CreateDB(ormKit.UseSQLite(":memory:"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, aliasOrmRepo.Migrate(db))
	require.NoError(t, analyticsOrmRepo.Migrate(db))
	aliasRepo := aliasOrmRepo.CreateAliasRepo(db)
	analyticsRepo := analyticsOrmRepo.CreateAnalyticsRepo(db)
	require.NoError(t, aliasRepo.Create(ctx, &domain.Alias{Code: "abc123", Target: "https://example.com", UserID: "user-1", IsActive: true}))

	analyticsTopic := memoryMQKit.CreateMemoryMQ(ctx, 100)
	defer analyticsTopic.Shutdown()
	producer := async.CreateProducer(analyticsTopic, logger)
	defer producer.Close(context.Background())
	analyticsEventRepo := mqRepo.CreateAnalyticsEventRepo(analyticsTopic, producer)

	geoRepo := mocks.NewGeoRepo(t)
	geoRepo.On("Lookup", "127.0.0.1").Return("internal", "internal")

	analytics, err := CreateAnalyticsUseCase(analyticsRepo, analyticsEventRepo, aliasRepo, geoRepo, logger,
		SetBatch(100, 20*time.Millisecond))
	require.NoError(t, err)
	analytics.ConsumeEvents(ctx)

	for i := 0; i < 3; i++ {
		require.True(t, analyticsEventRepo.ProduceAsync(&domain.AnalyticsClickEvent{
			Code:      "abc123",
			IP:        "127.0.0.1",
			UserAgent: chromeUserAgent,
			Referer:   "https://news.example.com/a",
		}))
	}

	assert.Eventually(t, func() bool {
		summary, err := analytics.GetSummary(ctx, "user-1", &domain.AnalyticsQuery{Code: "abc123"})
		return err == nil && summary.TotalClicks == 3
	}, 5*time.Second, 20*time.Millisecond)

	summary, err := analytics.GetSummary(ctx, "user-1", &domain.AnalyticsQuery{Code: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, []*domain.DimensionSummary{{Name: "internal", Count: 3}}, summary.Countries)
	assert.Equal(t, []*domain.DimensionSummary{{Name: "https://news.example.com/", Count: 3}}, summary.Referrers)
}
