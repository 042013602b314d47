package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	mqRepo "github.com/superj80820/url2short/alias/repository/mq"
	ormRepo "github.com/superj80820/url2short/alias/repository/orm"
	"github.com/superj80820/url2short/alias/usecase/moderation"
	geoipRepo "github.com/superj80820/url2short/analytics/repository/geoip"
	analyticsORMRepo "github.com/superj80820/url2short/analytics/repository/orm"
	analyticsUseCase "github.com/superj80820/url2short/analytics/usecase"
	"github.com/superj80820/url2short/app/internal/bootstrap"
	healthKit "github.com/superj80820/url2short/kit/health"
	loggerKit "github.com/superj80820/url2short/kit/logger"
)

const SERVICE_NAME = "worker"

func main() {
	cfg := bootstrap.LoadConfig(3002)

	logger, err := bootstrap.CreateLogger(cfg, SERVICE_NAME)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	singletonDB, err := bootstrap.CreateDB(cfg)
	if err != nil {
		logger.Fatal("create db failed", loggerKit.Error(err))
	}
	defer bootstrap.Close(logger, "db", singletonDB.Close)

	topics := bootstrap.CreateTopics(ctx, cfg, logger)
	aliasCreatedTopic, err := topics.Get(cfg.AliasCreatedTopic, bootstrap.TopicOption{GroupID: SERVICE_NAME})
	if err != nil {
		logger.Fatal("create alias created topic failed", loggerKit.Error(err))
	}
	aliasDeleteTopic, err := topics.Get(cfg.AliasDeleteTopic, bootstrap.TopicOption{GroupID: SERVICE_NAME})
	if err != nil {
		logger.Fatal("create alias delete topic failed", loggerKit.Error(err))
	}
	aliasCheckedTopic, err := topics.Get(cfg.AliasCheckedTopic, bootstrap.TopicOption{
		GroupID:      cfg.ModerationGroupID,
		ManualCommit: true,
		Concurrency:  cfg.ModerationConcurrency,
	})
	if err != nil {
		logger.Fatal("create alias checked topic failed", loggerKit.Error(err))
	}
	analyticsTopic, err := topics.Get(cfg.AnalyticsTopic, bootstrap.TopicOption{
		GroupID:      cfg.AnalyticsGroupID,
		ManualCommit: true,
	})
	if err != nil {
		logger.Fatal("create analytics topic failed", loggerKit.Error(err))
	}

	geoRepo, err := geoipRepo.CreateGeoRepo(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal("create geoip repo failed", loggerKit.Error(err))
	}
	defer bootstrap.Close(logger, "geoip", geoRepo.Close)

	aliasRepo := ormRepo.CreateAliasRepo(singletonDB)

	moderationUseCase, err := moderation.CreateModerationUseCase(
		aliasRepo,
		mqRepo.CreateAliasEventRepo(aliasCreatedTopic, aliasDeleteTopic, aliasCheckedTopic),
		logger.With(loggerKit.String("consumer", "moderation")),
	)
	if err != nil {
		logger.Fatal("create moderation use case failed", loggerKit.Error(err))
	}
	analyticsService, err := analyticsUseCase.CreateAnalyticsUseCase(
		analyticsORMRepo.CreateAnalyticsRepo(singletonDB),
		mqRepo.CreateAnalyticsEventRepo(analyticsTopic, nil),
		aliasRepo,
		geoRepo,
		logger.With(loggerKit.String("consumer", "analytics")),
		analyticsUseCase.SetBatch(cfg.AnalyticsBatchSize, cfg.AnalyticsBatchInterval),
	)
	if err != nil {
		logger.Fatal("create analytics use case failed", loggerKit.Error(err))
	}

	health := healthKit.CreateHealth()
	health.AddReadinessCheck("db", singletonDB.Ping)

	r := mux.NewRouter()
	r.Methods(http.MethodGet).Path("/health").Handler(health.ReadyHandler())
	r.Methods(http.MethodGet).Path("/live").Handler(health.LiveHandler())
	if cfg.EnableMetric {
		r.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.Handler())
	}

	g := new(run.Group)
	bootstrap.AddConsumer(g, "moderation", moderationUseCase.ConsumeChecked, moderationUseCase.Done, moderationUseCase.Err, logger)
	bootstrap.AddConsumer(g, "analytics", analyticsService.ConsumeEvents, analyticsService.Done, analyticsService.Err, logger)
	bootstrap.AddHTTPServer(g, cfg.Port, r, logger)
	bootstrap.AddSignalHandler(ctx, g)
	if err := g.Run(); err != nil {
		logger.Info("worker stopped", loggerKit.Error(err))
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer flushCancel()
	if err := analyticsService.Flush(flushCtx); err != nil {
		logger.Error("flush analytics on shutdown failed", loggerKit.Error(err))
	}
	topics.Shutdown()
}
