package main

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	deliveryHTTP "github.com/superj80820/url2short/alias/delivery/http"
	mqRepo "github.com/superj80820/url2short/alias/repository/mq"
	ormRepo "github.com/superj80820/url2short/alias/repository/orm"
	redisRepo "github.com/superj80820/url2short/alias/repository/redis"
	aliasUseCase "github.com/superj80820/url2short/alias/usecase/alias"
	"github.com/superj80820/url2short/alias/usecase/allocator"
	analyticsDeliveryHTTP "github.com/superj80820/url2short/analytics/delivery/http"
	geoipRepo "github.com/superj80820/url2short/analytics/repository/geoip"
	analyticsORMRepo "github.com/superj80820/url2short/analytics/repository/orm"
	analyticsUseCase "github.com/superj80820/url2short/analytics/usecase"
	"github.com/superj80820/url2short/app/internal/bootstrap"
	healthKit "github.com/superj80820/url2short/kit/health"
	httpKit "github.com/superj80820/url2short/kit/http"
	httpMiddlewareKit "github.com/superj80820/url2short/kit/http/middleware"
	loggerKit "github.com/superj80820/url2short/kit/logger"
	rateLimitRedisKit "github.com/superj80820/url2short/kit/ratelimit/redis"
	utilKit "github.com/superj80820/url2short/kit/util"
)

const SERVICE_NAME = "management"

func main() {
	cfg := bootstrap.LoadConfig(3000)

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
	singletonCache, err := bootstrap.CreateCache(cfg)
	if err != nil {
		logger.Fatal("create cache failed", loggerKit.Error(err))
	}
	defer bootstrap.Close(logger, "cache", singletonCache.Close)

	tracer, shutdownTracer, err := bootstrap.CreateTracer(ctx, cfg, SERVICE_NAME)
	if err != nil {
		logger.Fatal("create tracer failed", loggerKit.Error(err))
	}

	topics := bootstrap.CreateTopics(ctx, cfg, logger)
	aliasCreatedTopic, err := topics.Get(cfg.AliasCreatedTopic, bootstrap.TopicOption{GroupID: SERVICE_NAME})
	if err != nil {
		logger.Fatal("create alias created topic failed", loggerKit.Error(err))
	}
	aliasDeleteTopic, err := topics.Get(cfg.AliasDeleteTopic, bootstrap.TopicOption{GroupID: SERVICE_NAME})
	if err != nil {
		logger.Fatal("create alias delete topic failed", loggerKit.Error(err))
	}
	aliasCheckedTopic, err := topics.Get(cfg.AliasCheckedTopic, bootstrap.TopicOption{GroupID: cfg.ModerationGroupID})
	if err != nil {
		logger.Fatal("create alias checked topic failed", loggerKit.Error(err))
	}
	analyticsTopic, err := topics.Get(cfg.AnalyticsTopic, bootstrap.TopicOption{GroupID: cfg.AnalyticsGroupID})
	if err != nil {
		logger.Fatal("create analytics topic failed", loggerKit.Error(err))
	}

	geoRepo, err := geoipRepo.CreateGeoRepo(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal("create geoip repo failed", loggerKit.Error(err))
	}
	defer bootstrap.Close(logger, "geoip", geoRepo.Close)

	aliasRepo := ormRepo.CreateAliasRepo(singletonDB)
	aliasEventRepo := mqRepo.CreateAliasEventRepo(aliasCreatedTopic, aliasDeleteTopic, aliasCheckedTopic)

	allocatorUseCase, err := allocator.CreateAllocatorUseCase(aliasRepo, aliasEventRepo, logger)
	if err != nil {
		logger.Fatal("create allocator failed", loggerKit.Error(err))
	}
	aliasService, err := aliasUseCase.CreateAliasUseCase(aliasRepo, aliasEventRepo, logger,
		aliasUseCase.SetAliasCacheRepo(redisRepo.CreateAliasCacheRepo(singletonCache)),
	)
	if err != nil {
		logger.Fatal("create alias use case failed", loggerKit.Error(err))
	}
	analyticsService, err := analyticsUseCase.CreateAnalyticsUseCase(
		analyticsORMRepo.CreateAnalyticsRepo(singletonDB),
		mqRepo.CreateAnalyticsEventRepo(analyticsTopic, nil),
		aliasRepo,
		geoRepo,
		logger,
	)
	if err != nil {
		logger.Fatal("create analytics use case failed", loggerKit.Error(err))
	}

	health := healthKit.CreateHealth()
	health.AddReadinessCheck("db", singletonDB.Ping)
	health.AddReadinessCheck("cache", singletonCache.Ping)

	middlewares := []endpoint.Middleware{httpMiddlewareKit.CreateLoggingMiddleware(logger)}
	if cfg.EnableMetric {
		middlewares = append(middlewares, httpMiddlewareKit.CreateMetrics(bootstrap.SYSTEM_NAME, SERVICE_NAME))
	}
	customMiddleware := endpoint.Chain(func(e endpoint.Endpoint) endpoint.Endpoint { return e }, middlewares...)
	userMiddleware := endpoint.Chain(customMiddleware, httpMiddlewareKit.CreateRequireUserMiddleware())
	createMiddleware := userMiddleware
	if cfg.EnableRateLimit {
		rateLimit := rateLimitRedisKit.CreateCacheRateLimit(
			singletonCache,
			utilKit.GetEnvInt("RATE_LIMIT_MAX_REQUESTS", 10),
			utilKit.GetEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		)
		createMiddleware = endpoint.Chain(userMiddleware, httpMiddlewareKit.CreateRateLimitMiddlewareWithSpecKey(true, true, true, rateLimit.Pass))
	}

	r := mux.NewRouter()
	options := []httptransport.ServerOption{
		httptransport.ServerBefore(httpKit.CustomBeforeCtx(tracer)),
		httptransport.ServerAfter(httpKit.CustomAfterCtx),
		httptransport.ServerErrorEncoder(deliveryHTTP.EncodeError(logger)),
	}
	r.Methods(http.MethodGet).Path("/health").Handler(health.ReadyHandler())
	r.Methods(http.MethodGet).Path("/live").Handler(health.LiveHandler())
	if cfg.EnableMetric {
		r.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.Handler())
	}
	r.Methods(http.MethodGet).Path("/aliases").Handler(
		httptransport.NewServer(
			userMiddleware(deliveryHTTP.MakeGetAliasesEndpoint(aliasService)),
			deliveryHTTP.DecodeGetAliasesRequest,
			deliveryHTTP.EncodeGetAliasesResponse,
			options...,
		))
	r.Methods(http.MethodPost).Path("/aliases").Handler(
		httptransport.NewServer(
			createMiddleware(deliveryHTTP.MakeCreateAliasEndpoint(allocatorUseCase)),
			deliveryHTTP.DecodeCreateAliasRequest,
			deliveryHTTP.EncodeCreateAliasResponse,
			options...,
		))
	r.Methods(http.MethodGet).Path("/aliases/{code}").Handler(
		httptransport.NewServer(
			userMiddleware(deliveryHTTP.MakeGetAliasEndpoint(aliasService)),
			deliveryHTTP.DecodeGetAliasRequest,
			deliveryHTTP.EncodeGetAliasResponse,
			options...,
		))
	r.Methods(http.MethodPatch).Path("/aliases/{code}").Handler(
		httptransport.NewServer(
			userMiddleware(deliveryHTTP.MakeUpdateAliasEndpoint(aliasService)),
			deliveryHTTP.DecodeUpdateAliasRequest,
			deliveryHTTP.EncodeUpdateAliasResponse,
			options...,
		))
	r.Methods(http.MethodDelete).Path("/aliases/{code}").Handler(
		httptransport.NewServer(
			userMiddleware(deliveryHTTP.MakeDeleteAliasEndpoint(aliasService)),
			deliveryHTTP.DecodeDeleteAliasRequest,
			deliveryHTTP.EncodeDeleteAliasResponse,
			options...,
		))
	r.Methods(http.MethodGet).Path("/aliases/{code}/analytics").Handler(
		httptransport.NewServer(
			userMiddleware(analyticsDeliveryHTTP.MakeGetSummaryEndpoint(analyticsService)),
			analyticsDeliveryHTTP.DecodeGetSummaryRequest,
			analyticsDeliveryHTTP.EncodeGetSummaryResponse,
			options...,
		))
	r.Methods(http.MethodGet).Path("/resolve/{code}").Handler(
		httptransport.NewServer(
			customMiddleware(deliveryHTTP.MakeResolveTargetEndpoint(aliasService)),
			deliveryHTTP.DecodeResolveTargetRequest,
			deliveryHTTP.EncodeResolveTargetResponse,
			options...,
		))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", httpKit.UserIDHeader},
	}).Handler(r)

	g := new(run.Group)
	bootstrap.AddHTTPServer(g, cfg.Port, corsHandler, logger)
	bootstrap.AddSignalHandler(ctx, g)
	if err := g.Run(); err != nil {
		logger.Info("management service stopped", loggerKit.Error(err))
	}

	topics.Shutdown()
	if err := shutdownTracer(context.Background()); err != nil {
		logger.Error("shutdown tracer failed", loggerKit.Error(err))
	}
}
