package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/oklog/run"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	deliveryHTTP "github.com/superj80820/url2short/alias/delivery/http"
	mqRepo "github.com/superj80820/url2short/alias/repository/mq"
	ormRepo "github.com/superj80820/url2short/alias/repository/orm"
	redisRepo "github.com/superj80820/url2short/alias/repository/redis"
	"github.com/superj80820/url2short/alias/usecase/resolver"
	"github.com/superj80820/url2short/app/internal/bootstrap"
	healthKit "github.com/superj80820/url2short/kit/health"
	httpKit "github.com/superj80820/url2short/kit/http"
	httpMiddlewareKit "github.com/superj80820/url2short/kit/http/middleware"
	loggerKit "github.com/superj80820/url2short/kit/logger"
	mqAsyncKit "github.com/superj80820/url2short/kit/mq/async"
)

const SERVICE_NAME = "redirect"

func main() {
	cfg := bootstrap.LoadConfig(3001)

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
	analyticsTopic, err := topics.Get(cfg.AnalyticsTopic, bootstrap.TopicOption{GroupID: cfg.AnalyticsGroupID})
	if err != nil {
		logger.Fatal("create analytics topic failed", loggerKit.Error(err))
	}
	analyticsProducer := mqAsyncKit.CreateProducer(
		analyticsTopic,
		logger,
		mqAsyncKit.SetQueueSize(cfg.AnalyticsQueueSize),
		mqAsyncKit.SetWorkers(cfg.AnalyticsWorkers),
		mqAsyncKit.SetRetry(cfg.AnalyticsMaxRetries, 100*time.Millisecond),
	)

	resolverOptions := []resolver.Option{resolver.SetCacheTTL(cfg.RedisTTL)}
	if cfg.EnableMetric {
		resolverOptions = append(resolverOptions, resolver.SetMetrics(
			createCounter("cache_hit_count", "Number of resolutions served from the cache."),
			createCounter("cache_miss_count", "Number of resolutions that read the store."),
			createCounter("not_found_count", "Number of resolutions for unknown, inactive or expired codes."),
		))
	}
	resolverUseCase, err := resolver.CreateResolverUseCase(
		ormRepo.CreateAliasRepo(singletonDB),
		redisRepo.CreateAliasCacheRepo(singletonCache),
		mqRepo.CreateAnalyticsEventRepo(analyticsTopic, analyticsProducer),
		logger,
		resolverOptions...,
	)
	if err != nil {
		logger.Fatal("create resolver failed", loggerKit.Error(err))
	}

	health := healthKit.CreateHealth()
	health.AddReadinessCheck("db", singletonDB.Ping)
	health.AddReadinessCheck("cache", singletonCache.Ping)

	middlewares := []endpoint.Middleware{httpMiddlewareKit.CreateLoggingMiddleware(logger)}
	if cfg.EnableMetric {
		middlewares = append(middlewares, httpMiddlewareKit.CreateMetrics(bootstrap.SYSTEM_NAME, SERVICE_NAME))
	}
	customMiddleware := endpoint.Chain(func(e endpoint.Endpoint) endpoint.Endpoint { return e }, middlewares...)

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
	r.Methods(http.MethodGet).Path("/{code}").Handler(
		httptransport.NewServer(
			customMiddleware(deliveryHTTP.MakeRedirectEndpoint(resolverUseCase)),
			deliveryHTTP.DecodeRedirectRequest,
			deliveryHTTP.EncodeRedirectResponse,
			options...,
		))

	g := new(run.Group)
	bootstrap.AddHTTPServer(g, cfg.Port, r, logger)
	bootstrap.AddSignalHandler(ctx, g)
	if err := g.Run(); err != nil {
		logger.Info("redirect service stopped", loggerKit.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := analyticsProducer.Close(shutdownCtx); err != nil {
		logger.Error("close analytics producer failed", loggerKit.Error(err))
	}
	topics.Shutdown()
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error("shutdown tracer failed", loggerKit.Error(err))
	}
}

func createCounter(name, help string) *kitprometheus.Counter {
	return kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: bootstrap.SYSTEM_NAME,
		Subsystem: SERVICE_NAME,
		Name:      name,
		Help:      help,
	}, []string{})
}
