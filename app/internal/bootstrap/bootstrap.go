package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/pkg/errors"
	aliasORM "github.com/superj80820/url2short/alias/repository/orm"
	analyticsORM "github.com/superj80820/url2short/analytics/repository/orm"
	loggerKit "github.com/superj80820/url2short/kit/logger"
	"github.com/superj80820/url2short/kit/mq"
	mqKafkaKit "github.com/superj80820/url2short/kit/mq/kafka"
	mqMemoryKit "github.com/superj80820/url2short/kit/mq/memory"
	ormKit "github.com/superj80820/url2short/kit/orm"
	redisKit "github.com/superj80820/url2short/kit/redis"
	traceKit "github.com/superj80820/url2short/kit/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	shutdownTimeout = 10 * time.Second
	topicPartitions = 6
)

func CreateLogger(cfg *Config, serviceName string) (*loggerKit.Logger, error) {
	logLevel := loggerKit.InfoLevel
	if cfg.Env == "development" {
		logLevel = loggerKit.DebugLevel
	}
	if cfg.LogLevel != "" {
		if err := logLevel.Set(cfg.LogLevel); err != nil {
			return nil, errors.Wrap(err, "parse log level failed")
		}
	}
	logger, err := loggerKit.NewLogger(cfg.LogPath, logLevel)
	if err != nil {
		return nil, errors.Wrap(err, "create logger failed")
	}
	return logger.With(loggerKit.String("service", serviceName)), nil
}

func CreateDB(cfg *Config) (*ormKit.DB, error) {
	useDB, err := ormKit.UseDriver(cfg.DBDriver, cfg.DBURI)
	if err != nil {
		return nil, errors.Wrap(err, "select db driver failed")
	}
	db, err := ormKit.CreateDB(useDB, ormKit.SetPool(20, 10, time.Hour))
	if err != nil {
		return nil, errors.Wrap(err, "create db failed")
	}
	if cfg.AutoMigrate {
		if err := aliasORM.Migrate(db); err != nil {
			return nil, errors.Wrap(err, "migrate alias failed")
		}
		if err := analyticsORM.Migrate(db); err != nil {
			return nil, errors.Wrap(err, "migrate analytics failed")
		}
	}
	return db, nil
}

func CreateCache(cfg *Config) (*redisKit.Cache, error) {
	cache, err := redisKit.CreateCache(cfg.RedisURI, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, errors.Wrap(err, "create cache failed")
	}
	return cache, nil
}

// CreateTracer returns a no-op tracer unless tracing is enabled.
func CreateTracer(ctx context.Context, cfg *Config, serviceName string) (trace.Tracer, traceKit.ShutdownFunc, error) {
	if !cfg.EnableTracer {
		return traceKit.CreateNoOpTracer(), func(context.Context) error { return nil }, nil
	}
	tracer, shutdown, err := traceKit.CreateTracer(ctx, serviceName)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create tracer failed")
	}
	return tracer, shutdown, nil
}

// Topics hands out one topic per name. Without kafka every topic is an
// in-process channel, so producers and consumers must live in the same binary.
type Topics struct {
	ctx    context.Context
	cfg    *Config
	logger *loggerKit.Logger
	topics map[string]mq.MQTopic
}

func CreateTopics(ctx context.Context, cfg *Config, logger *loggerKit.Logger) *Topics {
	return &Topics{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		topics: make(map[string]mq.MQTopic),
	}
}

type TopicOption struct {
	GroupID      string
	ManualCommit bool
	Concurrency  int
}

func (t *Topics) Get(name string, option TopicOption) (mq.MQTopic, error) {
	if topic, ok := t.topics[name]; ok {
		return topic, nil
	}
	var topic mq.MQTopic
	if t.cfg.EnableKafka {
		concurrency := option.Concurrency
		if concurrency <= 0 {
			concurrency = 1
		}
		topicOptions := []mqKafkaKit.MQTopicOption{
			mqKafkaKit.SetReaderConcurrency(concurrency),
			mqKafkaKit.AddErrorHandleFn(func(err error) {
				t.logger.Warn("consume message failed, redelivering", loggerKit.String("topic", name), loggerKit.Error(err))
			}),
		}
		if t.cfg.KafkaCreateTopics {
			topicOptions = append(topicOptions, mqKafkaKit.CreateTopic(topicPartitions, 1))
		}
		var err error
		topic, err = mqKafkaKit.CreateMQTopic(
			t.ctx,
			t.cfg.KafkaURI,
			name,
			mqKafkaKit.ConsumeByGroupID(option.GroupID, option.ManualCommit),
			topicOptions...,
		)
		if err != nil {
			return nil, errors.Wrap(err, "create kafka topic failed")
		}
	} else {
		topic = mqMemoryKit.CreateMemoryMQ(t.ctx, 1000, mqMemoryKit.SetRedelivery(5, time.Second))
	}
	t.topics[name] = topic
	return topic, nil
}

func (t *Topics) Shutdown() {
	for name, topic := range t.topics {
		if !topic.Shutdown() {
			t.logger.Warn("topic already shut down", loggerKit.String("topic", name))
		}
	}
}

// AddHTTPServer runs handler on port until the group is interrupted.
func AddHTTPServer(g *run.Group, port int, handler http.Handler, logger *loggerKit.Logger) {
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Add(func() error {
		logger.Info("http server started", loggerKit.Int("port", port))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server failed")
		}
		return nil
	}, func(err error) {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			logger.Error("shutdown http server failed", loggerKit.Error(err))
		}
	})
}

func AddSignalHandler(ctx context.Context, g *run.Group) {
	g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))
}

// AddConsumer ties a long-running consumer to the group. It ends when the
// consumer reports done, returning the consumer error if any.
func AddConsumer(g *run.Group, name string, start func(ctx context.Context), done func() <-chan struct{}, errFn func() error, logger *loggerKit.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	g.Add(func() error {
		logger.Info("consumer started", loggerKit.String("consumer", name))
		start(ctx)
		select {
		case <-done():
			if err := errFn(); err != nil {
				return errors.Wrapf(err, "consumer %s failed", name)
			}
			return nil
		case <-ctx.Done():
			return nil
		}
	}, func(err error) {
		cancel()
	})
}

func Close(logger *loggerKit.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error("close failed", loggerKit.String("resource", name), loggerKit.Error(err))
	}
}
