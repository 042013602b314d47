package container

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	testingKit "github.com/superj80820/url2short/kit/testing"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	redisImage    = "docker.io/redis:7"
	postgresImage = "docker.io/postgres:15.2-alpine"
	kafkaImage    = "confluentinc/confluent-local:7.5.0"

	postgresDB       = "url2short"
	postgresUser     = "url2short"
	postgresPassword = "password"
)

type container struct {
	uri       string
	terminate func(context.Context) error
}

func (c *container) GetURI() string {
	return c.uri
}

func (c *container) Terminate(ctx context.Context) error {
	if err := c.terminate(ctx); err != nil {
		return errors.Wrap(err, "terminate failed")
	}
	return nil
}

type endpointContainer interface {
	Host(ctx context.Context) (string, error)
	Terminate(ctx context.Context) error
}

func hostPort(ctx context.Context, c endpointContainer, port string, mappedPort func() (string, error)) (string, string, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return "", "", errors.Wrap(err, "get container host failed")
	}
	mapped, err := mappedPort()
	if err != nil {
		return "", "", errors.Wrapf(err, "map container port %s failed", port)
	}
	return host, mapped, nil
}

// CreateRedis starts a cache store and returns its host:port.
func CreateRedis(ctx context.Context) (testingKit.Container, error) {
	c, err := redis.RunContainer(ctx, testcontainers.WithImage(redisImage))
	if err != nil {
		return nil, errors.Wrap(err, "run redis container failed")
	}
	host, port, err := hostPort(ctx, c, "6379", func() (string, error) {
		p, err := c.MappedPort(ctx, "6379")
		return p.Port(), err
	})
	if err != nil {
		c.Terminate(ctx)
		return nil, err
	}
	return &container{uri: host + ":" + port, terminate: c.Terminate}, nil
}

type PostgresOption func(*postgresConfig)

type postgresConfig struct {
	zone        string
	initScripts []string
}

func SetZone(zone string) PostgresOption {
	return func(pc *postgresConfig) {
		pc.zone = zone
	}
}

// SetInitScripts runs the given sql files once the database is created.
func SetInitScripts(paths ...string) PostgresOption {
	return func(pc *postgresConfig) {
		pc.initScripts = append(pc.initScripts, paths...)
	}
}

// CreatePostgres starts a durable mapping store and returns a gorm DSN.
func CreatePostgres(ctx context.Context, options ...PostgresOption) (testingKit.Container, error) {
	config := &postgresConfig{zone: "UTC"}
	for _, option := range options {
		option(config)
	}

	c, err := postgres.RunContainer(ctx,
		testcontainers.WithImage(postgresImage),
		postgres.WithInitScripts(config.initScripts...),
		postgres.WithDatabase(postgresDB),
		postgres.WithUsername(postgresUser),
		postgres.WithPassword(postgresPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "run postgres container failed")
	}
	host, port, err := hostPort(ctx, c, "5432", func() (string, error) {
		p, err := c.MappedPort(ctx, "5432")
		return p.Port(), err
	})
	if err != nil {
		c.Terminate(ctx)
		return nil, err
	}
	return &container{
		uri: fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			host, postgresUser, postgresPassword, postgresDB, port, config.zone,
		),
		terminate: c.Terminate,
	}, nil
}

// CreateKafka starts a single node event channel and returns its broker address.
func CreateKafka(ctx context.Context) (testingKit.Container, error) {
	c, err := kafka.RunContainer(ctx,
		testcontainers.WithImage(kafkaImage),
		kafka.WithClusterID("url2short-test"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "run kafka container failed")
	}
	host, port, err := hostPort(ctx, c, "9093", func() (string, error) {
		p, err := c.MappedPort(ctx, "9093")
		return p.Port(), err
	})
	if err != nil {
		c.Terminate(ctx)
		return nil, err
	}
	return &container{uri: host + ":" + port, terminate: c.Terminate}, nil
}
