package mq

import (
	"context"

	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
	"github.com/superj80820/url2short/kit/mq"
	"github.com/superj80820/url2short/kit/mq/async"
)

type analyticsEventRepo struct {
	analyticsMQTopic mq.MQTopic
	producer         *async.Producer
}

// CreateAnalyticsEventRepo sends click events through producer, which must
// wrap analyticsMQTopic. producer may be nil for consume only processes.
func CreateAnalyticsEventRepo(analyticsMQTopic mq.MQTopic, producer *async.Producer) domain.AnalyticsEventRepo {
	return &analyticsEventRepo{
		analyticsMQTopic: analyticsMQTopic,
		producer:         producer,
	}
}

func (a *analyticsEventRepo) ProduceAsync(event *domain.AnalyticsClickEvent) bool {
	if a.producer == nil {
		return false
	}
	return a.producer.Enqueue(&analyticsClickMessage{AnalyticsClickEvent: event})
}

func (a *analyticsEventRepo) ConsumeWithManualCommit(ctx context.Context, key string, notify func(message []byte, commitFn func() error) error) {
	a.analyticsMQTopic.SubscribeWithManualCommit(key, func(message []byte, commitFn func() error) error {
		if err := notify(message, commitFn); err != nil {
			return errors.Wrap(err, "notify failed")
		}
		return nil
	})
}

func (a *analyticsEventRepo) Done() <-chan struct{} {
	return a.analyticsMQTopic.Done()
}

func (a *analyticsEventRepo) Err() error {
	return a.analyticsMQTopic.Err()
}
