package mq

import (
	"context"

	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
	"github.com/superj80820/url2short/kit/mq"
	utilKit "github.com/superj80820/url2short/kit/util"
)

type aliasEventRepo struct {
	aliasCreatedMQTopic mq.MQTopic
	aliasDeleteMQTopic  mq.MQTopic
	aliasCheckedMQTopic mq.MQTopic

	observers utilKit.GenericSyncMap[string, mq.Observer]
}

func CreateAliasEventRepo(aliasCreatedMQTopic, aliasDeleteMQTopic, aliasCheckedMQTopic mq.MQTopic) domain.AliasEventRepo {
	return &aliasEventRepo{
		aliasCreatedMQTopic: aliasCreatedMQTopic,
		aliasDeleteMQTopic:  aliasDeleteMQTopic,
		aliasCheckedMQTopic: aliasCheckedMQTopic,
	}
}

func (a *aliasEventRepo) ProduceAliasCreated(ctx context.Context, event *domain.AliasCreatedEvent) error {
	if err := a.aliasCreatedMQTopic.Produce(ctx, &aliasCreatedMessage{AliasCreatedEvent: event}); err != nil {
		return errors.Wrap(err, "produce alias created failed")
	}
	return nil
}

func (a *aliasEventRepo) ProduceAliasDelete(ctx context.Context, event *domain.AliasDeleteEvent) error {
	if err := a.aliasDeleteMQTopic.Produce(ctx, &aliasDeleteMessage{AliasDeleteEvent: event}); err != nil {
		return errors.Wrap(err, "produce alias delete failed")
	}
	return nil
}

func (a *aliasEventRepo) ConsumeAliasChecked(ctx context.Context, key string, notify func(message []byte) error) {
	observer := a.aliasCheckedMQTopic.SubscribeWithManualCommit(key, func(message []byte, commitFn func() error) error {
		if err := notify(message); err != nil {
			return errors.Wrap(err, "notify failed")
		}
		if err := commitFn(); err != nil {
			return errors.Wrap(err, "commit failed")
		}
		return nil
	})
	a.observers.Store(key, observer)

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			a.stopConsume(key)
		}()
	}
}

func (a *aliasEventRepo) stopConsume(key string) {
	observer, ok := a.observers.Load(key)
	if !ok {
		return
	}
	a.aliasCheckedMQTopic.UnSubscribe(observer)
	a.observers.Delete(key)
}

func (a *aliasEventRepo) Done() <-chan struct{} {
	return a.aliasCheckedMQTopic.Done()
}

func (a *aliasEventRepo) Err() error {
	return a.aliasCheckedMQTopic.Err()
}
