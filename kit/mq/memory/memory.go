package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/url2short/kit/mq"
	"github.com/superj80820/url2short/kit/util"
)

var ErrTopicClosed = errors.New("topic closed")

type memoryMQ struct {
	observers util.GenericSyncMap[mq.Observer, mq.Observer]
	messageCh chan []byte

	maxRedeliveries  int
	redeliverBackoff time.Duration

	ctx      context.Context
	cancel   context.CancelFunc
	doneCh   chan struct{}
	stopOnce sync.Once
}

var _ mq.MQTopic = (*memoryMQ)(nil)

type Option func(*memoryMQ)

// SetRedelivery retries a message on the same observer when notify fails.
func SetRedelivery(maxRedeliveries int, backoff time.Duration) Option {
	return func(m *memoryMQ) {
		m.maxRedeliveries = maxRedeliveries
		m.redeliverBackoff = backoff
	}
}

// CreateMemoryMQ delivers messages to observers in produce order from a
// single goroutine.
func CreateMemoryMQ(ctx context.Context, messageChannelBuffer int, options ...Option) mq.MQTopic {
	ctx, cancel := context.WithCancel(ctx)

	m := &memoryMQ{
		messageCh:        make(chan []byte, messageChannelBuffer),
		maxRedeliveries:  3,
		redeliverBackoff: 10 * time.Millisecond,
		ctx:              ctx,
		cancel:           cancel,
		doneCh:           make(chan struct{}),
	}
	for _, option := range options {
		option(m)
	}

	go func() {
		defer close(m.doneCh)
		for {
			select {
			case message := <-m.messageCh:
				m.dispatch(ctx, message)
			case <-ctx.Done():
				return
			}
		}
	}()

	return m
}

func (m *memoryMQ) dispatch(ctx context.Context, message []byte) {
	m.observers.Range(func(_, observer mq.Observer) bool {
		for attempt := 0; ; attempt++ {
			err := observer.NotifyWithManualCommit(message, func() error { return nil })
			if err == nil {
				return true
			}
			observer.ErrorHandler(err)
			if attempt >= m.maxRedeliveries {
				return true
			}
			select {
			case <-ctx.Done():
				return false
			case <-time.After(m.redeliverBackoff):
			}
		}
	})
}

func (m *memoryMQ) Done() <-chan struct{} {
	return m.doneCh
}

func (m *memoryMQ) Err() error {
	return nil
}

func (m *memoryMQ) Produce(ctx context.Context, message mq.Message) error {
	marshalData, err := message.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal failed")
	}

	select {
	case m.messageCh <- marshalData:
		return nil
	case <-m.ctx.Done():
		return errors.Wrap(ErrTopicClosed, "produce failed")
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "produce failed")
	}
}

func (m *memoryMQ) Shutdown() bool {
	m.stopOnce.Do(m.cancel)
	<-m.doneCh
	return true
}

func (m *memoryMQ) Subscribe(key string, notify mq.Notify, options ...mq.ObserverOption) mq.Observer {
	observer := mq.CreateObserver(key, notify, options...)

	m.observers.Store(observer, observer)

	return observer
}

func (m *memoryMQ) SubscribeWithManualCommit(key string, notify mq.NotifyWithManualCommit, options ...mq.ObserverOption) mq.Observer {
	observer := mq.CreateObserverWithManualCommit(key, notify, options...)

	m.observers.Store(observer, observer)

	return observer
}

func (m *memoryMQ) UnSubscribe(observer mq.Observer) {
	if _, ok := m.observers.Load(observer); !ok {
		return
	}
	m.observers.Delete(observer)
	observer.UnSubscribeHook()
}
