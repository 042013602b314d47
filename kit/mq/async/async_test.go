package async

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	loggerKit "github.com/superj80820/url2short/kit/logger"
	"github.com/superj80820/url2short/kit/mq"
)

type testMessage struct {
	key string
}

func (t *testMessage) GetKey() string { return t.key }

func (t *testMessage) Marshal() ([]byte, error) { return []byte(t.key), nil }

type fakeTopic struct {
	mq.MQTopic

	failTimes int32
	calls     int32
	block     chan struct{}

	lock     sync.Mutex
	produced []string
}

func (f *fakeTopic) Produce(ctx context.Context, message mq.Message) error {
	if f.block != nil {
		<-f.block
	}
	if atomic.AddInt32(&f.calls, 1) <= atomic.LoadInt32(&f.failTimes) {
		return errors.New("broker unavailable")
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.produced = append(f.produced, message.GetKey())
	return nil
}

func TestProducer(t *testing.T) {
	logger := loggerKit.CreateNoOpLogger()

	testCases := []struct {
		scenario string
		fn       func(t *testing.T)
	}{
		{
			scenario: "drain queued messages on close",
			fn: func(t *testing.T) {
				topic := new(fakeTopic)
				producer := CreateProducer(topic, logger, SetQueueSize(100), SetWorkers(3))
				for i := 0; i < 50; i++ {
					assert.True(t, producer.Enqueue(&testMessage{key: "abc123"}))
				}
				assert.NoError(t, producer.Close(context.Background()))
				assert.Len(t, topic.produced, 50)
				assert.False(t, producer.Enqueue(&testMessage{key: "abc123"}))
			},
		},
		{
			scenario: "retry until produce succeed",
			fn: func(t *testing.T) {
				topic := &fakeTopic{failTimes: 2}
				producer := CreateProducer(topic, logger, SetWorkers(1), SetRetry(3, time.Millisecond))
				assert.True(t, producer.Enqueue(&testMessage{key: "abc123"}))
				assert.NoError(t, producer.Close(context.Background()))
				assert.Equal(t, int32(3), topic.calls)
				assert.Equal(t, []string{"abc123"}, topic.produced)
			},
		},
		{
			scenario: "give up after max retries",
			fn: func(t *testing.T) {
				topic := &fakeTopic{failTimes: 10}
				producer := CreateProducer(topic, logger, SetWorkers(1), SetRetry(2, time.Millisecond))
				assert.True(t, producer.Enqueue(&testMessage{key: "abc123"}))
				assert.NoError(t, producer.Close(context.Background()))
				assert.Equal(t, int32(3), topic.calls)
				assert.Empty(t, topic.produced)
			},
		},
		{
			scenario: "drop message when queue is full",
			fn: func(t *testing.T) {
				topic := &fakeTopic{block: make(chan struct{})}
				producer := CreateProducer(topic, logger, SetQueueSize(1), SetWorkers(1))

				assert.True(t, producer.Enqueue(&testMessage{key: "first"}))
				assert.Eventually(t, func() bool { return len(producer.queue) == 0 }, time.Second, time.Millisecond)
				assert.True(t, producer.Enqueue(&testMessage{key: "second"}))
				assert.False(t, producer.Enqueue(&testMessage{key: "third"}))

				close(topic.block)
				assert.NoError(t, producer.Close(context.Background()))
				assert.Equal(t, []string{"first", "second"}, topic.produced)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.scenario, testCase.fn)
	}
}
