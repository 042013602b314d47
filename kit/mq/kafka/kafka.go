package kafka

import (
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/superj80820/url2short/kit/mq"
	readerManager "github.com/superj80820/url2short/kit/mq/kafka/readermanager"
	writerManager "github.com/superj80820/url2short/kit/mq/kafka/writermanager"
)

// ErrManualCommitRequired ends a topic whose readers auto commit when a
// subscriber needs to commit after its own processing.
var ErrManualCommitRequired = errors.New("subscribe with manual commit on an auto commit topic")

type MQTopicOption func(*MQTopicConfig)

type MQTopicConfig struct {
	url     string
	topic   string
	brokers []string

	writerBalancer writerManager.WriterBalancer

	isCreateTopic                bool
	createTopicNumPartitions     int
	createTopicReplicationFactor int

	isManualCommit    bool
	readerGroupID     string
	readerConcurrency int
	readerBackoff     time.Duration
	errorHandleFn     func(error)
}

func ProduceWay(balancer writerManager.WriterBalancer) MQTopicOption {
	return func(m *MQTopicConfig) {
		m.writerBalancer = balancer
	}
}

func ConsumeByGroupID(groupID string, isManualCommit bool) MQTopicOption {
	return func(m *MQTopicConfig) {
		m.readerGroupID = groupID
		m.isManualCommit = isManualCommit
	}
}

func CreateTopic(numPartitions, replicationFactor int) MQTopicOption {
	return func(mc *MQTopicConfig) {
		mc.isCreateTopic = true
		mc.createTopicNumPartitions = numPartitions
		mc.createTopicReplicationFactor = replicationFactor
	}
}

func SetReaderConcurrency(n int) MQTopicOption {
	return func(mc *MQTopicConfig) {
		mc.readerConcurrency = n
	}
}

func SetReaderBackoff(duration time.Duration) MQTopicOption {
	return func(mc *MQTopicConfig) {
		mc.readerBackoff = duration
	}
}

// AddErrorHandleFn receives consume errors that caused a redelivery.
func AddErrorHandleFn(fn func(error)) MQTopicOption {
	return func(mc *MQTopicConfig) {
		mc.errorHandleFn = fn
	}
}

type mqTopic struct {
	readerManager mq.ReaderManager
	writerManager mq.WriterManager

	topic          string
	isManualCommit bool

	ctx      context.Context
	cancel   context.CancelFunc
	doneCh   chan struct{}
	doneOnce sync.Once
	lock     sync.RWMutex
	err      error
}

func CreateMQTopic(ctx context.Context, url, topic string, consumeWay MQTopicOption, options ...MQTopicOption) (mq.MQTopic, error) {
	mqConfig := &MQTopicConfig{
		topic:   topic,
		url:     url,
		brokers: strings.Split(url, ","),

		writerBalancer:    &writerManager.Hash{},
		readerConcurrency: 1,
		readerBackoff:     time.Second,
	}

	consumeWay(mqConfig)

	for _, option := range options {
		option(mqConfig)
	}

	if mqConfig.isCreateTopic {
		if err := createTopic(mqConfig.brokers[0], topic, mqConfig.createTopicNumPartitions, mqConfig.createTopicReplicationFactor); err != nil {
			return nil, errors.Wrap(err, "create topic failed")
		}
	}

	readerManagerConfigOptions := []readerManager.ReaderManagerConfigOption{
		readerManager.SetConcurrency(mqConfig.readerConcurrency),
		readerManager.SetRetryBackoff(mqConfig.readerBackoff),
	}
	if mqConfig.errorHandleFn != nil {
		readerManagerConfigOptions = append(readerManagerConfigOptions, readerManager.AddErrorHandleFn(mqConfig.errorHandleFn))
	}
	if mqConfig.isManualCommit {
		readerManagerConfigOptions = append(readerManagerConfigOptions, readerManager.ManualCommit)
	}

	ctx, cancel := context.WithCancel(ctx)
	m := &mqTopic{
		writerManager: writerManager.CreateWriterManager(
			mqConfig.brokers,
			mqConfig.topic,
			mqConfig.writerBalancer,
		),
		readerManager: readerManager.CreateGroupIDReaderManager(
			mqConfig.brokers,
			mqConfig.topic,
			mqConfig.readerGroupID,
			readerManagerConfigOptions...,
		),
		topic:          mqConfig.topic,
		isManualCommit: mqConfig.isManualCommit,
		ctx:            ctx,
		cancel:         cancel,
		doneCh:         make(chan struct{}),
	}

	go func() {
		<-ctx.Done()
		m.setDone(ctx.Err())
	}()

	return m, nil
}

func (m *mqTopic) setDone(err error) {
	m.doneOnce.Do(func() {
		m.lock.Lock()
		if !errors.Is(err, context.Canceled) {
			m.err = err
		}
		m.lock.Unlock()
		close(m.doneCh)
	})
}

func (m *mqTopic) Subscribe(key string, notify mq.Notify, options ...mq.ObserverOption) mq.Observer {
	observer := mq.CreateObserver(key, notify, options...)

	m.readerManager.AddObserver(observer)
	m.readerManager.StartConsume(m.ctx)

	return observer
}

func (m *mqTopic) SubscribeWithManualCommit(key string, notify mq.NotifyWithManualCommit, options ...mq.ObserverOption) mq.Observer {
	observer := mq.CreateObserverWithManualCommit(key, notify, options...)

	if !m.isManualCommit {
		m.setDone(errors.Wrapf(ErrManualCommitRequired, "topic: %s, key: %s", m.topic, key))
		m.cancel()
		return observer
	}

	m.readerManager.AddObserver(observer)
	m.readerManager.StartConsume(m.ctx)

	return observer
}

func (m *mqTopic) UnSubscribe(observer mq.Observer) {
	m.readerManager.RemoveObserverWithHook(observer)
	m.readerManager.IfNoObserversThenStopConsume()
}

func (m *mqTopic) Produce(ctx context.Context, message mq.Message) error {
	if err := m.writerManager.WriteMessages(ctx, message); err != nil {
		return errors.Wrap(err, "write messages to kafka failed")
	}
	return nil
}

func (m *mqTopic) Shutdown() bool {
	m.cancel()

	done := make(chan bool)
	go func() {
		m.readerManager.Wait()
		close(done)
	}()

	var isGraceful bool
	select {
	case <-done:
		isGraceful = true
	case <-time.After(10 * time.Second):
	}
	if err := m.writerManager.Close(); err != nil {
		m.setDone(errors.Wrap(err, "close writer failed"))
		return false
	}
	return isGraceful
}

func (m *mqTopic) Done() <-chan struct{} {
	return m.doneCh
}

func (m *mqTopic) Err() error {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.err
}

func createTopic(url, topic string, numPartitions, replicationFactor int) error {
	conn, err := kafka.Dial("tcp", url)
	if err != nil {
		return errors.Wrap(err, "dial kafka failed")
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return errors.Wrap(err, "read partitions failed")
	}

	for _, p := range partitions {
		if topic == p.Topic {
			return nil
		}
	}

	controller, err := conn.Controller()
	if err != nil {
		return errors.Wrap(err, "get controller failed")
	}
	var controllerConn *kafka.Conn
	controllerConn, err = kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return errors.Wrap(err, "controller connect failed")
	}
	defer controllerConn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     numPartitions,
			ReplicationFactor: replicationFactor,
		},
	}

	err = controllerConn.CreateTopics(topicConfigs...)
	if err != nil {
		return errors.Wrap(err, "create topics failed")
	}

	return nil
}
