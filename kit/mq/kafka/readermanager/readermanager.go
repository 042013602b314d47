package readermanager

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/superj80820/url2short/kit/mq"
)

func defaultErrorHandleFn(err error) {}

type readerManagerConfig struct {
	concurrency   int
	errorHandleFn func(err error)

	readerOptions []readerOption

	kafkaReaderProvider func() KafkaReader
}

type ReaderManagerConfigOption func(*readerManagerConfig)

func AddErrorHandleFn(fn func(err error)) ReaderManagerConfigOption {
	return func(rmc *readerManagerConfig) {
		rmc.errorHandleFn = fn
		rmc.readerOptions = append(rmc.readerOptions, func(r *Reader) {
			r.errorHandleFn = fn
		})
	}
}

func ManualCommit(rmc *readerManagerConfig) {
	rmc.readerOptions = append(rmc.readerOptions, func(r *Reader) {
		r.isManualCommit = true
	})
}

func SetRetryBackoff(duration time.Duration) ReaderManagerConfigOption {
	return func(rmc *readerManagerConfig) {
		rmc.readerOptions = append(rmc.readerOptions, func(r *Reader) {
			r.retryBackoff = duration
		})
	}
}

// SetConcurrency starts n readers in the same group. Partitions are spread
// over them and each partition stays ordered.
func SetConcurrency(n int) ReaderManagerConfigOption {
	return func(rmc *readerManagerConfig) {
		if n > 0 {
			rmc.concurrency = n
		}
	}
}

func useKafkaReaderProvider(fn func() KafkaReader) ReaderManagerConfigOption {
	return func(rmc *readerManagerConfig) {
		rmc.kafkaReaderProvider = fn
	}
}

type groupIDReaderManager struct {
	config *readerManagerConfig

	observers map[mq.Observer]mq.Observer
	lock      sync.RWMutex

	consumeLock sync.Mutex
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

func CreateGroupIDReaderManager(brokers []string, topic, groupID string, options ...ReaderManagerConfigOption) mq.ReaderManager {
	config := &readerManagerConfig{
		concurrency:   1,
		errorHandleFn: defaultErrorHandleFn,
	}
	for _, option := range options {
		option(config)
	}
	if config.kafkaReaderProvider == nil {
		config.kafkaReaderProvider = defaultKafkaReaderProvider(kafka.ReaderConfig{
			Brokers:     brokers,
			Topic:       topic,
			GroupID:     groupID,
			StartOffset: FirstOffset,
			MinBytes:    1,
			MaxBytes:    10e6,
		})
	}
	return &groupIDReaderManager{
		config:    config,
		observers: make(map[mq.Observer]mq.Observer),
	}
}

func (g *groupIDReaderManager) AddObserver(observer mq.Observer) bool {
	g.lock.Lock()
	defer g.lock.Unlock()

	if _, ok := g.observers[observer]; ok {
		return false
	}
	g.observers[observer] = observer

	return true
}

func (g *groupIDReaderManager) RemoveObserverWithHook(observer mq.Observer) bool {
	g.lock.Lock()
	if _, ok := g.observers[observer]; !ok {
		g.lock.Unlock()
		return false
	}
	delete(g.observers, observer)
	g.lock.Unlock()

	observer.UnSubscribeHook()

	return true
}

func (g *groupIDReaderManager) GetObserversLen() int {
	g.lock.RLock()
	defer g.lock.RUnlock()

	return len(g.observers)
}

func (g *groupIDReaderManager) rangeObservers(fn func(observer mq.Observer) bool) {
	g.lock.RLock()
	observers := make([]mq.Observer, 0, len(g.observers))
	for _, observer := range g.observers {
		observers = append(observers, observer)
	}
	g.lock.RUnlock()

	for _, observer := range observers {
		if !fn(observer) {
			return
		}
	}
}

func (g *groupIDReaderManager) StartConsume(ctx context.Context) bool {
	g.consumeLock.Lock()
	defer g.consumeLock.Unlock()

	if g.cancel != nil {
		return false
	}
	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel

	for i := 0; i < g.config.concurrency; i++ {
		reader := createReader(g.config.kafkaReaderProvider, g.rangeObservers, g.config.readerOptions...)
		g.wg.Add(1)
		go func() {
			defer g.wg.Done()
			reader.Run(ctx)
		}()
	}

	return true
}

func (g *groupIDReaderManager) StopConsume() bool {
	g.consumeLock.Lock()
	defer g.consumeLock.Unlock()

	if g.cancel == nil {
		return false
	}
	g.cancel()
	g.cancel = nil

	return true
}

func (g *groupIDReaderManager) IfNoObserversThenStopConsume() {
	if g.GetObserversLen() == 0 {
		g.StopConsume()
	}
}

func (g *groupIDReaderManager) Wait() {
	g.wg.Wait()
}
