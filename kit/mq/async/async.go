package async

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	loggerKit "github.com/superj80820/url2short/kit/logger"
	"github.com/superj80820/url2short/kit/mq"
	"golang.org/x/sync/errgroup"
)

// Producer sends messages in the background. Enqueue never blocks; a full
// queue drops the message. Failed sends are retried and then logged.
type Producer struct {
	topic  mq.MQTopic
	logger *loggerKit.Logger

	queue          chan mq.Message
	workers        int
	maxRetries     int
	retryBackoff   time.Duration
	produceTimeout time.Duration

	lock     sync.RWMutex
	isClosed bool
	eg       *errgroup.Group
}

type Option func(*Producer)

func SetQueueSize(size int) Option {
	return func(p *Producer) {
		if size > 0 {
			p.queue = make(chan mq.Message, size)
		}
	}
}

func SetWorkers(workers int) Option {
	return func(p *Producer) {
		if workers > 0 {
			p.workers = workers
		}
	}
}

// SetRetry sets attempts after the first failure and the linear backoff step.
func SetRetry(maxRetries int, retryBackoff time.Duration) Option {
	return func(p *Producer) {
		p.maxRetries = maxRetries
		p.retryBackoff = retryBackoff
	}
}

func SetProduceTimeout(timeout time.Duration) Option {
	return func(p *Producer) {
		p.produceTimeout = timeout
	}
}

func CreateProducer(topic mq.MQTopic, logger *loggerKit.Logger, options ...Option) *Producer {
	p := &Producer{
		topic:          topic,
		logger:         logger,
		queue:          make(chan mq.Message, 1000),
		workers:        4,
		maxRetries:     3,
		retryBackoff:   100 * time.Millisecond,
		produceTimeout: 5 * time.Second,
		eg:             new(errgroup.Group),
	}
	for _, option := range options {
		option(p)
	}

	for i := 0; i < p.workers; i++ {
		p.eg.Go(func() error {
			for message := range p.queue {
				p.produce(message)
			}
			return nil
		})
	}

	return p
}

// Enqueue reports whether the message was accepted.
func (p *Producer) Enqueue(message mq.Message) bool {
	p.lock.RLock()
	defer p.lock.RUnlock()

	if p.isClosed {
		return false
	}
	select {
	case p.queue <- message:
		return true
	default:
		p.logger.Warn("producer queue full, drop message", loggerKit.String("key", message.GetKey()))
		return false
	}
}

func (p *Producer) produce(message mq.Message) {
	var err error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * p.retryBackoff)
		}
		ctx, cancel := context.WithTimeout(context.Background(), p.produceTimeout)
		err = p.topic.Produce(ctx, message)
		cancel()
		if err == nil {
			return
		}
	}
	p.logger.Error("produce message failed",
		loggerKit.String("key", message.GetKey()),
		loggerKit.Int("attempts", p.maxRetries+1),
		loggerKit.Error(err),
	)
}

// Close stops accepting messages and waits until the queue drains or ctx is done.
func (p *Producer) Close(ctx context.Context) error {
	p.lock.Lock()
	if !p.isClosed {
		p.isClosed = true
		close(p.queue)
	}
	p.lock.Unlock()

	doneCh := make(chan error, 1)
	go func() {
		doneCh <- p.eg.Wait()
	}()
	select {
	case err := <-doneCh:
		return err
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "wait producer drain failed")
	}
}
