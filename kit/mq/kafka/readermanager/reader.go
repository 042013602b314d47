package readermanager

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/superj80820/url2short/kit/mq"
)

const (
	FirstOffset = kafka.FirstOffset
	LastOffset  = kafka.LastOffset
)

type KafkaReader interface {
	Close() error
	ReadMessage(ctx context.Context) (kafka.Message, error)
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type readerOption func(*Reader)

// Reader is one member of a consumer group. A failed delivery closes the
// underlying kafka reader and a fresh one resumes from the last committed
// offset, so uncommitted messages are delivered again.
type Reader struct {
	isManualCommit bool
	retryBackoff   time.Duration

	kafkaReaderProvider func() KafkaReader
	rangeObservers      func(fn func(observer mq.Observer) bool)

	errorHandleFn func(error)
}

func defaultKafkaReaderProvider(config kafka.ReaderConfig) func() KafkaReader {
	return func() KafkaReader {
		return kafka.NewReader(config)
	}
}

func createReader(kafkaReaderProvider func() KafkaReader, rangeObservers func(fn func(observer mq.Observer) bool), options ...readerOption) *Reader {
	r := &Reader{
		retryBackoff:        time.Second,
		kafkaReaderProvider: kafkaReaderProvider,
		rangeObservers:      rangeObservers,
		errorHandleFn:       defaultErrorHandleFn,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run blocks until ctx is done.
func (r *Reader) Run(ctx context.Context) {
	for {
		kafkaReader := r.kafkaReaderProvider()
		err := r.consume(ctx, kafkaReader)
		if closeErr := kafkaReader.Close(); closeErr != nil && ctx.Err() == nil {
			r.errorHandleFn(errors.Wrap(closeErr, "close kafka reader failed"))
		}
		if ctx.Err() != nil {
			return
		}
		r.errorHandleFn(err)

		timer := time.NewTimer(r.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (r *Reader) consume(ctx context.Context, kafkaReader KafkaReader) error {
	getMessageFn := kafkaReader.ReadMessage
	if r.isManualCommit {
		getMessageFn = kafkaReader.FetchMessage
	}
	for {
		m, err := getMessageFn(ctx)
		if err != nil {
			return errors.Wrap(err, "get message failed")
		}

		commitFn := func() error {
			if !r.isManualCommit {
				return nil
			}
			if err := kafkaReader.CommitMessages(ctx, m); err != nil {
				return errors.Wrap(err, "commit message failed")
			}
			return nil
		}

		var notifyErr error
		r.rangeObservers(func(observer mq.Observer) bool {
			if err := observer.NotifyWithManualCommit(m.Value, commitFn); err != nil {
				observer.ErrorHandler(err)
				notifyErr = errors.Wrapf(err, "notify observer %s failed, topic: %s, partition: %d, offset: %d", observer.GetKey(), m.Topic, m.Partition, m.Offset)
				return false
			}
			return true
		})
		if notifyErr != nil && r.isManualCommit {
			return notifyErr
		} else if notifyErr != nil {
			r.errorHandleFn(notifyErr)
		}
	}
}
