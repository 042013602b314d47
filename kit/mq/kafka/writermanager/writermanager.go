package writermanager

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/superj80820/url2short/kit/mq"
)

type (
	WriterBalancer = kafka.Balancer

	Hash       = kafka.Hash
	RoundRobin = kafka.RoundRobin
)

type writer struct {
	kafkaWriter *kafka.Writer
}

func (w *writer) WriteMessages(ctx context.Context, msgs ...mq.Message) error {
	kafkaMessages := make([]kafka.Message, 0, len(msgs))
	for _, msg := range msgs {
		marshalMessage, err := msg.Marshal()
		if err != nil {
			return errors.Wrap(err, "marshal message failed")
		}
		kafkaMessages = append(kafkaMessages, kafka.Message{
			Key:   []byte(msg.GetKey()),
			Value: marshalMessage,
		})
	}
	if err := w.kafkaWriter.WriteMessages(ctx, kafkaMessages...); err != nil {
		return errors.Wrap(err, "write messages failed")
	}
	return nil
}

func (w *writer) Close() error {
	return w.kafkaWriter.Close()
}

// CreateWriterManager writes synchronously and waits for every in-sync replica.
func CreateWriterManager(brokers []string, topic string, writerBalancer WriterBalancer) mq.WriterManager {
	return &writer{
		kafkaWriter: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               writerBalancer,
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           10 * time.Second,
		},
	}
}
