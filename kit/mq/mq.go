package mq

import (
	"context"
)

// Notify handles one message. A non-nil error leaves the message
// uncommitted so the topic delivers it again.
type Notify func(message []byte) error

// NotifyWithManualCommit hands the commit to the handler, which may call
// commitFn later, for example once a batch holding the message is stored.
type NotifyWithManualCommit func(message []byte, commitFn func() error) error

type Observer interface {
	GetKey() string
	NotifyWithManualCommit(message []byte, commitFn func() error) error
	UnSubscribeHook()
	ErrorHandler(error)
}

// Message is keyed so every event of one alias lands on the same partition.
type Message interface {
	GetKey() string
	Marshal() ([]byte, error)
}

type WriterManager interface {
	WriteMessages(ctx context.Context, msgs ...Message) error
	Close() error
}

type ReaderManager interface {
	AddObserver(observer Observer) bool
	RemoveObserverWithHook(observer Observer) bool
	GetObserversLen() int
	StartConsume(ctx context.Context) bool
	StopConsume() bool
	IfNoObserversThenStopConsume()
	Wait()
}

type ObserverOption func(*ObserverOptionConfig)

type ObserverOptionConfig struct {
	UnSubscribeHook func() error
	ErrorHandler    func(error)
}

// MQTopic is one topic of the event channel with at-least-once delivery.
// Produce returns after the broker acknowledged the message. Done is closed
// when the topic stops, Err then tells whether it stopped on a failure.
type MQTopic interface {
	Subscribe(key string, notify Notify, options ...ObserverOption) Observer
	// SubscribeWithManualCommit needs a topic whose readers do not auto commit.
	SubscribeWithManualCommit(key string, notify NotifyWithManualCommit, options ...ObserverOption) Observer
	UnSubscribe(observer Observer)
	Produce(ctx context.Context, message Message) error
	Done() <-chan struct{}
	Err() error
	Shutdown() bool
}

func AddUnSubscribeHook(unSubscribeHook func() error) ObserverOption {
	return func(config *ObserverOptionConfig) {
		config.UnSubscribeHook = unSubscribeHook
	}
}

// AddErrorHandler observes handler errors before the message is redelivered.
func AddErrorHandler(errorHandler func(error)) ObserverOption {
	return func(config *ObserverOptionConfig) {
		config.ErrorHandler = errorHandler
	}
}
