package mq

import "github.com/pkg/errors"

type observer struct {
	key             string
	notify          NotifyWithManualCommit
	unSubscribeHook func() error
	errorHandler    func(error)
}

var _ Observer = (*observer)(nil)

// CreateObserver wraps notify so the message is committed once notify succeeds.
func CreateObserver(key string, notify Notify, options ...ObserverOption) Observer {
	o := &observer{
		key: key,
		notify: func(message []byte, commitFn func() error) error {
			if err := notify(message); err != nil {
				return errors.Wrap(err, "notify failed")
			}
			if err := commitFn(); err != nil {
				return errors.Wrap(err, "commit failed")
			}
			return nil
		},
	}

	applyObserverOptions(o, options)

	return o
}

func CreateObserverWithManualCommit(key string, notify NotifyWithManualCommit, options ...ObserverOption) Observer {
	o := &observer{
		key:    key,
		notify: notify,
	}

	applyObserverOptions(o, options)

	return o
}

func applyObserverOptions(o *observer, options []ObserverOption) {
	var observerOptionConfig ObserverOptionConfig
	for _, option := range options {
		option(&observerOptionConfig)
	}
	if observerOptionConfig.UnSubscribeHook != nil {
		o.unSubscribeHook = observerOptionConfig.UnSubscribeHook
	}
	if observerOptionConfig.ErrorHandler != nil {
		o.errorHandler = observerOptionConfig.ErrorHandler
	}
}

func (o *observer) GetKey() string {
	return o.key
}

func (o *observer) NotifyWithManualCommit(message []byte, commitFn func() error) error {
	if err := o.notify(message, commitFn); err != nil {
		return errors.Wrap(err, "notify failed")
	}
	return nil
}

func (o *observer) UnSubscribeHook() {
	if o.unSubscribeHook == nil {
		return
	}
	o.unSubscribeHook()
}

func (o *observer) ErrorHandler(err error) {
	if o.errorHandler != nil {
		o.errorHandler(err)
	}
}
