package mq

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
	"github.com/superj80820/url2short/kit/mq"
)

type aliasCreatedMessage struct {
	*domain.AliasCreatedEvent
}

var _ mq.Message = (*aliasCreatedMessage)(nil)

func (a *aliasCreatedMessage) GetKey() string {
	return a.Code
}

func (a *aliasCreatedMessage) Marshal() ([]byte, error) {
	marshalData, err := json.Marshal(a.AliasCreatedEvent)
	if err != nil {
		return nil, errors.Wrap(err, "marshal failed")
	}
	return marshalData, nil
}

type aliasDeleteMessage struct {
	*domain.AliasDeleteEvent
}

var _ mq.Message = (*aliasDeleteMessage)(nil)

func (a *aliasDeleteMessage) GetKey() string {
	return a.ID
}

func (a *aliasDeleteMessage) Marshal() ([]byte, error) {
	marshalData, err := json.Marshal(a.AliasDeleteEvent)
	if err != nil {
		return nil, errors.Wrap(err, "marshal failed")
	}
	return marshalData, nil
}

// AliasCheckedMessage is what the moderation scanner publishes. The service
// only consumes it; producing is kept for local runs and tests.
type AliasCheckedMessage struct {
	*domain.AliasCheckedEvent
}

var _ mq.Message = (*AliasCheckedMessage)(nil)

func (a *AliasCheckedMessage) GetKey() string {
	return a.Code
}

func (a *AliasCheckedMessage) Marshal() ([]byte, error) {
	marshalData, err := json.Marshal(a.AliasCheckedEvent)
	if err != nil {
		return nil, errors.Wrap(err, "marshal failed")
	}
	return marshalData, nil
}

type analyticsClickMessage struct {
	*domain.AnalyticsClickEvent
}

var _ mq.Message = (*analyticsClickMessage)(nil)

func (a *analyticsClickMessage) GetKey() string {
	return a.Code
}

func (a *analyticsClickMessage) Marshal() ([]byte, error) {
	marshalData, err := json.Marshal(a.AnalyticsClickEvent)
	if err != nil {
		return nil, errors.Wrap(err, "marshal failed")
	}
	return marshalData, nil
}
