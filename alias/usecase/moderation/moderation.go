package moderation

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
	loggerKit "github.com/superj80820/url2short/kit/logger"
)

const consumeKey = "moderation-updater"

type moderationUseCase struct {
	aliasRepo      domain.AliasRepo
	aliasEventRepo domain.AliasEventRepo
	logger         *loggerKit.Logger
}

func CreateModerationUseCase(aliasRepo domain.AliasRepo, aliasEventRepo domain.AliasEventRepo, logger *loggerKit.Logger) (domain.ModerationUseCase, error) {
	if aliasRepo == nil || aliasEventRepo == nil || logger == nil {
		return nil, errors.New("create moderation use case failed")
	}
	return &moderationUseCase{
		aliasRepo:      aliasRepo,
		aliasEventRepo: aliasEventRepo,
		logger:         logger,
	}, nil
}

// HandleChecked applies a scan verdict. Malformed messages are dropped so they
// can be committed, store failures are returned so the message is redelivered.
func (m *moderationUseCase) HandleChecked(ctx context.Context, message []byte) error {
	event, err := decodeCheckedEvent(message)
	if err != nil {
		m.logger.Warn("drop malformed alias checked event",
			loggerKit.String("message", string(message)),
			loggerKit.Error(err),
		)
		return nil
	}

	shouldWarn := !*event.IsSafe
	updated, err := m.aliasRepo.UpdateShouldWarn(ctx, event.Code, shouldWarn)
	if err != nil {
		return errors.Wrap(err, "update should warn failed")
	}
	if !updated {
		m.logger.Debug("alias checked event for unknown code", loggerKit.String("code", event.Code))
		return nil
	}

	fields := []loggerKit.Field{
		loggerKit.String("code", event.Code),
		loggerKit.Bool("should_warn", shouldWarn),
	}
	if event.Score != nil {
		fields = append(fields, loggerKit.Float64("score", *event.Score))
	}
	m.logger.Info("alias moderation updated", fields...)

	return nil
}

func (m *moderationUseCase) ConsumeChecked(ctx context.Context) {
	m.aliasEventRepo.ConsumeAliasChecked(ctx, consumeKey, func(message []byte) error {
		return m.HandleChecked(ctx, message)
	})
}

func (m *moderationUseCase) Done() <-chan struct{} {
	return m.aliasEventRepo.Done()
}

func (m *moderationUseCase) Err() error {
	return m.aliasEventRepo.Err()
}

func decodeCheckedEvent(message []byte) (*domain.AliasCheckedEvent, error) {
	var event domain.AliasCheckedEvent
	if err := json.Unmarshal(message, &event); err != nil {
		return nil, errors.Wrap(domain.ErrMalformedEvent, err.Error())
	}
	if event.Code == "" {
		return nil, errors.Wrap(domain.ErrMalformedEvent, "missing code")
	}
	if event.IsSafe == nil {
		return nil, errors.Wrap(domain.ErrMalformedEvent, "missing is_safe")
	}
	return &event, nil
}
