package alias

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/url2short/alias/usecase/allocator"
	"github.com/superj80820/url2short/domain"
	loggerKit "github.com/superj80820/url2short/kit/logger"
)

const produceTimeout = 5 * time.Second

type aliasUseCase struct {
	aliasRepo      domain.AliasRepo
	aliasEventRepo domain.AliasEventRepo
	aliasCacheRepo domain.AliasCacheRepo
	logger         *loggerKit.Logger

	now func() time.Time
}

type Option func(*aliasUseCase)

func SetNow(now func() time.Time) Option {
	return func(a *aliasUseCase) {
		a.now = now
	}
}

// SetAliasCacheRepo lets updates that bring the expiry forward cap the
// lifetime of the cached redirect record.
func SetAliasCacheRepo(aliasCacheRepo domain.AliasCacheRepo) Option {
	return func(a *aliasUseCase) {
		a.aliasCacheRepo = aliasCacheRepo
	}
}

func CreateAliasUseCase(aliasRepo domain.AliasRepo, aliasEventRepo domain.AliasEventRepo, logger *loggerKit.Logger, options ...Option) (domain.AliasUseCase, error) {
	if aliasRepo == nil || aliasEventRepo == nil || logger == nil {
		return nil, errors.New("create alias use case failed")
	}
	a := &aliasUseCase{
		aliasRepo:      aliasRepo,
		aliasEventRepo: aliasEventRepo,
		logger:         logger,
		now:            time.Now,
	}
	for _, option := range options {
		option(a)
	}
	return a, nil
}

func (a *aliasUseCase) GetAliases(ctx context.Context, userID string) ([]*domain.Alias, error) {
	aliases, err := a.aliasRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get aliases failed")
	}
	return aliases, nil
}

func (a *aliasUseCase) GetAlias(ctx context.Context, userID, code string) (*domain.Alias, error) {
	alias, err := a.aliasRepo.GetByCodeAndUserID(ctx, code, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get alias failed")
	}
	return alias, nil
}

func (a *aliasUseCase) UpdateAlias(ctx context.Context, userID, code string, params *domain.UpdateAliasParams) (*domain.Alias, error) {
	if params.IsEmpty() {
		return a.GetAlias(ctx, userID, code)
	}
	if params.Target != nil {
		if err := allocator.ValidateTarget(*params.Target); err != nil {
			return nil, err
		}
	}
	if params.ExpiresAt != nil && !params.ExpiresAt.After(a.now()) {
		return nil, domain.ErrExpiryInPast
	}

	alias, err := a.aliasRepo.Update(ctx, code, userID, params)
	if err != nil {
		return nil, errors.Wrap(err, "update alias failed")
	}
	if params.ExpiresAt != nil && a.aliasCacheRepo != nil {
		if err := a.aliasCacheRepo.CapTTL(ctx, code, params.ExpiresAt.Sub(a.now())); err != nil {
			a.logger.Error("cap alias cache ttl failed",
				loggerKit.String("code", code),
				loggerKit.Error(err),
			)
		}
	}
	return alias, nil
}

func (a *aliasUseCase) DeleteAlias(ctx context.Context, userID, code string) error {
	deleted, err := a.aliasRepo.Delete(ctx, code, userID)
	if err != nil {
		return errors.Wrap(err, "delete alias failed")
	}
	if !deleted {
		return domain.ErrNotFound
	}

	produceCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), produceTimeout)
	defer cancel()
	if err := a.aliasEventRepo.ProduceAliasDelete(produceCtx, &domain.AliasDeleteEvent{ID: code, UserID: userID}); err != nil {
		a.logger.Error("produce alias delete failed",
			loggerKit.String("code", code),
			loggerKit.Error(err),
		)
	}

	return nil
}

func (a *aliasUseCase) ResolveTarget(ctx context.Context, code string) (string, error) {
	alias, err := a.aliasRepo.GetByCode(ctx, code)
	if err != nil {
		return "", errors.Wrap(err, "get alias failed")
	}
	if !alias.IsResolvable(a.now()) {
		return "", domain.ErrExpired
	}
	return alias.Target, nil
}
