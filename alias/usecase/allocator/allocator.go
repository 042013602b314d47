package allocator

import (
	"context"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
	loggerKit "github.com/superj80820/url2short/kit/logger"
	utilKit "github.com/superj80820/url2short/kit/util"
)

const produceTimeout = 5 * time.Second

type allocatorUseCase struct {
	aliasRepo      domain.AliasRepo
	aliasEventRepo domain.AliasEventRepo
	logger         *loggerKit.Logger

	codeGenerate utilKit.ShortCodeGenerate
	maxRetries   int
	now          func() time.Time
}

type Option func(*allocatorUseCase)

func SetCodeGenerate(codeGenerate utilKit.ShortCodeGenerate) Option {
	return func(a *allocatorUseCase) {
		a.codeGenerate = codeGenerate
	}
}

func SetMaxRetries(maxRetries int) Option {
	return func(a *allocatorUseCase) {
		a.maxRetries = maxRetries
	}
}

func SetNow(now func() time.Time) Option {
	return func(a *allocatorUseCase) {
		a.now = now
	}
}

func CreateAllocatorUseCase(aliasRepo domain.AliasRepo, aliasEventRepo domain.AliasEventRepo, logger *loggerKit.Logger, options ...Option) (domain.AllocatorUseCase, error) {
	if aliasRepo == nil || aliasEventRepo == nil || logger == nil {
		return nil, errors.New("create allocator use case failed")
	}
	a := &allocatorUseCase{
		aliasRepo:      aliasRepo,
		aliasEventRepo: aliasEventRepo,
		logger:         logger,
		codeGenerate:   utilKit.CreateRandomShortCodeGenerate(domain.AliasCodeLength),
		maxRetries:     domain.AliasMaxRetries,
		now:            time.Now,
	}
	for _, option := range options {
		option(a)
	}
	if a.maxRetries <= 0 {
		return nil, errors.New("max retries must be positive")
	}
	return a, nil
}

func (a *allocatorUseCase) Create(ctx context.Context, params *domain.CreateAliasParams) (*domain.Alias, error) {
	if err := ValidateTarget(params.Target); err != nil {
		return nil, err
	}
	if params.ExpiresAt != nil && !params.ExpiresAt.After(a.now()) {
		return nil, domain.ErrExpiryInPast
	}

	var alias *domain.Alias
	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		code, err := a.codeGenerate()
		if err != nil {
			return nil, errors.Wrap(err, "generate code failed")
		}
		candidate := &domain.Alias{
			Code:      code,
			Target:    params.Target,
			UserID:    params.UserID,
			Metadata:  params.Metadata,
			ExpiresAt: params.ExpiresAt,
			IsActive:  true,
		}
		err = a.aliasRepo.Create(ctx, candidate)
		if errors.Is(err, domain.ErrDuplicate) {
			a.logger.Warn("code collision, retrying",
				loggerKit.String("code", code),
				loggerKit.Int("attempt", attempt),
			)
			continue
		} else if err != nil {
			return nil, errors.Wrap(err, "create alias failed")
		}
		alias = candidate
		break
	}
	if alias == nil {
		a.logger.Error("code allocation exhausted", loggerKit.Int("attempts", a.maxRetries))
		return nil, errors.Wrapf(domain.ErrCollisionExhausted, "after %d attempts", a.maxRetries)
	}

	// the alias is committed, the event must not be lost to a cancelled request
	produceCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), produceTimeout)
	defer cancel()
	if err := a.aliasEventRepo.ProduceAliasCreated(produceCtx, &domain.AliasCreatedEvent{
		Code:     alias.Code,
		Target:   alias.Target,
		UserID:   alias.UserID,
		Metadata: alias.Metadata,
	}); err != nil {
		a.logger.Error("produce alias created failed",
			loggerKit.String("code", alias.Code),
			loggerKit.Error(err),
		)
	}

	return alias, nil
}

// ValidateTarget accepts absolute http or https URLs with a host.
func ValidateTarget(target string) error {
	if target == "" || len(target) > domain.AliasTargetMaxLen {
		return domain.ErrInvalidTarget
	}
	u, err := url.Parse(target)
	if err != nil {
		return domain.ErrInvalidTarget
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.ErrInvalidTarget
	}
	return nil
}
