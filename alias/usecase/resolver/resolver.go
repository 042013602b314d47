package resolver

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
	loggerKit "github.com/superj80820/url2short/kit/logger"
)

const DefaultCacheTTL = time.Hour

type resolverUseCase struct {
	aliasRepo          domain.AliasRepo
	aliasCacheRepo     domain.AliasCacheRepo
	analyticsEventRepo domain.AnalyticsEventRepo
	logger             *loggerKit.Logger

	cacheTTL time.Duration
	now      func() time.Time

	cacheHit  metrics.Counter
	cacheMiss metrics.Counter
	notFound  metrics.Counter
}

type Option func(*resolverUseCase)

func SetCacheTTL(ttl time.Duration) Option {
	return func(r *resolverUseCase) {
		r.cacheTTL = ttl
	}
}

func SetNow(now func() time.Time) Option {
	return func(r *resolverUseCase) {
		r.now = now
	}
}

func SetMetrics(cacheHit, cacheMiss, notFound metrics.Counter) Option {
	return func(r *resolverUseCase) {
		r.cacheHit = cacheHit
		r.cacheMiss = cacheMiss
		r.notFound = notFound
	}
}

func CreateResolverUseCase(aliasRepo domain.AliasRepo, aliasCacheRepo domain.AliasCacheRepo, analyticsEventRepo domain.AnalyticsEventRepo, logger *loggerKit.Logger, options ...Option) (domain.ResolverUseCase, error) {
	if aliasRepo == nil || aliasCacheRepo == nil || analyticsEventRepo == nil || logger == nil {
		return nil, errors.New("create resolver use case failed")
	}
	r := &resolverUseCase{
		aliasRepo:          aliasRepo,
		aliasCacheRepo:     aliasCacheRepo,
		analyticsEventRepo: analyticsEventRepo,
		logger:             logger,
		cacheTTL:           DefaultCacheTTL,
		now:                time.Now,
		cacheHit:           discard.NewCounter(),
		cacheMiss:          discard.NewCounter(),
		notFound:           discard.NewCounter(),
	}
	for _, option := range options {
		option(r)
	}
	return r, nil
}

func (r *resolverUseCase) Resolve(ctx context.Context, req *domain.ResolveRequest) (*domain.Resolution, error) {
	if !r.analyticsEventRepo.ProduceAsync(&domain.AnalyticsClickEvent{
		Code:      req.Code,
		IP:        req.ClientIP,
		UserAgent: req.UserAgent,
		Referer:   req.Referer,
	}) {
		r.logger.Warn("analytics event dropped", loggerKit.String("code", req.Code))
	}

	record, exists, err := r.aliasCacheRepo.Get(ctx, req.Code)
	if err != nil {
		return nil, errors.Wrap(err, "get cache failed")
	}
	if exists {
		r.cacheHit.Add(1)
		return resolutionFromRecord(record), nil
	}
	r.cacheMiss.Add(1)

	alias, err := r.aliasRepo.GetByCode(ctx, req.Code)
	if errors.Is(err, domain.ErrNotFound) {
		r.notFound.Add(1)
		return &domain.Resolution{Outcome: domain.ResolutionNotFound}, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "get alias failed")
	}
	now := r.now()
	if !alias.IsResolvable(now) {
		r.notFound.Add(1)
		return &domain.Resolution{Outcome: domain.ResolutionNotFound}, nil
	}

	record = domain.CreateStructuredCacheRecord(alias.Target, alias.ShouldWarn)
	if ttl := r.recordTTL(alias, now); ttl > 0 {
		if err := r.aliasCacheRepo.Set(ctx, req.Code, record, ttl); err != nil {
			r.logger.Warn("populate cache failed", loggerKit.String("code", req.Code), loggerKit.Error(err))
		}
	}

	return resolutionFromRecord(record), nil
}

// recordTTL never lets a cached record outlive the alias expiry.
func (r *resolverUseCase) recordTTL(alias *domain.Alias, now time.Time) time.Duration {
	ttl := r.cacheTTL
	if alias.ExpiresAt != nil {
		if remaining := alias.ExpiresAt.Sub(now); remaining < ttl {
			ttl = remaining
		}
	}
	return ttl
}

func resolutionFromRecord(record *domain.CacheRecord) *domain.Resolution {
	if record.Format == domain.CacheRecordStructured && record.ShouldWarn {
		return &domain.Resolution{Outcome: domain.ResolutionInterstitial, Target: record.Target}
	}
	return &domain.Resolution{Outcome: domain.ResolutionRedirect, Target: record.Target}
}
