package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
	loggerKit "github.com/superj80820/url2short/kit/logger"
)

const (
	consumeKey           = "analytics-consumer"
	DefaultBatchSize     = 5000
	DefaultBatchInterval = 2 * time.Second
	defaultFlushBackoff  = time.Second
	defaultTimelineRange = 24 * time.Hour
)

type analyticsUseCase struct {
	analyticsRepo      domain.AnalyticsRepo
	analyticsEventRepo domain.AnalyticsEventRepo
	aliasRepo          domain.AliasRepo
	geoRepo            domain.GeoRepo
	logger             *loggerKit.Logger
	validate           *validator.Validate

	batchSize     int
	batchInterval time.Duration
	flushBackoff  time.Duration
	now           func() time.Time

	lock    sync.Mutex
	events  []*domain.AnalyticsEvent
	commits []func() error
}

type Option func(*analyticsUseCase)

func SetBatch(size int, interval time.Duration) Option {
	return func(a *analyticsUseCase) {
		a.batchSize = size
		a.batchInterval = interval
	}
}

func SetFlushBackoff(backoff time.Duration) Option {
	return func(a *analyticsUseCase) {
		a.flushBackoff = backoff
	}
}

func SetNow(now func() time.Time) Option {
	return func(a *analyticsUseCase) {
		a.now = now
	}
}

func CreateAnalyticsUseCase(analyticsRepo domain.AnalyticsRepo, analyticsEventRepo domain.AnalyticsEventRepo, aliasRepo domain.AliasRepo, geoRepo domain.GeoRepo, logger *loggerKit.Logger, options ...Option) (domain.AnalyticsUseCase, error) {
	if analyticsRepo == nil || analyticsEventRepo == nil || aliasRepo == nil || geoRepo == nil || logger == nil {
		return nil, errors.New("create analytics use case failed")
	}
	a := &analyticsUseCase{
		analyticsRepo:      analyticsRepo,
		analyticsEventRepo: analyticsEventRepo,
		aliasRepo:          aliasRepo,
		geoRepo:            geoRepo,
		logger:             logger,
		validate:           validator.New(),
		batchSize:          DefaultBatchSize,
		batchInterval:      DefaultBatchInterval,
		flushBackoff:       defaultFlushBackoff,
		now:                time.Now,
	}
	for _, option := range options {
		option(a)
	}
	if a.batchSize <= 0 || a.batchInterval <= 0 {
		return nil, errors.New("batch size and interval must be positive")
	}
	return a, nil
}

// HandleEvent buffers one click. commitFn runs only after the batch holding
// the click is persisted. A full buffer blocks until it is flushed.
func (a *analyticsUseCase) HandleEvent(ctx context.Context, message []byte, commitFn func() error) error {
	event, err := a.transform(message)
	if err != nil {
		a.logger.Warn("drop malformed analytics event",
			loggerKit.String("message", string(message)),
			loggerKit.Error(err),
		)
	}

	a.lock.Lock()
	if event != nil {
		a.events = append(a.events, event)
	}
	a.commits = append(a.commits, commitFn)
	full := len(a.events) >= a.batchSize
	a.lock.Unlock()

	if !full {
		return nil
	}
	for {
		err := a.Flush(ctx)
		if err == nil {
			return nil
		}
		a.logger.Error("flush analytics batch failed, retrying", loggerKit.Error(err))

		timer := time.NewTimer(a.flushBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Wrap(ctx.Err(), "flush analytics batch canceled")
		case <-timer.C:
		}
	}
}

// Flush persists the buffer. On failure the buffer is kept for the next attempt.
func (a *analyticsUseCase) Flush(ctx context.Context) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if len(a.events) == 0 && len(a.commits) == 0 {
		return nil
	}
	if err := a.analyticsRepo.InsertBatch(ctx, a.events); err != nil {
		return errors.Wrap(err, "insert batch failed")
	}
	for _, commitFn := range a.commits {
		if err := commitFn(); err != nil {
			a.logger.Warn("commit analytics event failed", loggerKit.Error(err))
		}
	}
	if len(a.events) > 0 {
		a.logger.Info("inserted analytics batch", loggerKit.Int("size", len(a.events)))
	}
	a.events = nil
	a.commits = nil

	return nil
}

func (a *analyticsUseCase) ConsumeEvents(ctx context.Context) {
	a.analyticsEventRepo.ConsumeWithManualCommit(ctx, consumeKey, func(message []byte, commitFn func() error) error {
		return a.HandleEvent(ctx, message, commitFn)
	})

	go func() {
		ticker := time.NewTicker(a.batchInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
				if err := a.Flush(flushCtx); err != nil {
					a.logger.Error("flush final analytics batch failed", loggerKit.Error(err))
				}
				cancel()
				return
			case <-ticker.C:
				if err := a.Flush(ctx); err != nil {
					a.logger.Error("flush analytics batch failed", loggerKit.Error(err))
				}
			}
		}
	}()
}

func (a *analyticsUseCase) GetSummary(ctx context.Context, userID string, query *domain.AnalyticsQuery) (*domain.AnalyticsSummary, error) {
	if _, err := a.aliasRepo.GetByCodeAndUserID(ctx, query.Code, userID); err != nil {
		return nil, errors.Wrap(err, "get alias failed")
	}

	normalized := *query
	if normalized.End.IsZero() {
		normalized.End = a.now()
	}
	if normalized.Start.IsZero() {
		normalized.Start = normalized.End.Add(-defaultTimelineRange)
	}
	if normalized.Interval <= 0 {
		normalized.Interval = time.Hour
	}
	if !normalized.Start.Before(normalized.End) {
		return nil, domain.ErrInvalidTimeRange
	}
	normalized.Start = normalized.Start.UTC()
	normalized.End = normalized.End.UTC()

	summary, err := a.analyticsRepo.GetSummary(ctx, &normalized)
	if err != nil {
		return nil, errors.Wrap(err, "get summary failed")
	}
	return summary, nil
}

func (a *analyticsUseCase) Done() <-chan struct{} {
	return a.analyticsEventRepo.Done()
}

func (a *analyticsUseCase) Err() error {
	return a.analyticsEventRepo.Err()
}

func (a *analyticsUseCase) transform(message []byte) (*domain.AnalyticsEvent, error) {
	var click domain.AnalyticsClickEvent
	if err := json.Unmarshal(message, &click); err != nil {
		return nil, errors.Wrap(domain.ErrMalformedEvent, err.Error())
	}
	code := strings.TrimSpace(click.Code)
	if code == "" {
		return nil, errors.Wrap(domain.ErrMalformedEvent, "missing code")
	}

	ip := strings.TrimSpace(click.IP)
	userAgent := parseUserAgent(click.UserAgent)
	country, state := a.geoRepo.Lookup(ip)

	event := &domain.AnalyticsEvent{
		Code:      code,
		IP:        ip,
		UserAgent: strings.TrimSpace(click.UserAgent),
		Referer:   normalizeReferer(click.Referer),
		Browser:   userAgent.browser,
		OS:        userAgent.os,
		Device:    userAgent.device,
		Country:   normalizeString(country),
		State:     normalizeString(state),
		CreatedAt: a.now().UTC(),
	}
	if err := a.validate.Struct(event); err != nil {
		return nil, errors.Wrap(domain.ErrMalformedEvent, err.Error())
	}
	return event, nil
}
