package domain

import (
	"context"
	"time"
)

const AliasCacheKeyPrefix = "alias:"

func AliasCacheKey(code string) string {
	return AliasCacheKeyPrefix + code
}

type CacheRecordFormat int

const (
	CacheRecordStructured CacheRecordFormat = iota
	CacheRecordLegacy
)

func (c CacheRecordFormat) String() string {
	switch c {
	case CacheRecordStructured:
		return "structured"
	case CacheRecordLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// CacheRecord is the denormalized projection of an Alias kept in the cache.
// Legacy records only carry the target and never warn.
type CacheRecord struct {
	Format     CacheRecordFormat
	Target     string
	ShouldWarn bool
}

func CreateStructuredCacheRecord(target string, shouldWarn bool) *CacheRecord {
	return &CacheRecord{
		Format:     CacheRecordStructured,
		Target:     target,
		ShouldWarn: shouldWarn,
	}
}

func CreateLegacyCacheRecord(target string) *CacheRecord {
	return &CacheRecord{
		Format: CacheRecordLegacy,
		Target: target,
	}
}

type AliasCacheRepo interface {
	Get(ctx context.Context, code string) (record *CacheRecord, exists bool, err error)
	Set(ctx context.Context, code string, record *CacheRecord, ttl time.Duration) error
	// CapTTL lowers the remaining lifetime of a cached record to at most ttl.
	// A non positive ttl removes the record.
	CapTTL(ctx context.Context, code string, ttl time.Duration) error
	Ping(ctx context.Context) error
}

type ResolutionOutcome int

const (
	ResolutionNotFound ResolutionOutcome = iota
	ResolutionRedirect
	ResolutionInterstitial
)

func (r ResolutionOutcome) String() string {
	switch r {
	case ResolutionRedirect:
		return "redirect"
	case ResolutionInterstitial:
		return "interstitial"
	case ResolutionNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

type ResolveRequest struct {
	Code      string
	ClientIP  string
	UserAgent string
	Referer   string
}

type Resolution struct {
	Outcome ResolutionOutcome
	Target  string
}

type ResolverUseCase interface {
	Resolve(ctx context.Context, req *ResolveRequest) (*Resolution, error)
}
