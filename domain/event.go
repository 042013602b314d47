package domain

import "context"

type AliasCreatedEvent struct {
	Code     string   `json:"code"`
	Target   string   `json:"target"`
	UserID   string   `json:"user_id"`
	Metadata Metadata `json:"metadata"`
}

type AliasDeleteEvent struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// AliasCheckedEvent is produced by the external moderation scanner. IsSafe is a
// pointer so a missing field can be told apart from false.
type AliasCheckedEvent struct {
	Code   string   `json:"code"`
	IsSafe *bool    `json:"is_safe"`
	Score  *float64 `json:"score"`
}

type AnalyticsClickEvent struct {
	Code      string `json:"code"`
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent"`
	Referer   string `json:"referer,omitempty"`
}

type AliasEventRepo interface {
	ProduceAliasCreated(ctx context.Context, event *AliasCreatedEvent) error
	ProduceAliasDelete(ctx context.Context, event *AliasDeleteEvent) error
	// ConsumeAliasChecked commits a message only when notify returns nil. The
	// subscription ends when ctx is done.
	ConsumeAliasChecked(ctx context.Context, key string, notify func(message []byte) error)
	Done() <-chan struct{}
	Err() error
}

type AnalyticsEventRepo interface {
	ProduceAsync(event *AnalyticsClickEvent) bool
	ConsumeWithManualCommit(ctx context.Context, key string, notify func(message []byte, commitFn func() error) error)
	Done() <-chan struct{}
	Err() error
}

type ModerationUseCase interface {
	HandleChecked(ctx context.Context, message []byte) error
	ConsumeChecked(ctx context.Context)
	Done() <-chan struct{}
	Err() error
}
