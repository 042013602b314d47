package domain

import (
	"context"
	"time"
)

type AnalyticsEvent struct {
	ID        int64     `json:"-" gorm:"primaryKey;autoIncrement"`
	Code      string    `json:"code" validate:"required,max=12" gorm:"size:12;index;not null"`
	IP        string    `json:"-" validate:"omitempty" gorm:"-"`
	UserAgent string    `json:"-" validate:"omitempty" gorm:"-"`
	Referer   string    `json:"referer" validate:"max=2048" gorm:"size:2048"`
	Browser   string    `json:"browser" validate:"required" gorm:"size:64"`
	OS        string    `json:"os" validate:"required" gorm:"size:64"`
	Device    string    `json:"device" validate:"required,oneof=mobile desktop" gorm:"column:device_type;size:16"`
	Country   string    `json:"country" validate:"required" gorm:"size:64"`
	State     string    `json:"state" validate:"required" gorm:"size:64"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

type DimensionSummary struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type TimelinePoint struct {
	Time  time.Time `json:"time"`
	Count int64     `json:"count"`
}

// AnalyticsQuery bounds the timeline. Dimension counts always cover every click.
type AnalyticsQuery struct {
	Code     string
	Start    time.Time
	End      time.Time
	Interval time.Duration
}

type AnalyticsSummary struct {
	TotalClicks int64               `json:"total_clicks"`
	Timeline    []*TimelinePoint    `json:"timeline"`
	Browsers    []*DimensionSummary `json:"browsers"`
	OS          []*DimensionSummary `json:"os"`
	Devices     []*DimensionSummary `json:"devices"`
	Countries   []*DimensionSummary `json:"countries"`
	Referrers   []*DimensionSummary `json:"referrers"`
}

type AnalyticsRepo interface {
	InsertBatch(ctx context.Context, events []*AnalyticsEvent) error
	GetSummary(ctx context.Context, query *AnalyticsQuery) (*AnalyticsSummary, error)
}

type GeoRepo interface {
	Lookup(ip string) (country, state string)
	Close() error
}

type AnalyticsUseCase interface {
	HandleEvent(ctx context.Context, message []byte, commitFn func() error) error
	Flush(ctx context.Context) error
	ConsumeEvents(ctx context.Context)
	GetSummary(ctx context.Context, userID string, query *AnalyticsQuery) (*AnalyticsSummary, error)
	Done() <-chan struct{}
	Err() error
}
