package orm

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
	ormKit "github.com/superj80820/url2short/kit/orm"
)

const (
	tableName       = "analytics"
	insertBatchSize = 1000
)

type analyticsEntity domain.AnalyticsEvent

func (analyticsEntity) TableName() string {
	return tableName
}

type analyticsRepo struct {
	orm *ormKit.DB
}

func CreateAnalyticsRepo(orm *ormKit.DB) domain.AnalyticsRepo {
	return &analyticsRepo{
		orm: orm,
	}
}

func Migrate(orm *ormKit.DB) error {
	if err := orm.AutoMigrate(&analyticsEntity{}); err != nil {
		return errors.Wrap(err, "migrate analytics failed")
	}
	return nil
}

func (a *analyticsRepo) InsertBatch(ctx context.Context, events []*domain.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}
	entities := make([]*analyticsEntity, len(events))
	for idx, event := range events {
		entities[idx] = (*analyticsEntity)(event)
	}
	if err := a.orm.WithContext(ctx).CreateInBatches(entities, insertBatchSize).Error; err != nil {
		return errors.Wrap(err, "insert analytics batch failed")
	}
	return nil
}

func (a *analyticsRepo) GetSummary(ctx context.Context, query *domain.AnalyticsQuery) (*domain.AnalyticsSummary, error) {
	var summary domain.AnalyticsSummary

	err := a.orm.WithContext(ctx).Table(tableName).Where("code = ?", query.Code).Count(&summary.TotalClicks).Error
	if err != nil {
		return nil, errors.Wrap(err, "count clicks failed")
	}

	if summary.Timeline, err = a.timeline(ctx, query); err != nil {
		return nil, errors.Wrap(err, "get timeline failed")
	}

	dimensions := []struct {
		column   string
		nonEmpty bool
		dst      *[]*domain.DimensionSummary
	}{
		{column: "browser", dst: &summary.Browsers},
		{column: "os", dst: &summary.OS},
		{column: "device_type", dst: &summary.Devices},
		{column: "country", dst: &summary.Countries},
		{column: "referer", nonEmpty: true, dst: &summary.Referrers},
	}
	for _, dimension := range dimensions {
		rows, err := a.groupBy(ctx, query.Code, dimension.column, dimension.nonEmpty)
		if err != nil {
			return nil, errors.Wrapf(err, "group by %s failed", dimension.column)
		}
		*dimension.dst = rows
	}

	return &summary, nil
}

func (a *analyticsRepo) groupBy(ctx context.Context, code, column string, nonEmpty bool) ([]*domain.DimensionSummary, error) {
	rows := make([]*domain.DimensionSummary, 0)
	tx := a.orm.WithContext(ctx).
		Table(tableName).
		Select(column+" AS name, COUNT(*) AS count").
		Where("code = ?", code)
	if nonEmpty {
		tx = tx.Where(column + " IS NOT NULL AND " + column + " <> ''")
	}
	if err := tx.Group(column).Order("count DESC").Order(column).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// timeline buckets in process so the query stays portable across dialects.
func (a *analyticsRepo) timeline(ctx context.Context, query *domain.AnalyticsQuery) ([]*domain.TimelinePoint, error) {
	var createdAts []time.Time
	err := a.orm.WithContext(ctx).
		Table(tableName).
		Where("code = ? AND created_at >= ? AND created_at < ?", query.Code, query.Start, query.End).
		Pluck("created_at", &createdAts).Error
	if err != nil {
		return nil, err
	}

	interval := query.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	counts := make(map[time.Time]int64)
	for _, createdAt := range createdAts {
		counts[createdAt.UTC().Truncate(interval)]++
	}
	points := make([]*domain.TimelinePoint, 0, len(counts))
	for bucket, count := range counts {
		points = append(points, &domain.TimelinePoint{Time: bucket, Count: count})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	return points, nil
}
