package postgres

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

type analyticsRepository struct {
	db *gorm.DB
}

func (r *analyticsRepository) InsertEvent(ctx context.Context, event domain.AnalyticsEvent) error {
	payload := "{}"
	if len(event.EventData) > 0 {
		if raw, err := json.Marshal(event.EventData); err == nil {
			payload = string(raw)
		}
	}
	rec := analyticsEventModel{
		EventType: event.EventType,
		EventData: payload,
		PageURL:   event.PageURL,
		SessionID: event.SessionID,
		IPAddress: nullableString(event.IPAddress),
		UserAgent: event.UserAgent,
		CreatedAt: event.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *analyticsRepository) UpsertSession(ctx context.Context, session domain.AnalyticsSession) error {
	rec := analyticsSessionModel{
		SessionID:       session.SessionID,
		Browser:         session.Browser,
		DeviceType:      session.DeviceType,
		Country:         session.Country,
		Referrer:        session.Referrer,
		UTMSource:       session.UTMSource,
		UTMMedium:       session.UTMMedium,
		UTMCampaign:     session.UTMCampaign,
		PageViews:       session.PageViews,
		Converted:       session.Converted,
		ConversionValue: session.ConversionValue,
		StartTime:       session.StartTime,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"page_views":       rec.PageViews,
			"converted":        rec.Converted,
			"conversion_value": rec.ConversionValue,
		}),
	}).Create(&rec).Error
}

func (r *analyticsRepository) EndSession(ctx context.Context, sessionID string, endTime time.Time, totalTimeSpent int) error {
	return r.db.WithContext(ctx).
		Model(&analyticsSessionModel{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]any{
			"end_time":         endTime,
			"total_time_spent": totalTimeSpent,
		}).Error
}

func (r *analyticsRepository) InsertPerformance(ctx context.Context, sample domain.AnalyticsPerformance) error {
	rec := analyticsPerformanceModel{
		SessionID:              sample.SessionID,
		PageURL:                sample.PageURL,
		LoadTimeMs:             sample.LoadTimeMs,
		FirstContentfulPaintMs: sample.FirstContentfulPaintMs,
		LargestContentfulMs:    sample.LargestContentfulMs,
		FirstInputDelayMs:      sample.FirstInputDelayMs,
		CumulativeLayoutShift:  sample.CumulativeLayoutShift,
		CreatedAt:              sample.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *analyticsRepository) Summary(ctx context.Context, since time.Time) (domain.AnalyticsSummary, error) {
	summary := domain.AnalyticsSummary{EventCounts: map[string]int64{}}

	type eventCount struct {
		EventType string `gorm:"column:event_type"`
		Count     int64  `gorm:"column:count"`
	}
	var counts []eventCount
	if err := r.db.WithContext(ctx).
		Model(&analyticsEventModel{}).
		Select("event_type, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("event_type").
		Scan(&counts).Error; err != nil {
		return domain.AnalyticsSummary{}, err
	}
	for _, c := range counts {
		summary.EventCounts[c.EventType] = c.Count
		summary.TotalEvents += c.Count
	}

	if err := r.db.WithContext(ctx).
		Model(&analyticsSessionModel{}).
		Where("start_time >= ?", since).
		Count(&summary.TotalSessions).Error; err != nil {
		return domain.AnalyticsSummary{}, err
	}

	type conversionRow struct {
		Conversions int64 `gorm:"column:conversions"`
		Value       int64 `gorm:"column:value"`
	}
	var conv conversionRow
	if err := r.db.WithContext(ctx).
		Model(&analyticsSessionModel{}).
		Select("COUNT(*) FILTER (WHERE converted) AS conversions, COALESCE(SUM(conversion_value) FILTER (WHERE converted), 0) AS value").
		Where("start_time >= ?", since).
		Scan(&conv).Error; err != nil {
		return domain.AnalyticsSummary{}, err
	}
	summary.Conversions = conv.Conversions
	summary.ConversionValue = conv.Value

	return summary, nil
}
