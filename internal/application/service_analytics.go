package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

// TrackEvent records one behavioral event. Payload values are sanitized and
// unknown event types are rejected before anything is stored.
func (s *Service) TrackEvent(ctx context.Context, req TrackEventRequest) error {
	if !domain.ValidEventType(req.EventType) {
		return fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, req.EventType)
	}
	sessionID, err := domain.RequireText("sessionId", req.SessionID, 128)
	if err != nil {
		return err
	}

	data := make(map[string]any, len(req.EventData))
	for k, v := range req.EventData {
		key := domain.SanitizeText(k, 64)
		if key == "" {
			continue
		}
		if str, ok := v.(string); ok {
			data[key] = domain.SanitizeText(str, 500)
			continue
		}
		data[key] = v
	}

	return s.analytics.InsertEvent(ctx, domain.AnalyticsEvent{
		EventType: req.EventType,
		EventData: data,
		PageURL:   domain.SanitizeText(req.PageURL, 500),
		SessionID: sessionID,
		IPAddress: req.IPAddress,
		UserAgent: domain.SanitizeText(req.UserAgent, 500),
		CreatedAt: s.nowFn(),
	})
}

// TrackSession upserts the visitor session row. An EndTime closes the
// session; otherwise the row is created or refreshed in place.
func (s *Service) TrackSession(ctx context.Context, req TrackSessionRequest) error {
	sessionID, err := domain.RequireText("sessionId", req.SessionID, 128)
	if err != nil {
		return err
	}

	if req.EndTime != nil {
		return s.analytics.EndSession(ctx, sessionID, req.EndTime.UTC(), req.TotalTimeSpent)
	}

	start := s.nowFn()
	if req.StartTime != nil {
		start = req.StartTime.UTC()
	}
	return s.analytics.UpsertSession(ctx, domain.AnalyticsSession{
		SessionID:       sessionID,
		Browser:         domain.SanitizeText(req.Browser, 100),
		DeviceType:      domain.SanitizeText(req.DeviceType, 50),
		Country:         domain.SanitizeText(req.Country, 100),
		Referrer:        domain.SanitizeText(req.Referrer, 500),
		UTMSource:       domain.SanitizeText(req.UTMSource, 100),
		UTMMedium:       domain.SanitizeText(req.UTMMedium, 100),
		UTMCampaign:     domain.SanitizeText(req.UTMCampaign, 100),
		PageViews:       req.PageViews,
		Converted:       req.Converted,
		ConversionValue: req.ConversionValue,
		StartTime:       start,
	})
}

// TrackPerformance records one page-load web-vitals sample.
func (s *Service) TrackPerformance(ctx context.Context, req TrackPerformanceRequest) error {
	sessionID, err := domain.RequireText("sessionId", req.SessionID, 128)
	if err != nil {
		return err
	}
	return s.analytics.InsertPerformance(ctx, domain.AnalyticsPerformance{
		SessionID:              sessionID,
		PageURL:                domain.SanitizeText(req.PageURL, 500),
		LoadTimeMs:             req.LoadTimeMs,
		FirstContentfulPaintMs: req.FirstContentfulPaintMs,
		LargestContentfulMs:    req.LargestContentfulMs,
		FirstInputDelayMs:      req.FirstInputDelayMs,
		CumulativeLayoutShift:  req.CumulativeLayoutShift,
		CreatedAt:              s.nowFn(),
	})
}

// AnalyticsSummary aggregates the trailing window for the admin dashboard.
func (s *Service) AnalyticsSummary(ctx context.Context, admin AdminUserView, days int) (domain.AnalyticsSummary, error) {
	if days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}
	since := s.nowFn().Add(-time.Duration(days) * 24 * time.Hour)
	summary, err := s.analytics.Summary(ctx, since)
	if err != nil {
		return domain.AnalyticsSummary{}, err
	}
	summary.Days = days
	return summary, nil
}
