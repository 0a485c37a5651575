package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEvent is an append-only behavioral fact. EventData is already
// sanitized by the time it reaches storage.
type AnalyticsEvent struct {
	ID        uuid.UUID
	EventType string
	EventData map[string]any
	PageURL   string
	SessionID string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// Event types emitted by the storefront.
const (
	EventPageView          = "page_view"
	EventVideoPlay         = "video_play"
	EventCheckoutInitiated = "checkout_initiated"
	EventPurchaseCompleted = "purchase_completed"
	EventScrollDepth       = "scroll_depth"
)

// ValidEventType keeps the ingest endpoint from becoming a free-form sink.
func ValidEventType(t string) bool {
	switch t {
	case EventPageView, EventVideoPlay, EventCheckoutInitiated, EventPurchaseCompleted, EventScrollDepth:
		return true
	}
	return false
}

// AnalyticsSession aggregates one visitor session. Rows are upserted by the
// client-generated SessionID as the visit progresses.
type AnalyticsSession struct {
	SessionID       string
	Browser         string
	DeviceType      string
	Country         string
	Referrer        string
	UTMSource       string
	UTMMedium       string
	UTMCampaign     string
	PageViews       int
	Converted       bool
	ConversionValue int64
	StartTime       time.Time
	EndTime         *time.Time
	TotalTimeSpent  int
}

// AnalyticsPerformance holds one page-load performance sample (web vitals).
type AnalyticsPerformance struct {
	ID                     uuid.UUID
	SessionID              string
	PageURL                string
	LoadTimeMs             int
	FirstContentfulPaintMs int
	LargestContentfulMs    int
	FirstInputDelayMs      int
	CumulativeLayoutShift  float64
	CreatedAt              time.Time
}

// AnalyticsSummary is the admin dashboard aggregate over a trailing window.
type AnalyticsSummary struct {
	Days            int
	TotalEvents     int64
	EventCounts     map[string]int64
	TotalSessions   int64
	Conversions     int64
	ConversionValue int64
}
