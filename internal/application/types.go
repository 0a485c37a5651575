package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

type Config struct {
	SessionTTL           time.Duration
	FailedLoginThreshold int
	RateLimitWindow      time.Duration
	LockoutDuration      time.Duration

	ProductName    string
	ProductAsset   string
	Currency       string
	SiteBaseURL    string
	SignedURLTTL   time.Duration
	DownloadTTL    time.Duration
	MaxDownloads   int
	ProcessedTTL   time.Duration
	IdempotencyTTL time.Duration
}

type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type AdminUserView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type LoginResponse struct {
	User         AdminUserView `json:"user"`
	SessionToken string        `json:"sessionToken"`
	ExpiresAt    time.Time     `json:"expiresAt"`
}

type ValidateSessionRequest struct {
	SessionToken string `json:"sessionToken"`
	IPAddress    string `json:"-"`
	UserAgent    string `json:"-"`
}

type ValidateSessionResponse struct {
	Valid bool          `json:"valid"`
	User  AdminUserView `json:"user"`
}

type CreateCheckoutRequest struct {
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	ProductName   string `json:"productName"`
	CustomerEmail string `json:"customerEmail"`
}

type CreateCheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type PaymentSuccessRequest struct {
	SessionID string `json:"session_id"`
}

type PaymentSuccessResponse struct {
	Success bool               `json:"success"`
	OrderID uuid.UUID          `json:"order_id"`
	Status  domain.OrderStatus `json:"status"`
}

type DownloadRequest struct {
	DownloadToken string `json:"downloadToken"`
}

type DownloadResponse struct {
	Success            bool      `json:"success"`
	DownloadURL        string    `json:"downloadUrl"`
	RemainingDownloads int       `json:"remainingDownloads"`
	ExpiresAt          time.Time `json:"expiresAt"`
}

type DeliveryEmailRequest struct {
	Email         string `json:"email"`
	ProductName   string `json:"productName"`
	OrderNumber   string `json:"orderNumber"`
	DownloadToken string `json:"downloadToken"`
}

type DeliveryEmailResponse struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"messageId,omitempty"`
}

type SubmitReviewRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Rating        int    `json:"rating"`
	ReviewText    string `json:"reviewText"`
}

type ReviewView struct {
	ID           uuid.UUID           `json:"id"`
	CustomerName string              `json:"customerName"`
	Rating       int                 `json:"rating"`
	ReviewText   string              `json:"reviewText"`
	Status       domain.ReviewStatus `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
}

type ModerationReviewView struct {
	ReviewView
	CustomerEmail   string     `json:"customerEmail"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	ApprovedByAdmin *uuid.UUID `json:"approvedByAdmin,omitempty"`
}

type SetReviewStatusRequest struct {
	Status domain.ReviewStatus `json:"status"`
}

type BulkReviewStatusRequest struct {
	IDs    []uuid.UUID         `json:"ids"`
	Status domain.ReviewStatus `json:"status"`
}

type TrackEventRequest struct {
	EventType string         `json:"eventType"`
	EventData map[string]any `json:"eventData"`
	PageURL   string         `json:"pageUrl"`
	SessionID string         `json:"sessionId"`
	IPAddress string         `json:"-"`
	UserAgent string         `json:"-"`
}

type TrackSessionRequest struct {
	SessionID       string     `json:"sessionId"`
	Browser         string     `json:"browser"`
	DeviceType      string     `json:"deviceType"`
	Country         string     `json:"country"`
	Referrer        string     `json:"referrer"`
	UTMSource       string     `json:"utmSource"`
	UTMMedium       string     `json:"utmMedium"`
	UTMCampaign     string     `json:"utmCampaign"`
	PageViews       int        `json:"pageViews"`
	Converted       bool       `json:"converted"`
	ConversionValue int64      `json:"conversionValue"`
	StartTime       *time.Time `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	TotalTimeSpent  int        `json:"totalTimeSpent"`
}

type TrackPerformanceRequest struct {
	SessionID              string  `json:"sessionId"`
	PageURL                string  `json:"pageUrl"`
	LoadTimeMs             int     `json:"loadTime"`
	FirstContentfulPaintMs int     `json:"firstContentfulPaint"`
	LargestContentfulMs    int     `json:"largestContentfulPaint"`
	FirstInputDelayMs      int     `json:"firstInputDelay"`
	CumulativeLayoutShift  float64 `json:"cumulativeLayoutShift"`
}

func toAdminUserView(u domain.AdminUser) AdminUserView {
	return AdminUserView{ID: u.ID, Email: u.Email, Role: u.Role}
}

func toReviewView(r domain.Review) ReviewView {
	return ReviewView{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Rating:       r.Rating,
		ReviewText:   r.ReviewText,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
	}
}

func toModerationReviewView(r domain.Review) ModerationReviewView {
	return ModerationReviewView{
		ReviewView:      toReviewView(r),
		CustomerEmail:   r.CustomerEmail,
		ApprovedAt:      r.ApprovedAt,
		ApprovedByAdmin: r.ApprovedByAdmin,
	}
}
