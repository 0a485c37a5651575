package postgres

import (
	"time"

	"github.com/google/uuid"
)

type adminUserModel struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"column:email"`
	PasswordHash string     `gorm:"column:password_hash"`
	Role         string     `gorm:"column:role"`
	IsActive     bool       `gorm:"column:is_active"`
	LastLogin    *time.Time `gorm:"column:last_login"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (adminUserModel) TableName() string { return "admin_users" }

type adminSessionModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AdminUserID  uuid.UUID `gorm:"column:admin_user_id"`
	SessionToken string    `gorm:"column:session_token"`
	IPAddress    *string   `gorm:"column:ip_address"`
	UserAgent    string    `gorm:"column:user_agent"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	LastAccessed time.Time `gorm:"column:last_accessed"`
	ExpiresAt    time.Time `gorm:"column:expires_at"`
}

func (adminSessionModel) TableName() string { return "admin_sessions" }

type loginAttemptModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	AdminUserID   *uuid.UUID `gorm:"column:admin_user_id"`
	Email         string     `gorm:"column:email"`
	AttemptAt     time.Time  `gorm:"column:attempt_at"`
	IPAddress     *string    `gorm:"column:ip_address"`
	UserAgent     string     `gorm:"column:user_agent"`
	Status        string     `gorm:"column:status"`
	FailureReason string     `gorm:"column:failure_reason"`
}

func (loginAttemptModel) TableName() string { return "login_attempts" }

type orderModel struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StripeSessionID  string     `gorm:"column:stripe_session_id"`
	StripeCustomerID *string    `gorm:"column:stripe_customer_id"`
	CustomerEmail    string     `gorm:"column:customer_email"`
	ProductName      string     `gorm:"column:product_name"`
	Amount           int64      `gorm:"column:amount"`
	Currency         string     `gorm:"column:currency"`
	Status           string     `gorm:"column:status"`
	DeliveredAt      *time.Time `gorm:"column:delivered_at"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (orderModel) TableName() string { return "orders" }

type downloadLinkModel struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       uuid.UUID `gorm:"column:order_id"`
	DownloadToken string    `gorm:"column:download_token"`
	DownloadCount int       `gorm:"column:download_count"`
	MaxDownloads  int       `gorm:"column:max_downloads"`
	IsActive      bool      `gorm:"column:is_active"`
	ExpiresAt     time.Time `gorm:"column:expires_at"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	LastAccessed  time.Time `gorm:"column:last_accessed"`
}

func (downloadLinkModel) TableName() string { return "download_links" }

type reviewModel struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName    string     `gorm:"column:customer_name"`
	CustomerEmail   string     `gorm:"column:customer_email"`
	Rating          int        `gorm:"column:rating"`
	ReviewText      string     `gorm:"column:review_text"`
	Status          string     `gorm:"column:status"`
	ApprovedAt      *time.Time `gorm:"column:approved_at"`
	ApprovedByAdmin *uuid.UUID `gorm:"column:approved_by_admin_id"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

type analyticsEventModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EventType string    `gorm:"column:event_type"`
	EventData string    `gorm:"column:event_data;type:jsonb"`
	PageURL   string    `gorm:"column:page_url"`
	SessionID string    `gorm:"column:session_id"`
	IPAddress *string   `gorm:"column:ip_address"`
	UserAgent string    `gorm:"column:user_agent"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (analyticsEventModel) TableName() string { return "analytics_events" }

type analyticsSessionModel struct {
	SessionID       string     `gorm:"column:session_id;primaryKey"`
	Browser         string     `gorm:"column:browser"`
	DeviceType      string     `gorm:"column:device_type"`
	Country         string     `gorm:"column:country"`
	Referrer        string     `gorm:"column:referrer"`
	UTMSource       string     `gorm:"column:utm_source"`
	UTMMedium       string     `gorm:"column:utm_medium"`
	UTMCampaign     string     `gorm:"column:utm_campaign"`
	PageViews       int        `gorm:"column:page_views"`
	Converted       bool       `gorm:"column:converted"`
	ConversionValue int64      `gorm:"column:conversion_value"`
	StartTime       time.Time  `gorm:"column:start_time"`
	EndTime         *time.Time `gorm:"column:end_time"`
	TotalTimeSpent  int        `gorm:"column:total_time_spent"`
}

func (analyticsSessionModel) TableName() string { return "analytics_sessions" }

type analyticsPerformanceModel struct {
	ID                     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID              string    `gorm:"column:session_id"`
	PageURL                string    `gorm:"column:page_url"`
	LoadTimeMs             int       `gorm:"column:load_time_ms"`
	FirstContentfulPaintMs int       `gorm:"column:first_contentful_paint_ms"`
	LargestContentfulMs    int       `gorm:"column:largest_contentful_paint_ms"`
	FirstInputDelayMs      int       `gorm:"column:first_input_delay_ms"`
	CumulativeLayoutShift  float64   `gorm:"column:cumulative_layout_shift"`
	CreatedAt              time.Time `gorm:"column:created_at"`
}

func (analyticsPerformanceModel) TableName() string { return "analytics_performance" }

type outboxModel struct {
	OutboxID       uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType      string     `gorm:"column:event_type"`
	PartitionKey   string     `gorm:"column:partition_key"`
	Payload        string     `gorm:"column:payload;type:jsonb"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	PublishedAt    *time.Time `gorm:"column:published_at"`
	RetryCount     int        `gorm:"column:retry_count"`
	LastError      *string    `gorm:"column:last_error"`
	LastErrorAt    *time.Time `gorm:"column:last_error_at"`
	ClaimToken     *string    `gorm:"column:claim_token"`
	ClaimUntil     *time.Time `gorm:"column:claim_until"`
	DeadLetteredAt *time.Time `gorm:"column:dead_lettered_at"`
}

func (outboxModel) TableName() string { return "delivery_outbox" }

type idempotencyModel struct {
	IdempotencyKey string    `gorm:"column:idempotency_key;primaryKey"`
	RequestHash    string    `gorm:"column:request_hash"`
	Status         string    `gorm:"column:status"`
	ResponseCode   int       `gorm:"column:response_code"`
	ResponseBody   *string   `gorm:"column:response_body;type:jsonb"`
	ExpiresAt      time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (idempotencyModel) TableName() string { return "checkout_idempotency" }
