package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

// AdminUserRepository defines persistence operations for back-office identities.
type AdminUserRepository interface {
	GetByEmail(ctx context.Context, email string) (domain.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.AdminUser, error)
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// SessionCreateParams captures metadata required to create a session row.
// Network fields are stored for auditability.
type SessionCreateParams struct {
	AdminUserID uuid.UUID
	Token       string
	IPAddress   string
	UserAgent   string
	ExpiresAt   time.Time
}

// AdminSessionRepository manages server-side session rows. Tokens are opaque;
// deleting the row is the revocation mechanism, so there is no separate
// revoked flag to keep consistent.
type AdminSessionRepository interface {
	Create(ctx context.Context, params SessionCreateParams) (domain.AdminSession, error)
	GetByToken(ctx context.Context, token string) (domain.AdminSession, error)
	TouchAccess(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// LoginAttemptRepository stores login outcomes used for audit and lockout review.
type LoginAttemptRepository interface {
	Insert(ctx context.Context, attempt domain.LoginAttempt) error
	ListRecent(ctx context.Context, limit int) ([]domain.LoginAttempt, error)
}

// CreateOrderParams captures the pending order written at checkout creation.
type CreateOrderParams struct {
	StripeSessionID string
	CustomerEmail   string
	ProductName     string
	Amount          int64
	Currency        string
}

// OrderRepository persists the order lifecycle. MarkPaidWithFulfillmentTx is
// transactional: the paid transition, the download link insert, and the
// delivery-email outbox enqueue either all commit or none do.
type OrderRepository interface {
	CreatePending(ctx context.Context, params CreateOrderParams) (domain.Order, error)
	GetByStripeSession(ctx context.Context, stripeSessionID string) (domain.Order, error)
	MarkPaidWithFulfillmentTx(ctx context.Context, params PaidFulfillmentParams) (domain.Order, domain.DownloadLink, error)
	MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, stripeSessionID string, at time.Time) error
}

// PaidFulfillmentParams carries everything the paid transition writes. A
// session with no pending row is recreated from these fields; an existing
// row keeps its stored customer email.
type PaidFulfillmentParams struct {
	StripeSessionID  string
	StripeCustomerID string
	CustomerEmail    string
	ProductName      string
	Amount           int64
	Currency         string
	DownloadToken    string
	LinkExpiresAt    time.Time
	MaxDownloads     int
	OutboxEvent      OutboxEvent
	Now              time.Time
}

// DownloadLinkRepository issues downloads with a race-safe conditional
// increment: ConsumeByToken succeeds only while the link is active, unexpired,
// and below its count ceiling, so concurrent requests cannot overshoot.
type DownloadLinkRepository interface {
	GetByToken(ctx context.Context, token string) (domain.DownloadLink, error)
	ConsumeByToken(ctx context.Context, token string, now time.Time) (domain.DownloadLink, error)
}

// ReviewRepository persists the moderation queue.
type ReviewRepository interface {
	Create(ctx context.Context, review domain.Review) (domain.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error)
	ListByStatus(ctx context.Context, status domain.ReviewStatus, limit, offset int) ([]domain.Review, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Review, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, approvedBy *uuid.UUID, at time.Time) (domain.Review, error)
	SetStatusBulk(ctx context.Context, ids []uuid.UUID, status domain.ReviewStatus, approvedBy *uuid.UUID, at time.Time) (int64, error)
}

// AnalyticsRepository is append-mostly; session rows are upserted by the
// client-generated session id.
type AnalyticsRepository interface {
	InsertEvent(ctx context.Context, event domain.AnalyticsEvent) error
	UpsertSession(ctx context.Context, session domain.AnalyticsSession) error
	EndSession(ctx context.Context, sessionID string, endTime time.Time, totalTimeSpent int) error
	InsertPerformance(ctx context.Context, sample domain.AnalyticsPerformance) error
	Summary(ctx context.Context, since time.Time) (domain.AnalyticsSummary, error)
}

// OutboxEvent is the write-side event payload prior to storage.
// It is adapter-neutral to keep application code independent of sender specifics.
type OutboxEvent struct {
	EventID      uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
}

// OutboxRecord represents durable outbox state, including retry/error metadata.
type OutboxRecord struct {
	OutboxID       uuid.UUID
	EventType      string
	PartitionKey   string
	Payload        []byte
	RetryCount     int
	LastError      *string
	CreatedAt      time.Time
	PublishedAt    *time.Time
	LastErrorAt    *time.Time
	ClaimToken     *string
	ClaimUntil     *time.Time
	DeadLetteredAt *time.Time
}

// OutboxRepository controls the publish-retry workflow for domain events.
// This explicit contract enables the transactional outbox pattern without
// leaking DB details into the worker.
type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	ClaimUnpublished(ctx context.Context, limit int, claimToken string, claimUntil time.Time) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, claimToken string, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, claimToken, errMsg string, at time.Time) error
	MarkDeadLettered(ctx context.Context, outboxID uuid.UUID, claimToken, errMsg string, at time.Time) error
}

// IdempotencyRecord tracks a previously accepted mutating request.
// Storing response metadata lets handlers return stable replay responses.
type IdempotencyRecord struct {
	Key          string
	RequestHash  string
	Status       string
	ResponseCode int
	ResponseBody []byte
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IdempotencyRepository enforces idempotent mutation semantics.
type IdempotencyRepository interface {
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error
	Complete(ctx context.Context, key string, responseCode int, responseBody []byte, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
