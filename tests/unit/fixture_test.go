package unit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/application"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/ports"
)

const (
	testAdminEmail    = "admin@luxevisionshop.com"
	testAdminPassword = "SecurePass123!"
)

func newFixture() *fixture {
	return newFixtureWithConfig(defaultTestConfig())
}

func defaultTestConfig() application.Config {
	return application.Config{
		SessionTTL:           24 * time.Hour,
		FailedLoginThreshold: 5,
		RateLimitWindow:      15 * time.Minute,
		LockoutDuration:      15 * time.Minute,
		ProductName:          "LUXE Masterclass",
		ProductAsset:         "/assets/luxe-masterclass.zip",
		Currency:             "usd",
		SiteBaseURL:          "https://luxevisionshop.com",
		SignedURLTTL:         time.Hour,
		DownloadTTL:          7 * 24 * time.Hour,
		MaxDownloads:         5,
		ProcessedTTL:         24 * time.Hour,
		IdempotencyTTL:       24 * time.Hour,
	}
}

func newFixtureWithConfig(cfg application.Config) *fixture {
	admins := &fakeAdmins{
		byEmail: map[string]domain.AdminUser{},
		byID:    map[uuid.UUID]domain.AdminUser{},
	}
	adminID := uuid.New()
	admins.put(domain.AdminUser{
		ID:           adminID,
		Email:        testAdminEmail,
		PasswordHash: "hashed:" + testAdminPassword,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})

	sessions := &fakeSessions{byToken: map[string]domain.AdminSession{}}
	attempts := &fakeLoginAttempts{}
	orders := &fakeOrders{
		bySession: map[string]domain.Order{},
		links:     map[string]domain.DownloadLink{},
	}
	reviews := &fakeReviews{byID: map[uuid.UUID]domain.Review{}}
	analytics := &fakeAnalytics{sessions: map[string]domain.AnalyticsSession{}}
	outbox := &fakeOutbox{}
	orders.outbox = outbox
	idem := &fakeIdempotency{records: map[string]ports.IdempotencyRecord{}}
	lockouts := &fakeLockouts{state: map[string]ports.LockoutState{}}
	processed := &fakeProcessed{seen: map[string]bool{}}
	gateway := &fakeGateway{sessions: map[string]ports.CheckoutSession{}}
	email := &fakeEmail{}
	tokens := &fakeTokens{}

	svc := application.NewService(application.Dependencies{
		Config:        cfg,
		Admins:        admins,
		Sessions:      sessions,
		LoginAttempts: attempts,
		Orders:        orders,
		Downloads:     orders,
		Reviews:       reviews,
		Analytics:     analytics,
		Outbox:        outbox,
		Idempotency:   idem,
		Lockouts:      lockouts,
		Processed:     processed,
		Hasher:        &fakeHasher{},
		Tokens:        tokens,
		URLSigner:     &fakeSigner{},
		Payments:      gateway,
		Email:         email,
	})

	return &fixture{
		service:   svc,
		adminID:   adminID,
		admins:    admins,
		sessions:  sessions,
		orders:    orders,
		reviews:   reviews,
		analytics: analytics,
		outbox:    outbox,
		lockouts:  lockouts,
		gateway:   gateway,
		email:     email,
		tokens:    tokens,
	}
}

type fixture struct {
	service   *application.Service
	adminID   uuid.UUID
	admins    *fakeAdmins
	sessions  *fakeSessions
	orders    *fakeOrders
	reviews   *fakeReviews
	analytics *fakeAnalytics
	outbox    *fakeOutbox
	lockouts  *fakeLockouts
	gateway   *fakeGateway
	email     *fakeEmail
	tokens    *fakeTokens
}

func (f *fixture) adminView() application.AdminUserView {
	return application.AdminUserView{ID: f.adminID, Email: testAdminEmail, Role: domain.RoleAdmin}
}

type fakeAdmins struct {
	mu      sync.Mutex
	byEmail map[string]domain.AdminUser
	byID    map[uuid.UUID]domain.AdminUser
}

func (f *fakeAdmins) put(u domain.AdminUser) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeAdmins) GetByEmail(_ context.Context, email string) (domain.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return domain.AdminUser{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeAdmins) GetByID(_ context.Context, id uuid.UUID) (domain.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.AdminUser{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeAdmins) RecordLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.LastLogin = &at
	f.byID[id] = u
	f.byEmail[u.Email] = u
	return nil
}

type fakeSessions struct {
	mu      sync.Mutex
	byToken map[string]domain.AdminSession
}

func (f *fakeSessions) Create(_ context.Context, params ports.SessionCreateParams) (domain.AdminSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byToken[params.Token]; ok {
		return domain.AdminSession{}, domain.ErrConflict
	}
	s := domain.AdminSession{
		ID:           uuid.New(),
		AdminUserID:  params.AdminUserID,
		Token:        params.Token,
		IPAddress:    params.IPAddress,
		UserAgent:    params.UserAgent,
		CreatedAt:    time.Now().UTC(),
		LastAccessed: time.Now().UTC(),
		ExpiresAt:    params.ExpiresAt,
	}
	f.byToken[params.Token] = s
	return s, nil
}

func (f *fakeSessions) GetByToken(_ context.Context, token string) (domain.AdminSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byToken[token]
	if !ok {
		return domain.AdminSession{}, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessions) TouchAccess(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token, s := range f.byToken {
		if s.ID == id {
			s.LastAccessed = at
			f.byToken[token] = s
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeSessions) DeleteByToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byToken, token)
	return nil
}

func (f *fakeSessions) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for token, s := range f.byToken {
		if !before.Before(s.ExpiresAt) {
			delete(f.byToken, token)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeSessions) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byToken)
}

// expire rewinds a session's expiry so validation treats it as dead.
func (f *fakeSessions) expire(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.byToken[token]
	s.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	f.byToken[token] = s
}

type fakeLoginAttempts struct {
	mu       sync.Mutex
	attempts []domain.LoginAttempt
}

func (f *fakeLoginAttempts) Insert(_ context.Context, attempt domain.LoginAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts = append(f.attempts, attempt)
	return nil
}

func (f *fakeLoginAttempts) ListRecent(_ context.Context, limit int) ([]domain.LoginAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit <= 0 || limit > len(f.attempts) {
		limit = len(f.attempts)
	}
	return append([]domain.LoginAttempt(nil), f.attempts[len(f.attempts)-limit:]...), nil
}

// fakeOrders implements both OrderRepository and DownloadLinkRepository so
// fulfillment writes land in one place, mirroring the shared database.
type fakeOrders struct {
	mu        sync.Mutex
	bySession map[string]domain.Order
	links     map[string]domain.DownloadLink
	outbox    *fakeOutbox
}

func (f *fakeOrders) CreatePending(_ context.Context, params ports.CreateOrderParams) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bySession[params.StripeSessionID]; ok {
		return domain.Order{}, domain.ErrConflict
	}
	o := domain.Order{
		ID:              uuid.New(),
		StripeSessionID: params.StripeSessionID,
		CustomerEmail:   params.CustomerEmail,
		ProductName:     params.ProductName,
		Amount:          params.Amount,
		Currency:        params.Currency,
		Status:          domain.OrderPending,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
	f.bySession[params.StripeSessionID] = o
	return o, nil
}

func (f *fakeOrders) GetByStripeSession(_ context.Context, stripeSessionID string) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.bySession[stripeSessionID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrders) MarkPaidWithFulfillmentTx(_ context.Context, params ports.PaidFulfillmentParams) (domain.Order, domain.DownloadLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.bySession[params.StripeSessionID]
	if !ok {
		o = domain.Order{
			ID:              uuid.New(),
			StripeSessionID: params.StripeSessionID,
			CustomerEmail:   params.CustomerEmail,
			ProductName:     params.ProductName,
			Amount:          params.Amount,
			Currency:        params.Currency,
			Status:          domain.OrderPending,
			CreatedAt:       params.Now,
		}
	}

	if o.Status == domain.OrderPaid || o.Status == domain.OrderDelivered {
		link := f.linkByOrder(o.ID)
		return o, link, nil
	}
	if !o.Status.CanTransitionTo(domain.OrderPaid) {
		return domain.Order{}, domain.DownloadLink{}, domain.ErrInvalidTransition
	}

	o.Status = domain.OrderPaid
	o.StripeCustomerID = params.StripeCustomerID
	if o.CustomerEmail == "" {
		o.CustomerEmail = params.CustomerEmail
	}
	o.UpdatedAt = params.Now
	f.bySession[params.StripeSessionID] = o

	link := domain.DownloadLink{
		ID:           uuid.New(),
		OrderID:      o.ID,
		Token:        params.DownloadToken,
		MaxDownloads: params.MaxDownloads,
		IsActive:     true,
		ExpiresAt:    params.LinkExpiresAt,
		CreatedAt:    params.Now,
	}
	f.links[link.Token] = link
	f.outbox.append(params.OutboxEvent)
	return o, link, nil
}

func (f *fakeOrders) MarkDelivered(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, o := range f.bySession {
		if o.ID != id {
			continue
		}
		if o.Status == domain.OrderDelivered {
			return nil
		}
		if !o.Status.CanTransitionTo(domain.OrderDelivered) {
			return domain.ErrInvalidTransition
		}
		o.Status = domain.OrderDelivered
		o.DeliveredAt = &at
		o.UpdatedAt = at
		f.bySession[key] = o
		return nil
	}
	return domain.ErrNotFound
}

func (f *fakeOrders) MarkFailed(_ context.Context, stripeSessionID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.bySession[stripeSessionID]
	if !ok {
		return domain.ErrNotFound
	}
	if o.Status != domain.OrderPending {
		return nil
	}
	o.Status = domain.OrderFailed
	o.UpdatedAt = at
	f.bySession[stripeSessionID] = o
	return nil
}

func (f *fakeOrders) GetByToken(_ context.Context, token string) (domain.DownloadLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	link, ok := f.links[token]
	if !ok {
		return domain.DownloadLink{}, domain.ErrNotFound
	}
	return link, nil
}

func (f *fakeOrders) ConsumeByToken(_ context.Context, token string, now time.Time) (domain.DownloadLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	link, ok := f.links[token]
	if !ok || !link.IsActive {
		return domain.DownloadLink{}, domain.ErrNotFound
	}
	if !now.Before(link.ExpiresAt) {
		return domain.DownloadLink{}, domain.ErrDownloadExpired
	}
	if link.DownloadCount >= link.MaxDownloads {
		return domain.DownloadLink{}, domain.ErrDownloadExhausted
	}
	link.DownloadCount++
	link.LastAccessed = now
	f.links[token] = link
	return link, nil
}

func (f *fakeOrders) linkByOrder(orderID uuid.UUID) domain.DownloadLink {
	for _, link := range f.links {
		if link.OrderID == orderID {
			return link
		}
	}
	return domain.DownloadLink{}
}

func (f *fakeOrders) linkByToken(token string) domain.DownloadLink {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.links[token]
}

func (f *fakeOrders) seedLink(link domain.DownloadLink) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links[link.Token] = link
}

func (f *fakeOrders) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bySession)
}

type fakeReviews struct {
	mu   sync.Mutex
	byID map[uuid.UUID]domain.Review
}

func (f *fakeReviews) Create(_ context.Context, review domain.Review) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	review.ID = uuid.New()
	review.CreatedAt = time.Now().UTC()
	review.UpdatedAt = review.CreatedAt
	f.byID[review.ID] = review
	return review, nil
}

func (f *fakeReviews) GetByID(_ context.Context, id uuid.UUID) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeReviews) ListByStatus(_ context.Context, status domain.ReviewStatus, _, _ int) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Review
	for _, r := range f.byID {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviews) ListAll(_ context.Context, _, _ int) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Review, 0, len(f.byID))
	for _, r := range f.byID {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReviews) SetStatus(_ context.Context, id uuid.UUID, status domain.ReviewStatus, approvedBy *uuid.UUID, at time.Time) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	r.Status = status
	if status == domain.ReviewApproved {
		r.ApprovedAt = &at
		r.ApprovedByAdmin = approvedBy
	} else {
		r.ApprovedAt = nil
		r.ApprovedByAdmin = nil
	}
	r.UpdatedAt = at
	f.byID[id] = r
	return r, nil
}

func (f *fakeReviews) SetStatusBulk(ctx context.Context, ids []uuid.UUID, status domain.ReviewStatus, approvedBy *uuid.UUID, at time.Time) (int64, error) {
	var updated int64
	for _, id := range ids {
		if _, err := f.SetStatus(ctx, id, status, approvedBy, at); err == nil {
			updated++
		}
	}
	return updated, nil
}

type fakeAnalytics struct {
	mu          sync.Mutex
	events      []domain.AnalyticsEvent
	sessions    map[string]domain.AnalyticsSession
	performance []domain.AnalyticsPerformance
	ended       map[string]time.Time
}

func (f *fakeAnalytics) InsertEvent(_ context.Context, event domain.AnalyticsEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAnalytics) UpsertSession(_ context.Context, session domain.AnalyticsSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.SessionID] = session
	return nil
}

func (f *fakeAnalytics) EndSession(_ context.Context, sessionID string, endTime time.Time, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ended == nil {
		f.ended = map[string]time.Time{}
	}
	f.ended[sessionID] = endTime
	return nil
}

func (f *fakeAnalytics) InsertPerformance(_ context.Context, sample domain.AnalyticsPerformance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.performance = append(f.performance, sample)
	return nil
}

func (f *fakeAnalytics) Summary(_ context.Context, _ time.Time) (domain.AnalyticsSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[string]int64{}
	for _, e := range f.events {
		counts[e.EventType]++
	}
	return domain.AnalyticsSummary{
		TotalEvents:   int64(len(f.events)),
		EventCounts:   counts,
		TotalSessions: int64(len(f.sessions)),
	}, nil
}

type fakeOutbox struct {
	mu     sync.Mutex
	events []ports.OutboxEvent
}

func (f *fakeOutbox) append(event ports.OutboxEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeOutbox) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	f.append(event)
	return nil
}

func (f *fakeOutbox) ClaimUnpublished(context.Context, int, string, time.Time) ([]ports.OutboxRecord, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkPublished(context.Context, uuid.UUID, string, time.Time) error { return nil }
func (f *fakeOutbox) MarkFailed(context.Context, uuid.UUID, string, string, time.Time) error {
	return nil
}
func (f *fakeOutbox) MarkDeadLettered(context.Context, uuid.UUID, string, string, time.Time) error {
	return nil
}

func (f *fakeOutbox) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeIdempotency struct {
	mu      sync.Mutex
	records map[string]ports.IdempotencyRecord
}

func (f *fakeIdempotency) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.records[key]
	if !ok {
		return nil, nil
	}
	cp := v
	return &cp, nil
}

func (f *fakeIdempotency) Reserve(_ context.Context, key, requestHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[key]; ok {
		return domain.ErrConflict
	}
	f.records[key] = ports.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Status:      "PENDING",
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	return nil
}

func (f *fakeIdempotency) Complete(_ context.Context, key string, responseCode int, responseBody []byte, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.records[key]
	v.Status = "COMPLETED"
	v.ResponseCode = responseCode
	v.ResponseBody = responseBody
	v.UpdatedAt = at
	f.records[key] = v
	return nil
}

func (f *fakeIdempotency) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for key, v := range f.records {
		if !before.Before(v.ExpiresAt) {
			delete(f.records, key)
			removed++
		}
	}
	return removed, nil
}

type fakeLockouts struct {
	mu    sync.Mutex
	state map[string]ports.LockoutState
}

func (f *fakeLockouts) Get(_ context.Context, key string) (ports.LockoutState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state[key], nil
}

func (f *fakeLockouts) RecordFailure(_ context.Context, key string, now time.Time, threshold int, window, blockFor time.Duration) (ports.LockoutState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.state[key]
	if st.WindowStart.IsZero() || now.Sub(st.WindowStart) > window {
		st = ports.LockoutState{WindowStart: now}
	}
	st.FailedCount++
	if st.FailedCount >= threshold {
		blockedUntil := now.Add(blockFor)
		st.BlockedUntil = &blockedUntil
	}
	f.state[key] = st
	return st, nil
}

func (f *fakeLockouts) Clear(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.state, key)
	return nil
}

type fakeProcessed struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (f *fakeProcessed) MarkProcessed(_ context.Context, sessionID string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen[sessionID] = true
	return nil
}

func (f *fakeProcessed) IsProcessed(_ context.Context, sessionID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[sessionID], nil
}

type fakeGateway struct {
	mu       sync.Mutex
	counter  int
	sessions map[string]ports.CheckoutSession
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, params ports.CheckoutParams) (ports.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counter++
	session := ports.CheckoutSession{
		ID:            fmt.Sprintf("cs_test_%d", f.counter),
		URL:           fmt.Sprintf("https://checkout.stripe.example/pay/cs_test_%d", f.counter),
		PaymentStatus: "unpaid",
		CustomerEmail: params.CustomerEmail,
		AmountTotal:   params.Amount,
		Currency:      params.Currency,
		ProductName:   params.ProductName,
	}
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeGateway) GetCheckoutSession(_ context.Context, sessionID string) (ports.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[sessionID]
	if !ok {
		return ports.CheckoutSession{}, domain.ErrNotFound
	}
	return session, nil
}

// markPaid flips the provider-side payment state for a session.
func (f *fakeGateway) markPaid(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session := f.sessions[sessionID]
	session.PaymentStatus = "paid"
	f.sessions[sessionID] = session
}

// markPaidWithoutEmail flips payment state and drops the buyer address,
// mirroring sessions where the provider omits customer details.
func (f *fakeGateway) markPaidWithoutEmail(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session := f.sessions[sessionID]
	session.PaymentStatus = "paid"
	session.CustomerEmail = ""
	f.sessions[sessionID] = session
}

// seedPaid registers a paid session the backend never saw at checkout time.
func (f *fakeGateway) seedPaid(session ports.CheckoutSession) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session.PaymentStatus = "paid"
	f.sessions[session.ID] = session
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []ports.DeliveryEmail
}

func (f *fakeEmail) SendDeliveryEmail(_ context.Context, email ports.DeliveryEmail) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, email)
	return fmt.Sprintf("msg_%d", len(f.sent)), nil
}

func (f *fakeEmail) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeHasher struct{}

func (f *fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (f *fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// fakeTokens mints deterministic 64-hex tokens so download format checks pass.
type fakeTokens struct {
	mu      sync.Mutex
	counter int
}

func (f *fakeTokens) NewToken() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counter++
	return fmt.Sprintf("%064x", f.counter), nil
}

type fakeSigner struct{}

func (f *fakeSigner) SignedURL(assetPath string, expiresAt time.Time) (string, error) {
	return fmt.Sprintf("https://luxevisionshop.com%s?token=signed&exp=%d", assetPath, expiresAt.Unix()), nil
}
