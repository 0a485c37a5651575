package application

import (
	"time"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/ports"
)

type Service struct {
	cfg           Config
	admins        ports.AdminUserRepository
	sessions      ports.AdminSessionRepository
	loginAttempts ports.LoginAttemptRepository
	orders        ports.OrderRepository
	downloads     ports.DownloadLinkRepository
	reviews       ports.ReviewRepository
	analytics     ports.AnalyticsRepository
	outbox        ports.OutboxRepository
	idempotency   ports.IdempotencyRepository
	lockouts      ports.LockoutStore
	processed     ports.ProcessedSessionStore
	hasher        ports.PasswordHasher
	tokens        ports.TokenSource
	urlSigner     ports.URLSigner
	payments      ports.PaymentGateway
	email         ports.EmailSender
	nowFn         func() time.Time
}

type Dependencies struct {
	Config        Config
	Admins        ports.AdminUserRepository
	Sessions      ports.AdminSessionRepository
	LoginAttempts ports.LoginAttemptRepository
	Orders        ports.OrderRepository
	Downloads     ports.DownloadLinkRepository
	Reviews       ports.ReviewRepository
	Analytics     ports.AnalyticsRepository
	Outbox        ports.OutboxRepository
	Idempotency   ports.IdempotencyRepository
	Lockouts      ports.LockoutStore
	Processed     ports.ProcessedSessionStore
	Hasher        ports.PasswordHasher
	Tokens        ports.TokenSource
	URLSigner     ports.URLSigner
	Payments      ports.PaymentGateway
	Email         ports.EmailSender
}

func NewService(deps Dependencies) *Service {
	return &Service{
		cfg:           deps.Config,
		admins:        deps.Admins,
		sessions:      deps.Sessions,
		loginAttempts: deps.LoginAttempts,
		orders:        deps.Orders,
		downloads:     deps.Downloads,
		reviews:       deps.Reviews,
		analytics:     deps.Analytics,
		outbox:        deps.Outbox,
		idempotency:   deps.Idempotency,
		lockouts:      deps.Lockouts,
		processed:     deps.Processed,
		hasher:        deps.Hasher,
		tokens:        deps.Tokens,
		urlSigner:     deps.URLSigner,
		payments:      deps.Payments,
		email:         deps.Email,
		nowFn:         func() time.Time { return time.Now().UTC() },
	}
}
