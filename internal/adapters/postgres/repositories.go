package postgres

import (
	"gorm.io/gorm"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/ports"
)

type Repositories struct {
	Admins        ports.AdminUserRepository
	Sessions      ports.AdminSessionRepository
	LoginAttempts ports.LoginAttemptRepository
	Orders        ports.OrderRepository
	Downloads     ports.DownloadLinkRepository
	Reviews       ports.ReviewRepository
	Analytics     ports.AnalyticsRepository
	Outbox        ports.OutboxRepository
	Idempotency   ports.IdempotencyRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Admins:        &adminUserRepository{db: db},
		Sessions:      &adminSessionRepository{db: db},
		LoginAttempts: &loginAttemptRepository{db: db},
		Orders:        &orderRepository{db: db},
		Downloads:     &downloadLinkRepository{db: db},
		Reviews:       &reviewRepository{db: db},
		Analytics:     &analyticsRepository{db: db},
		Outbox:        &outboxRepository{db: db},
		Idempotency:   &idempotencyRepository{db: db},
	}
}
