package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the order lifecycle state. Transitions are forward-only:
// pending -> paid -> delivered, or pending -> failed. A paid or delivered
// order is never demoted by replayed payment callbacks.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderDelivered OrderStatus = "delivered"
	OrderFailed    OrderStatus = "failed"
)

// CanTransitionTo reports whether moving from s to next respects the lifecycle.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderPaid || next == OrderFailed
	case OrderPaid:
		return next == OrderDelivered
	default:
		return false
	}
}

// Order is keyed externally by the Stripe checkout session id, which is what
// the success page and payment callbacks carry.
type Order struct {
	ID               uuid.UUID
	StripeSessionID  string
	StripeCustomerID string
	CustomerEmail    string
	ProductName      string
	Amount           int64 // minor units (cents)
	Currency         string
	Status           OrderStatus
	DeliveredAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// GuestEmail is recorded when Stripe returns no customer email for a session.
const GuestEmail = "guest@luxevisionshop.com"
