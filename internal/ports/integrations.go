package ports

import "context"

// CheckoutParams describes the hosted checkout session to create.
// Amount is in minor units.
type CheckoutParams struct {
	Amount        int64
	Currency      string
	ProductName   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the provider's view of a checkout. PaymentStatus is the
// provider vocabulary; the application only distinguishes "paid" from the rest.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	CustomerID    string
	CustomerEmail string
	AmountTotal   int64
	Currency      string
	ProductName   string
}

// PaymentGateway is the hosted-checkout provider port.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (CheckoutSession, error)
}

// DeliveryEmail is the payload for a purchase delivery message.
type DeliveryEmail struct {
	To          string
	ProductName string
	OrderNumber string
	DownloadURL string
	ExpiresDays int
	MaxAttempts int
}

// EmailSender delivers transactional mail. Implementations return an opaque
// provider message id for logging.
type EmailSender interface {
	SendDeliveryEmail(ctx context.Context, email DeliveryEmail) (string, error)
}
