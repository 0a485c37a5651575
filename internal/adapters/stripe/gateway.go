package stripe

import (
	"context"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/ports"
)

// Gateway adapts Stripe hosted checkout to the payment port. All amounts are
// minor units end to end; Stripe is the source of truth for payment status.
type Gateway struct {
	api *client.API
}

// NewGateway builds the Stripe client from the secret key.
func NewGateway(secretKey string) (*Gateway, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Gateway{api: api}, nil
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, params ports.CheckoutParams) (ports.CheckoutSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(params.Currency),
					UnitAmount: stripe.Int64(params.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	sessionParams.Context = ctx
	if params.CustomerEmail != "" {
		sessionParams.CustomerEmail = stripe.String(params.CustomerEmail)
	}
	sessionParams.AddMetadata("product_name", params.ProductName)
	sessionParams.AddMetadata("currency", params.Currency)

	sess, err := g.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		return ports.CheckoutSession{}, fmt.Errorf("stripe checkout create: %w", err)
	}
	return toPortSession(sess), nil
}

func (g *Gateway) GetCheckoutSession(ctx context.Context, sessionID string) (ports.CheckoutSession, error) {
	getParams := &stripe.CheckoutSessionParams{}
	getParams.Context = ctx
	sess, err := g.api.CheckoutSessions.Get(sessionID, getParams)
	if err != nil {
		return ports.CheckoutSession{}, fmt.Errorf("stripe checkout retrieve: %w", err)
	}
	return toPortSession(sess), nil
}

func toPortSession(sess *stripe.CheckoutSession) ports.CheckoutSession {
	out := ports.CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
	}
	if sess.Customer != nil {
		out.CustomerID = sess.Customer.ID
	}
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		out.CustomerEmail = sess.CustomerDetails.Email
	} else if sess.CustomerEmail != "" {
		out.CustomerEmail = sess.CustomerEmail
	}
	if sess.Metadata != nil {
		out.ProductName = sess.Metadata["product_name"]
	}
	return out
}
