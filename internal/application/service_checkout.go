package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/ports"
)

const paidStatus = "paid"

// CreateCheckout builds a hosted checkout session and records a pending
// order. The pending insert is best-effort: if it fails the payment can still
// complete, because HandlePaymentSuccess upserts by session id.
func (s *Service) CreateCheckout(ctx context.Context, req CreateCheckoutRequest, idempotencyKey string) (CreateCheckoutResponse, error) {
	if req.Amount <= 0 {
		return CreateCheckoutResponse{}, fmt.Errorf("%w: amount must be a positive number of cents", domain.ErrInvalidInput)
	}
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.cfg.Currency
	}
	productName := domain.SanitizeText(req.ProductName, 200)
	if productName == "" {
		productName = s.cfg.ProductName
	}
	customerEmail := ""
	if strings.TrimSpace(req.CustomerEmail) != "" {
		normalized, err := domain.NormalizeEmail(req.CustomerEmail)
		if err != nil {
			return CreateCheckoutResponse{}, err
		}
		customerEmail = normalized
	}

	if idempotencyKey != "" {
		if resp, done, err := s.replayCheckout(ctx, idempotencyKey, req); done {
			return resp, err
		}
	}

	session, err := s.payments.CreateCheckoutSession(ctx, ports.CheckoutParams{
		Amount:        req.Amount,
		Currency:      currency,
		ProductName:   productName,
		CustomerEmail: customerEmail,
		SuccessURL:    s.cfg.SiteBaseURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.cfg.SiteBaseURL + "/",
	})
	if err != nil {
		return CreateCheckoutResponse{}, fmt.Errorf("create checkout session: %w", err)
	}

	if _, err := s.orders.CreatePending(ctx, ports.CreateOrderParams{
		StripeSessionID: session.ID,
		CustomerEmail:   customerEmail,
		ProductName:     productName,
		Amount:          req.Amount,
		Currency:        currency,
	}); err != nil {
		// Recoverable: the paid transition re-creates the row from session metadata.
		slog.Default().WarnContext(ctx, "pending order insert failed",
			"service", serviceName,
			"module", "checkout",
			"layer", "application",
			"operation", "create_checkout",
			"outcome", "degraded",
			"stripe_session_id", session.ID,
			"error", err,
		)
	}

	resp := CreateCheckoutResponse{URL: session.URL, SessionID: session.ID}
	if idempotencyKey != "" {
		body, _ := json.Marshal(resp)
		_ = s.idempotency.Complete(ctx, idempotencyKey, 200, body, s.nowFn())
	}
	return resp, nil
}

// replayCheckout resolves an Idempotency-Key before any side effect. done
// reports whether the caller should return immediately with (resp, err).
func (s *Service) replayCheckout(ctx context.Context, key string, req CreateCheckoutRequest) (CreateCheckoutResponse, bool, error) {
	requestHash := hashRequest(req)
	record, err := s.idempotency.Get(ctx, key)
	if err == nil && record != nil {
		if record.RequestHash != requestHash {
			return CreateCheckoutResponse{}, true, domain.ErrIdempotencyConflict
		}
		if len(record.ResponseBody) > 0 {
			var resp CreateCheckoutResponse
			if err := json.Unmarshal(record.ResponseBody, &resp); err == nil {
				return resp, true, nil
			}
		}
		// Reserved but never completed: treat as conflict rather than double-charge.
		return CreateCheckoutResponse{}, true, domain.ErrIdempotencyConflict
	}
	if err := s.idempotency.Reserve(ctx, key, requestHash, s.nowFn().Add(s.cfg.IdempotencyTTL)); err != nil {
		return CreateCheckoutResponse{}, true, fmt.Errorf("%w: %v", domain.ErrIdempotencyConflict, err)
	}
	return CreateCheckoutResponse{}, false, nil
}

// HandlePaymentSuccess verifies payment with the gateway and fulfills the
// order. Safe to call any number of times with the same session id: the
// result converges on one delivered order, one download link, one queued
// delivery email.
func (s *Service) HandlePaymentSuccess(ctx context.Context, req PaymentSuccessRequest) (PaymentSuccessResponse, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return PaymentSuccessResponse{}, fmt.Errorf("%w: session_id is required", domain.ErrInvalidInput)
	}

	// Cheap replay short-circuit; the database upsert below is the real guard.
	if done, _ := s.processed.IsProcessed(ctx, sessionID); done {
		if order, err := s.orders.GetByStripeSession(ctx, sessionID); err == nil {
			return PaymentSuccessResponse{Success: true, OrderID: order.ID, Status: order.Status}, nil
		}
	}

	gwCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	session, err := s.payments.GetCheckoutSession(gwCtx, sessionID)
	if err != nil {
		return PaymentSuccessResponse{}, fmt.Errorf("retrieve checkout session: %w", err)
	}

	now := s.nowFn()
	if session.PaymentStatus != paidStatus {
		_ = s.orders.MarkFailed(ctx, sessionID, now)
		return PaymentSuccessResponse{}, fmt.Errorf("%w: payment status %q", domain.ErrPaymentIncomplete, session.PaymentStatus)
	}

	existing, existingErr := s.orders.GetByStripeSession(ctx, sessionID)
	if existingErr == nil && existing.Status == domain.OrderDelivered {
		_ = s.processed.MarkProcessed(ctx, sessionID, s.cfg.ProcessedTTL)
		return PaymentSuccessResponse{Success: true, OrderID: existing.ID, Status: existing.Status}, nil
	}

	customerEmail := session.CustomerEmail
	if customerEmail == "" {
		// The address captured at checkout wins; the guest fallback only
		// covers orders whose pending insert was lost.
		if existingErr == nil && existing.CustomerEmail != "" {
			customerEmail = existing.CustomerEmail
		} else {
			customerEmail = domain.GuestEmail
		}
	}
	productName := session.ProductName
	if productName == "" {
		productName = s.cfg.ProductName
	}

	downloadToken, err := s.tokens.NewToken()
	if err != nil {
		return PaymentSuccessResponse{}, fmt.Errorf("mint download token: %w", err)
	}

	payload, _ := json.Marshal(deliveryEmailEvent{
		Email:         customerEmail,
		ProductName:   productName,
		OrderNumber:   sessionID,
		DownloadToken: downloadToken,
	})
	order, link, err := s.orders.MarkPaidWithFulfillmentTx(ctx, ports.PaidFulfillmentParams{
		StripeSessionID:  sessionID,
		StripeCustomerID: session.CustomerID,
		CustomerEmail:    customerEmail,
		ProductName:      productName,
		Amount:           session.AmountTotal,
		Currency:         session.Currency,
		DownloadToken:    downloadToken,
		LinkExpiresAt:    now.Add(s.cfg.DownloadTTL),
		MaxDownloads:     s.cfg.MaxDownloads,
		OutboxEvent: ports.OutboxEvent{
			EventID:      uuid.New(),
			EventType:    EventTypeDeliveryEmail,
			PartitionKey: sessionID,
			Payload:      payload,
			OccurredAt:   now,
		},
		Now: now,
	})
	if err != nil {
		return PaymentSuccessResponse{}, fmt.Errorf("fulfill order: %w", err)
	}
	_ = link

	// Delivered is stamped once fulfillment is durable, independent of when
	// the delivery email actually lands.
	if order.Status == domain.OrderPaid {
		if err := s.orders.MarkDelivered(ctx, order.ID, now); err == nil {
			deliveredAt := now
			order.Status = domain.OrderDelivered
			order.DeliveredAt = &deliveredAt
		}
	}

	_ = s.processed.MarkProcessed(ctx, sessionID, s.cfg.ProcessedTTL)

	return PaymentSuccessResponse{Success: true, OrderID: order.ID, Status: order.Status}, nil
}

// EventTypeDeliveryEmail is the outbox event enqueued with the paid transition.
const EventTypeDeliveryEmail = "order.delivery_email"

type deliveryEmailEvent struct {
	Email         string `json:"email"`
	ProductName   string `json:"product_name"`
	OrderNumber   string `json:"order_number"`
	DownloadToken string `json:"download_token"`
}

// SendDeliveryEmail renders and sends the purchase delivery message. The
// outbox worker is the normal caller; the admin endpoint reuses it for
// resends and deliverability checks.
func (s *Service) SendDeliveryEmail(ctx context.Context, req DeliveryEmailRequest) (DeliveryEmailResponse, error) {
	email, err := domain.NormalizeEmail(req.Email)
	if err != nil {
		return DeliveryEmailResponse{}, err
	}
	productName := domain.SanitizeText(req.ProductName, 200)
	if productName == "" {
		productName = s.cfg.ProductName
	}
	downloadURL := ""
	if req.DownloadToken != "" {
		if !domain.ValidDownloadToken(req.DownloadToken) {
			return DeliveryEmailResponse{}, fmt.Errorf("%w: malformed download token", domain.ErrInvalidInput)
		}
		downloadURL = s.cfg.SiteBaseURL + "/download/" + req.DownloadToken
	}

	messageID, err := s.email.SendDeliveryEmail(ctx, ports.DeliveryEmail{
		To:          email,
		ProductName: productName,
		OrderNumber: domain.SanitizeText(req.OrderNumber, 64),
		DownloadURL: downloadURL,
		ExpiresDays: int(s.cfg.DownloadTTL.Hours() / 24),
		MaxAttempts: s.cfg.MaxDownloads,
	})
	if err != nil {
		return DeliveryEmailResponse{}, fmt.Errorf("send delivery email: %w", err)
	}
	return DeliveryEmailResponse{Sent: true, MessageID: messageID}, nil
}

// PublishOutboxEvent is the worker-side dispatch for claimed outbox records.
func (s *Service) PublishOutboxEvent(ctx context.Context, eventType string, payload []byte) error {
	switch eventType {
	case EventTypeDeliveryEmail:
		var event deliveryEmailEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("decode delivery email event: %w", err)
		}
		_, err := s.SendDeliveryEmail(ctx, DeliveryEmailRequest{
			Email:         event.Email,
			ProductName:   event.ProductName,
			OrderNumber:   event.OrderNumber,
			DownloadToken: event.DownloadToken,
		})
		return err
	default:
		return fmt.Errorf("unknown outbox event type %q", eventType)
	}
}
