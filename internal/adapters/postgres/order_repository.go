package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/ports"
)

type orderRepository struct {
	db *gorm.DB
}

func (r *orderRepository) CreatePending(ctx context.Context, params ports.CreateOrderParams) (domain.Order, error) {
	now := time.Now().UTC()
	rec := orderModel{
		StripeSessionID: params.StripeSessionID,
		CustomerEmail:   params.CustomerEmail,
		ProductName:     params.ProductName,
		Amount:          params.Amount,
		Currency:        params.Currency,
		Status:          string(domain.OrderPending),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Order{}, domain.ErrConflict
		}
		return domain.Order{}, err
	}
	return toDomainOrder(rec), nil
}

func (r *orderRepository) GetByStripeSession(ctx context.Context, stripeSessionID string) (domain.Order, error) {
	var rec orderModel
	if err := r.db.WithContext(ctx).Where("stripe_session_id = ?", stripeSessionID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, err
	}
	return toDomainOrder(rec), nil
}

// MarkPaidWithFulfillmentTx performs the paid transition, the download-link
// insert, and the outbox enqueue as one transaction. The row is locked so a
// concurrent replay of the same session either sees the committed state or
// waits. Orders already paid or delivered are never demoted; fulfillment is
// then skipped and the existing link returned.
func (r *orderRepository) MarkPaidWithFulfillmentTx(ctx context.Context, params ports.PaidFulfillmentParams) (domain.Order, domain.DownloadLink, error) {
	var (
		outOrder domain.Order
		outLink  domain.DownloadLink
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec orderModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("stripe_session_id = ?", params.StripeSessionID).
			Take(&rec).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Pending insert was lost at checkout; recreate from session metadata.
			rec = orderModel{
				StripeSessionID: params.StripeSessionID,
				CustomerEmail:   params.CustomerEmail,
				ProductName:     params.ProductName,
				Amount:          params.Amount,
				Currency:        params.Currency,
				Status:          string(domain.OrderPending),
				CreatedAt:       params.Now,
				UpdatedAt:       params.Now,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		status := domain.OrderStatus(rec.Status)
		if status == domain.OrderPaid || status == domain.OrderDelivered {
			var link downloadLinkModel
			if err := tx.Where("order_id = ?", rec.ID).Take(&link).Error; err == nil {
				outLink = toDomainDownloadLink(link)
			}
			outOrder = toDomainOrder(rec)
			return nil
		}
		if !status.CanTransitionTo(domain.OrderPaid) {
			return domain.ErrInvalidTransition
		}

		updates := map[string]any{
			"status":     string(domain.OrderPaid),
			"updated_at": params.Now,
		}
		// Checkout already captured the buyer's address; only fill a blank.
		if rec.CustomerEmail == "" {
			updates["customer_email"] = params.CustomerEmail
			rec.CustomerEmail = params.CustomerEmail
		}
		if params.StripeCustomerID != "" {
			updates["stripe_customer_id"] = params.StripeCustomerID
		}
		if err := tx.Model(&orderModel{}).Where("id = ?", rec.ID).Updates(updates).Error; err != nil {
			return err
		}

		link := downloadLinkModel{
			OrderID:       rec.ID,
			DownloadToken: params.DownloadToken,
			DownloadCount: 0,
			MaxDownloads:  params.MaxDownloads,
			IsActive:      true,
			ExpiresAt:     params.LinkExpiresAt,
			CreatedAt:     params.Now,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}

		outbox := outboxModel{
			OutboxID:     params.OutboxEvent.EventID,
			EventType:    params.OutboxEvent.EventType,
			PartitionKey: params.OutboxEvent.PartitionKey,
			Payload:      string(params.OutboxEvent.Payload),
			CreatedAt:    params.OutboxEvent.OccurredAt,
		}
		if err := tx.Create(&outbox).Error; err != nil {
			return err
		}

		rec.Status = string(domain.OrderPaid)
		rec.UpdatedAt = params.Now
		outOrder = toDomainOrder(rec)
		outLink = toDomainDownloadLink(link)
		return nil
	})
	if err != nil {
		return domain.Order{}, domain.DownloadLink{}, err
	}
	return outOrder, outLink, nil
}

func (r *orderRepository) MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Where("id = ?", id).
		Where("status = ?", string(domain.OrderPaid)).
		Updates(map[string]any{
			"status":       string(domain.OrderDelivered),
			"delivered_at": at,
			"updated_at":   at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var current orderModel
		if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if current.Status == string(domain.OrderDelivered) {
			return nil
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *orderRepository) MarkFailed(ctx context.Context, stripeSessionID string, at time.Time) error {
	// Only a pending order can fail; replayed callbacks after payment are ignored.
	return r.db.WithContext(ctx).
		Model(&orderModel{}).
		Where("stripe_session_id = ?", stripeSessionID).
		Where("status = ?", string(domain.OrderPending)).
		Updates(map[string]any{
			"status":     string(domain.OrderFailed),
			"updated_at": at,
		}).Error
}

type downloadLinkRepository struct {
	db *gorm.DB
}

func (r *downloadLinkRepository) GetByToken(ctx context.Context, token string) (domain.DownloadLink, error) {
	var rec downloadLinkModel
	if err := r.db.WithContext(ctx).Where("download_token = ?", token).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DownloadLink{}, domain.ErrNotFound
		}
		return domain.DownloadLink{}, err
	}
	return toDomainDownloadLink(rec), nil
}

// ConsumeByToken increments the download counter only while the link is
// active, unexpired, and below its ceiling. The conditional update is the
// concurrency guard: two requests racing for the last slot serialize on the
// row and the loser gets zero affected rows.
func (r *downloadLinkRepository) ConsumeByToken(ctx context.Context, token string, now time.Time) (domain.DownloadLink, error) {
	res := r.db.WithContext(ctx).
		Model(&downloadLinkModel{}).
		Where("download_token = ?", token).
		Where("is_active = TRUE").
		Where("expires_at > ?", now).
		Where("download_count < max_downloads").
		Updates(map[string]any{
			"download_count": gorm.Expr("download_count + 1"),
			"last_accessed":  now,
		})
	if res.Error != nil {
		return domain.DownloadLink{}, res.Error
	}
	if res.RowsAffected == 0 {
		// Disambiguate for a user-actionable error.
		var rec downloadLinkModel
		if err := r.db.WithContext(ctx).Where("download_token = ?", token).Take(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.DownloadLink{}, domain.ErrNotFound
			}
			return domain.DownloadLink{}, err
		}
		switch {
		case !rec.IsActive:
			return domain.DownloadLink{}, domain.ErrNotFound
		case !rec.ExpiresAt.After(now):
			return domain.DownloadLink{}, domain.ErrDownloadExpired
		default:
			return domain.DownloadLink{}, domain.ErrDownloadExhausted
		}
	}

	var rec downloadLinkModel
	if err := r.db.WithContext(ctx).Where("download_token = ?", token).Take(&rec).Error; err != nil {
		return domain.DownloadLink{}, err
	}
	return toDomainDownloadLink(rec), nil
}
