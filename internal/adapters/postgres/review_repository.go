package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

type reviewRepository struct {
	db *gorm.DB
}

func (r *reviewRepository) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	now := time.Now().UTC()
	rec := reviewModel{
		CustomerName:  review.CustomerName,
		CustomerEmail: review.CustomerEmail,
		Rating:        review.Rating,
		ReviewText:    review.ReviewText,
		Status:        string(review.Status),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Review{}, err
	}
	return toDomainReview(rec), nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	var rec reviewModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Review{}, domain.ErrNotFound
		}
		return domain.Review{}, err
	}
	return toDomainReview(rec), nil
}

func (r *reviewRepository) ListByStatus(ctx context.Context, status domain.ReviewStatus, limit, offset int) ([]domain.Review, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("status = ?", string(status)), limit, offset)
}

func (r *reviewRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	return r.list(ctx, r.db.WithContext(ctx), limit, offset)
}

func (r *reviewRepository) list(_ context.Context, query *gorm.DB, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []reviewModel
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainReview(row))
	}
	return result, nil
}

func (r *reviewRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, approvedBy *uuid.UUID, at time.Time) (domain.Review, error) {
	updates := statusUpdates(status, approvedBy, at)
	res := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return domain.Review{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Review{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *reviewRepository) SetStatusBulk(ctx context.Context, ids []uuid.UUID, status domain.ReviewStatus, approvedBy *uuid.UUID, at time.Time) (int64, error) {
	updates := statusUpdates(status, approvedBy, at)
	res := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("id IN ?", ids).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// statusUpdates keeps approval stamping symmetric: approval sets the stamp,
// any other state clears it.
func statusUpdates(status domain.ReviewStatus, approvedBy *uuid.UUID, at time.Time) map[string]any {
	updates := map[string]any{
		"status":     string(status),
		"updated_at": at,
	}
	if status == domain.ReviewApproved {
		updates["approved_at"] = at
		updates["approved_by_admin_id"] = approvedBy
	} else {
		updates["approved_at"] = nil
		updates["approved_by_admin_id"] = nil
	}
	return updates
}
