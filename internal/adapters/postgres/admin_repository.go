package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/ports"
)

type adminUserRepository struct {
	db *gorm.DB
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (domain.AdminUser, error) {
	var rec adminUserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AdminUser{}, domain.ErrNotFound
		}
		return domain.AdminUser{}, err
	}
	return toDomainAdminUser(rec), nil
}

func (r *adminUserRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.AdminUser, error) {
	var rec adminUserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AdminUser{}, domain.ErrNotFound
		}
		return domain.AdminUser{}, err
	}
	return toDomainAdminUser(rec), nil
}

func (r *adminUserRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&adminUserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_login": at,
			"updated_at": at,
		}).Error
}

type adminSessionRepository struct {
	db *gorm.DB
}

func (r *adminSessionRepository) Create(ctx context.Context, params ports.SessionCreateParams) (domain.AdminSession, error) {
	rec := adminSessionModel{
		AdminUserID:  params.AdminUserID,
		SessionToken: params.Token,
		IPAddress:    nullableString(params.IPAddress),
		UserAgent:    params.UserAgent,
		CreatedAt:    time.Now().UTC(),
		LastAccessed: time.Now().UTC(),
		ExpiresAt:    params.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.AdminSession{}, domain.ErrConflict
		}
		return domain.AdminSession{}, err
	}
	return toDomainAdminSession(rec), nil
}

func (r *adminSessionRepository) GetByToken(ctx context.Context, token string) (domain.AdminSession, error) {
	var rec adminSessionModel
	if err := r.db.WithContext(ctx).Where("session_token = ?", token).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AdminSession{}, domain.ErrNotFound
		}
		return domain.AdminSession{}, err
	}
	return toDomainAdminSession(rec), nil
}

func (r *adminSessionRepository) TouchAccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&adminSessionModel{}).
		Where("id = ?", id).
		Update("last_accessed", at).Error
}

func (r *adminSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("session_token = ?", token).
		Delete(&adminSessionModel{}).Error
}

func (r *adminSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", before).
		Delete(&adminSessionModel{})
	return res.RowsAffected, res.Error
}

type loginAttemptRepository struct {
	db *gorm.DB
}

func (r *loginAttemptRepository) Insert(ctx context.Context, attempt domain.LoginAttempt) error {
	rec := loginAttemptModel{
		AdminUserID:   attempt.AdminUserID,
		Email:         attempt.Email,
		AttemptAt:     attempt.AttemptAt,
		IPAddress:     nullableString(attempt.IPAddress),
		UserAgent:     attempt.UserAgent,
		Status:        attempt.Status,
		FailureReason: attempt.FailureReason,
	}
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *loginAttemptRepository) ListRecent(ctx context.Context, limit int) ([]domain.LoginAttempt, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []loginAttemptModel
	if err := r.db.WithContext(ctx).
		Order("attempt_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.LoginAttempt, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainLoginAttempt(row))
	}
	return result, nil
}
