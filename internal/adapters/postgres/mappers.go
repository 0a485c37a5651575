package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

func toDomainAdminUser(row adminUserModel) domain.AdminUser {
	return domain.AdminUser{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		IsActive:     row.IsActive,
		LastLogin:    row.LastLogin,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toDomainAdminSession(row adminSessionModel) domain.AdminSession {
	ip := ""
	if row.IPAddress != nil {
		ip = *row.IPAddress
	}
	return domain.AdminSession{
		ID:           row.ID,
		AdminUserID:  row.AdminUserID,
		Token:        row.SessionToken,
		IPAddress:    ip,
		UserAgent:    row.UserAgent,
		CreatedAt:    row.CreatedAt,
		LastAccessed: row.LastAccessed,
		ExpiresAt:    row.ExpiresAt,
	}
}

func toDomainLoginAttempt(row loginAttemptModel) domain.LoginAttempt {
	ip := ""
	if row.IPAddress != nil {
		ip = *row.IPAddress
	}
	return domain.LoginAttempt{
		ID:            row.ID,
		AdminUserID:   row.AdminUserID,
		Email:         row.Email,
		AttemptAt:     row.AttemptAt,
		IPAddress:     ip,
		UserAgent:     row.UserAgent,
		Status:        row.Status,
		FailureReason: row.FailureReason,
	}
}

func toDomainOrder(row orderModel) domain.Order {
	customerID := ""
	if row.StripeCustomerID != nil {
		customerID = *row.StripeCustomerID
	}
	return domain.Order{
		ID:               row.ID,
		StripeSessionID:  row.StripeSessionID,
		StripeCustomerID: customerID,
		CustomerEmail:    row.CustomerEmail,
		ProductName:      row.ProductName,
		Amount:           row.Amount,
		Currency:         row.Currency,
		Status:           domain.OrderStatus(row.Status),
		DeliveredAt:      row.DeliveredAt,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func toDomainDownloadLink(row downloadLinkModel) domain.DownloadLink {
	return domain.DownloadLink{
		ID:            row.ID,
		OrderID:       row.OrderID,
		Token:         row.DownloadToken,
		DownloadCount: row.DownloadCount,
		MaxDownloads:  row.MaxDownloads,
		IsActive:      row.IsActive,
		ExpiresAt:     row.ExpiresAt,
		CreatedAt:     row.CreatedAt,
		LastAccessed:  row.LastAccessed,
	}
}

func toDomainReview(row reviewModel) domain.Review {
	return domain.Review{
		ID:              row.ID,
		CustomerName:    row.CustomerName,
		CustomerEmail:   row.CustomerEmail,
		Rating:          row.Rating,
		ReviewText:      row.ReviewText,
		Status:          domain.ReviewStatus(row.Status),
		ApprovedAt:      row.ApprovedAt,
		ApprovedByAdmin: row.ApprovedByAdmin,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func nullableString(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
