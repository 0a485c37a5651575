package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is the back-office identity aggregate. It keeps only auth-relevant
// state; storefront customers never get rows here.
type AdminUser struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Admin roles. SuperAdmin and Admin may mutate moderation state; Viewer is read-only.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleViewer     = "viewer"
)

// CanModerate reports whether the role is allowed to change review state.
func (u AdminUser) CanModerate() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleAdmin
}

// AdminSession is an opaque-token server-side session row. Revocation is row
// deletion, which invalidates the token everywhere at once.
type AdminSession struct {
	ID           uuid.UUID
	AdminUserID  uuid.UUID
	Token        string
	IPAddress    string
	UserAgent    string
	CreatedAt    time.Time
	LastAccessed time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the session is past its hard expiry.
func (s AdminSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// LoginAttempt records authentication outcomes for audit and lockout review.
type LoginAttempt struct {
	ID            int64
	AdminUserID   *uuid.UUID
	Email         string
	AttemptAt     time.Time
	IPAddress     string
	UserAgent     string
	Status        string
	FailureReason string
}

const (
	LoginAttemptSuccess     = "success"
	LoginAttemptFailed      = "failed"
	LoginAttemptRateLimited = "rate_limited"
)
