package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/ports"
)

// Login authenticates a back-office user and issues an opaque session token.
// The rate limiter is consulted before credentials are even looked at, and a
// tripped limiter is reported as a distinct outcome so clients can surface
// retry timing instead of a misleading credential failure.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email, err := domain.NormalizeEmail(req.Email)
	if err != nil {
		return LoginResponse{}, err
	}
	if req.Password == "" {
		return LoginResponse{}, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	emailKey := "login:email:" + email
	ipKey := "login:ip:" + req.IPAddress
	if err := s.checkRateLimit(ctx, emailKey, ipKey); err != nil {
		s.recordAttempt(ctx, nil, email, req, domain.LoginAttemptRateLimited, "LOCKOUT_ACTIVE")
		return LoginResponse{}, err
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		s.registerFailure(ctx, nil, email, req, "USER_NOT_FOUND", emailKey, ipKey)
		return LoginResponse{}, domain.ErrInvalidCredentials
	}
	if !admin.IsActive {
		s.registerFailure(ctx, &admin.ID, email, req, "ACCOUNT_DISABLED", emailKey, ipKey)
		return LoginResponse{}, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(admin.PasswordHash, req.Password); err != nil {
		s.registerFailure(ctx, &admin.ID, email, req, "INVALID_PASSWORD", emailKey, ipKey)
		return LoginResponse{}, domain.ErrInvalidCredentials
	}

	_ = s.lockouts.Clear(ctx, emailKey)
	_ = s.lockouts.Clear(ctx, ipKey)

	token, err := s.tokens.NewToken()
	if err != nil {
		return LoginResponse{}, fmt.Errorf("mint session token: %w", err)
	}

	now := s.nowFn()
	session, err := s.sessions.Create(ctx, ports.SessionCreateParams{
		AdminUserID: admin.ID,
		Token:       token,
		IPAddress:   req.IPAddress,
		UserAgent:   req.UserAgent,
		ExpiresAt:   now.Add(s.cfg.SessionTTL),
	})
	if err != nil {
		return LoginResponse{}, fmt.Errorf("create session: %w", err)
	}

	_ = s.admins.RecordLogin(ctx, admin.ID, now)
	s.recordAttempt(ctx, &admin.ID, email, req, domain.LoginAttemptSuccess, "")

	return LoginResponse{
		User:         toAdminUserView(admin),
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// ValidateSession resolves an opaque token to its admin principal. A missing
// row and an expired row produce the identical error so probes learn nothing
// about which tokens ever existed.
func (s *Service) ValidateSession(ctx context.Context, req ValidateSessionRequest) (ValidateSessionResponse, error) {
	if req.SessionToken == "" {
		return ValidateSessionResponse{}, domain.ErrUnauthorized
	}

	session, err := s.sessions.GetByToken(ctx, req.SessionToken)
	if err != nil {
		return ValidateSessionResponse{}, domain.ErrUnauthorized
	}
	now := s.nowFn()
	if session.Expired(now) {
		_ = s.sessions.DeleteByToken(ctx, req.SessionToken)
		return ValidateSessionResponse{}, domain.ErrUnauthorized
	}

	admin, err := s.admins.GetByID(ctx, session.AdminUserID)
	if err != nil || !admin.IsActive {
		return ValidateSessionResponse{}, domain.ErrUnauthorized
	}

	_ = s.sessions.TouchAccess(ctx, session.ID, now)

	return ValidateSessionResponse{Valid: true, User: toAdminUserView(admin)}, nil
}

// Logout deletes the session row. Deletion is total revocation: the token can
// never validate again, there is no grace period.
func (s *Service) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return domain.ErrUnauthorized
	}
	return s.sessions.DeleteByToken(ctx, sessionToken)
}

// SweepExpiredSessions removes rows past expiry plus stale idempotency
// records. Run periodically by the worker.
func (s *Service) SweepExpiredSessions(ctx context.Context) (int64, error) {
	now := s.nowFn()
	removed, err := s.sessions.DeleteExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	if s.idempotency != nil {
		_, _ = s.idempotency.DeleteExpired(ctx, now)
	}
	return removed, nil
}

// checkRateLimit returns a RateLimitError when either key is inside an active
// block window.
func (s *Service) checkRateLimit(ctx context.Context, keys ...string) error {
	now := s.nowFn()
	for _, key := range keys {
		state, err := s.lockouts.Get(ctx, key)
		if err != nil {
			continue // limiter unavailable; credential check still gates access
		}
		if state.BlockedUntil != nil && state.BlockedUntil.After(now) {
			return &domain.RateLimitError{RetryAfter: state.BlockedUntil.Sub(now)}
		}
	}
	return nil
}

// registerFailure records the audit row and advances both lockout counters.
func (s *Service) registerFailure(ctx context.Context, adminID *uuid.UUID, email string, req LoginRequest, reason, emailKey, ipKey string) {
	s.recordAttempt(ctx, adminID, email, req, domain.LoginAttemptFailed, reason)
	now := s.nowFn()
	emailState, _ := s.lockouts.RecordFailure(ctx, emailKey, now, s.cfg.FailedLoginThreshold, s.cfg.RateLimitWindow, s.cfg.LockoutDuration)
	ipState, _ := s.lockouts.RecordFailure(ctx, ipKey, now, s.cfg.FailedLoginThreshold, s.cfg.RateLimitWindow, s.cfg.LockoutDuration)

	remaining := emailState.Remaining(s.cfg.FailedLoginThreshold)
	if r := ipState.Remaining(s.cfg.FailedLoginThreshold); r < remaining {
		remaining = r
	}
	slog.Default().InfoContext(ctx, "login failure counted",
		"service", serviceName,
		"module", "application",
		"layer", "application",
		"operation", "login",
		"outcome", "failure",
		"reason", reason,
		"attempts_remaining", remaining,
	)
}

// RemainingLoginAttempts reports how many failures are left before the
// lockout trips, taking the tighter of the email and IP windows. Clients
// surface this after each rejected login.
func (s *Service) RemainingLoginAttempts(ctx context.Context, email, ipAddress string) int {
	remaining := s.cfg.FailedLoginThreshold
	keys := []string{"login:ip:" + ipAddress}
	if normalized, err := domain.NormalizeEmail(email); err == nil {
		keys = append(keys, "login:email:"+normalized)
	}
	for _, key := range keys {
		state, err := s.lockouts.Get(ctx, key)
		if err != nil {
			continue
		}
		if r := state.Remaining(s.cfg.FailedLoginThreshold); r < remaining {
			remaining = r
		}
	}
	return remaining
}

// recordAttempt stores login context for audit and lockout review.
func (s *Service) recordAttempt(ctx context.Context, adminID *uuid.UUID, email string, req LoginRequest, status, reason string) {
	if err := s.loginAttempts.Insert(ctx, domain.LoginAttempt{
		AdminUserID:   adminID,
		Email:         email,
		AttemptAt:     s.nowFn(),
		IPAddress:     req.IPAddress,
		UserAgent:     req.UserAgent,
		Status:        status,
		FailureReason: reason,
	}); err != nil {
		slog.Default().WarnContext(ctx, "failed to persist login attempt",
			"service", serviceName,
			"module", "application",
			"layer", "application",
			"operation", "record_login_attempt",
			"outcome", "failure",
			"reason", reason,
			"error", err,
		)
	}
}
