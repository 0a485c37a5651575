package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/application"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

func TestLoginValidateLogout(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	loginRes, err := f.service.Login(ctx, application.LoginRequest{
		Email:     testAdminEmail,
		Password:  testAdminPassword,
		IPAddress: "127.0.0.1",
		UserAgent: "unit-test",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loginRes.SessionToken == "" {
		t.Fatalf("login should return a session token")
	}
	if loginRes.User.Email != testAdminEmail {
		t.Fatalf("unexpected principal email %q", loginRes.User.Email)
	}

	validateRes, err := f.service.ValidateSession(ctx, application.ValidateSessionRequest{SessionToken: loginRes.SessionToken})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !validateRes.Valid || validateRes.User.ID != f.adminID {
		t.Fatalf("expected valid session for seeded admin")
	}

	if err := f.service.Logout(ctx, loginRes.SessionToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := f.service.ValidateSession(ctx, application.ValidateSessionRequest{SessionToken: loginRes.SessionToken}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}
}

func TestLoginWrongPasswordCreatesNoSession(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Login(ctx, application.LoginRequest{
		Email:     testAdminEmail,
		Password:  "WrongPass123!",
		IPAddress: "127.0.0.1",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if f.sessions.count() != 0 {
		t.Fatalf("failed login must not create a session row")
	}
}

func TestLoginUnknownEmailSameErrorAsWrongPassword(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	_, unknownErr := f.service.Login(ctx, application.LoginRequest{
		Email:    "nobody@luxevisionshop.com",
		Password: "WrongPass123!",
	})
	_, wrongErr := f.service.Login(ctx, application.LoginRequest{
		Email:    testAdminEmail,
		Password: "WrongPass123!",
	})
	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) || !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected identical credential failure, got %v and %v", unknownErr, wrongErr)
	}
}

func TestLoginRateLimitedAfterThreshold(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.service.Login(ctx, application.LoginRequest{
			Email:     testAdminEmail,
			Password:  "WrongPass123!",
			IPAddress: "10.0.0.9",
		})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected invalid credentials, got %v", i+1, err)
		}
	}

	_, err := f.service.Login(ctx, application.LoginRequest{
		Email:     testAdminEmail,
		Password:  testAdminPassword,
		IPAddress: "10.0.0.9",
	})
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected rate limited on 6th attempt, got %v", err)
	}

	var rle *domain.RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("expected RateLimitError carrying retry timing, got %T", err)
	}
	if rle.RetryAfter <= 0 || rle.RetryAfter > 15*time.Minute {
		t.Fatalf("unexpected retry-after %s", rle.RetryAfter)
	}
	if f.sessions.count() != 0 {
		t.Fatalf("rate limited login must not create a session")
	}
}

func TestLoginRateLimitTracksIPAcrossEmails(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = f.service.Login(ctx, application.LoginRequest{
			Email:     "probe@example.com",
			Password:  "WrongPass123!",
			IPAddress: "10.0.0.7",
		})
	}

	_, err := f.service.Login(ctx, application.LoginRequest{
		Email:     testAdminEmail,
		Password:  testAdminPassword,
		IPAddress: "10.0.0.7",
	})
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ip-keyed lockout to apply to other emails, got %v", err)
	}
}

func TestFailedLoginsReportDecreasingRemaining(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	if got := f.service.RemainingLoginAttempts(ctx, testAdminEmail, "10.0.0.4"); got != 5 {
		t.Fatalf("expected full allowance before any failure, got %d", got)
	}
	for i := 1; i <= 5; i++ {
		_, err := f.service.Login(ctx, application.LoginRequest{
			Email:     testAdminEmail,
			Password:  "WrongPass123!",
			IPAddress: "10.0.0.4",
		})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected invalid credentials, got %v", i, err)
		}
		if got := f.service.RemainingLoginAttempts(ctx, testAdminEmail, "10.0.0.4"); got != 5-i {
			t.Fatalf("after %d failures expected %d remaining, got %d", i, 5-i, got)
		}
	}
}

func TestSuccessfulLoginClearsLockoutCounters(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = f.service.Login(ctx, application.LoginRequest{
			Email:     testAdminEmail,
			Password:  "WrongPass123!",
			IPAddress: "10.0.0.5",
		})
	}
	if _, err := f.service.Login(ctx, application.LoginRequest{
		Email:     testAdminEmail,
		Password:  testAdminPassword,
		IPAddress: "10.0.0.5",
	}); err != nil {
		t.Fatalf("login inside window should succeed: %v", err)
	}

	// Counters reset: three more failures stay under the threshold.
	for i := 0; i < 3; i++ {
		_, _ = f.service.Login(ctx, application.LoginRequest{
			Email:     testAdminEmail,
			Password:  "WrongPass123!",
			IPAddress: "10.0.0.5",
		})
	}
	if _, err := f.service.Login(ctx, application.LoginRequest{
		Email:     testAdminEmail,
		Password:  testAdminPassword,
		IPAddress: "10.0.0.5",
	}); err != nil {
		t.Fatalf("expected cleared counters after successful login, got %v", err)
	}
}

func TestExpiredSessionNeverValidates(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	loginRes, err := f.service.Login(ctx, application.LoginRequest{
		Email:    testAdminEmail,
		Password: testAdminPassword,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	f.sessions.expire(loginRes.SessionToken)

	if _, err := f.service.ValidateSession(ctx, application.ValidateSessionRequest{SessionToken: loginRes.SessionToken}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for expired session, got %v", err)
	}
	// The expired row is deleted on first sight; a retry gets the same answer.
	if _, err := f.service.ValidateSession(ctx, application.ValidateSessionRequest{SessionToken: loginRes.SessionToken}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized on repeat validation, got %v", err)
	}
	if f.sessions.count() != 0 {
		t.Fatalf("expired session row should be removed")
	}
}

func TestDeactivatedAdminCannotValidate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	loginRes, err := f.service.Login(ctx, application.LoginRequest{
		Email:    testAdminEmail,
		Password: testAdminPassword,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	admin, _ := f.admins.GetByID(ctx, f.adminID)
	admin.IsActive = false
	f.admins.put(admin)

	if _, err := f.service.ValidateSession(ctx, application.ValidateSessionRequest{SessionToken: loginRes.SessionToken}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for deactivated admin, got %v", err)
	}
}

func TestSweepExpiredSessions(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	live, err := f.service.Login(ctx, application.LoginRequest{Email: testAdminEmail, Password: testAdminPassword})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	stale, err := f.service.Login(ctx, application.LoginRequest{Email: testAdminEmail, Password: testAdminPassword})
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	f.sessions.expire(stale.SessionToken)

	removed, err := f.service.SweepExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed session, got %d", removed)
	}
	if _, err := f.service.ValidateSession(ctx, application.ValidateSessionRequest{SessionToken: live.SessionToken}); err != nil {
		t.Fatalf("live session should survive the sweep: %v", err)
	}
}
