package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrRateLimited reports a 429 from the backend; RetryAfter carries the
// server-provided backoff when present.
var ErrRateLimited = errors.New("adminclient: rate limited")

// ErrUnauthorized reports a rejected or expired session.
var ErrUnauthorized = errors.New("adminclient: unauthorized")

type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// Client talks to the storefront admin endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResult struct {
	User         AdminUser `json:"user"`
	SessionToken string    `json:"sessionToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type ValidateResult struct {
	Valid bool      `json:"valid"`
	User  AdminUser `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	if err := c.post(ctx, "/functions/v1/admin-login", map[string]string{
		"email":    email,
		"password": password,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ValidateSession(ctx context.Context, sessionToken string) (*ValidateResult, error) {
	var result ValidateResult
	if err := c.post(ctx, "/functions/v1/admin-validate-session", map[string]string{
		"sessionToken": sessionToken,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Logout(ctx context.Context, sessionToken string) error {
	return c.post(ctx, "/functions/v1/admin-logout", map[string]string{
		"sessionToken": sessionToken,
	}, nil)
}

// envelope matches the backend's response shape. Data stays raw so each
// call site can decode its own payload.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		retryAfter := time.Minute
		if secs, parseErr := strconv.Atoi(resp.Header.Get("Retry-After")); parseErr == nil && secs > 0 {
			retryAfter = time.Duration(secs) * time.Second
		}
		return &RateLimitError{RetryAfter: retryAfter}
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Status != "success" {
		return fmt.Errorf("%s: %s", env.Code, env.Message)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	return nil
}
