package adminclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// ErrNoSession reports an empty, corrupted, or invalidated local cache.
var ErrNoSession = errors.New("adminclient: no cached session")

type cachedSession struct {
	User        AdminUser `json:"user"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Fingerprint string    `json:"fingerprint"`
}

// SessionStore caches the admin session between console interactions.
// The blob is obfuscated, not encrypted; the store is NOT a security
// boundary. Load always revalidates against the backend, so a tampered or
// stale cache can at worst cause one extra round trip.
type SessionStore struct {
	mu     sync.Mutex
	client *Client
	nowFn  func() time.Time

	blob        string
	fingerprint Fingerprint
}

func NewSessionStore(client *Client) *SessionStore {
	return &SessionStore{
		client: client,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// Save caches the login result bound to the current device fingerprint.
func (s *SessionStore) Save(result LoginResult, fp Fingerprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(cachedSession{
		User:        result.User,
		Token:       result.SessionToken,
		ExpiresAt:   result.ExpiresAt,
		Fingerprint: fp.Hash(),
	})
	if err != nil {
		return err
	}
	s.blob = obfuscate(raw)
	s.fingerprint = fp
	return nil
}

// Load returns the cached principal after server-side revalidation. A
// fingerprint mismatch or local expiry drops the cache up front; the
// backend session row remains the source of truth either way.
func (s *SessionStore) Load(ctx context.Context, fp Fingerprint) (*AdminUser, string, error) {
	s.mu.Lock()
	cached, err := s.decodeLocked()
	if err != nil {
		s.wipeLocked()
		s.mu.Unlock()
		return nil, "", ErrNoSession
	}
	if cached.Fingerprint != fp.Hash() || !s.nowFn().Before(cached.ExpiresAt) {
		s.wipeLocked()
		s.mu.Unlock()
		return nil, "", ErrNoSession
	}
	token := cached.Token
	s.mu.Unlock()

	result, err := s.client.ValidateSession(ctx, token)
	if err != nil || !result.Valid {
		s.mu.Lock()
		s.wipeLocked()
		s.mu.Unlock()
		if err == nil {
			err = ErrUnauthorized
		}
		return nil, "", err
	}
	return &result.User, token, nil
}

// Clear revokes the server-side session best effort, then wipes the cache.
func (s *SessionStore) Clear(ctx context.Context) {
	s.mu.Lock()
	cached, err := s.decodeLocked()
	s.wipeLocked()
	s.mu.Unlock()

	if err == nil && cached.Token != "" {
		_ = s.client.Logout(ctx, cached.Token)
	}
}

func (s *SessionStore) decodeLocked() (cachedSession, error) {
	if s.blob == "" {
		return cachedSession{}, ErrNoSession
	}
	raw, err := deobfuscate(s.blob)
	if err != nil {
		return cachedSession{}, err
	}
	var cached cachedSession
	if err := json.Unmarshal(raw, &cached); err != nil {
		return cachedSession{}, err
	}
	return cached, nil
}

func (s *SessionStore) wipeLocked() {
	s.blob = ""
	s.fingerprint = Fingerprint{}
}

// obfuscate base64-encodes and byte-reverses the blob. Cosmetic only: it
// keeps tokens out of casual string dumps, nothing more.
func obfuscate(raw []byte) string {
	encoded := base64.StdEncoding.EncodeToString(raw)
	runes := []byte(encoded)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func deobfuscate(blob string) ([]byte, error) {
	runes := []byte(blob)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return base64.StdEncoding.DecodeString(string(runes))
}
