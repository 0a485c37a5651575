package ports

import "time"

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenSource mints opaque high-entropy tokens (session and download tokens).
// Abstracted so tests can use deterministic tokens.
type TokenSource interface {
	NewToken() (string, error)
}

// URLSigner mints short-lived signed URLs for the product asset.
// The grant names the asset path and expiry; the signature prevents tampering.
type URLSigner interface {
	SignedURL(assetPath string, expiresAt time.Time) (string, error)
}
