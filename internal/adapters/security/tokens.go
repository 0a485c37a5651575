package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// HexTokenSource mints opaque tokens from crypto/rand, hex-encoded.
// With 32 bytes of entropy the wire form is 64 hex characters, which is both
// the session token format and the download token format.
type HexTokenSource struct {
	bytesLen int
}

// NewHexTokenSource creates a token source with the given entropy in bytes.
func NewHexTokenSource(bytesLen int) *HexTokenSource {
	if bytesLen <= 0 {
		bytesLen = 32
	}
	return &HexTokenSource{bytesLen: bytesLen}
}

func (s *HexTokenSource) NewToken() (string, error) {
	raw := make([]byte, s.bytesLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
