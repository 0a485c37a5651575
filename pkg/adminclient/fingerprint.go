package adminclient

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint captures coarse device traits. It is a heuristic to detect a
// cached session moving between environments, never an authentication factor.
type Fingerprint struct {
	UserAgent      string
	Language       string
	ScreenWidth    int
	ScreenHeight   int
	TimezoneOffset int
	CanvasHash     string
}

// Hash collapses the traits into a stable digest for cheap comparison.
func (f Fingerprint) Hash() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%dx%d|%d|%s",
		f.UserAgent, f.Language, f.ScreenWidth, f.ScreenHeight, f.TimezoneOffset, f.CanvasHash)))
	return hex.EncodeToString(sum[:])
}
