package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// DownloadLink grants a buyer time- and count-limited access to the product
// asset. The token is high-entropy and single-purpose; the asset URL itself is
// never stored client-side, only minted per request with a short-lived signature.
type DownloadLink struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	Token         string
	DownloadCount int
	MaxDownloads  int
	IsActive      bool
	ExpiresAt     time.Time
	CreatedAt     time.Time
	LastAccessed  time.Time
}

// Defaults applied when a paid order is fulfilled.
const (
	DownloadLinkTTL      = 7 * 24 * time.Hour
	DefaultMaxDownloads  = 5
	DownloadTokenHexSize = 32 // bytes of entropy, 64 hex chars on the wire
)

var downloadTokenPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// ValidDownloadToken checks the wire format before any storage lookup,
// so malformed probes never reach the database.
func ValidDownloadToken(token string) bool {
	return downloadTokenPattern.MatchString(token)
}

// Remaining reports how many issuances are left.
func (l DownloadLink) Remaining() int {
	if n := l.MaxDownloads - l.DownloadCount; n > 0 {
		return n
	}
	return 0
}
