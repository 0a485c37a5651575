package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

const serviceName = "luxevision-storefront"

// hashRequest computes a deterministic request fingerprint for idempotency
// conflict detection.
func hashRequest(req any) string {
	raw, _ := json.Marshal(req)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
