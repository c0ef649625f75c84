package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Ledger windows.
const (
	// DedupLookback suppresses a repeat of the same content hash.
	DedupLookback = 2 * time.Hour
	// TypeCooldown suppresses any repeat of the same type, regardless
	// of hash, and counts failed attempts too.
	TypeCooldown = 5 * time.Minute
)

// ContentHash keys the dedup ledger. It is a function of the type and
// the bucketed magnitude only, so near-identical conditions produce the
// same hash while a materially different deficit produces a new one.
func ContentHash(nudgeType string, bucket int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", nudgeType, bucket)))
	return hex.EncodeToString(sum[:])
}
