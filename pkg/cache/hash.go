package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// RenderKey builds the cache key for a rendered artifact from the DOT text
// and the output format. Rendering is deterministic in both, so equal keys
// always mean equal artifacts.
func RenderKey(dot, format string) string {
	return "render:" + format + ":" + Hash([]byte(dot))
}
