package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching structuring results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ResultKey derives a cache key from raw text and the serialized
// structuring options, so the same text with different options never
// collides.
func ResultKey(rawText, optionsTag string) string {
	hash := sha256.Sum256([]byte(optionsTag + "\x00" + rawText))
	return "canonica:v1:" + hex.EncodeToString(hash[:])
}
