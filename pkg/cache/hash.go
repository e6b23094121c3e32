package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a namespaced cache key "prefix:sha256(parts)". The
// keyer uses "maze" and "artifact" prefixes so the two stages never
// collide, and the full 256-bit hash keeps distinct option sets from
// aliasing.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the SHA-256 of data as a 64-character hex string. The
// pipeline hashes serialized maze documents with it to key rendered
// artifacts, and the file cache shards its directory layout on it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
