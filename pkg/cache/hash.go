package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Artifact kinds embedded in cache keys. The kind names the pipeline
// stage an entry belongs to; backends use it for bucketing and reporting.
const (
	KindLayout = "layout"
	KindRender = "render"

	// KindUnknown is reported for keys that do not follow the
	// "<kind>:<digest>" shape, e.g. entries written by older builds.
	KindUnknown = "unknown"
)

// hashKey derives a cache key of the form "<kind>:<digest>", where the
// digest is the SHA-256 over the JSON encoding of parts. The full 256-bit
// digest is kept so distinct graphs never collide.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	digest := sha256.Sum256(data)
	return kind + ":" + hex.EncodeToString(digest[:])
}

// KeyKind extracts the artifact kind from a cache key, looking past any
// scope prefixes a ScopedKeyer added (the kind is always the segment
// right before the digest).
func KeyKind(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return KindUnknown
	}
	kind := parts[len(parts)-2]
	if kind == "" {
		return KindUnknown
	}
	return kind
}

// Hash computes the SHA-256 content hash of data as a 64-character hex
// string. The pipeline uses it to fingerprint graph documents.
func Hash(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}
