package glotline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// HashContent computes the SHA-256 hash of a document's canonical JSON
// serialization. Documents that serialize identically hash identically.
func HashContent(doc Document) string {
	data, _ := json.Marshal(doc)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key from a content hash, target language and
// model. Translations are only interchangeable when all three match.
func CacheKey(hash, targetLang, model string) string {
	return hash + ":" + targetLang + ":" + model
}
