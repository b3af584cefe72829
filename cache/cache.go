// Package cache provides chunk translation caching implementations.
//
// Keys are content-hash based (see glotline.CacheKey); values are the
// serialized translated chunk. A warm cache lets a rerun skip provider
// calls for chunks whose source content has not changed.
package cache

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}
