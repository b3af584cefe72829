package glotline

import "sort"

// canonicalKeys returns a document's top-level keys in canonical
// (lexicographic) order. encoding/json serializes map keys in the same
// order, so token estimates and chunk boundaries agree on what entry
// order means.
func canonicalKeys(doc Document) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Analyze sizes a document against a target chunk size and, when the
// document is too large for one request, computes an ordered split plan
// over its top-level entries.
//
// Each entry's cost is estimated by serializing it standalone as a
// single-key object. That slightly overestimates chunks that share
// structural overhead, which only ever makes chunks smaller than the
// budget, never larger.
//
// Returns an OversizedEntryError when a single entry alone exceeds the
// effective ceiling; no split plan can make such an entry fit.
func Analyze(doc Document, chunkSize int) (*Analysis, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	if len(doc) == 0 {
		return &Analysis{}, nil
	}

	total, err := EstimateTokens(doc)
	if err != nil {
		return nil, err
	}

	if total <= chunkSize {
		return &Analysis{TotalTokens: total}, nil
	}

	keys := canonicalKeys(doc)

	var boundaries []ChunkBoundary
	start := 0
	running := 0

	for i, key := range keys {
		entryTokens, err := EstimateTokens(Document{key: doc[key]})
		if err != nil {
			return nil, err
		}

		// Close the running chunk before an entry that would overflow it.
		if running+entryTokens > chunkSize && i > start {
			boundaries = append(boundaries, ChunkBoundary{Start: start, End: i - 1, Tokens: running})
			start = i
			running = 0
		}

		running += entryTokens

		if running > EffectiveCeiling {
			return nil, &OversizedEntryError{Key: key, Tokens: running}
		}
	}

	boundaries = append(boundaries, ChunkBoundary{Start: start, End: len(keys) - 1, Tokens: running})

	return &Analysis{
		TotalTokens:  total,
		ExceedsLimit: true,
		Boundaries:   boundaries,
	}, nil
}
