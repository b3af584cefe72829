package glotline

// Token budget constants. A single request must never approach
// MaxRequestTokens; TokenBuffer absorbs the slack between the heuristic
// token estimate and the model's real tokenizer.
const (
	// MaxRequestTokens is the absolute hard limit for one request's content.
	MaxRequestTokens = 4000

	// TokenBuffer is subtracted from MaxRequestTokens to leave headroom for
	// prompt instructions and tokenizer drift.
	TokenBuffer = 1000

	// DefaultChunkSize is the default soft ceiling (tokens) for one chunk.
	DefaultChunkSize = 2000

	// MinChunkSize is the floor the fallback layer halves down to.
	MinChunkSize = 500
)

// EffectiveCeiling is the largest token estimate a single chunk may carry.
// An entry that alone exceeds this cannot be translated by this engine.
const EffectiveCeiling = MaxRequestTokens - TokenBuffer

// Document is a JSON object whose string leaf values are translatable.
// Nested objects recurse; numbers, booleans and nulls pass through
// untouched. Keys and nesting shape are never changed by translation.
type Document = map[string]any

// ChunkBoundary is one recommended split over a document's top-level
// entries, expressed as an inclusive [Start, End] index range into the
// document's canonical key order.
type ChunkBoundary struct {
	Start  int // index of the first entry, inclusive
	End    int // index of the last entry, inclusive
	Tokens int // estimated token cost of the range
}

// Analysis is the result of sizing a document against a chunk budget.
// An empty Boundaries slice means the whole document fits in one request.
type Analysis struct {
	TotalTokens  int             // estimate for the full document
	ExceedsLimit bool            // true when TotalTokens > the target chunk size
	Boundaries   []ChunkBoundary // ordered split plan; nil when not exceeded
}

// Chunk is a materialized slice of a document's top-level entries,
// annotated with its estimated token cost.
type Chunk struct {
	Content Document
	Tokens  int
}

// TranslationResult pairs a chunk's translated content with the keys it
// covered. Content has the same shape as the chunk input with string
// leaves replaced.
type TranslationResult struct {
	Content Document
}
