package glotline

import (
	"fmt"
	"strings"
)

// ProviderError indicates an LLM provider failure (API error, rate limit, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ParseError indicates the model response could not be parsed as a JSON
// object, even after the repair pass.
type ParseError struct {
	Cause    error
	Response string // raw response, for diagnostics
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("response is not valid JSON: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// MissingKeysError indicates the model response parsed but omitted keys
// that were present in the request chunk.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("response is missing %d key(s): %s", len(e.Keys), strings.Join(e.Keys, ", "))
}

// OversizedEntryError indicates a single top-level entry whose estimated
// token cost exceeds the effective ceiling. No chunking strategy can make
// such an entry fit in one request.
type OversizedEntryError struct {
	Key    string
	Tokens int
}

func (e *OversizedEntryError) Error() string {
	return fmt.Sprintf("entry %q estimates %d tokens, above the %d-token ceiling; cannot be chunked",
		e.Key, e.Tokens, EffectiveCeiling)
}

// ChunkError is the terminal failure for one chunk after retries and
// subdivision are exhausted.
type ChunkError struct {
	Keys  []string // top-level keys of the failed chunk
	Cause error    // last underlying attempt error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk [%s] failed after retries: %v", strings.Join(e.Keys, ", "), e.Cause)
}

func (e *ChunkError) Unwrap() error {
	return e.Cause
}
