package glotline

import (
	"encoding/json"
	"fmt"
)

// bytesPerToken is the rough heuristic for Latin-script content:
// one model token covers about four bytes of serialized JSON.
const bytesPerToken = 4

// EstimateTokens estimates the number of model tokens the JSON
// serialization of v would consume. The estimate is deterministic for a
// given value: encoding/json sorts map keys, so the same document always
// serializes to the same bytes. The estimate is advisory rather than
// exact; the token buffer absorbs the difference from the model's real
// tokenizer.
func EstimateTokens(v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("estimating tokens: %w", err)
	}
	return tokenCount(len(data)), nil
}

// tokenCount converts a byte length to a token estimate, rounding up.
func tokenCount(byteLen int) int {
	return (byteLen + bytesPerToken - 1) / bytesPerToken
}
