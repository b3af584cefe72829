package glotline

import "strings"

// RepairJSON strips any text before the first '{' and after the last '}'
// in a model response. Completions sometimes wrap otherwise-valid JSON in
// prose or code fences; this removes that wrapping and nothing else.
// Returns the input unchanged when no brace pair exists.
//
// The contract is deliberately this narrow. Any broader response fixing
// should be a separate, named strategy.
func RepairJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")

	if start == -1 || end == -1 || end < start {
		return s
	}

	return s[start : end+1]
}
