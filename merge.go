package glotline

// Merge combines freshly translated updates into an existing translation.
// Nested objects merge recursively; scalar updates overwrite
// unconditionally; keys present only in existing are preserved untouched.
// Neither input is mutated.
func Merge(existing, updates Document) Document {
	merged := make(Document, len(existing)+len(updates))

	for key, value := range existing {
		merged[key] = value
	}

	for key, value := range updates {
		if nested, ok := value.(map[string]any); ok {
			base, _ := merged[key].(map[string]any)
			merged[key] = Merge(base, nested)
			continue
		}
		merged[key] = value
	}

	return merged
}
