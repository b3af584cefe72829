package glotline

// MissingTranslations returns the sparse sub-document of source entries
// that are absent or empty in existing. This is the work remaining for
// an incremental run. Nested objects recurse: a key appears in the result
// only if its recursive diff is non-empty, and its value is that diff,
// not the full nested source.
func MissingTranslations(source, existing Document) Document {
	missing := Document{}

	for key, value := range source {
		if nested, ok := value.(map[string]any); ok {
			existingNested, _ := existing[key].(map[string]any)
			sub := MissingTranslations(nested, existingNested)
			if len(sub) > 0 {
				missing[key] = sub
			}
			continue
		}

		if isEmptyValue(existing[key]) {
			missing[key] = value
		}
	}

	return missing
}

// isEmptyValue reports whether an existing value counts as untranslated.
// Empty strings, nulls, zeros, false and empty objects are all treated as
// absent-equivalent.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0
	case int:
		return val == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
