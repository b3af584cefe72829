package glotline

// BuildChunks materializes an analysis' split plan into ordered chunks.
// Each boundary slices the document's top-level entries by position in
// canonical key order; chunk order equals boundary order. Returns nil
// when the analysis recommends no split.
func BuildChunks(doc Document, analysis *Analysis) []Chunk {
	if analysis == nil || len(analysis.Boundaries) == 0 {
		return nil
	}

	keys := canonicalKeys(doc)
	chunks := make([]Chunk, 0, len(analysis.Boundaries))

	for _, b := range analysis.Boundaries {
		content := Document{}
		for i := b.Start; i <= b.End && i < len(keys); i++ {
			content[keys[i]] = doc[keys[i]]
		}
		chunks = append(chunks, Chunk{Content: content, Tokens: b.Tokens})
	}

	return chunks
}
