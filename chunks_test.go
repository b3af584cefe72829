package glotline

import (
	"strings"
	"testing"
)

func TestBuildChunks_NoBoundaries(t *testing.T) {
	doc := Document{"a": "hello"}

	if chunks := BuildChunks(doc, &Analysis{TotalTokens: 5}); chunks != nil {
		t.Errorf("Expected nil chunks without boundaries, got %v", chunks)
	}
	if chunks := BuildChunks(doc, nil); chunks != nil {
		t.Errorf("Expected nil chunks for nil analysis, got %v", chunks)
	}
}

func TestBuildChunks_SlicesByBoundary(t *testing.T) {
	doc := Document{"a": "1", "b": "2", "c": "3", "d": "4"}
	analysis := &Analysis{
		ExceedsLimit: true,
		Boundaries: []ChunkBoundary{
			{Start: 0, End: 1, Tokens: 10},
			{Start: 2, End: 3, Tokens: 12},
		},
	}

	chunks := BuildChunks(doc, analysis)

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}

	first := chunks[0]
	if len(first.Content) != 2 || first.Content["a"] != "1" || first.Content["b"] != "2" {
		t.Errorf("Unexpected first chunk: %v", first.Content)
	}
	if first.Tokens != 10 {
		t.Errorf("Expected first chunk tokens 10, got %d", first.Tokens)
	}

	second := chunks[1]
	if len(second.Content) != 2 || second.Content["c"] != "3" || second.Content["d"] != "4" {
		t.Errorf("Unexpected second chunk: %v", second.Content)
	}
}

func TestBuildChunks_DisjointAndExhaustive(t *testing.T) {
	doc := Document{}
	for i := 0; i < 25; i++ {
		key := string(rune('a'+i%26)) + strings.Repeat("z", i/26+1)
		doc[key] = strings.Repeat("v", 300)
	}

	analysis, err := Analyze(doc, 500)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !analysis.ExceedsLimit {
		t.Fatal("Expected document to exceed the budget")
	}

	chunks := BuildChunks(doc, analysis)

	seen := map[string]int{}
	for _, chunk := range chunks {
		for key := range chunk.Content {
			seen[key]++
		}
	}

	if len(seen) != len(doc) {
		t.Errorf("Chunks cover %d keys, want %d", len(seen), len(doc))
	}
	for key, count := range seen {
		if count != 1 {
			t.Errorf("Key %q appears in %d chunks, want 1", key, count)
		}
	}
}

func TestBuildChunks_PreservesValues(t *testing.T) {
	doc := Document{
		"text":   "hello",
		"number": float64(42),
		"nested": map[string]any{"inner": "value"},
	}
	analysis := &Analysis{
		ExceedsLimit: true,
		Boundaries:   []ChunkBoundary{{Start: 0, End: 2, Tokens: 20}},
	}

	chunks := BuildChunks(doc, analysis)

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content["number"] != float64(42) {
		t.Error("Non-string value not preserved")
	}
	nested, ok := chunks[0].Content["nested"].(map[string]any)
	if !ok || nested["inner"] != "value" {
		t.Error("Nested value not preserved")
	}
}
