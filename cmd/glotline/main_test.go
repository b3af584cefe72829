package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glotline/glotline"
)

func writeJSON(t *testing.T, path string, doc map[string]any) {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshaling fixture: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		source string
		locale string
		want   string
	}{
		{"en.json", "es", "en_es.json"},
		{"locales/en.json", "es_ES", filepath.Join("locales", "en_es_ES.json")},
		{"/abs/path/messages.json", "fr", filepath.Join("/abs/path", "messages_fr.json")},
		{"noext", "de", "noext_de"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.source, tt.locale); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.source, tt.locale, got, tt.want)
		}
	}
}

func TestRun_ChunkSizeValidation(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"zero", 0},
		{"negative", -1},
		{"at ceiling", glotline.EffectiveCeiling},
		{"above ceiling", glotline.EffectiveCeiling + 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &options{file: "irrelevant.json", locale: "es", chunkSize: tt.size}
			err := run(opts, new(bytes.Buffer), new(bytes.Buffer))
			if err == nil {
				t.Fatal("Expected chunk size validation error")
			}
			if !strings.Contains(err.Error(), "chunk size") {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestRun_MissingSourceFile(t *testing.T) {
	opts := &options{
		file:      filepath.Join(t.TempDir(), "absent.json"),
		locale:    "es",
		chunkSize: glotline.DefaultChunkSize,
	}

	err := run(opts, new(bytes.Buffer), new(bytes.Buffer))
	if err == nil {
		t.Fatal("Expected error for missing source file")
	}
	if !strings.Contains(err.Error(), "reading source file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRun_InvalidSourceJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	opts := &options{file: path, locale: "es", chunkSize: glotline.DefaultChunkSize}
	if err := run(opts, new(bytes.Buffer), new(bytes.Buffer)); err == nil {
		t.Fatal("Expected error for non-JSON source")
	}
}

func TestRun_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "en.json")
	writeJSON(t, path, map[string]any{"a": "Hi"})

	opts := &options{file: path, locale: "es", chunkSize: glotline.DefaultChunkSize}
	err := run(opts, new(bytes.Buffer), new(bytes.Buffer))
	if err == nil {
		t.Fatal("Expected error without API key")
	}
	if !strings.Contains(err.Error(), "API key") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRun_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.json")
	writeJSON(t, path, map[string]any{"a": "Hi", "b": "Bye"})

	var stdout bytes.Buffer
	opts := &options{file: path, locale: "es", chunkSize: glotline.DefaultChunkSize, dryRun: true}
	if err := run(opts, &stdout, new(bytes.Buffer)); err != nil {
		t.Fatalf("Dry run failed: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "Entries to translate: 2") {
		t.Errorf("Expected entry count in dry run output, got:\n%s", out)
	}
	if !strings.Contains(out, "Chunks:") {
		t.Errorf("Expected chunk count in dry run output, got:\n%s", out)
	}

	// Dry run never touches the output file.
	if _, err := os.Stat(outputPath(path, "es")); !os.IsNotExist(err) {
		t.Error("Dry run must not create the output file")
	}
}

func TestRun_DryRunComplete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.json")
	writeJSON(t, path, map[string]any{"a": "Hi"})
	writeJSON(t, filepath.Join(dir, "en_es.json"), map[string]any{"a": "Hola"})

	var stdout bytes.Buffer
	opts := &options{file: path, locale: "es", chunkSize: glotline.DefaultChunkSize, dryRun: true}
	if err := run(opts, &stdout, new(bytes.Buffer)); err != nil {
		t.Fatalf("Dry run failed: %v", err)
	}

	if !strings.Contains(stdout.String(), "Nothing to translate") {
		t.Errorf("Expected completion message, got:\n%s", stdout.String())
	}
}

func TestRun_CorruptExistingIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.json")
	writeJSON(t, path, map[string]any{"a": "Hi"})
	if err := os.WriteFile(filepath.Join(dir, "en_es.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	// A corrupt prior translation reads as empty, so everything is missing.
	var stdout bytes.Buffer
	opts := &options{file: path, locale: "es", chunkSize: glotline.DefaultChunkSize, dryRun: true}
	if err := run(opts, &stdout, new(bytes.Buffer)); err != nil {
		t.Fatalf("Dry run failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Entries to translate: 1") {
		t.Errorf("Expected full retranslation, got:\n%s", stdout.String())
	}
}

func TestRun_InvalidStyleGuide(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.json")
	writeJSON(t, path, map[string]any{"a": "Hi"})

	opts := &options{
		file:       path,
		locale:     "es",
		chunkSize:  glotline.DefaultChunkSize,
		styleGuide: filepath.Join(dir, "absent.yaml"),
	}
	if err := run(opts, new(bytes.Buffer), new(bytes.Buffer)); err == nil {
		t.Fatal("Expected error for missing style guide file")
	}
}

func TestNewRootCmd_RequiredFlags(t *testing.T) {
	cmd := newRootCmd(new(bytes.Buffer), new(bytes.Buffer))
	cmd.SetArgs([]string{})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err == nil {
		t.Fatal("Expected error when required flags are missing")
	}
}

func TestNewRootCmd_FlagDefaults(t *testing.T) {
	cmd := newRootCmd(new(bytes.Buffer), new(bytes.Buffer))

	if cmd.Flags().Lookup("chunk-size").DefValue != "2000" {
		t.Errorf("Unexpected chunk-size default: %s", cmd.Flags().Lookup("chunk-size").DefValue)
	}
	if cmd.Flags().Lookup("model").DefValue != "gpt-4o-mini" {
		t.Errorf("Unexpected model default: %s", cmd.Flags().Lookup("model").DefValue)
	}
	if cmd.Flags().ShorthandLookup("c") == nil {
		t.Error("Expected -c shorthand for chunk-size")
	}
	if cmd.Flags().ShorthandLookup("l") == nil {
		t.Error("Expected -l shorthand for locale")
	}
}

func TestLoadExisting(t *testing.T) {
	dir := t.TempDir()

	if doc := loadExisting(filepath.Join(dir, "absent.json")); doc != nil {
		t.Errorf("Expected nil for absent file, got %v", doc)
	}

	path := filepath.Join(dir, "prior.json")
	writeJSON(t, path, map[string]any{"a": "Hola"})
	doc := loadExisting(path)
	if doc == nil || doc["a"] != "Hola" {
		t.Errorf("Expected loaded prior translation, got %v", doc)
	}
}
