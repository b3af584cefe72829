// Command glotline translates the string values of a JSON file into a
// target locale using an LLM provider.
//
// The translated document is written next to the source as
// name_locale.ext (e.g. en.json + --locale es -> en_es.json). When that
// file already exists it is loaded as a prior translation and only
// missing entries are translated, so interrupted or repeated runs are
// incremental.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/glotline/glotline"
	"github.com/glotline/glotline/cache"
	"github.com/glotline/glotline/provider"
	"github.com/spf13/cobra"
)

type options struct {
	file       string
	locale     string
	styleGuide string
	chunkSize  int
	apiKey     string
	model      string
	rpm        int
	redisURL   string
	cacheFile  string
	dryRun     bool
	quiet      bool
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "glotline",
		Short:   "Translate JSON string values into a target locale with an LLM",
		Version: glotline.FullVersion(),
		Long: `glotline translates the string values of a JSON document into a target
locale, preserving keys and structure. Large documents are split into
token-bounded chunks; failed chunks are retried and subdivided; results
merge into any existing translation so runs are resumable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "Source JSON file to translate (required)")
	f.StringVarP(&opts.locale, "locale", "l", "", "Target locale code, e.g. es or es_ES (required)")
	f.StringVarP(&opts.styleGuide, "style-guide", "s", "", "Style guide file (JSON or YAML)")
	f.IntVarP(&opts.chunkSize, "chunk-size", "c", glotline.DefaultChunkSize, "Target chunk size in tokens")
	f.StringVar(&opts.apiKey, "api-key", "", "OpenAI API key (default: OPENAI_API_KEY env)")
	f.StringVar(&opts.model, "model", "gpt-4o-mini", "OpenAI model to use")
	f.IntVar(&opts.rpm, "rpm", 0, "Maximum provider requests per minute (0 = unlimited)")
	f.StringVar(&opts.redisURL, "redis-url", "", "Redis URL for the translation cache")
	f.StringVar(&opts.cacheFile, "cache-file", "", "File to load and persist the translation cache")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Report remaining work without calling the API")
	f.BoolVar(&opts.quiet, "quiet", false, "Suppress progress output")

	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("locale")

	return cmd
}

func run(opts *options, stdout, stderr io.Writer) error {
	// Configuration is validated before any file or network activity.
	if opts.chunkSize <= 0 || opts.chunkSize >= glotline.EffectiveCeiling {
		return fmt.Errorf("chunk size must be between 1 and %d, got %d", glotline.EffectiveCeiling-1, opts.chunkSize)
	}

	source, err := loadDocument(opts.file)
	if err != nil {
		return fmt.Errorf("reading source file: %w", err)
	}

	var styleGuide *glotline.StyleGuide
	if opts.styleGuide != "" {
		styleGuide, err = glotline.LoadStyleGuide(opts.styleGuide)
		if err != nil {
			return err
		}
	}

	outPath := outputPath(opts.file, opts.locale)

	// An unreadable or corrupt prior translation means starting fresh.
	existing := loadExisting(outPath)

	if opts.dryRun {
		return dryRun(source, existing, opts, outPath, stdout)
	}

	key := opts.apiKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return fmt.Errorf("OpenAI API key required (--api-key or OPENAI_API_KEY env)")
	}

	var chat provider.ChatProvider = provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey: key,
		Model:  opts.model,
	})
	if opts.rpm > 0 {
		chat = glotline.NewRateLimitedProvider(chat, glotline.RateLimitConfig{RequestsPerMinute: opts.rpm})
	}

	translationCache, memCache, err := buildCache(opts, stderr)
	if err != nil {
		return err
	}

	logger := log.New(stderr, "", 0)
	if opts.quiet {
		logger = log.New(io.Discard, "", 0)
	}

	translatorOpts := []glotline.TranslatorOption{
		glotline.WithChunkSize(opts.chunkSize),
		glotline.WithModel(opts.model),
		glotline.WithLogger(logger),
	}
	if styleGuide != nil {
		translatorOpts = append(translatorOpts, glotline.WithStyleGuide(styleGuide))
	}
	if translationCache != nil {
		translatorOpts = append(translatorOpts, glotline.WithCache(translationCache))
	}

	translator := glotline.NewTranslator(opts.locale, chat, translatorOpts...)

	result, err := translator.TranslateDocument(context.Background(), source, existing)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing result: %w", err)
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if opts.cacheFile != "" && memCache != nil {
		if err := cache.NewExporter(memCache).ExportToFile(opts.cacheFile, map[string]string{"locale": opts.locale}); err != nil {
			fmt.Fprintf(stderr, "warning: persisting cache: %v\n", err)
		}
	}

	fmt.Fprintf(stdout, "Translation written to %s\n", outPath)
	return nil
}

// buildCache selects the translation cache: Redis when a URL is given,
// otherwise an in-memory cache optionally warmed from --cache-file.
func buildCache(opts *options, stderr io.Writer) (glotline.TranslationCache, *cache.InMemoryCache, error) {
	if opts.redisURL != "" {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{URL: opts.redisURL})
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to Redis: %w", err)
		}
		return redisCache, nil, nil
	}

	memCache := cache.NewInMemoryCache(0)
	if opts.cacheFile != "" {
		if _, err := os.Stat(opts.cacheFile); err == nil {
			if _, err := cache.NewImporter(memCache).ImportFromFile(opts.cacheFile); err != nil {
				fmt.Fprintf(stderr, "warning: loading cache file: %v\n", err)
			}
		}
	}
	return memCache, memCache, nil
}

// dryRun reports the work a real run would perform.
func dryRun(source, existing glotline.Document, opts *options, outPath string, stdout io.Writer) error {
	missing := glotline.MissingTranslations(source, existing)
	if len(missing) == 0 {
		fmt.Fprintf(stdout, "Nothing to translate; %s is complete.\n", outPath)
		return nil
	}

	analysis, err := glotline.Analyze(missing, opts.chunkSize)
	if err != nil {
		return err
	}

	chunkCount := 1
	if analysis.ExceedsLimit {
		chunkCount = len(analysis.Boundaries)
	}

	fmt.Fprintf(stdout, "Dry run: %s -> %s\n", opts.file, outPath)
	fmt.Fprintf(stdout, "  Entries to translate: %d (top-level)\n", len(missing))
	fmt.Fprintf(stdout, "  Estimated tokens:     %d\n", analysis.TotalTokens)
	fmt.Fprintf(stdout, "  Chunks:               %d\n", chunkCount)
	return nil
}

// loadDocument reads and parses a JSON object file.
func loadDocument(path string) (glotline.Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return nil, err
	}

	var doc glotline.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s is not a JSON object: %w", path, err)
	}
	return doc, nil
}

// loadExisting reads a prior translation, returning nil when the file is
// absent or corrupt.
func loadExisting(path string) glotline.Document {
	data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return nil
	}

	var doc glotline.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return doc
}

// outputPath derives the translated file's path from the source path and
// locale: the locale is appended to the base filename before the
// extension, keeping directory and extension (dir/en.json + "es" ->
// dir/en_es.json).
func outputPath(sourcePath, locale string) string {
	dir := filepath.Dir(sourcePath)
	base := filepath.Base(sourcePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, name+"_"+locale+ext)
}
