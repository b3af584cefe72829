package glotline

import (
	"context"
	"encoding/json"
	"io"
	"log"
)

// Message roles for chat completion requests.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged entry in a chat completion request.
type Message struct {
	Role    string
	Content string
}

// CompletionRequest contains the parameters for one chat completion call.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
}

// ChatProvider is the interface for LLM chat-completion backends. The
// engine depends only on: send one prompt, receive one response string,
// may fail transiently.
type ChatProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// TranslationCache is the interface for caching chunk translations.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// maxSubdivisionDepth bounds the fallback layer: a failed chunk is split
// at halved chunk sizes at most this many nested levels before the
// original error surfaces.
const maxSubdivisionDepth = 3

// defaultTemperature favors deterministic, structurally valid output.
const defaultTemperature = 0.2

// Translator is the translation engine for one target locale.
type Translator struct {
	targetLang  string
	provider    ChatProvider
	styleGuide  *StyleGuide
	chunkSize   int
	retry       RetryConfig
	cache       TranslationCache
	model       string
	temperature float32
	logger      *log.Logger
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithChunkSize sets the target chunk size in tokens.
func WithChunkSize(tokens int) TranslatorOption {
	return func(t *Translator) {
		if tokens > 0 {
			t.chunkSize = tokens
		}
	}
}

// WithStyleGuide sets the style guide injected into prompts.
func WithStyleGuide(sg *StyleGuide) TranslatorOption {
	return func(t *Translator) {
		t.styleGuide = sg
	}
}

// WithRetryConfig sets the per-chunk retry behavior.
func WithRetryConfig(cfg RetryConfig) TranslatorOption {
	return func(t *Translator) {
		t.retry = cfg
	}
}

// WithCache sets the chunk translation cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithModel sets the model identifier passed to the provider.
func WithModel(model string) TranslatorOption {
	return func(t *Translator) {
		t.model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temp float32) TranslatorOption {
	return func(t *Translator) {
		t.temperature = temp
	}
}

// WithLogger sets the progress logger. The default discards output.
func WithLogger(logger *log.Logger) TranslatorOption {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTranslator creates a Translator for the given target language and
// provider.
func NewTranslator(targetLang string, provider ChatProvider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		targetLang:  targetLang,
		provider:    provider,
		chunkSize:   DefaultChunkSize,
		retry:       DefaultRetryConfig(),
		temperature: defaultTemperature,
		logger:      log.New(io.Discard, "", 0),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// TargetLang returns the target language.
func (t *Translator) TargetLang() string {
	return t.targetLang
}

// ChunkSize returns the target chunk size in tokens.
func (t *Translator) ChunkSize() int {
	return t.chunkSize
}

// StyleGuide returns the configured style guide, or nil.
func (t *Translator) StyleGuide() *StyleGuide {
	return t.styleGuide
}

// TranslateDocument translates the string values of source into the
// target language, reusing existing wherever it already holds a
// non-empty value. Pass nil existing to translate from scratch.
//
// The result merges new translations into existing; keys untouched by
// this run keep their prior values. Chunks are translated strictly
// sequentially. On any terminal chunk failure the whole run fails and no
// partial result is returned.
func (t *Translator) TranslateDocument(ctx context.Context, source, existing Document) (Document, error) {
	if existing == nil {
		existing = Document{}
	}

	missing := MissingTranslations(source, existing)
	if len(missing) == 0 {
		t.logger.Printf("nothing to translate; existing translation covers all entries")
		return Merge(existing, nil), nil
	}

	analysis, err := Analyze(missing, t.chunkSize)
	if err != nil {
		return nil, err
	}

	var translated Document

	if !analysis.ExceedsLimit {
		t.logger.Printf("translating %d top-level entries as one chunk (~%d tokens)", len(missing), analysis.TotalTokens)
		translated, err = t.translateChunk(ctx, missing)
		if err != nil {
			return nil, err
		}
	} else {
		chunks := BuildChunks(missing, analysis)
		t.logger.Printf("document estimates %d tokens, splitting into %d chunks", analysis.TotalTokens, len(chunks))

		translated = Document{}
		for i, chunk := range chunks {
			t.logger.Printf("chunk %d of %d (~%d tokens)", i+1, len(chunks), chunk.Tokens)

			result, err := t.translateChunkWithFallback(ctx, chunk.Content, t.chunkSize, 0)
			if err != nil {
				return nil, err
			}

			// Chunk boundaries are disjoint, so keys never collide here.
			for k, v := range result {
				translated[k] = v
			}
		}
	}

	return Merge(existing, translated), nil
}

// translateChunk is the retry layer: one chunk, one prompt, attempts with
// backoff until the response parses and covers every input key. A
// terminal failure wraps the last attempt error in a ChunkError.
func (t *Translator) translateChunk(ctx context.Context, content Document) (Document, error) {
	if cached, ok := t.cachedTranslation(content); ok {
		t.logger.Printf("cache hit for chunk of %d entries", len(content))
		return cached, nil
	}

	prompt, err := BuildPrompt(content, t.targetLang, t.styleGuide)
	if err != nil {
		return nil, err
	}

	attempt := 0
	result, err := WithRetry(ctx, t.retry, func() (Document, error) {
		attempt++
		if attempt > 1 {
			t.logger.Printf("retry attempt %d of %d", attempt-1, t.retry.MaxRetries)
		}
		return t.attemptTranslation(ctx, prompt, content)
	})
	if err != nil {
		return nil, &ChunkError{Keys: canonicalKeys(content), Cause: err}
	}

	t.storeTranslation(content, result)

	return result, nil
}

// attemptTranslation performs a single completion call and validates the
// response: parse, repair-and-reparse if needed, then check that every
// input key survived.
func (t *Translator) attemptTranslation(ctx context.Context, prompt string, content Document) (Document, error) {
	response, err := t.provider.Complete(ctx, CompletionRequest{
		Model:       t.model,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Temperature: t.temperature,
	})
	if err != nil {
		return nil, err
	}

	var doc Document
	if parseErr := json.Unmarshal([]byte(response), &doc); parseErr != nil {
		repaired := RepairJSON(response)
		if parseErr = json.Unmarshal([]byte(repaired), &doc); parseErr != nil {
			return nil, &ParseError{Cause: parseErr, Response: response}
		}
	}

	var missing []string
	for _, key := range canonicalKeys(content) {
		if _, ok := doc[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingKeysError{Keys: missing}
	}

	return doc, nil
}

// translateChunkWithFallback is the subdivision layer: when the retry
// layer fails terminally, re-analyze the failed chunk at half the chunk
// size (floored at MinChunkSize) and recurse per sub-chunk. A chunk that
// yields no finer split, or a recursion past maxSubdivisionDepth,
// re-raises the original error.
func (t *Translator) translateChunkWithFallback(ctx context.Context, content Document, chunkSize, depth int) (Document, error) {
	result, err := t.translateChunk(ctx, content)
	if err == nil {
		return result, nil
	}

	if depth >= maxSubdivisionDepth || ctx.Err() != nil {
		return nil, err
	}

	smaller := chunkSize / 2
	if smaller < MinChunkSize {
		smaller = MinChunkSize
	}

	analysis, analyzeErr := Analyze(content, smaller)
	if analyzeErr != nil {
		return nil, err
	}

	subChunks := BuildChunks(content, analysis)
	if len(subChunks) < 2 {
		return nil, err
	}

	t.logger.Printf("subdividing failed chunk into %d sub-chunks at %d tokens (depth %d)", len(subChunks), smaller, depth+1)

	combined := Document{}
	for i, sub := range subChunks {
		t.logger.Printf("sub-chunk %d of %d (~%d tokens)", i+1, len(subChunks), sub.Tokens)

		res, subErr := t.translateChunkWithFallback(ctx, sub.Content, smaller, depth+1)
		if subErr != nil {
			return nil, subErr
		}
		for k, v := range res {
			combined[k] = v
		}
	}

	return combined, nil
}

// cachedTranslation looks up a chunk's translation in the cache.
func (t *Translator) cachedTranslation(content Document) (Document, bool) {
	if t.cache == nil {
		return nil, false
	}

	key := CacheKey(HashContent(content), t.targetLang, t.model)
	raw, ok := t.cache.Get(key)
	if !ok {
		return nil, false
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		// Corrupt cache entry; treat as a miss.
		return nil, false
	}
	return doc, true
}

// storeTranslation records a successful chunk translation in the cache.
func (t *Translator) storeTranslation(content, result Document) {
	if t.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	key := CacheKey(HashContent(content), t.targetLang, t.model)
	_ = t.cache.Set(key, string(data)) // cache set errors never fail a run
}
