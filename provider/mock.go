package provider

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/glotline/glotline"
)

// MockProvider is a mock chat-completion provider for testing.
//
// Behavior per call, in priority order: CompleteFunc when set, then the
// next scripted Response, then a pseudo-translation of the JSON payload
// embedded in the prompt (every string value wrapped in brackets, shape
// preserved). FailTimes injects transient failures before any of those.
type MockProvider struct {
	CompleteFunc func(req CompletionRequest) (string, error)
	Responses    []string // returned in order; exhausted entries fall through
	FailTimes    int      // fail this many leading calls
	FailWith     error    // error for injected failures (default: retryable ProviderError)

	CallCount int
	Prompts   []string // user message content of every call
}

// Complete returns the next scripted or derived response.
func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	m.CallCount++
	for _, msg := range req.Messages {
		if msg.Role == glotline.RoleUser {
			m.Prompts = append(m.Prompts, msg.Content)
		}
	}

	if m.FailTimes > 0 {
		m.FailTimes--
		if m.FailWith != nil {
			return "", m.FailWith
		}
		return "", &glotline.ProviderError{Message: "simulated transient failure", Retryable: true}
	}

	if m.CompleteFunc != nil {
		return m.CompleteFunc(req)
	}

	if len(m.Responses) > 0 {
		resp := m.Responses[0]
		m.Responses = m.Responses[1:]
		return resp, nil
	}

	return PseudoTranslate(lastUserMessage(req))
}

// Reset clears call bookkeeping.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.Prompts = nil
}

func lastUserMessage(req CompletionRequest) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == glotline.RoleUser {
			return req.Messages[i].Content
		}
	}
	return ""
}

// PseudoTranslate extracts the JSON payload following the prompt's
// content marker and returns it with every string value wrapped in
// brackets. Keys, nesting and non-string values pass through, which makes
// the mock's output satisfy the engine's structural checks.
func PseudoTranslate(prompt string) (string, error) {
	idx := strings.LastIndex(prompt, glotline.PromptContentMarker)
	if idx == -1 {
		return "", &glotline.ProviderError{Message: "mock: prompt has no content marker"}
	}

	payload := glotline.RepairJSON(prompt[idx+len(glotline.PromptContentMarker):])

	var doc map[string]any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return "", &glotline.ProviderError{Message: "mock: prompt payload is not JSON", Cause: err}
	}

	data, err := json.Marshal(bracketStrings(doc))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func bracketStrings(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch val := v.(type) {
		case string:
			out[k] = "[" + val + "]"
		case map[string]any:
			out[k] = bracketStrings(val)
		default:
			out[k] = val
		}
	}
	return out
}

// Verify MockProvider implements ChatProvider
var _ ChatProvider = (*MockProvider)(nil)
