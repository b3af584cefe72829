// Package provider defines the chat-completion provider interface and
// implementations.
package provider

import "github.com/glotline/glotline"

// ChatProvider is the interface for LLM chat-completion backends.
// This is an alias to the main package interface for convenience.
type ChatProvider = glotline.ChatProvider

// CompletionRequest is an alias to the main package type.
type CompletionRequest = glotline.CompletionRequest

// Message is an alias to the main package type.
type Message = glotline.Message
