package llm

import (
	"context"
	"errors"
)

// ErrStreamTruncated reports a stream channel that closed without a
// terminal event.
var ErrStreamTruncated = errors.New("llm: stream ended without terminal event")

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// StreamEvent is one item of a streamed completion. Exactly one terminal
// event arrives per stream: either Done=true (the backend finished cleanly)
// or Err != nil. A closed channel without a terminal event means the stream
// broke mid-flight and the caller must treat the answer as incomplete.
type StreamEvent struct {
	Text string
	Done bool
	Err  error
}

// Provider defines the contract for any completion backend.
type Provider interface {
	// Chat sends a chat history to the model and returns the response.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method).
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// GenerateStream streams the completion for a single prompt. Events
	// arrive in generation order on an unbuffered channel; the producer
	// stops promptly once ctx is cancelled, so an abandoned consumer never
	// wedges the backend goroutine.
	GenerateStream(ctx context.Context, prompt string, options ...Option) (<-chan StreamEvent, error)
}

// BuildOptions folds functional options over provider defaults.
func BuildOptions(opts []Option) *Options {
	options := &Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
