package engine

import (
	"context"

	"ai-studymate-be/pkg/embedding"
	"ai-studymate-be/pkg/llm"
	"ai-studymate-be/pkg/rag/answer"
	"ai-studymate-be/pkg/rag/citation"
	"ai-studymate-be/pkg/rag/index"
	"ai-studymate-be/pkg/rag/retriever"
)

const (
	// DefaultChatTopK bounds the context fed to the model during chat.
	DefaultChatTopK = 5
	// DefaultSearchTopK is the result count for semantic search.
	DefaultSearchTopK = 10
)

// Result is a fully synthesized answer with its source attributions.
type Result struct {
	Answer    string              `json:"answer"`
	Citations []citation.Citation `json:"citations"`
}

// StreamEvent is one step of a streamed answer. Zero or more text events
// arrive first, then a single terminal event carrying either the citations
// or an error.
type StreamEvent struct {
	Text      string
	Citations []citation.Citation
	Done      bool
	Err       error
}

// Engine wires retrieval, citation numbering, and synthesis into the two
// question-answering entry points plus semantic search.
type Engine struct {
	retriever   *retriever.Retriever
	synthesizer *answer.Synthesizer
}

func New(store index.Store, embedder embedding.Provider, provider llm.Provider, opts ...llm.Option) *Engine {
	return &Engine{
		retriever:   retriever.New(store, embedder),
		synthesizer: answer.New(provider, opts...),
	}
}

// Query answers the question from the given documents in one shot.
func (e *Engine) Query(ctx context.Context, question string, docs []retriever.Descriptor, k int) (*Result, error) {
	if k <= 0 {
		k = DefaultChatTopK
	}
	chunks, err := e.retriever.Retrieve(ctx, question, docs, k)
	if err != nil {
		return nil, err
	}
	citations, contextBlock := citation.Map(chunks)
	out, err := e.synthesizer.Generate(ctx, contextBlock, question)
	if err != nil {
		return nil, err
	}
	return &Result{Answer: out, Citations: citations}, nil
}

// QueryStream answers the question incrementally. Retrieval happens before
// the channel is returned, so retrieval errors surface synchronously; the
// citations travel on the terminal event because they are fixed before any
// text is generated.
func (e *Engine) QueryStream(ctx context.Context, question string, docs []retriever.Descriptor, k int) (<-chan StreamEvent, error) {
	if k <= 0 {
		k = DefaultChatTopK
	}
	chunks, err := e.retriever.Retrieve(ctx, question, docs, k)
	if err != nil {
		return nil, err
	}
	citations, contextBlock := citation.Map(chunks)

	upstream, err := e.synthesizer.GenerateStream(ctx, contextBlock, question)
	if err != nil {
		return nil, err
	}

	events := make(chan StreamEvent)
	go func() {
		defer close(events)
		for ev := range upstream {
			switch {
			case ev.Err != nil:
				e.emit(ctx, events, StreamEvent{Err: ev.Err})
				return
			case ev.Done:
				e.emit(ctx, events, StreamEvent{Citations: citations, Done: true})
				return
			default:
				if !e.emit(ctx, events, StreamEvent{Text: ev.Text}) {
					return
				}
			}
		}
		// Upstream closed without a terminal event.
		e.emit(ctx, events, StreamEvent{Err: llm.ErrStreamTruncated})
	}()
	return events, nil
}

// Search runs retrieval alone and returns the ranked chunks, no synthesis.
func (e *Engine) Search(ctx context.Context, query string, docs []retriever.Descriptor, k int) ([]retriever.RetrievedChunk, error) {
	if k <= 0 {
		k = DefaultSearchTopK
	}
	return e.retriever.Retrieve(ctx, query, docs, k)
}

func (e *Engine) emit(ctx context.Context, ch chan<- StreamEvent, ev StreamEvent) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
