package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-studymate-be/pkg/chunker"
	"ai-studymate-be/pkg/llm"
	"ai-studymate-be/pkg/rag"
	"ai-studymate-be/pkg/rag/answer"
	"ai-studymate-be/pkg/rag/index"
	"ai-studymate-be/pkg/rag/retriever"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoEmbedder struct{}

func (echoEmbedder) Embed(ctx context.Context, text, taskType string) ([]float32, error) {
	// Everything maps to the same direction, so ranking falls back to
	// sequence order and the tests stay deterministic.
	return []float32{1, 0, 0}, nil
}

type scriptedProvider struct {
	response string
	err      error
	truncate bool
}

func (s *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *scriptedProvider) GenerateStream(ctx context.Context, prompt string, opts ...llm.Option) (<-chan llm.StreamEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	events := make(chan llm.StreamEvent)
	go func() {
		defer close(events)
		for _, word := range strings.SplitAfter(s.response, " ") {
			select {
			case events <- llm.StreamEvent{Text: word}:
			case <-ctx.Done():
				return
			}
		}
		if s.truncate {
			return
		}
		select {
		case events <- llm.StreamEvent{Done: true}:
		case <-ctx.Done():
		}
	}()
	return events, nil
}

func seedDocs(t *testing.T, store index.Store, names ...string) []retriever.Descriptor {
	t.Helper()
	docs := make([]retriever.Descriptor, len(names))
	for i, name := range names {
		id := uuid.New()
		chunks := []chunker.Chunk{
			{Text: "facts from " + name, SequenceIndex: 0},
			{Text: "more facts from " + name, SequenceIndex: 1},
		}
		handle, err := store.Build(context.Background(), id, chunks, echoEmbedder{})
		require.NoError(t, err)
		docs[i] = retriever.Descriptor{ID: id, DisplayName: name, Handle: handle}
	}
	return docs
}

func TestQueryAnswersWithCitations(t *testing.T) {
	store := index.NewMemoryStore()
	docs := seedDocs(t, store, "Physics.pdf", "Chemistry.pdf")
	e := New(store, echoEmbedder{}, &scriptedProvider{response: "Energy is conserved [1]."})

	result, err := e.Query(context.Background(), "Is energy conserved?", docs, 0)

	require.NoError(t, err)
	assert.Equal(t, "Energy is conserved [1].", result.Answer)
	require.NotEmpty(t, result.Citations)
	assert.Equal(t, 1, result.Citations[0].Number)
}

func TestQueryNoMaterials(t *testing.T) {
	e := New(index.NewMemoryStore(), echoEmbedder{}, &scriptedProvider{response: "x"})

	docs := []retriever.Descriptor{{ID: uuid.New(), Handle: index.HandleFor(uuid.New())}}
	_, err := e.Query(context.Background(), "q", docs, 0)

	assert.ErrorIs(t, err, rag.ErrNoMaterials)
}

func TestQueryGenerationFailure(t *testing.T) {
	store := index.NewMemoryStore()
	docs := seedDocs(t, store, "Doc")
	e := New(store, echoEmbedder{}, &scriptedProvider{err: errors.New("overloaded")})

	_, err := e.Query(context.Background(), "q", docs, 0)

	assert.ErrorIs(t, err, rag.ErrGenerationFailed)
}

func TestQueryRefusalPassesThrough(t *testing.T) {
	store := index.NewMemoryStore()
	docs := seedDocs(t, store, "Doc")
	e := New(store, echoEmbedder{}, &scriptedProvider{response: answer.RefusalPhrase})

	result, err := e.Query(context.Background(), "unanswerable", docs, 0)

	require.NoError(t, err)
	assert.Equal(t, answer.RefusalPhrase, result.Answer)
}

func TestQueryStreamMatchesSyncAnswer(t *testing.T) {
	store := index.NewMemoryStore()
	docs := seedDocs(t, store, "Doc A", "Doc B")
	provider := &scriptedProvider{response: "The answer spans several words [1] [2]."}
	e := New(store, echoEmbedder{}, provider)

	sync, err := e.Query(context.Background(), "q", docs, 0)
	require.NoError(t, err)

	events, err := e.QueryStream(context.Background(), "q", docs, 0)
	require.NoError(t, err)

	var (
		b       strings.Builder
		sawDone bool
		last    StreamEvent
	)
	for ev := range events {
		require.NoError(t, ev.Err)
		if ev.Done {
			sawDone = true
			last = ev
			continue
		}
		b.WriteString(ev.Text)
	}

	require.True(t, sawDone)
	assert.Equal(t, sync.Answer, b.String())
	assert.Equal(t, sync.Citations, last.Citations)
}

func TestQueryStreamTruncationSurfacesError(t *testing.T) {
	store := index.NewMemoryStore()
	docs := seedDocs(t, store, "Doc")
	e := New(store, echoEmbedder{}, &scriptedProvider{response: "partial answer", truncate: true})

	events, err := e.QueryStream(context.Background(), "q", docs, 0)
	require.NoError(t, err)

	var streamErr error
	for ev := range events {
		if ev.Err != nil {
			streamErr = ev.Err
		}
		assert.False(t, ev.Done)
	}

	assert.ErrorIs(t, streamErr, llm.ErrStreamTruncated)
}

func TestQueryStreamStopsOnContextCancel(t *testing.T) {
	store := index.NewMemoryStore()
	docs := seedDocs(t, store, "Doc")
	provider := &scriptedProvider{response: strings.Repeat("word ", 256)}
	e := New(store, echoEmbedder{}, provider)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := e.QueryStream(ctx, "q", docs, 0)
	require.NoError(t, err)

	// Take the first chunk, then drop the consumer the way a closed
	// websocket would.
	first := <-events
	require.NoError(t, first.Err)
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			assert.False(t, ev.Done, "stream completed despite cancellation")
		case <-deadline:
			t.Fatal("stream did not stop after cancellation")
		}
	}
}

func TestQueryStreamRetrievalErrorIsSynchronous(t *testing.T) {
	e := New(index.NewMemoryStore(), echoEmbedder{}, &scriptedProvider{response: "x"})

	docs := []retriever.Descriptor{{ID: uuid.New(), Handle: index.HandleFor(uuid.New())}}
	_, err := e.QueryStream(context.Background(), "q", docs, 0)

	assert.ErrorIs(t, err, rag.ErrNoMaterials)
}

func TestSearchReturnsChunksWithoutSynthesis(t *testing.T) {
	store := index.NewMemoryStore()
	docs := seedDocs(t, store, "Doc A")
	// Provider that would fail if synthesis were attempted.
	e := New(store, echoEmbedder{}, &scriptedProvider{err: errors.New("must not be called")})

	got, err := e.Search(context.Background(), "facts", docs, 0)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Doc A", got[0].DisplayName)
}
