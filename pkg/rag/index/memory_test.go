package index

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ai-studymate-be/pkg/chunker"
	"ai-studymate-be/pkg/rag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	failOn string
	calls  int
}

func (s *stubEmbedder) Embed(ctx context.Context, text, taskType string) ([]float32, error) {
	s.calls++
	if s.failOn != "" && text == s.failOn {
		return nil, errors.New("backend unavailable")
	}
	return []float32{float32(len(text)), 1, 0}, nil
}

func someChunks(n int) []chunker.Chunk {
	chunks := make([]chunker.Chunk, n)
	for i := range chunks {
		chunks[i] = chunker.Chunk{Text: fmt.Sprintf("chunk number %d", i), SequenceIndex: i}
	}
	return chunks
}

func TestHandleRoundTrip(t *testing.T) {
	id := uuid.New()

	handle := HandleFor(id)
	back, err := handle.DocumentID()

	require.NoError(t, err)
	assert.Equal(t, id, back)
}

func TestHandleRejectsGarbage(t *testing.T) {
	_, err := Handle("not-a-handle").DocumentID()
	assert.Error(t, err)
}

func TestMemoryStoreBuildAndLoad(t *testing.T) {
	store := NewMemoryStore()
	embedder := &stubEmbedder{}
	id := uuid.New()
	chunks := someChunks(3)

	handle, err := store.Build(context.Background(), id, chunks, embedder)
	require.NoError(t, err)
	assert.Equal(t, HandleFor(id), handle)
	assert.Equal(t, 3, embedder.calls)

	idx, err := store.Load(context.Background(), handle)
	require.NoError(t, err)
	assert.Len(t, idx.Vectors, 3)
	assert.Equal(t, chunks, idx.Chunks)
}

func TestMemoryStoreBuildEmptyChunks(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Build(context.Background(), uuid.New(), nil, &stubEmbedder{})

	assert.ErrorIs(t, err, rag.ErrEmbeddingFailed)
}

func TestMemoryStoreBuildFailurePublishesNothing(t *testing.T) {
	store := NewMemoryStore()
	embedder := &stubEmbedder{failOn: "chunk number 1"}
	id := uuid.New()

	_, err := store.Build(context.Background(), id, someChunks(3), embedder)
	require.ErrorIs(t, err, rag.ErrEmbeddingFailed)

	_, err = store.Load(context.Background(), HandleFor(id))
	assert.ErrorIs(t, err, rag.ErrIndexNotFound)
}

func TestMemoryStoreRebuildReplaces(t *testing.T) {
	store := NewMemoryStore()
	embedder := &stubEmbedder{}
	id := uuid.New()

	_, err := store.Build(context.Background(), id, someChunks(3), embedder)
	require.NoError(t, err)
	handle, err := store.Build(context.Background(), id, someChunks(1), embedder)
	require.NoError(t, err)

	idx, err := store.Load(context.Background(), handle)
	require.NoError(t, err)
	assert.Len(t, idx.Chunks, 1)
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	store := NewMemoryStore()
	id := uuid.New()
	handle, err := store.Build(context.Background(), id, someChunks(1), &stubEmbedder{})
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), handle))
	require.NoError(t, store.Delete(context.Background(), handle))

	_, err = store.Load(context.Background(), handle)
	assert.ErrorIs(t, err, rag.ErrIndexNotFound)
}
