package retriever

import (
	"context"
	"errors"
	"testing"

	"ai-studymate-be/pkg/chunker"
	"ai-studymate-be/pkg/rag"
	"ai-studymate-be/pkg/rag/index"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedEmbedder maps exact strings to canned vectors so similarity ordering
// is fully controlled by the test.
type fixedEmbedder struct {
	vectors map[string][]float32
}

func (f *fixedEmbedder) Embed(ctx context.Context, text, taskType string) ([]float32, error) {
	vec, ok := f.vectors[text]
	if !ok {
		return nil, errors.New("no vector for text")
	}
	return vec, nil
}

func buildDoc(t *testing.T, store index.Store, embedder *fixedEmbedder, name string, texts ...string) Descriptor {
	t.Helper()
	id := uuid.New()
	chunks := make([]chunker.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = chunker.Chunk{Text: text, SequenceIndex: i}
	}
	handle, err := store.Build(context.Background(), id, chunks, embedder)
	require.NoError(t, err)
	return Descriptor{ID: id, DisplayName: name, Handle: handle}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 0}, b: []float32{1, 0}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRetrieveRanksAcrossDocuments(t *testing.T) {
	embedder := &fixedEmbedder{vectors: map[string][]float32{
		"query":  {1, 0, 0},
		"best":   {1, 0, 0},
		"good":   {0.8, 0.6, 0},
		"worst":  {0, 0, 1},
		"middle": {0.6, 0.8, 0},
	}}
	store := index.NewMemoryStore()
	docA := buildDoc(t, store, embedder, "Lecture A", "best", "worst")
	docB := buildDoc(t, store, embedder, "Lecture B", "good", "middle")

	r := New(store, embedder)
	got, err := r.Retrieve(context.Background(), "query", []Descriptor{docA, docB}, 3)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "best", got[0].Text)
	assert.Equal(t, "Lecture A", got[0].DisplayName)
	assert.Equal(t, "good", got[1].Text)
	assert.Equal(t, "middle", got[2].Text)
}

func TestRetrieveTieBreaksOnSequenceIndex(t *testing.T) {
	embedder := &fixedEmbedder{vectors: map[string][]float32{
		"query": {1, 0},
		"tied1": {2, 0},
		"tied2": {3, 0},
	}}
	store := index.NewMemoryStore()
	// Same direction, so both chunks score exactly 1.0.
	doc := buildDoc(t, store, embedder, "Notes", "tied1", "tied2")

	r := New(store, embedder)
	got, err := r.Retrieve(context.Background(), "query", []Descriptor{doc}, 2)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].SequenceIndex)
	assert.Equal(t, 1, got[1].SequenceIndex)
}

func TestRetrieveSkipsMissingIndexes(t *testing.T) {
	embedder := &fixedEmbedder{vectors: map[string][]float32{
		"query": {1, 0},
		"hit":   {1, 0},
	}}
	store := index.NewMemoryStore()
	present := buildDoc(t, store, embedder, "Present", "hit")
	missing := Descriptor{ID: uuid.New(), DisplayName: "Missing", Handle: index.HandleFor(uuid.New())}

	r := New(store, embedder)
	got, err := r.Retrieve(context.Background(), "query", []Descriptor{missing, present}, 5)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hit", got[0].Text)
}

func TestRetrieveNoLoadableDocuments(t *testing.T) {
	embedder := &fixedEmbedder{vectors: map[string][]float32{"query": {1, 0}}}
	r := New(index.NewMemoryStore(), embedder)

	docs := []Descriptor{{ID: uuid.New(), Handle: index.HandleFor(uuid.New())}}
	_, err := r.Retrieve(context.Background(), "query", docs, 5)

	assert.ErrorIs(t, err, rag.ErrNoMaterials)
}

func TestRetrieveQueryEmbeddingFailure(t *testing.T) {
	embedder := &fixedEmbedder{vectors: map[string][]float32{"doc": {1, 0}}}
	store := index.NewMemoryStore()
	doc := buildDoc(t, store, embedder, "Doc", "doc")

	r := New(store, embedder)
	_, err := r.Retrieve(context.Background(), "unknown query", []Descriptor{doc}, 5)

	assert.ErrorIs(t, err, rag.ErrEmbeddingFailed)
}

func TestRetrieveTruncatesToK(t *testing.T) {
	embedder := &fixedEmbedder{vectors: map[string][]float32{
		"query": {1, 0},
		"a":     {1, 0},
		"b":     {0.9, 0.1},
		"c":     {0.8, 0.2},
	}}
	store := index.NewMemoryStore()
	doc := buildDoc(t, store, embedder, "Doc", "a", "b", "c")

	r := New(store, embedder)
	got, err := r.Retrieve(context.Background(), "query", []Descriptor{doc}, 2)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}
