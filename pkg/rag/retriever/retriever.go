package retriever

import (
	"context"
	"fmt"
	"math"
	"sort"

	"ai-studymate-be/pkg/embedding"
	"ai-studymate-be/pkg/rag"
	"ai-studymate-be/pkg/rag/index"

	"github.com/google/uuid"
)

// Descriptor names a searchable document and the index handle that holds
// its vectors.
type Descriptor struct {
	ID          uuid.UUID
	DisplayName string
	Handle      index.Handle
}

// RetrievedChunk is a scored chunk pulled from one of the selected
// documents during a query.
type RetrievedChunk struct {
	DocumentID    uuid.UUID
	DisplayName   string
	Text          string
	Page          *int
	SequenceIndex int
	Score         float64
}

type Retriever struct {
	store    index.Store
	embedder embedding.Provider
}

func New(store index.Store, embedder embedding.Provider) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Retrieve embeds the query once, scores every chunk of every loadable
// document against it, and returns the global top k. Documents whose index
// cannot be loaded are skipped; if none load the caller gets
// rag.ErrNoMaterials.
func (r *Retriever) Retrieve(ctx context.Context, query string, docs []Descriptor, k int) ([]RetrievedChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	queryVec, err := r.embedder.Embed(ctx, query, embedding.TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: query embedding: %v", rag.ErrEmbeddingFailed, err)
	}

	var (
		candidates []RetrievedChunk
		loaded     int
	)
	for _, doc := range docs {
		idx, err := r.store.Load(ctx, doc.Handle)
		if err != nil {
			continue
		}
		loaded++
		for i, vec := range idx.Vectors {
			chunk := idx.Chunks[i]
			candidates = append(candidates, RetrievedChunk{
				DocumentID:    doc.ID,
				DisplayName:   doc.DisplayName,
				Text:          chunk.Text,
				Page:          chunk.Page,
				SequenceIndex: chunk.SequenceIndex,
				Score:         CosineSimilarity(queryVec, vec),
			})
		}
	}
	if loaded == 0 {
		return nil, rag.ErrNoMaterials
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].SequenceIndex < candidates[j].SequenceIndex
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// CosineSimilarity computes the cosine of the angle between two vectors in
// float64 so ranking is stable across platforms. A zero vector scores 0.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
