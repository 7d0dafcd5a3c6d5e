package index

import (
	"context"
	"fmt"
	"sync"

	"ai-studymate-be/pkg/chunker"
	"ai-studymate-be/pkg/embedding"
	"ai-studymate-be/pkg/rag"

	"github.com/google/uuid"
)

// MemoryStore keeps indices in process memory. Used by tests and available
// as a degraded single-instance mode when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	indices map[Handle]*Index
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		indices: make(map[Handle]*Index),
	}
}

func (s *MemoryStore) Build(ctx context.Context, documentID uuid.UUID, chunks []chunker.Chunk, embedder embedding.Provider) (Handle, error) {
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w: document %s has no chunks", rag.ErrEmbeddingFailed, documentID)
	}

	// Embed everything before touching the map so a mid-build failure
	// publishes nothing.
	vectors := make([][]float32, len(chunks))
	for i, c := range chunks {
		vec, err := embedder.Embed(ctx, c.Text, embedding.TaskDocument)
		if err != nil {
			return "", fmt.Errorf("%w: chunk %d: %v", rag.ErrEmbeddingFailed, c.SequenceIndex, err)
		}
		vectors[i] = vec
	}

	handle := HandleFor(documentID)
	copied := make([]chunker.Chunk, len(chunks))
	copy(copied, chunks)

	s.mu.Lock()
	s.indices[handle] = &Index{Handle: handle, Vectors: vectors, Chunks: copied}
	s.mu.Unlock()

	return handle, nil
}

func (s *MemoryStore) Load(ctx context.Context, handle Handle) (*Index, error) {
	s.mu.RLock()
	idx, ok := s.indices[handle]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", rag.ErrIndexNotFound, handle)
	}
	return idx, nil
}

func (s *MemoryStore) Delete(ctx context.Context, handle Handle) error {
	s.mu.Lock()
	delete(s.indices, handle)
	s.mu.Unlock()
	return nil
}
