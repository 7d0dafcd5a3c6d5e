// Package index defines the per-document embedding index: one vector per
// chunk plus the parallel chunk metadata, persisted under a handle derived
// from the document id.
package index

import (
	"context"
	"fmt"
	"strings"

	"ai-studymate-be/pkg/chunker"
	"ai-studymate-be/pkg/embedding"

	"github.com/google/uuid"
)

// Handle addresses one document's persisted index. It is the only key the
// retrieval path knows; callers obtain it from Build and keep it on the
// document record.
type Handle string

const handlePrefix = "doc_"

// HandleFor derives the index handle for a document id.
func HandleFor(documentID uuid.UUID) Handle {
	return Handle(handlePrefix + documentID.String())
}

// DocumentID recovers the document id a handle was derived from.
func (h Handle) DocumentID() (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(string(h), handlePrefix)
	if !ok {
		return uuid.Nil, fmt.Errorf("malformed index handle %q", h)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed index handle %q: %w", h, err)
	}
	return id, nil
}

// Index is the loaded form: parallel vector and chunk arrays of equal length.
type Index struct {
	Handle  Handle
	Vectors [][]float32
	Chunks  []chunker.Chunk
}

// Store persists and resolves per-document indices.
//
// Build either publishes the complete index or nothing; a failed build must
// leave no artifact that Load could pick up. Delete of an absent handle is a
// no-op so cleanup stays idempotent. The caller serializes Build/Delete
// against Load for the same document id.
type Store interface {
	Build(ctx context.Context, documentID uuid.UUID, chunks []chunker.Chunk, embedder embedding.Provider) (Handle, error)
	Load(ctx context.Context, handle Handle) (*Index, error)
	Delete(ctx context.Context, handle Handle) error
}
