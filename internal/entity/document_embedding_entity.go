package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentEmbedding is one chunk of a document with its vector. Rows for a
// document are only visible together: builds replace the full set in one
// transaction.
type DocumentEmbedding struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	ChunkText      string
	ChunkIndex     int
	Page           *int
	EmbeddingValue []float32
	CreatedAt      time.Time
}
