package contract

import (
	"context"

	"ai-studymate-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	FindByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentEmbedding, error)
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error)
}
