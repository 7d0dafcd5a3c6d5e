// Package repository hosts the database-backed adapters between the domain
// packages and the persistence layer.
package repository

import (
	"context"
	"fmt"
	"time"

	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/repository/unitofwork"
	"ai-studymate-be/pkg/chunker"
	"ai-studymate-be/pkg/embedding"
	"ai-studymate-be/pkg/rag"
	"ai-studymate-be/pkg/rag/index"

	"github.com/google/uuid"
)

// GormIndexStore implements index.Store on the document_embeddings table.
// A build replaces the document's rows inside one transaction, so readers
// either see the previous index or the new one, never a partial mix.
type GormIndexStore struct {
	uowFactory unitofwork.RepositoryFactory
}

var _ index.Store = &GormIndexStore{}

func NewGormIndexStore(uowFactory unitofwork.RepositoryFactory) *GormIndexStore {
	return &GormIndexStore{uowFactory: uowFactory}
}

func (s *GormIndexStore) Build(ctx context.Context, documentID uuid.UUID, chunks []chunker.Chunk, embedder embedding.Provider) (index.Handle, error) {
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w: document %s has no chunks", rag.ErrEmbeddingFailed, documentID)
	}

	// Embed before opening the transaction; a failed chunk aborts the whole
	// build and the previous index stays live.
	rows := make([]*entity.DocumentEmbedding, len(chunks))
	for i, c := range chunks {
		vec, err := embedder.Embed(ctx, c.Text, embedding.TaskDocument)
		if err != nil {
			return "", fmt.Errorf("%w: chunk %d: %v", rag.ErrEmbeddingFailed, c.SequenceIndex, err)
		}
		rows[i] = &entity.DocumentEmbedding{
			Id:             uuid.New(),
			DocumentId:     documentID,
			ChunkText:      c.Text,
			ChunkIndex:     c.SequenceIndex,
			Page:           c.Page,
			EmbeddingValue: vec,
			CreatedAt:      time.Now(),
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, documentID); err != nil {
		return "", err
	}
	if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, rows); err != nil {
		return "", err
	}
	if err := uow.Commit(); err != nil {
		return "", err
	}

	return index.HandleFor(documentID), nil
}

func (s *GormIndexStore) Load(ctx context.Context, handle index.Handle) (*index.Index, error) {
	documentID, err := handle.DocumentID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rag.ErrIndexNotFound, err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.DocumentEmbeddingRepository().FindByDocumentId(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", rag.ErrIndexNotFound, handle)
	}

	idx := &index.Index{
		Handle:  handle,
		Vectors: make([][]float32, len(rows)),
		Chunks:  make([]chunker.Chunk, len(rows)),
	}
	for i, row := range rows {
		idx.Vectors[i] = row.EmbeddingValue
		idx.Chunks[i] = chunker.Chunk{
			Text:          row.ChunkText,
			SequenceIndex: row.ChunkIndex,
			Page:          row.Page,
		}
	}
	return idx, nil
}

func (s *GormIndexStore) Delete(ctx context.Context, handle index.Handle) error {
	documentID, err := handle.DocumentID()
	if err != nil {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, documentID)
}
