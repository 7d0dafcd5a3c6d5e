package service

import (
	"context"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/repository/unitofwork"
	"ai-studymate-be/pkg/rag/engine"

	"github.com/google/uuid"
)

type ISearchService interface {
	Search(ctx context.Context, userId uuid.UUID, req *dto.SearchRequest) ([]*dto.SearchHitResponse, error)
}

type searchService struct {
	uowFactory unitofwork.RepositoryFactory
	ragEngine  *engine.Engine
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory, ragEngine *engine.Engine) ISearchService {
	return &searchService{
		uowFactory: uowFactory,
		ragEngine:  ragEngine,
	}
}

func (s *searchService) Search(ctx context.Context, userId uuid.UUID, req *dto.SearchRequest) ([]*dto.SearchHitResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := findOwnedCourse(ctx, uow, userId, req.CourseId)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	docs, err := readyDescriptors(ctx, uow, req.CourseId)
	if err != nil {
		return nil, err
	}

	hits, err := s.ragEngine.Search(ctx, req.Query, docs, req.TopK)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SearchHitResponse, len(hits))
	for i, hit := range hits {
		result[i] = &dto.SearchHitResponse{
			DocumentId:  hit.DocumentID,
			DisplayName: hit.DisplayName,
			Text:        hit.Text,
			Page:        hit.Page,
			Score:       hit.Score,
		}
	}
	return result, nil
}
