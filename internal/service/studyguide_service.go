package service

import (
	"context"
	"fmt"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/repository/unitofwork"
	"ai-studymate-be/pkg/rag/engine"

	"github.com/google/uuid"
)

type IStudyGuideService interface {
	// GenerateStream streams a study guide assembled from the course
	// materials. Events follow the same contract as chat streaming: text
	// events then one terminal event carrying the citations.
	GenerateStream(ctx context.Context, userId uuid.UUID, req *dto.GenerateStudyGuideRequest, onEvent func(engine.StreamEvent)) error
}

type studyGuideService struct {
	uowFactory unitofwork.RepositoryFactory
	ragEngine  *engine.Engine
}

func NewStudyGuideService(uowFactory unitofwork.RepositoryFactory, ragEngine *engine.Engine) IStudyGuideService {
	return &studyGuideService{
		uowFactory: uowFactory,
		ragEngine:  ragEngine,
	}
}

func (s *studyGuideService) GenerateStream(ctx context.Context, userId uuid.UUID, req *dto.GenerateStudyGuideRequest, onEvent func(engine.StreamEvent)) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := findOwnedCourse(ctx, uow, userId, req.CourseId)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrForbidden
	}

	docs, err := readyDescriptors(ctx, uow, req.CourseId)
	if err != nil {
		return err
	}

	question := "Write a structured study guide summarizing the key concepts, definitions and facts in these materials. Use headings and bullet points."
	if req.Topic != "" {
		question = fmt.Sprintf("Write a structured study guide about %q based on these materials. Use headings and bullet points.", req.Topic)
	}

	events, err := s.ragEngine.QueryStream(ctx, question, docs, engine.DefaultSearchTopK)
	if err != nil {
		return err
	}

	for ev := range events {
		onEvent(ev)
		if ev.Err != nil {
			return ev.Err
		}
		if ev.Done {
			return nil
		}
	}
	return nil
}
