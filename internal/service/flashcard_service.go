package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/repository/specification"
	"ai-studymate-be/internal/repository/unitofwork"
	"ai-studymate-be/pkg/llm"
	"ai-studymate-be/pkg/rag"
	"ai-studymate-be/pkg/rag/engine"
	"ai-studymate-be/pkg/rag/structured"
	"ai-studymate-be/pkg/srs"

	"github.com/google/uuid"
)

const defaultFlashcardCount = 10

const flashcardSchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["front", "back"],
		"properties": {
			"front": {"type": "string", "minLength": 1},
			"back": {"type": "string", "minLength": 1}
		}
	}
}`

const flashcardPrompt = `You are generating study flashcards from course material.

Material:
%s

Create %d flashcards%s. Each card has a short question or term on the front and a concise answer on the back. Cover distinct concepts, no duplicates.

Respond with ONLY a JSON array of objects with "front" and "back" string fields.`

type IFlashcardService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateFlashcardsRequest) ([]*dto.FlashcardResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFlashcardRequest) (*dto.FlashcardResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateFlashcardRequest) (*dto.FlashcardResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) ([]*dto.FlashcardResponse, error)
	Due(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) ([]*dto.FlashcardResponse, error)
	Review(ctx context.Context, userId uuid.UUID, req *dto.ReviewFlashcardRequest) (*dto.ReviewFlashcardResponse, error)
}

type flashcardService struct {
	uowFactory  unitofwork.RepositoryFactory
	ragEngine   *engine.Engine
	llmProvider llm.Provider
}

func NewFlashcardService(uowFactory unitofwork.RepositoryFactory, ragEngine *engine.Engine, llmProvider llm.Provider) IFlashcardService {
	return &flashcardService{
		uowFactory:  uowFactory,
		ragEngine:   ragEngine,
		llmProvider: llmProvider,
	}
}

type generatedCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

func (s *flashcardService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateFlashcardsRequest) ([]*dto.FlashcardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := findOwnedCourse(ctx, uow, userId, req.CourseId)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	count := req.Count
	if count <= 0 {
		count = defaultFlashcardCount
	}

	material, err := s.gatherMaterial(ctx, uow, req.CourseId, req.Topic)
	if err != nil {
		return nil, err
	}

	topicClause := ""
	if req.Topic != "" {
		topicClause = fmt.Sprintf(" about %q", req.Topic)
	}
	prompt := fmt.Sprintf(flashcardPrompt, material, count, topicClause)

	raw, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rag.ErrGenerationFailed, err)
	}

	var cards []generatedCard
	if err := structured.Decode(raw, flashcardSchema, &cards); err != nil {
		return nil, err
	}

	now := time.Now()
	schedule := srs.NewSchedule()
	entities := make([]*entity.Flashcard, len(cards))
	for i, card := range cards {
		entities[i] = &entity.Flashcard{
			Id:          uuid.New(),
			CourseId:    req.CourseId,
			UserId:      userId,
			Front:       card.Front,
			Back:        card.Back,
			EaseFactor:  schedule.EaseFactor,
			Interval:    schedule.Interval,
			Repetitions: schedule.Repetitions,
			NextReview:  now,
			CreatedAt:   now,
		}
	}
	if err := uow.FlashcardRepository().CreateBulk(ctx, entities); err != nil {
		return nil, err
	}

	result := make([]*dto.FlashcardResponse, len(entities))
	for i, card := range entities {
		result[i] = toFlashcardResponse(card)
	}
	return result, nil
}

// gatherMaterial assembles the generation context. With a topic it runs
// semantic retrieval; without one it samples the top chunks of a generic
// overview query so cards spread across the course.
func (s *flashcardService) gatherMaterial(ctx context.Context, uow unitofwork.UnitOfWork, courseId uuid.UUID, topic string) (string, error) {
	docs, err := readyDescriptors(ctx, uow, courseId)
	if err != nil {
		return "", err
	}

	query := topic
	if query == "" {
		query = "main concepts and key facts"
	}

	hits, err := s.ragEngine.Search(ctx, query, docs, engine.DefaultSearchTopK)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, hit := range hits {
		b.WriteString(hit.Text)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

func (s *flashcardService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFlashcardRequest) (*dto.FlashcardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := findOwnedCourse(ctx, uow, userId, req.CourseId)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	now := time.Now()
	schedule := srs.NewSchedule()
	card := &entity.Flashcard{
		Id:          uuid.New(),
		CourseId:    req.CourseId,
		UserId:      userId,
		Front:       req.Front,
		Back:        req.Back,
		EaseFactor:  schedule.EaseFactor,
		Interval:    schedule.Interval,
		Repetitions: schedule.Repetitions,
		NextReview:  now,
		CreatedAt:   now,
	}
	if err := uow.FlashcardRepository().Create(ctx, card); err != nil {
		return nil, err
	}
	return toFlashcardResponse(card), nil
}

func (s *flashcardService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateFlashcardRequest) (*dto.FlashcardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	card, err := s.findOwned(ctx, uow, userId, req.Id)
	if err != nil || card == nil {
		return nil, err
	}

	now := time.Now()
	card.Front = req.Front
	card.Back = req.Back
	card.UpdatedAt = &now
	if err := uow.FlashcardRepository().Update(ctx, card); err != nil {
		return nil, err
	}
	return toFlashcardResponse(card), nil
}

func (s *flashcardService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	card, err := s.findOwned(ctx, uow, userId, id)
	if err != nil || card == nil {
		return err
	}
	return uow.FlashcardRepository().Delete(ctx, id)
}

func (s *flashcardService) List(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) ([]*dto.FlashcardResponse, error) {
	return s.list(ctx, userId, courseId, false)
}

func (s *flashcardService) Due(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) ([]*dto.FlashcardResponse, error) {
	return s.list(ctx, userId, courseId, true)
}

func (s *flashcardService) list(ctx context.Context, userId, courseId uuid.UUID, dueOnly bool) ([]*dto.FlashcardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedByUser{UserID: userId},
		specification.ByCourseID{CourseID: courseId},
		specification.OrderBy{Field: "next_review", Desc: false},
	}
	if dueOnly {
		specs = append(specs, specification.ReviewDue{Now: time.Now()})
	}

	cards, err := uow.FlashcardRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FlashcardResponse, len(cards))
	for i, card := range cards {
		result[i] = toFlashcardResponse(card)
	}
	return result, nil
}

func (s *flashcardService) Review(ctx context.Context, userId uuid.UUID, req *dto.ReviewFlashcardRequest) (*dto.ReviewFlashcardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	card, err := s.findOwned(ctx, uow, userId, req.Id)
	if err != nil || card == nil {
		return nil, err
	}

	now := time.Now()
	next := srs.Review(srs.Schedule{
		EaseFactor:  card.EaseFactor,
		Interval:    card.Interval,
		Repetitions: card.Repetitions,
	}, req.Quality, now)

	quality := req.Quality
	card.EaseFactor = next.EaseFactor
	card.Interval = next.Interval
	card.Repetitions = next.Repetitions
	card.NextReview = next.NextReview
	card.LastReviewed = &next.LastReviewed
	card.LastQuality = &quality
	card.UpdatedAt = &now

	if err := uow.FlashcardRepository().Update(ctx, card); err != nil {
		return nil, err
	}

	return &dto.ReviewFlashcardResponse{
		Id:          card.Id,
		EaseFactor:  card.EaseFactor,
		Interval:    card.Interval,
		Repetitions: card.Repetitions,
		NextReview:  card.NextReview,
	}, nil
}

func (s *flashcardService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Flashcard, error) {
	return uow.FlashcardRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByUser{UserID: userId},
	)
}

func toFlashcardResponse(card *entity.Flashcard) *dto.FlashcardResponse {
	return &dto.FlashcardResponse{
		Id:           card.Id,
		CourseId:     card.CourseId,
		Front:        card.Front,
		Back:         card.Back,
		EaseFactor:   card.EaseFactor,
		Interval:     card.Interval,
		Repetitions:  card.Repetitions,
		NextReview:   card.NextReview,
		LastReviewed: card.LastReviewed,
		LastQuality:  card.LastQuality,
		CreatedAt:    card.CreatedAt,
	}
}
