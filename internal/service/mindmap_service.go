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

	"github.com/google/uuid"
)

const mindMapSchema = `{
	"type": "object",
	"required": ["label"],
	"properties": {
		"label": {"type": "string", "minLength": 1},
		"children": {
			"type": "array",
			"items": {"$ref": "#"}
		}
	}
}`

const mindMapPrompt = `You are building a hierarchical mind map from course material.

Material:
%s

Produce a mind map%s with one root node and two to three levels of children. Keep labels short, at most a few words each.

Respond with ONLY a JSON object shaped like {"label": "...", "children": [{"label": "...", "children": []}]}.`

type IMindMapService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateMindMapRequest) (*dto.MindMapResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.MindMapResponse, error)
	List(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) ([]*dto.MindMapResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type mindMapService struct {
	uowFactory  unitofwork.RepositoryFactory
	ragEngine   *engine.Engine
	llmProvider llm.Provider
}

func NewMindMapService(uowFactory unitofwork.RepositoryFactory, ragEngine *engine.Engine, llmProvider llm.Provider) IMindMapService {
	return &mindMapService{
		uowFactory:  uowFactory,
		ragEngine:   ragEngine,
		llmProvider: llmProvider,
	}
}

func (s *mindMapService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateMindMapRequest) (*dto.MindMapResponse, error) {
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

	query := req.Topic
	if query == "" {
		query = "main concepts and structure"
	}
	hits, err := s.ragEngine.Search(ctx, query, docs, engine.DefaultSearchTopK)
	if err != nil {
		return nil, err
	}

	var material strings.Builder
	for _, hit := range hits {
		material.WriteString(hit.Text)
		material.WriteString("\n\n")
	}

	topicClause := ""
	if req.Topic != "" {
		topicClause = fmt.Sprintf(" about %q", req.Topic)
	}
	prompt := fmt.Sprintf(mindMapPrompt, material.String(), topicClause)

	raw, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rag.ErrGenerationFailed, err)
	}

	var root entity.MindMapNode
	if err := structured.Decode(raw, mindMapSchema, &root); err != nil {
		return nil, err
	}

	title := root.Label
	if req.Topic != "" {
		title = req.Topic
	}

	mindMap := &entity.MindMap{
		Id:        uuid.New(),
		CourseId:  req.CourseId,
		UserId:    userId,
		Title:     title,
		Root:      root,
		CreatedAt: time.Now(),
	}
	if err := uow.MindMapRepository().Create(ctx, mindMap); err != nil {
		return nil, err
	}
	return toMindMapResponse(mindMap), nil
}

func (s *mindMapService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.MindMapResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	mindMap, err := s.findOwned(ctx, uow, userId, id)
	if err != nil || mindMap == nil {
		return nil, err
	}
	return toMindMapResponse(mindMap), nil
}

func (s *mindMapService) List(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) ([]*dto.MindMapResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	maps, err := uow.MindMapRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.ByCourseID{CourseID: courseId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MindMapResponse, len(maps))
	for i, m := range maps {
		result[i] = toMindMapResponse(m)
	}
	return result, nil
}

func (s *mindMapService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	mindMap, err := s.findOwned(ctx, uow, userId, id)
	if err != nil || mindMap == nil {
		return err
	}
	return uow.MindMapRepository().Delete(ctx, id)
}

func (s *mindMapService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.MindMap, error) {
	return uow.MindMapRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByUser{UserID: userId},
	)
}

func toMindMapResponse(m *entity.MindMap) *dto.MindMapResponse {
	return &dto.MindMapResponse{
		Id:        m.Id,
		CourseId:  m.CourseId,
		Title:     m.Title,
		Root:      m.Root,
		CreatedAt: m.CreatedAt,
	}
}
