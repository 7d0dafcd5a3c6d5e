package service

import (
	"context"
	"errors"
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

const defaultQuizCount = 5

const quizSchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["question", "options", "answer"],
		"properties": {
			"question": {"type": "string", "minLength": 1},
			"options": {
				"type": "array",
				"minItems": 2,
				"maxItems": 6,
				"items": {"type": "string"}
			},
			"answer": {"type": "integer", "minimum": 0},
			"why": {"type": "string"}
		}
	}
}`

const quizPrompt = `You are writing a multiple choice quiz from course material.

Material:
%s

Write %d questions%s. Each question has 4 options, exactly one correct. "answer" is the zero-based index of the correct option. "why" briefly explains the correct answer.

Respond with ONLY a JSON array of objects with "question", "options", "answer" and "why" fields.`

type IQuizService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.QuizResponse, error)
	List(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) ([]*dto.QuizResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitQuizRequest) (*dto.QuizAttemptResponse, error)
	Attempts(ctx context.Context, userId uuid.UUID, quizId uuid.UUID) ([]*dto.QuizAttemptResponse, error)
}

type quizService struct {
	uowFactory  unitofwork.RepositoryFactory
	ragEngine   *engine.Engine
	llmProvider llm.Provider
}

func NewQuizService(uowFactory unitofwork.RepositoryFactory, ragEngine *engine.Engine, llmProvider llm.Provider) IQuizService {
	return &quizService{
		uowFactory:  uowFactory,
		ragEngine:   ragEngine,
		llmProvider: llmProvider,
	}
}

func (s *quizService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
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
		count = defaultQuizCount
	}

	docs, err := readyDescriptors(ctx, uow, req.CourseId)
	if err != nil {
		return nil, err
	}

	query := req.Topic
	if query == "" {
		query = "main concepts and key facts"
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
	prompt := fmt.Sprintf(quizPrompt, material.String(), count, topicClause)

	raw, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rag.ErrGenerationFailed, err)
	}

	var questions []entity.QuizQuestion
	if err := structured.Decode(raw, quizSchema, &questions); err != nil {
		return nil, err
	}
	for _, q := range questions {
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, fmt.Errorf("%w: answer index out of range", rag.ErrMalformedOutput)
		}
	}

	title := course.Name + " quiz"
	if req.Topic != "" {
		title = req.Topic
	}

	quiz := &entity.Quiz{
		Id:        uuid.New(),
		CourseId:  req.CourseId,
		UserId:    userId,
		Title:     title,
		Questions: questions,
		CreatedAt: time.Now(),
	}
	if err := uow.QuizRepository().Create(ctx, quiz); err != nil {
		return nil, err
	}

	return toQuizResponse(quiz, false), nil
}

func (s *quizService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.QuizResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	quiz, err := s.findOwned(ctx, uow, userId, id)
	if err != nil || quiz == nil {
		return nil, err
	}
	return toQuizResponse(quiz, false), nil
}

func (s *quizService) List(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) ([]*dto.QuizResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	quizzes, err := uow.QuizRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.ByCourseID{CourseID: courseId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.QuizResponse, len(quizzes))
	for i, quiz := range quizzes {
		result[i] = toQuizResponse(quiz, false)
	}
	return result, nil
}

func (s *quizService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	quiz, err := s.findOwned(ctx, uow, userId, id)
	if err != nil || quiz == nil {
		return err
	}
	return uow.QuizRepository().Delete(ctx, id)
}

func (s *quizService) Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitQuizRequest) (*dto.QuizAttemptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	quiz, err := s.findOwned(ctx, uow, userId, req.QuizId)
	if err != nil || quiz == nil {
		return nil, err
	}

	if len(req.Answers) != len(quiz.Questions) {
		return nil, errors.New("answer count does not match question count")
	}

	score := 0
	for i, answer := range req.Answers {
		if answer == quiz.Questions[i].Answer {
			score++
		}
	}

	attempt := &entity.QuizAttempt{
		Id:          uuid.New(),
		QuizId:      quiz.Id,
		UserId:      userId,
		Answers:     req.Answers,
		Score:       score,
		Total:       len(quiz.Questions),
		CompletedAt: time.Now(),
	}
	if err := uow.QuizRepository().CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	resp := toAttemptResponse(attempt)
	// Reveal answers and explanations once the attempt is recorded.
	resp.Questions = toQuestionResponses(quiz.Questions, true)
	return resp, nil
}

func (s *quizService) Attempts(ctx context.Context, userId uuid.UUID, quizId uuid.UUID) ([]*dto.QuizAttemptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	quiz, err := s.findOwned(ctx, uow, userId, quizId)
	if err != nil || quiz == nil {
		return nil, err
	}

	attempts, err := uow.QuizRepository().FindAttempts(ctx,
		specification.FilterBy{Field: "quiz_id", Value: quizId},
		specification.OrderBy{Field: "completed_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.QuizAttemptResponse, len(attempts))
	for i, attempt := range attempts {
		result[i] = toAttemptResponse(attempt)
	}
	return result, nil
}

func (s *quizService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Quiz, error) {
	return uow.QuizRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByUser{UserID: userId},
	)
}

func toQuizResponse(quiz *entity.Quiz, revealAnswers bool) *dto.QuizResponse {
	return &dto.QuizResponse{
		Id:        quiz.Id,
		CourseId:  quiz.CourseId,
		Title:     quiz.Title,
		Questions: toQuestionResponses(quiz.Questions, revealAnswers),
		CreatedAt: quiz.CreatedAt,
	}
}

func toQuestionResponses(questions []entity.QuizQuestion, revealAnswers bool) []dto.QuizQuestionResponse {
	result := make([]dto.QuizQuestionResponse, len(questions))
	for i, q := range questions {
		resp := dto.QuizQuestionResponse{
			Question: q.Question,
			Options:  q.Options,
		}
		if revealAnswers {
			answer := q.Answer
			resp.Answer = &answer
			resp.Why = q.Why
		}
		result[i] = resp
	}
	return result
}

func toAttemptResponse(attempt *entity.QuizAttempt) *dto.QuizAttemptResponse {
	return &dto.QuizAttemptResponse{
		Id:          attempt.Id,
		QuizId:      attempt.QuizId,
		Answers:     attempt.Answers,
		Score:       attempt.Score,
		Total:       attempt.Total,
		CompletedAt: attempt.CompletedAt,
	}
}
