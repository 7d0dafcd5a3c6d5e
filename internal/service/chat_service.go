package service

import (
	"context"
	"strings"
	"time"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/internal/repository/specification"
	"ai-studymate-be/internal/repository/unitofwork"
	"ai-studymate-be/pkg/rag/citation"
	"ai-studymate-be/pkg/rag/engine"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateChatSessionRequest) (*dto.CreateChatSessionResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) ([]*dto.ChatSessionResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	History(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error)

	Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error)
	// AskStream delivers the answer incrementally through onEvent. The
	// callback sees zero or more text events followed by exactly one
	// terminal event; persistence happens after the terminal event so a
	// broken stream never stores a partial assistant message.
	AskStream(ctx context.Context, userId uuid.UUID, req *dto.AskRequest, onEvent func(engine.StreamEvent)) error
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	ragEngine  *engine.Engine
	logger     logger.ILogger
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, ragEngine *engine.Engine, log logger.ILogger) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		ragEngine:  ragEngine,
		logger:     log,
	}
}

func (s *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateChatSessionRequest) (*dto.CreateChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := findOwnedCourse(ctx, uow, userId, req.CourseId)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	title := req.Title
	if title == "" {
		title = "New chat"
	}

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		CourseId:  req.CourseId,
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return &dto.CreateChatSessionResponse{Id: session.Id}, nil
}

func (s *chatService) ListSessions(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) ([]*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.ByCourseID{CourseID: courseId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatSessionResponse, len(sessions))
	for i, session := range sessions {
		result[i] = &dto.ChatSessionResponse{
			Id:        session.Id,
			CourseId:  session.CourseId,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
		}
	}
	return result, nil
}

func (s *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findSession(ctx, uow, userId, sessionId)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *chatService) History(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatMessageResponse, len(messages))
	for i, msg := range messages {
		resp := &dto.ChatMessageResponse{
			Id:        msg.Id,
			Role:      string(msg.Role),
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		}
		if msg.Role == entity.ChatRoleAssistant {
			citations, err := uow.ChatCitationRepository().FindByMessageId(ctx, msg.Id)
			if err != nil {
				return nil, err
			}
			resp.Citations = toCitationResponsesFromEntities(citations)
		}
		result[i] = resp
	}
	return result, nil
}

func (s *chatService) Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findSession(ctx, uow, userId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	docs, err := readyDescriptors(ctx, uow, session.CourseId)
	if err != nil {
		return nil, err
	}

	result, err := s.ragEngine.Query(ctx, req.Question, docs, engine.DefaultChatTopK)
	if err != nil {
		return nil, err
	}

	assistantMsg, err := s.persistExchange(ctx, uow, session, req.Question, result.Answer, result.Citations)
	if err != nil {
		return nil, err
	}

	return &dto.AskResponse{
		MessageId: assistantMsg.Id,
		Answer:    result.Answer,
		Citations: toCitationResponses(result.Citations),
	}, nil
}

func (s *chatService) AskStream(ctx context.Context, userId uuid.UUID, req *dto.AskRequest, onEvent func(engine.StreamEvent)) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findSession(ctx, uow, userId, req.SessionId)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrForbidden
	}

	docs, err := readyDescriptors(ctx, uow, session.CourseId)
	if err != nil {
		return err
	}

	events, err := s.ragEngine.QueryStream(ctx, req.Question, docs, engine.DefaultChatTopK)
	if err != nil {
		return err
	}

	var answer strings.Builder
	for ev := range events {
		switch {
		case ev.Err != nil:
			onEvent(ev)
			return ev.Err
		case ev.Done:
			if _, err := s.persistExchange(ctx, uow, session, req.Question, answer.String(), ev.Citations); err != nil {
				s.logger.Error("chat", "failed to persist streamed exchange", map[string]interface{}{
					"session_id": session.Id,
					"error":      err.Error(),
				})
			}
			onEvent(ev)
			return nil
		default:
			answer.WriteString(ev.Text)
			onEvent(ev)
		}
	}
	return nil
}

func (s *chatService) persistExchange(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, question, answer string, citations []citation.Citation) (*entity.ChatMessage, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	userMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      entity.ChatRoleUser,
		Content:   question,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		return nil, err
	}

	assistantMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      entity.ChatRoleAssistant,
		Content:   answer,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	if len(citations) > 0 {
		rows := make([]*entity.ChatCitation, len(citations))
		for i, c := range citations {
			rows[i] = &entity.ChatCitation{
				Id:            uuid.New(),
				ChatMessageId: assistantMsg.Id,
				DocumentId:    c.DocumentID,
				Number:        c.Number,
				DisplayName:   c.DisplayName,
				Pages:         c.Pages,
				Snippet:       c.Snippet,
				CreatedAt:     time.Now(),
			}
		}
		if err := uow.ChatCitationRepository().CreateBulk(ctx, rows); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return assistantMsg, nil
}

func (s *chatService) findSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	return uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedByUser{UserID: userId},
	)
}

func toCitationResponses(citations []citation.Citation) []dto.CitationResponse {
	result := make([]dto.CitationResponse, len(citations))
	for i, c := range citations {
		result[i] = dto.CitationResponse{
			Number:      c.Number,
			DocumentId:  c.DocumentID,
			DisplayName: c.DisplayName,
			Pages:       c.Pages,
			Snippet:     c.Snippet,
		}
	}
	return result
}

func toCitationResponsesFromEntities(citations []*entity.ChatCitation) []dto.CitationResponse {
	result := make([]dto.CitationResponse, len(citations))
	for i, c := range citations {
		result[i] = dto.CitationResponse{
			Number:      c.Number,
			DocumentId:  c.DocumentId,
			DisplayName: c.DisplayName,
			Pages:       c.Pages,
			Snippet:     c.Snippet,
		}
	}
	return result
}
