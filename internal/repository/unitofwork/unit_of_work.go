package unitofwork

import (
	"context"

	"ai-studymate-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CourseRepository() contract.CourseRepository
	DocumentRepository() contract.DocumentRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
	NoteRepository() contract.NoteRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ChatCitationRepository() contract.ChatCitationRepository
	FlashcardRepository() contract.FlashcardRepository
	QuizRepository() contract.QuizRepository
	MindMapRepository() contract.MindMapRepository
	NotificationRepository() contract.NotificationRepository
}
