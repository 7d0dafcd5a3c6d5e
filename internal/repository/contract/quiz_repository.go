package contract

import (
	"context"

	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuizRepository interface {
	Create(ctx context.Context, quiz *entity.Quiz) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Quiz, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Quiz, error)

	CreateAttempt(ctx context.Context, attempt *entity.QuizAttempt) error
	FindAttempts(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizAttempt, error)
}
