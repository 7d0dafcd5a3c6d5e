package contract

import (
	"context"

	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	Update(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateShare(ctx context.Context, share *entity.CourseShare) error
	UpdateShare(ctx context.Context, share *entity.CourseShare) error
	FindShare(ctx context.Context, specs ...specification.Specification) (*entity.CourseShare, error)
	FindShares(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseShare, error)
}
