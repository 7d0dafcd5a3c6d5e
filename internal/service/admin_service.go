package service

import (
	"context"
	"time"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/internal/repository/specification"
	"ai-studymate-be/internal/repository/unitofwork"
)

type IAdminService interface {
	GetLogs(ctx context.Context, level string, limit, offset int) ([]*dto.LogDetailResponse, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*dto.AdminUserListResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *adminService) GetLogs(ctx context.Context, level string, limit, offset int) ([]*dto.LogDetailResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	entries, err := s.logger.GetLogs(level, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.LogDetailResponse, len(entries))
	for i, entry := range entries {
		createdAt, _ := time.Parse(time.RFC3339, entry.Timestamp)
		result[i] = &dto.LogDetailResponse{
			LogListResponse: dto.LogListResponse{
				Id:        entry.Id,
				Level:     entry.Level,
				Module:    entry.Module,
				Message:   entry.Message,
				CreatedAt: createdAt,
			},
			Details: entry.Details,
		}
	}
	return result, nil
}

func (s *adminService) ListUsers(ctx context.Context, limit, offset int) ([]*dto.AdminUserListResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AdminUserListResponse, len(users))
	for i, user := range users {
		courseCount, err := uow.CourseRepository().Count(ctx,
			specification.OwnedByUser{UserID: user.Id})
		if err != nil {
			return nil, err
		}
		result[i] = &dto.AdminUserListResponse{
			Id:          user.Id,
			Email:       user.Email,
			FullName:    user.FullName,
			Role:        string(user.Role),
			CourseCount: int(courseCount),
			CreatedAt:   user.CreatedAt,
		}
	}
	return result, nil
}
