package service

import (
	"context"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/repository/specification"
	"ai-studymate-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type INotificationService interface {
	List(ctx context.Context, userId uuid.UUID, unreadOnly bool) ([]*dto.NotificationResponse, error)
	UnreadCount(ctx context.Context, userId uuid.UUID) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory) INotificationService {
	return &notificationService{uowFactory: uowFactory}
}

func (s *notificationService) List(ctx context.Context, userId uuid.UUID, unreadOnly bool) ([]*dto.NotificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50, Offset: 0},
	}
	if unreadOnly {
		specs = append(specs, specification.Unread{})
	}

	notifications, err := uow.NotificationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		result[i] = &dto.NotificationResponse{
			Id:        n.Id,
			Type:      string(n.Type),
			Title:     n.Title,
			Body:      n.Body,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}
	return result, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userId uuid.UUID) (*dto.UnreadCountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.NotificationRepository().CountUnread(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkRead(ctx, id, userId)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllRead(ctx, userId)
}
