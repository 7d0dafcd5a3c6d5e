package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/repository/specification"
	"ai-studymate-be/internal/repository/unitofwork"
	"ai-studymate-be/pkg/rag/index"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ICourseService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCourseRequest) (*dto.CreateCourseResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CourseResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.CourseResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error

	CreateShare(ctx context.Context, userId uuid.UUID, req *dto.CreateShareRequest) (*dto.ShareResponse, error)
	ListShares(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) ([]*dto.ShareResponse, error)
	RevokeShare(ctx context.Context, userId uuid.UUID, shareId uuid.UUID) error
	ResolveShare(ctx context.Context, token string) (*dto.CourseResponse, error)
}

type courseService struct {
	uowFactory unitofwork.RepositoryFactory
	indexStore index.Store
	// shareCache memoizes token lookups; revocation purges the entry so a
	// revoked link dies immediately despite the TTL.
	shareCache *cache.Cache
}

func NewCourseService(uowFactory unitofwork.RepositoryFactory, indexStore index.Store) ICourseService {
	return &courseService{
		uowFactory: uowFactory,
		indexStore: indexStore,
		shareCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *courseService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCourseRequest) (*dto.CreateCourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	course := &entity.Course{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		UserId:      userId,
		CreatedAt:   time.Now(),
	}
	if err := uow.CourseRepository().Create(ctx, course); err != nil {
		return nil, err
	}
	return &dto.CreateCourseResponse{Id: course.Id}, nil
}

func (s *courseService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	course, err := findOwnedCourse(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}
	return s.toCourseResponse(ctx, uow, course, false)
}

func (s *courseService) List(ctx context.Context, userId uuid.UUID) ([]*dto.CourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	courses, err := uow.CourseRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		resp, err := s.toCourseResponse(ctx, uow, course, false)
		if err != nil {
			return nil, err
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *courseService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	course, err := findOwnedCourse(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	now := time.Now()
	course.Name = req.Name
	course.Description = req.Description
	course.UpdatedAt = &now
	if err := uow.CourseRepository().Update(ctx, course); err != nil {
		return nil, err
	}
	return s.toCourseResponse(ctx, uow, course, false)
}

// Delete removes the course together with its documents and their persisted
// indices, so no orphaned embedding rows survive the course.
func (s *courseService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	course, err := findOwnedCourse(ctx, uow, userId, id)
	if err != nil {
		return err
	}
	if course == nil {
		return nil
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, specification.ByCourseID{CourseID: id})
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.indexStore.Delete(ctx, index.HandleFor(doc.Id)); err != nil {
			return err
		}
		if err := uow.DocumentRepository().Delete(ctx, doc.Id); err != nil {
			return err
		}
	}

	return uow.CourseRepository().Delete(ctx, id)
}

func generateShareToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (s *courseService) CreateShare(ctx context.Context, userId uuid.UUID, req *dto.CreateShareRequest) (*dto.ShareResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	course, err := findOwnedCourse(ctx, uow, userId, req.CourseId)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	token, err := generateShareToken()
	if err != nil {
		return nil, err
	}

	share := &entity.CourseShare{
		Id:        uuid.New(),
		CourseId:  course.Id,
		Token:     token,
		CreatedBy: userId,
		CreatedAt: time.Now(),
	}
	if req.ExpiresIn != nil {
		expires := time.Now().Add(time.Duration(*req.ExpiresIn) * time.Hour)
		share.ExpiresAt = &expires
	}

	if err := uow.CourseRepository().CreateShare(ctx, share); err != nil {
		return nil, err
	}
	return toShareResponse(share), nil
}

func (s *courseService) ListShares(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) ([]*dto.ShareResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	course, err := findOwnedCourse(ctx, uow, userId, courseId)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	shares, err := uow.CourseRepository().FindShares(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShareResponse, len(shares))
	for i, share := range shares {
		result[i] = toShareResponse(share)
	}
	return result, nil
}

func (s *courseService) RevokeShare(ctx context.Context, userId uuid.UUID, shareId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	share, err := uow.CourseRepository().FindShare(ctx, specification.ByID{ID: shareId})
	if err != nil {
		return err
	}
	if share == nil {
		return nil
	}

	course, err := findOwnedCourse(ctx, uow, userId, share.CourseId)
	if err != nil {
		return err
	}
	if course == nil {
		return fmt.Errorf("share %s: %w", shareId, ErrForbidden)
	}

	share.Revoked = true
	if err := uow.CourseRepository().UpdateShare(ctx, share); err != nil {
		return err
	}
	s.shareCache.Delete(share.Token)
	return nil
}

func (s *courseService) ResolveShare(ctx context.Context, token string) (*dto.CourseResponse, error) {
	if cached, found := s.shareCache.Get(token); found {
		resp := cached.(dto.CourseResponse)
		return &resp, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	share, err := uow.CourseRepository().FindShare(ctx, specification.ByToken{Token: token})
	if err != nil {
		return nil, err
	}
	if share == nil || share.Revoked {
		return nil, errors.New("invalid share link")
	}
	if share.ExpiresAt != nil && time.Now().After(*share.ExpiresAt) {
		return nil, errors.New("share link expired")
	}

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: share.CourseId})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, errors.New("invalid share link")
	}

	resp, err := s.toCourseResponse(ctx, uow, course, true)
	if err != nil {
		return nil, err
	}
	s.shareCache.Set(token, *resp, cache.DefaultExpiration)
	return resp, nil
}

func (s *courseService) toCourseResponse(ctx context.Context, uow unitofwork.UnitOfWork, course *entity.Course, shared bool) (*dto.CourseResponse, error) {
	docCount, err := uow.DocumentRepository().Count(ctx, specification.ByCourseID{CourseID: course.Id})
	if err != nil {
		return nil, err
	}
	return &dto.CourseResponse{
		Id:            course.Id,
		Name:          course.Name,
		Description:   course.Description,
		DocumentCount: int(docCount),
		Shared:        shared,
		CreatedAt:     course.CreatedAt,
		UpdatedAt:     course.UpdatedAt,
	}, nil
}

func toShareResponse(share *entity.CourseShare) *dto.ShareResponse {
	return &dto.ShareResponse{
		Id:        share.Id,
		Token:     share.Token,
		ExpiresAt: share.ExpiresAt,
		Revoked:   share.Revoked,
		CreatedAt: share.CreatedAt,
	}
}
