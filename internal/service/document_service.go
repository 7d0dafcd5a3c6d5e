package service

import (
	"context"
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/internal/repository/specification"
	"ai-studymate-be/internal/repository/unitofwork"
	"ai-studymate-be/pkg/rag/index"

	"github.com/google/uuid"
)

type IDocumentService interface {
	UploadPDF(ctx context.Context, userId, courseId uuid.UUID, displayName, filePath string) (*dto.DocumentResponse, error)
	ImportURL(ctx context.Context, userId uuid.UUID, req *dto.ImportURLRequest) (*dto.DocumentResponse, error)
	ImportTranscript(ctx context.Context, userId uuid.UUID, req *dto.ImportTranscriptRequest) (*dto.DocumentResponse, error)
	List(ctx context.Context, userId, courseId uuid.UUID) ([]*dto.DocumentResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.DocumentResponse, error)
	Status(ctx context.Context, userId, id uuid.UUID) (*dto.DocumentStatusResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	indexStore       index.Store
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	indexStore index.Store,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		indexStore:       indexStore,
		logger:           log,
	}
}

func (s *documentService) UploadPDF(ctx context.Context, userId, courseId uuid.UUID, displayName, filePath string) (*dto.DocumentResponse, error) {
	if displayName == "" {
		displayName = strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	}
	return s.createAndEnqueue(ctx, userId, courseId, displayName, entity.DocumentSourcePDF, filePath, "")
}

func (s *documentService) ImportURL(ctx context.Context, userId uuid.UUID, req *dto.ImportURLRequest) (*dto.DocumentResponse, error) {
	displayName := req.DisplayName
	if displayName == "" {
		if parsed, err := url.Parse(req.URL); err == nil {
			displayName = parsed.Host + parsed.Path
		} else {
			displayName = req.URL
		}
	}
	return s.createAndEnqueue(ctx, userId, req.CourseId, displayName, entity.DocumentSourceURL, req.URL, "")
}

func (s *documentService) ImportTranscript(ctx context.Context, userId uuid.UUID, req *dto.ImportTranscriptRequest) (*dto.DocumentResponse, error) {
	return s.createAndEnqueue(ctx, userId, req.CourseId, req.DisplayName, entity.DocumentSourceTranscript, "", req.Text)
}

// createAndEnqueue records the document as pending and hands it to the
// ingest consumer. Text extraction and embedding happen off the request
// path; the client polls Status or waits for the notification.
func (s *documentService) createAndEnqueue(ctx context.Context, userId, courseId uuid.UUID, displayName string, sourceType entity.DocumentSourceType, sourceRef, rawText string) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := findOwnedCourse(ctx, uow, userId, courseId)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	doc := &entity.Document{
		Id:          uuid.New(),
		CourseId:    courseId,
		UserId:      userId,
		DisplayName: displayName,
		SourceType:  sourceType,
		SourceRef:   sourceRef,
		RawText:     rawText,
		Status:      entity.DocumentStatusPending,
		CreatedAt:   time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dto.PublishIngestDocumentMessage{DocumentId: doc.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		// The row exists but nothing will process it; mark it failed so
		// the client is not stuck on pending forever.
		s.logger.Error("document", "failed to enqueue ingest", map[string]interface{}{
			"document_id": doc.Id,
			"error":       err.Error(),
		})
		_ = uow.DocumentRepository().UpdateStatus(ctx, doc.Id, entity.DocumentStatusFailed, "ingest enqueue failed")
		return nil, err
	}

	return toDocumentResponse(doc), nil
}

func (s *documentService) List(ctx context.Context, userId, courseId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	course, err := findOwnedCourse(ctx, uow, userId, courseId)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		result[i] = toDocumentResponse(doc)
	}
	return result, nil
}

func (s *documentService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.DocumentResponse, error) {
	doc, err := s.findOwned(ctx, userId, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

func (s *documentService) Status(ctx context.Context, userId, id uuid.UUID) (*dto.DocumentStatusResponse, error) {
	doc, err := s.findOwned(ctx, userId, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return &dto.DocumentStatusResponse{
		Id:          doc.Id,
		Status:      string(doc.Status),
		StatusError: doc.StatusError,
	}, nil
}

func (s *documentService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	doc, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	if err := s.indexStore.Delete(ctx, index.HandleFor(doc.Id)); err != nil {
		return err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentRepository().Delete(ctx, doc.Id)
}

func (s *documentService) findOwned(ctx context.Context, userId, id uuid.UUID) (*entity.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByUser{UserID: userId},
	)
}

func toDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:          doc.Id,
		CourseId:    doc.CourseId,
		DisplayName: doc.DisplayName,
		SourceType:  string(doc.SourceType),
		SourceRef:   doc.SourceRef,
		PageCount:   doc.PageCount,
		Status:      string(doc.Status),
		StatusError: doc.StatusError,
		CreatedAt:   doc.CreatedAt,
	}
}
