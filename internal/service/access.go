package service

import (
	"context"
	"errors"

	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/repository/specification"
	"ai-studymate-be/internal/repository/unitofwork"
	"ai-studymate-be/pkg/rag/index"
	"ai-studymate-be/pkg/rag/retriever"

	"github.com/google/uuid"
)

var ErrForbidden = errors.New("forbidden")

// findOwnedCourse resolves a course the user owns. Returns (nil, nil) when
// the course does not exist or belongs to someone else, matching the
// repository convention for not found.
func findOwnedCourse(ctx context.Context, uow unitofwork.UnitOfWork, userId, courseId uuid.UUID) (*entity.Course, error) {
	return uow.CourseRepository().FindOne(ctx,
		specification.ByID{ID: courseId},
		specification.OwnedByUser{UserID: userId},
	)
}

// readyDescriptors lists the course's ready documents as retrieval
// descriptors. Pending, processing and failed documents are excluded so
// question answering only ever sees published indices.
func readyDescriptors(ctx context.Context, uow unitofwork.UnitOfWork, courseId uuid.UUID) ([]retriever.Descriptor, error) {
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.ByStatus{Status: string(entity.DocumentStatusReady)},
	)
	if err != nil {
		return nil, err
	}

	descriptors := make([]retriever.Descriptor, len(docs))
	for i, doc := range docs {
		descriptors[i] = retriever.Descriptor{
			ID:          doc.Id,
			DisplayName: doc.DisplayName,
			Handle:      index.HandleFor(doc.Id),
		}
	}
	return descriptors, nil
}
