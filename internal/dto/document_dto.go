package dto

import (
	"time"

	"github.com/google/uuid"
)

type ImportURLRequest struct {
	CourseId    uuid.UUID `json:"course_id" validate:"required"`
	URL         string    `json:"url" validate:"required,url"`
	DisplayName string    `json:"display_name"`
}

type ImportTranscriptRequest struct {
	CourseId    uuid.UUID `json:"course_id" validate:"required"`
	DisplayName string    `json:"display_name" validate:"required,min=1,max=200"`
	Text        string    `json:"text" validate:"required,min=1"`
}

type DocumentResponse struct {
	Id          uuid.UUID `json:"id"`
	CourseId    uuid.UUID `json:"course_id"`
	DisplayName string    `json:"display_name"`
	SourceType  string    `json:"source_type"`
	SourceRef   string    `json:"source_ref,omitempty"`
	PageCount   int       `json:"page_count,omitempty"`
	Status      string    `json:"status"`
	StatusError string    `json:"status_error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type PublishIngestDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

type DocumentStatusResponse struct {
	Id          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	StatusError string    `json:"status_error,omitempty"`
}
