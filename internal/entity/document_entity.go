package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentSourceType string

const (
	DocumentSourcePDF        DocumentSourceType = "pdf"
	DocumentSourceURL        DocumentSourceType = "url"
	DocumentSourceTranscript DocumentSourceType = "transcript"
)

type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusReady      DocumentStatus = "ready"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// Document is one uploaded or imported study material. RawText stores the
// extracted text; paginated sources separate pages with form feeds.
type Document struct {
	Id          uuid.UUID
	CourseId    uuid.UUID
	UserId      uuid.UUID
	DisplayName string
	SourceType  DocumentSourceType
	SourceRef   string // file path or origin URL
	RawText     string
	PageCount   int
	Status      DocumentStatus
	StatusError string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
