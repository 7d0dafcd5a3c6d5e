package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationDocumentReady  NotificationType = "document_ready"
	NotificationDocumentFailed NotificationType = "document_failed"
	NotificationReviewDue      NotificationType = "review_due"
	NotificationCourseShared   NotificationType = "course_shared"
)

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Type      NotificationType
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}

func NewNotification(userId uuid.UUID, kind NotificationType, title, body string) *Notification {
	return &Notification{
		Id:        uuid.New(),
		UserId:    userId,
		Type:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
}
