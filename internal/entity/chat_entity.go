package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	CourseId  uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Role      ChatRole
	Content   string
	CreatedAt time.Time
}

// ChatCitation records one numbered source of an assistant message.
type ChatCitation struct {
	Id            uuid.UUID
	ChatMessageId uuid.UUID
	DocumentId    uuid.UUID
	Number        int
	DisplayName   string
	Pages         []int
	Snippet       string
	CreatedAt     time.Time
}
