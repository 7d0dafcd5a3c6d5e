package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatSessionRequest struct {
	CourseId uuid.UUID `json:"course_id" validate:"required"`
	Title    string    `json:"title"`
}

type CreateChatSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type ChatSessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	CourseId  uuid.UUID  `json:"course_id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type AskRequest struct {
	SessionId uuid.UUID
	Question  string `json:"question" validate:"required,min=1"`
}

type CitationResponse struct {
	Number      int       `json:"number"`
	DocumentId  uuid.UUID `json:"document_id"`
	DisplayName string    `json:"display_name"`
	Pages       []int     `json:"pages,omitempty"`
	Snippet     string    `json:"snippet"`
}

type AskResponse struct {
	MessageId uuid.UUID          `json:"message_id"`
	Answer    string             `json:"answer"`
	Citations []CitationResponse `json:"citations"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID          `json:"id"`
	Role      string             `json:"role"`
	Content   string             `json:"content"`
	Citations []CitationResponse `json:"citations,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// Stream frames sent over the websocket. Type is "chunk" while text is
// flowing, then "sources" once, then "done". Errors close with "error".
type StreamFrame struct {
	Type      string             `json:"type"`
	Text      string             `json:"text,omitempty"`
	Citations []CitationResponse `json:"citations,omitempty"`
	Error     string             `json:"error,omitempty"`
}
