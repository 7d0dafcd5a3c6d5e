package dto

import "github.com/google/uuid"

type SearchRequest struct {
	CourseId uuid.UUID `json:"course_id" validate:"required"`
	Query    string    `json:"query" validate:"required,min=1"`
	TopK     int       `json:"top_k" validate:"omitempty,min=1,max=50"`
}

type SearchHitResponse struct {
	DocumentId  uuid.UUID `json:"document_id"`
	DisplayName string    `json:"display_name"`
	Text        string    `json:"text"`
	Page        *int      `json:"page,omitempty"`
	Score       float64   `json:"score"`
}
