package dto

import (
	"time"

	"ai-studymate-be/internal/entity"

	"github.com/google/uuid"
)

type GenerateMindMapRequest struct {
	CourseId uuid.UUID `json:"course_id" validate:"required"`
	Topic    string    `json:"topic"`
}

type MindMapResponse struct {
	Id        uuid.UUID          `json:"id"`
	CourseId  uuid.UUID          `json:"course_id"`
	Title     string             `json:"title"`
	Root      entity.MindMapNode `json:"root"`
	CreatedAt time.Time          `json:"created_at"`
}
