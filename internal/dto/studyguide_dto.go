package dto

import "github.com/google/uuid"

type GenerateStudyGuideRequest struct {
	CourseId uuid.UUID `json:"course_id" validate:"required"`
	Topic    string    `json:"topic"`
}
