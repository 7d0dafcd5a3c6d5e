package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateFlashcardsRequest struct {
	CourseId uuid.UUID `json:"course_id" validate:"required"`
	Topic    string    `json:"topic"`
	Count    int       `json:"count" validate:"omitempty,min=1,max=50"`
}

type CreateFlashcardRequest struct {
	CourseId uuid.UUID `json:"course_id" validate:"required"`
	Front    string    `json:"front" validate:"required,min=1"`
	Back     string    `json:"back" validate:"required,min=1"`
}

type UpdateFlashcardRequest struct {
	Id    uuid.UUID
	Front string `json:"front" validate:"required,min=1"`
	Back  string `json:"back" validate:"required,min=1"`
}

type FlashcardResponse struct {
	Id           uuid.UUID  `json:"id"`
	CourseId     uuid.UUID  `json:"course_id"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	EaseFactor   float64    `json:"ease_factor"`
	Interval     int        `json:"interval"`
	Repetitions  int        `json:"repetitions"`
	NextReview   time.Time  `json:"next_review"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	LastQuality  *int       `json:"last_quality,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type ReviewFlashcardRequest struct {
	Id      uuid.UUID
	Quality int `json:"quality" validate:"min=0,max=5"`
}

type ReviewFlashcardResponse struct {
	Id          uuid.UUID `json:"id"`
	EaseFactor  float64   `json:"ease_factor"`
	Interval    int       `json:"interval"`
	Repetitions int       `json:"repetitions"`
	NextReview  time.Time `json:"next_review"`
}
