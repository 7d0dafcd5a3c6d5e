package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateQuizRequest struct {
	CourseId uuid.UUID `json:"course_id" validate:"required"`
	Topic    string    `json:"topic"`
	Count    int       `json:"count" validate:"omitempty,min=1,max=20"`
}

type QuizQuestionResponse struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	// Answer and Why are withheld from list endpoints until an attempt
	// is submitted.
	Answer *int   `json:"answer,omitempty"`
	Why    string `json:"why,omitempty"`
}

type QuizResponse struct {
	Id        uuid.UUID              `json:"id"`
	CourseId  uuid.UUID              `json:"course_id"`
	Title     string                 `json:"title"`
	Questions []QuizQuestionResponse `json:"questions"`
	CreatedAt time.Time              `json:"created_at"`
}

type SubmitQuizRequest struct {
	QuizId  uuid.UUID
	Answers []int `json:"answers" validate:"required,min=1"`
}

type QuizAttemptResponse struct {
	Id          uuid.UUID              `json:"id"`
	QuizId      uuid.UUID              `json:"quiz_id"`
	Answers     []int                  `json:"answers"`
	Score       int                    `json:"score"`
	Total       int                    `json:"total"`
	Questions   []QuizQuestionResponse `json:"questions,omitempty"`
	CompletedAt time.Time              `json:"completed_at"`
}
