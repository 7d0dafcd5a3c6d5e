package entity

import (
	"time"

	"github.com/google/uuid"
)

type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
	Why      string   `json:"why,omitempty"`
}

type Quiz struct {
	Id        uuid.UUID
	CourseId  uuid.UUID
	UserId    uuid.UUID
	Title     string
	Questions []QuizQuestion
	CreatedAt time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type QuizAttempt struct {
	Id          uuid.UUID
	QuizId      uuid.UUID
	UserId      uuid.UUID
	Answers     []int
	Score       int
	Total       int
	CompletedAt time.Time
}
