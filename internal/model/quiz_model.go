package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Quiz struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title     string         `gorm:"type:varchar(255)"`
	Questions datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizAttempt struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	QuizId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Answers     datatypes.JSON `gorm:"type:jsonb;not null"`
	Score       int            `gorm:"not null"`
	Total       int            `gorm:"not null"`
	CompletedAt time.Time      `gorm:"autoCreateTime"`

	Quiz *Quiz `gorm:"foreignKey:QuizId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
