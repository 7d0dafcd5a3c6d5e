package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Flashcard struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Front        string         `gorm:"type:text;not null"`
	Back         string         `gorm:"type:text;not null"`
	EaseFactor   float64        `gorm:"default:2.5"`
	Interval     int            `gorm:"default:1"`
	Repetitions  int            `gorm:"default:0"`
	NextReview   time.Time      `gorm:"index"`
	LastReviewed *time.Time     ``
	LastQuality  *int           ``
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}
