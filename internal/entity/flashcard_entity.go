package entity

import (
	"time"

	"github.com/google/uuid"
)

// Flashcard carries its own spaced repetition state. EaseFactor, Interval
// and Repetitions follow the SM-2 algorithm in pkg/srs.
type Flashcard struct {
	Id           uuid.UUID
	CourseId     uuid.UUID
	UserId       uuid.UUID
	Front        string
	Back         string
	EaseFactor   float64
	Interval     int
	Repetitions  int
	NextReview   time.Time
	LastReviewed *time.Time
	LastQuality  *int
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
